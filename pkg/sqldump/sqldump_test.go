package sqldump

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func sampleTable() *Table {
	return &Table{
		Name: "duty_personnel",
		Columns: []Column{
			{Name: "duty_person_id", DataType: "uuid", Default: strPtr("gen_random_uuid()")},
			{Name: "name", DataType: "character varying", MaxLength: intPtr(50)},
			{Name: "created_at", DataType: "timestamp with time zone", Default: strPtr("CURRENT_TIMESTAMP")},
		},
		PrimaryKey: []string{"duty_person_id"},
	}
}

func TestLiteral(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, "NULL"},
		{true, "TRUE"},
		{false, "FALSE"},
		{int64(42), "42"},
		{3.5, "3.5"},
		{"plain", "'plain'"},
		{"O'Brien", "'O''Brien'"},
		{[]byte("bytes"), "'bytes'"},
		{ts, "'2024-01-02T03:04:05Z'"},
		{[16]byte(uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")), "'6ba7b810-9dad-11d1-80b4-00c04fd430c8'"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Literal(tc.in), "Literal(%#v)", tc.in)
	}
}

func TestCreateTable(t *testing.T) {
	sql := CreateTable(sampleTable())

	assert.Contains(t, sql, `CREATE TABLE "duty_personnel" (`)
	assert.Contains(t, sql, `"duty_person_id" uuid DEFAULT gen_random_uuid() NOT NULL`)
	assert.Contains(t, sql, `"name" character varying(50) NOT NULL`)
	assert.Contains(t, sql, `PRIMARY KEY ("duty_person_id")`)
}

func TestCreateTable_UniqueConstraints(t *testing.T) {
	tbl := &Table{
		Name: "users",
		Columns: []Column{
			{Name: "user_id", DataType: "uuid"},
			{Name: "username", DataType: "character varying", MaxLength: intPtr(50)},
		},
		PrimaryKey: []string{"user_id"},
		Uniques:    []Unique{{Name: "uk_users_username", Columns: []string{"username"}}},
		Rows:       [][]interface{}{{"id-1", "alice"}},
	}

	var sb strings.Builder
	require.NoError(t, Write(&sb, tbl))
	out := sb.String()

	assert.Contains(t, out, `CONSTRAINT "uk_users_username" UNIQUE ("username")`)
	// 约束必须在建表语句内，先于数据写入
	assert.Less(t, strings.Index(out, "UNIQUE"), strings.Index(out, "INSERT INTO"))
}

func TestWrite_IndexesAfterRows(t *testing.T) {
	tbl := sampleTable()
	tbl.Rows = [][]interface{}{{"id-1", "Alice", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}}
	tbl.Indexes = []string{
		"CREATE INDEX idx_duty_personnel_order ON public.duty_personnel USING btree (created_at, duty_person_id)",
	}

	var sb strings.Builder
	require.NoError(t, Write(&sb, tbl))
	out := sb.String()

	stmt := "CREATE INDEX idx_duty_personnel_order ON public.duty_personnel USING btree (created_at, duty_person_id);"
	require.Contains(t, out, stmt)
	assert.Greater(t, strings.Index(out, stmt), strings.Index(out, "INSERT INTO"))
}

func TestWrite_Rows(t *testing.T) {
	tbl := sampleTable()
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	tbl.Rows = [][]interface{}{
		{"id-1", "Alice", ts},
		{"id-2", "Bob's", ts},
	}

	var sb strings.Builder
	require.NoError(t, Write(&sb, tbl))
	out := sb.String()

	assert.Contains(t, out, `DROP TABLE IF EXISTS "duty_personnel";`)
	assert.Equal(t, 2, strings.Count(out, "INSERT INTO"))
	assert.Contains(t, out, `VALUES ('id-2', 'Bob''s', '2024-01-02T00:00:00Z');`)
}

func TestWrite_EmptyTableHasSchemaOnly(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Write(&sb, sampleTable()))

	assert.Contains(t, sb.String(), "CREATE TABLE")
	assert.NotContains(t, sb.String(), "INSERT INTO")
}

func TestWrite_RowWidthMismatch(t *testing.T) {
	tbl := sampleTable()
	tbl.Rows = [][]interface{}{{"only-one"}}

	var sb strings.Builder
	assert.Error(t, Write(&sb, tbl))
}

func TestWrite_NoColumns(t *testing.T) {
	var sb strings.Builder
	assert.Error(t, Write(&sb, &Table{Name: "empty"}))
}
