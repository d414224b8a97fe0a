// Package sqldump 将表结构与数据渲染为可直接执行的 PostgreSQL 语句
package sqldump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Column 列定义（来自 information_schema.columns）
type Column struct {
	Name      string
	DataType  string
	MaxLength *int
	Nullable  bool
	Default   *string
}

// Unique 唯一约束
type Unique struct {
	Name    string
	Columns []string
}

// Table 待导出的表
type Table struct {
	Name       string
	Columns    []Column
	PrimaryKey []string
	Uniques    []Unique
	Indexes    []string        // 非约束索引的完整定义（pg_indexes.indexdef）
	Rows       [][]interface{} // 每行按 Columns 顺序排列
}

// Write 依次写出 DROP TABLE / CREATE TABLE / INSERT 语句
func Write(w io.Writer, t *Table) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("表 %s 没有列定义", t.Name)
	}

	bw := bufio.NewWriter(w)
	table := pq.QuoteIdentifier(t.Name)

	fmt.Fprintf(bw, "-- Table: %s\n", t.Name)
	fmt.Fprintf(bw, "-- Rows: %d\n\n", len(t.Rows))
	fmt.Fprintf(bw, "DROP TABLE IF EXISTS %s;\n", table)
	bw.WriteString(CreateTable(t))
	bw.WriteString("\n")

	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = pq.QuoteIdentifier(col.Name)
	}
	columnList := strings.Join(names, ", ")

	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("表 %s 第 %d 行列数不匹配: %d != %d", t.Name, i+1, len(row), len(t.Columns))
		}
		values := make([]string, len(row))
		for j, v := range row {
			values[j] = Literal(v)
		}
		fmt.Fprintf(bw, "INSERT INTO %s (%s) VALUES (%s);\n", table, columnList, strings.Join(values, ", "))
	}

	// 索引在数据写入后创建
	if len(t.Indexes) > 0 {
		bw.WriteString("\n")
		for _, def := range t.Indexes {
			bw.WriteString(strings.TrimSuffix(strings.TrimSpace(def), ";") + ";\n")
		}
	}

	return bw.Flush()
}

// CreateTable 渲染 CREATE TABLE 语句
func CreateTable(t *Table) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE TABLE %s (\n", pq.QuoteIdentifier(t.Name))

	lines := make([]string, 0, len(t.Columns)+1)
	for _, col := range t.Columns {
		line := "    " + pq.QuoteIdentifier(col.Name) + " " + columnType(col)
		if col.Default != nil && *col.Default != "" {
			line += " DEFAULT " + *col.Default
		}
		if !col.Nullable {
			line += " NOT NULL"
		}
		lines = append(lines, line)
	}
	if len(t.PrimaryKey) > 0 {
		lines = append(lines, "    PRIMARY KEY ("+quoteList(t.PrimaryKey)+")")
	}
	for _, u := range t.Uniques {
		if len(u.Columns) == 0 {
			continue
		}
		line := "    "
		if u.Name != "" {
			line += "CONSTRAINT " + pq.QuoteIdentifier(u.Name) + " "
		}
		lines = append(lines, line+"UNIQUE ("+quoteList(u.Columns)+")")
	}

	sb.WriteString(strings.Join(lines, ",\n"))
	sb.WriteString("\n);\n")
	return sb.String()
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = pq.QuoteIdentifier(name)
	}
	return strings.Join(quoted, ", ")
}

func columnType(col Column) string {
	if col.MaxLength != nil && *col.MaxLength > 0 {
		return fmt.Sprintf("%s(%d)", col.DataType, *col.MaxLength)
	}
	return col.DataType
}

// Literal 将 Go 值渲染为 SQL 字面量
func Literal(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		return pq.QuoteLiteral(val.Format(time.RFC3339Nano))
	case *time.Time:
		if val == nil {
			return "NULL"
		}
		return pq.QuoteLiteral(val.Format(time.RFC3339Nano))
	case [16]byte:
		return pq.QuoteLiteral(uuid.UUID(val).String())
	case []byte:
		return pq.QuoteLiteral(string(val))
	case string:
		return pq.QuoteLiteral(val)
	default:
		return pq.QuoteLiteral(fmt.Sprint(val))
	}
}
