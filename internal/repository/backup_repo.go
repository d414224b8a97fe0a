package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/lixinchen-031016/work-record/pkg/sqldump"
)

// BackupRepository 备份所需的元数据与原始行读取
// 应在只读事务内使用（Repository.WithTx），保证多表读取来自同一快照
type BackupRepository interface {
	Columns(ctx context.Context, table string) ([]sqldump.Column, error)
	PrimaryKey(ctx context.Context, table string) ([]string, error)
	UniqueConstraints(ctx context.Context, table string) ([]sqldump.Unique, error)
	// Indexes 返回不属于任何约束的索引定义
	Indexes(ctx context.Context, table string) ([]string, error)
	// Rows 按 columns 顺序读取整表数据
	Rows(ctx context.Context, table string, columns []sqldump.Column, orderBy []string) ([][]interface{}, error)
}

type backupRepo struct {
	db *gorm.DB
}

func NewBackupRepo(db *gorm.DB) BackupRepository {
	return &backupRepo{db: db}
}

type columnRow struct {
	ColumnName             string
	DataType               string
	CharacterMaximumLength *int
	IsNullable             string
	ColumnDefault          *string
}

func (r *backupRepo) Columns(ctx context.Context, table string) ([]sqldump.Column, error) {
	var rows []columnRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT column_name, data_type, character_maximum_length, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = ?
		ORDER BY ordinal_position`, table).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	columns := make([]sqldump.Column, len(rows))
	for i, row := range rows {
		columns[i] = sqldump.Column{
			Name:      row.ColumnName,
			DataType:  row.DataType,
			MaxLength: row.CharacterMaximumLength,
			Nullable:  row.IsNullable == "YES",
			Default:   row.ColumnDefault,
		}
	}
	return columns, nil
}

func (r *backupRepo) PrimaryKey(ctx context.Context, table string) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
		 AND tc.table_name = kcu.table_name
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_schema = current_schema() AND tc.table_name = ?
		ORDER BY kcu.ordinal_position`, table).
		Scan(&keys).Error
	return keys, err
}

type uniqueColumnRow struct {
	ConstraintName string
	ColumnName     string
}

func (r *backupRepo) UniqueConstraints(ctx context.Context, table string) ([]sqldump.Unique, error) {
	var rows []uniqueColumnRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT tc.constraint_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
		 AND tc.table_name = kcu.table_name
		WHERE tc.constraint_type = 'UNIQUE'
		  AND tc.table_schema = current_schema() AND tc.table_name = ?
		ORDER BY tc.constraint_name, kcu.ordinal_position`, table).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var uniques []sqldump.Unique
	for _, row := range rows {
		if n := len(uniques); n > 0 && uniques[n-1].Name == row.ConstraintName {
			uniques[n-1].Columns = append(uniques[n-1].Columns, row.ColumnName)
			continue
		}
		uniques = append(uniques, sqldump.Unique{Name: row.ConstraintName, Columns: []string{row.ColumnName}})
	}
	return uniques, nil
}

func (r *backupRepo) Indexes(ctx context.Context, table string) ([]string, error) {
	var defs []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT indexdef
		FROM pg_indexes
		WHERE schemaname = current_schema() AND tablename = ?
		  AND indexname NOT IN (
		    SELECT constraint_name FROM information_schema.table_constraints
		    WHERE table_schema = current_schema() AND table_name = ?)
		ORDER BY indexname`, table, table).
		Scan(&defs).Error
	return defs, err
}

func (r *backupRepo) Rows(ctx context.Context, table string, columns []sqldump.Column, orderBy []string) ([][]interface{}, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("表 %s 没有列定义", table)
	}

	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = pq.QuoteIdentifier(col.Name)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), pq.QuoteIdentifier(table))
	if len(orderBy) > 0 {
		order := make([]string, len(orderBy))
		for i, name := range orderBy {
			order[i] = pq.QuoteIdentifier(name)
		}
		query += " ORDER BY " + strings.Join(order, ", ")
	}

	rows, err := r.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		result = append(result, values)
	}
	return result, rows.Err()
}
