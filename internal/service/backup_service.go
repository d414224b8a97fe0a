package service

import (
	"archive/zip"
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lixinchen-031016/work-record/internal/repository"
	"github.com/lixinchen-031016/work-record/pkg/sqldump"
)

// BackupTables 参与备份的业务表
var BackupTables = []string{"users", "duty_personnel", "daily_duty_overrides", "work_records"}

// BackupService 数据库备份接口
type BackupService interface {
	// Backup 生成 zip 包，每张表一个 <table>.sql
	Backup(ctx context.Context) (*bytes.Buffer, string, error)
}

type backupService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewBackupService 创建 BackupService 实例
func NewBackupService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) BackupService {
	return &backupService{repo: repo, loc: loc, logger: logger, now: time.Now}
}

func (s *backupService) Backup(ctx context.Context) (*bytes.Buffer, string, error) {
	// 只读 + 可重复读：所有表读取自同一快照
	tx, err := s.repo.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		s.logger.Error("开启备份事务失败", zap.Error(err))
		return nil, "", err
	}
	defer tx.Rollback()
	txRepo := s.repo.WithTx(tx)

	now := s.now().In(s.loc)
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	for _, table := range BackupTables {
		t, err := s.loadTable(ctx, txRepo, table)
		if err != nil {
			s.logger.Error("读取备份数据失败", zap.String("table", table), zap.Error(err))
			return nil, "", err
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     table + ".sql",
			Method:   zip.Deflate,
			Modified: now,
		})
		if err != nil {
			return nil, "", err
		}
		if err := sqldump.Write(w, t); err != nil {
			return nil, "", fmt.Errorf("写入 %s.sql 失败: %w", table, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("work_record_backup_%s.zip", now.Format("20060102_150405"))
	s.logger.Info("数据库备份完成", zap.String("filename", filename), zap.Int("bytes", buf.Len()))
	return buf, filename, nil
}

func (s *backupService) loadTable(ctx context.Context, repo *repository.Repository, table string) (*sqldump.Table, error) {
	columns, err := repo.Backup.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("表 %s 不存在", table)
	}
	pk, err := repo.Backup.PrimaryKey(ctx, table)
	if err != nil {
		return nil, err
	}
	uniques, err := repo.Backup.UniqueConstraints(ctx, table)
	if err != nil {
		return nil, err
	}
	indexes, err := repo.Backup.Indexes(ctx, table)
	if err != nil {
		return nil, err
	}
	rows, err := repo.Backup.Rows(ctx, table, columns, pk)
	if err != nil {
		return nil, err
	}
	return &sqldump.Table{
		Name:       table,
		Columns:    columns,
		PrimaryKey: pk,
		Uniques:    uniques,
		Indexes:    indexes,
		Rows:       rows,
	}, nil
}
