package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/lixinchen-031016/work-record/config"
	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/model"
)

// ── 测试辅助 ──

func setupTestExportService() (ExportService, *testRepos) {
	repo, mocks := newTestRepos()
	svc := NewExportService(&config.ExportConfig{MaxRangeDays: 366}, repo, zap.NewNop())
	return svc, mocks
}

func addRecord(mocks *testRepos, recorder, content, start, end string, done bool) {
	_ = mocks.workRecord.Create(context.Background(), &model.WorkRecord{
		Recorder:    recorder,
		WorkType:    "巡检",
		WorkContent: content,
		StartDate:   mustDate(start),
		EndDate:     mustDate(end),
		IsCompleted: done,
	})
}

// ── ExportWorkRecords 测试 ──

func TestExportService_EmptyRange(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, filename, err := svc.ExportWorkRecords(context.Background(), &dto.DateRangeRequest{From: "2024-01-01", To: "2024-01-31"})
	if err != nil {
		t.Fatalf("空区间不应报错: %v", err)
	}
	if buf != nil || filename != "" {
		t.Error("空区间不应生成文件")
	}
}

func TestExportService_InvalidRange(t *testing.T) {
	svc, _ := setupTestExportService()
	ctx := context.Background()

	if _, _, err := svc.ExportWorkRecords(ctx, &dto.DateRangeRequest{From: "2024-02-01", To: "2024-01-01"}); !errors.Is(err, ErrExportRangeInvalid) {
		t.Errorf("期望 ErrExportRangeInvalid，实际 %v", err)
	}
	if _, _, err := svc.ExportWorkRecords(ctx, &dto.DateRangeRequest{From: "2024-01-01", To: "2025-12-31"}); !errors.Is(err, ErrExportRangeTooLarge) {
		t.Errorf("期望 ErrExportRangeTooLarge，实际 %v", err)
	}
	if _, _, err := svc.ExportWorkRecords(ctx, &dto.DateRangeRequest{From: "bad", To: "2024-01-01"}); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际 %v", err)
	}
}

func TestExportService_Workbook(t *testing.T) {
	svc, mocks := setupTestExportService()
	addRecord(mocks, "Alice", "机房巡检", "2024-01-02", "2024-01-03", true)
	addRecord(mocks, "Bob", strings.Repeat("长", 80), "2024-01-05", "2024-01-06", false)
	addRecord(mocks, "Carol", "跨区间记录", "2023-12-30", "2024-01-02", false) // start 早于 from，不导出

	buf, filename, err := svc.ExportWorkRecords(context.Background(), &dto.DateRangeRequest{From: "2024-01-01", To: "2024-01-31"})
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if filename != "work_records_2024-01-01_2024-01-31.xlsx" {
		t.Errorf("文件名错误: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("无法解析生成的 xlsx: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "工作记录" {
		t.Fatalf("工作表错误: %v", sheets)
	}

	rows, err := f.GetRows("工作记录")
	if err != nil {
		t.Fatalf("读取行失败: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("期望表头 + 2 行数据，实际 %d 行", len(rows))
	}
	if strings.Join(rows[0], ",") != "ID,记录人,工作类型,工作内容,开始日期,结束日期,是否完成" {
		t.Errorf("表头错误: %v", rows[0])
	}
	if rows[1][1] != "Alice" || rows[1][4] != "2024-01-02" || rows[1][6] != "是" {
		t.Errorf("数据行错误: %v", rows[1])
	}
	if rows[2][6] != "否" {
		t.Errorf("未完成应显示为 否: %v", rows[2])
	}

	// 列宽 = min(最大显示宽度 + 2, 50)，汉字计 2
	widths := map[string]float64{"B": 8, "C": 10, "D": 50, "E": 12, "G": 10}
	for col, want := range widths {
		got, _ := f.GetColWidth("工作记录", col)
		if got != want {
			t.Errorf("列 %s 宽度期望 %.0f，实际 %.2f", col, want, got)
		}
	}

	panes, err := f.GetPanes("工作记录")
	if err != nil {
		t.Fatalf("读取冻结窗格失败: %v", err)
	}
	if !panes.Freeze || panes.YSplit != 1 || panes.TopLeftCell != "A2" {
		t.Errorf("首行应冻结: %+v", panes)
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"Alice", 5},
		{"记录人", 6},
		{"机房A区", 7},
		{"ＡＢ", 4}, // 全角
		{"2024-01-02", 10},
	}
	for _, tt := range tests {
		if got := displayWidth(tt.in); got != tt.want {
			t.Errorf("displayWidth(%q) = %d，期望 %d", tt.in, got, tt.want)
		}
	}
}
