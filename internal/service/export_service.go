package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/width"

	"github.com/lixinchen-031016/work-record/config"
	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/model"
	"github.com/lixinchen-031016/work-record/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportRangeInvalid  = errors.New("开始日期不能晚于结束日期")
	ErrExportRangeTooLarge = errors.New("导出日期范围过大")
	ErrExportGenerateFail  = errors.New("生成 Excel 文件失败")
)

const (
	exportSheetName   = "工作记录"
	exportMaxColWidth = 50
)

var exportHeaders = []string{"ID", "记录人", "工作类型", "工作内容", "开始日期", "结束日期", "是否完成"}

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
// 区间内没有记录时返回 nil buffer 与 nil error。
type ExportService interface {
	ExportWorkRecords(ctx context.Context, req *dto.DateRangeRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.ExportConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.ExportConfig, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportWorkRecords 导出区间内的工作记录
// ═══════════════════════════════════════════════════════════
//
// 区间语义：start_date >= from 且 end_date <= to
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportWorkRecords(ctx context.Context, req *dto.DateRangeRequest) (*bytes.Buffer, string, error) {
	from, err := parseDate(req.From)
	if err != nil {
		return nil, "", err
	}
	to, err := parseDate(req.To)
	if err != nil {
		return nil, "", err
	}
	if from.After(to) {
		return nil, "", ErrExportRangeInvalid
	}
	if s.cfg.MaxRangeDays > 0 && int(to.Sub(from).Hours()/24) > s.cfg.MaxRangeDays {
		return nil, "", ErrExportRangeTooLarge
	}

	records, err := s.repo.WorkRecord.ListByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("查询导出数据失败", zap.Error(err))
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", nil
	}

	buf, err := renderWorkRecords(records)
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("work_records_%s_%s.xlsx", formatDate(from), formatDate(to))
	return buf, filename, nil
}

func renderWorkRecords(records []model.WorkRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	// 重命名默认 Sheet1
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(records)+1)
	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	rows = append(rows, header)
	for _, r := range records {
		completed := "否"
		if r.IsCompleted {
			completed = "是"
		}
		rows = append(rows, []interface{}{
			r.WorkRecordID, r.Recorder, r.WorkType, r.WorkContent,
			formatDate(r.StartDate), formatDate(r.EndDate), completed,
		})
	}

	// 写入数据并记录每列最大显示宽度
	widths := make([]int, len(exportHeaders))
	for i, row := range rows {
		start, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(exportSheetName, start, &row); err != nil {
			return nil, err
		}
		for j, v := range row {
			if n := displayWidth(fmt.Sprint(v)); n > widths[j] {
				widths[j] = n
			}
		}
	}

	// 列宽 = min(最大宽度 + 2, 50)
	for j, w := range widths {
		col, _ := excelize.ColumnNumberToName(j + 1)
		colWidth := w + 2
		if colWidth > exportMaxColWidth {
			colWidth = exportMaxColWidth
		}
		if err := f.SetColWidth(exportSheetName, col, col, float64(colWidth)); err != nil {
			return nil, err
		}
	}

	// 表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	if err := f.SetCellStyle(exportSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}

	// 冻结首行
	if err := f.SetPanes(exportSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// displayWidth 估算单元格显示宽度：东亚宽字符与全角字符计 2，其余计 1
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
