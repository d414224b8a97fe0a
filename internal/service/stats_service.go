package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/model"
	"github.com/lixinchen-031016/work-record/internal/repository"
)

// StatsService 工作记录统计接口
// 只产出数据序列，图表由前端绘制
type StatsService interface {
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

type statsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

func (s *statsService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	records, err := s.repo.WorkRecord.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询统计数据失败", zap.Error(err))
		return nil, err
	}
	return summarize(records), nil
}

// summarize 汇总记录：按类型、按记录人计数，按周（周一为周末日）统计开始日期
func summarize(records []model.WorkRecord) *dto.StatsResponse {
	resp := &dto.StatsResponse{
		Total:      len(records),
		ByWorkType: []dto.CountItem{},
		ByRecorder: []dto.CountItem{},
		Weekly:     []dto.WeeklyCount{},
	}

	byType := make(map[string]int)
	byRecorder := make(map[string]int)
	byWeek := make(map[time.Time]int)
	var first, last time.Time

	for i := range records {
		r := &records[i]
		if r.IsCompleted {
			resp.Completed++
		}
		byType[r.WorkType]++
		byRecorder[r.Recorder]++

		week := weekEnding(r.StartDate)
		byWeek[week]++
		if first.IsZero() || week.Before(first) {
			first = week
		}
		if last.IsZero() || week.After(last) {
			last = week
		}
	}
	resp.Pending = resp.Total - resp.Completed
	resp.ByWorkType = sortedCounts(byType)
	resp.ByRecorder = sortedCounts(byRecorder)

	if !first.IsZero() {
		for w := first; !w.After(last); w = w.AddDate(0, 0, 7) {
			resp.Weekly = append(resp.Weekly, dto.WeeklyCount{
				WeekEnd: formatDate(w),
				Count:   byWeek[w],
			})
		}
	}
	return resp
}

// weekEnding 返回 d 所在周的周一（周区间为 周二..周一）
func weekEnding(d time.Time) time.Time {
	d = model.TruncateToDate(d)
	offset := (8 - int(d.Weekday())) % 7
	return d.AddDate(0, 0, offset)
}

// sortedCounts 按数量降序，数量相同按名称升序
func sortedCounts(m map[string]int) []dto.CountItem {
	items := make([]dto.CountItem, 0, len(m))
	for label, count := range m {
		items = append(items, dto.CountItem{Label: label, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Label < items[j].Label
	})
	return items
}
