package service

import (
	"errors"
	"strings"
	"time"

	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/model"
)

// ErrInvalidDate 日期参数格式错误（所有模块共用）
var ErrInvalidDate = errors.New("日期格式错误，应为 YYYY-MM-DD")

// parseDate 解析 YYYY-MM-DD，结果为 UTC 零点，与 DATE 列语义一致
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// localToday 取 loc 时区下的当天日期
func localToday(now time.Time, loc *time.Location) time.Time {
	return model.TruncateToDate(now.In(loc))
}

func formatDate(t time.Time) string {
	return t.Format(model.DateLayout)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func toWorkRecordResponse(r *model.WorkRecord) dto.WorkRecordResponse {
	return dto.WorkRecordResponse{
		ID:          r.WorkRecordID,
		Recorder:    r.Recorder,
		WorkType:    r.WorkType,
		WorkContent: r.WorkContent,
		StartDate:   formatDate(r.StartDate),
		EndDate:     formatDate(r.EndDate),
		IsCompleted: r.IsCompleted,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}
}

func toWorkRecordResponses(records []model.WorkRecord) []dto.WorkRecordResponse {
	result := make([]dto.WorkRecordResponse, len(records))
	for i := range records {
		result[i] = toWorkRecordResponse(&records[i])
	}
	return result
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.UserID,
		Username:      u.Username,
		LastLoginDate: formatDatePtr(u.LastLoginDate),
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}
