package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lixinchen-031016/work-record/config"
	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/model"
	"github.com/lixinchen-031016/work-record/pkg/response"
)

func setupTestViewService() (ViewService, *testRepos) {
	repo, mocks := newTestRepos("Alice", "Bob", "Carol", "Dave")
	logger := zap.NewNop()
	now := fixedClock("2024-01-10T08:00:00Z")

	duty := NewDutyService(&config.RosterConfig{Timezone: "UTC", CalendarDays: 30}, repo, logger)
	duty.(*dutyService).now = now
	workRecords := NewWorkRecordService(repo, mustLocation("UTC"), logger)
	workRecords.(*workRecordService).now = now

	svc := NewViewService(duty, workRecords, NewStatsService(repo, logger), NewUserService(repo, logger))

	_ = mocks.workRecord.Create(context.Background(), &model.WorkRecord{
		Recorder: "A", WorkType: "巡检", StartDate: mustDate("2024-01-01"), EndDate: mustDate("2024-01-05"),
	})
	_ = mocks.workRecord.Create(context.Background(), &model.WorkRecord{
		Recorder: "B", WorkType: "巡检", StartDate: mustDate("2024-01-01"), EndDate: mustDate("2024-01-20"),
	})
	return svc, mocks
}

func TestViewService_Dashboard_DefaultView(t *testing.T) {
	svc, _ := setupTestViewService()

	resp, err := svc.Dashboard(context.Background(), "alice", &dto.ViewRequest{View: "unknown"})
	require.NoError(t, err)

	assert.Equal(t, dto.ViewAdd, resp.View)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "Carol", resp.Duty.Person)
	assert.Len(t, resp.Pending, 2)
	assert.Len(t, resp.Reminders, 1)
	assert.Nil(t, resp.Data)
}

func TestViewService_Dashboard_Views(t *testing.T) {
	svc, _ := setupTestViewService()
	ctx := context.Background()

	edit, err := svc.Dashboard(ctx, "alice", &dto.ViewRequest{View: "edit"})
	require.NoError(t, err)
	page, ok := edit.Data.(response.PageData)
	require.True(t, ok, "edit 视图应返回分页数据")
	assert.Equal(t, int64(2), page.Pagination.Total)

	stats, err := svc.Dashboard(ctx, "alice", &dto.ViewRequest{View: "stats"})
	require.NoError(t, err)
	assert.IsType(t, &dto.StatsResponse{}, stats.Data)

	todo, err := svc.Dashboard(ctx, "alice", &dto.ViewRequest{View: "todo"})
	require.NoError(t, err)
	assert.Len(t, todo.Data, 2)
}

func TestViewService_Admin(t *testing.T) {
	svc, _ := setupTestViewService()
	ctx := context.Background()

	users, err := svc.Admin(ctx, &dto.ViewRequest{})
	require.NoError(t, err)
	assert.Equal(t, dto.AdminViewUsers, users.View)

	duty, err := svc.Admin(ctx, &dto.ViewRequest{View: "duty"})
	require.NoError(t, err)
	data, ok := duty.Data.(dto.AdminDutyData)
	require.True(t, ok)
	assert.Len(t, data.Personnel, 4)

	backup, err := svc.Admin(ctx, &dto.ViewRequest{View: "backup"})
	require.NoError(t, err)
	assert.Equal(t, dto.AdminViewBackup, backup.View)
}
