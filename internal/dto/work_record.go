package dto

// ── 工作记录模块 DTO ──

// CreateWorkRecordRequest 新增工作记录
type CreateWorkRecordRequest struct {
	Recorder    string `json:"recorder"     binding:"required,max=50"`
	WorkType    string `json:"work_type"    binding:"required,max=50"`
	WorkContent string `json:"work_content" binding:"required"`
	StartDate   string `json:"start_date"   binding:"required"` // "2024-01-01"
	EndDate     string `json:"end_date"     binding:"required"` // 不得早于 start_date
}

// UpdateWorkRecordRequest 部分更新（仅更新非 nil 字段）
type UpdateWorkRecordRequest struct {
	Recorder    *string `json:"recorder"     binding:"omitempty,max=50"`
	WorkType    *string `json:"work_type"    binding:"omitempty,max=50"`
	WorkContent *string `json:"work_content"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	IsCompleted *bool   `json:"is_completed"`
}

// PendingRequest 待办查询参数
// ReferenceDate 为空时返回全部未完成记录；否则仅返回截止日期不晚于该日的记录
type PendingRequest struct {
	ReferenceDate string `form:"reference_date"`
}

// DateRangeRequest 日期区间（导出使用）
type DateRangeRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to"   binding:"required"`
}

// WorkRecordResponse 工作记录响应
type WorkRecordResponse struct {
	ID          string `json:"id"`
	Recorder    string `json:"recorder"`
	WorkType    string `json:"work_type"`
	WorkContent string `json:"work_content"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsCompleted bool   `json:"is_completed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
