package dto

// ── 统计模块 DTO ──

// CountItem 分类计数
type CountItem struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// WeeklyCount 每周记录数（周以周一为结束日）
type WeeklyCount struct {
	WeekEnd string `json:"week_end"`
	Count   int    `json:"count"`
}

// StatsResponse 工作记录统计
type StatsResponse struct {
	Total      int           `json:"total"`
	Completed  int           `json:"completed"`
	Pending    int           `json:"pending"`
	ByWorkType []CountItem   `json:"by_work_type"`
	ByRecorder []CountItem   `json:"by_recorder"`
	Weekly     []WeeklyCount `json:"weekly"`
}
