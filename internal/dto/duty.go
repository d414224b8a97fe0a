package dto

// ── 值班模块 DTO ──

// DutySource 当日值班人员的来源
type DutySource string

const (
	DutySourceOverride DutySource = "override" // 管理员手动指定
	DutySourceRotation DutySource = "rotation" // 按日序轮换计算
	DutySourceNone     DutySource = "none"     // 名单为空且无覆盖
)

// DutyResponse 某日值班结果
type DutyResponse struct {
	Date       string     `json:"date"`
	Person     string     `json:"person"`
	Source     DutySource `json:"source"`
	RosterSize int        `json:"roster_size"`
}

// DutyPersonRequest 添加/重命名值班人员
type DutyPersonRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// DutyPersonResponse 值班人员
type DutyPersonResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SaveOverrideRequest 指定某日值班人员
type SaveOverrideRequest struct {
	PersonName string `json:"person_name" binding:"required,max=50"`
}

// DutyOverrideResponse 值班覆盖记录
type DutyOverrideResponse struct {
	Date       string `json:"date"`
	PersonName string `json:"person_name"`
}

// DutyCalendarRequest 日历订阅参数
type DutyCalendarRequest struct {
	From string `form:"from"` // 默认今天
	Days int    `form:"days" binding:"omitempty,min=1,max=366"`
}
