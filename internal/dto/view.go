package dto

// ── 视图状态 ──
//
// 页面当前所处的功能区由客户端通过 ?view= 显式传入，服务端不保存任何会话状态。

// WorkRecordView 工作记录页面视图
type WorkRecordView string

const (
	ViewAdd   WorkRecordView = "add"
	ViewEdit  WorkRecordView = "edit"
	ViewStats WorkRecordView = "stats"
	ViewTodo  WorkRecordView = "todo"
)

// ParseWorkRecordView 解析视图参数，未知值回退为 add
func ParseWorkRecordView(s string) WorkRecordView {
	switch v := WorkRecordView(s); v {
	case ViewAdd, ViewEdit, ViewStats, ViewTodo:
		return v
	default:
		return ViewAdd
	}
}

// AdminView 系统管理页面视图
type AdminView string

const (
	AdminViewUsers  AdminView = "users"
	AdminViewDuty   AdminView = "duty"
	AdminViewBackup AdminView = "backup"
)

// ParseAdminView 解析管理视图参数，未知值回退为 users
func ParseAdminView(s string) AdminView {
	switch v := AdminView(s); v {
	case AdminViewUsers, AdminViewDuty, AdminViewBackup:
		return v
	default:
		return AdminViewUsers
	}
}

// ViewRequest 视图查询参数
type ViewRequest struct {
	View string `form:"view"`
	PaginationRequest
}

// DashboardResponse 主页面数据
// Pending 供常驻侧边栏使用；Reminders 为登录后需阻断提醒的逾期工作
type DashboardResponse struct {
	Username  string               `json:"username"`
	View      WorkRecordView       `json:"view"`
	Duty      *DutyResponse        `json:"duty"`
	Pending   []WorkRecordResponse `json:"pending"`
	Reminders []WorkRecordResponse `json:"reminders"`
	Data      interface{}          `json:"data,omitempty"`
}

// AdminResponse 系统管理页面数据
type AdminResponse struct {
	View AdminView   `json:"view"`
	Data interface{} `json:"data,omitempty"`
}

// AdminDutyData 值班管理视图数据
type AdminDutyData struct {
	Personnel []DutyPersonResponse `json:"personnel"`
	Today     *DutyResponse        `json:"today"`
}

// AdminBackupData 备份视图数据（实际下载走 /admin/backup）
type AdminBackupData struct {
	Tables      []string `json:"tables"`
	DownloadURL string   `json:"download_url"`
}
