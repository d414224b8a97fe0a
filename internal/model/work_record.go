package model

import "time"

// WorkRecord 工作记录表 — 对应 work_records
type WorkRecord struct {
	WorkRecordID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"work_record_id"`
	Recorder     string    `gorm:"type:varchar(50);not null"                      json:"recorder"` // 自由文本，不要求在值班名单中
	WorkType     string    `gorm:"type:varchar(50);not null"                      json:"work_type"`
	WorkContent  string    `gorm:"type:text;not null"                             json:"work_content"`
	StartDate    time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null"                             json:"end_date"` // >= StartDate，由 Service 层写入前校验
	IsCompleted  bool      `gorm:"not null;default:false"                         json:"is_completed"`
	BaseModel
}

// TableName 指定表名
func (WorkRecord) TableName() string { return "work_records" }
