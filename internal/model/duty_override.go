package model

import "time"

// DutyOverride 指定日期的值班覆盖 — 对应 daily_duty_overrides
// 每天至多一条；PersonName 不校验是否仍在值班名单中
type DutyOverride struct {
	DutyDate   time.Time `gorm:"type:date;primaryKey"       json:"duty_date"`
	PersonName string    `gorm:"type:varchar(50);not null"  json:"person_name"`
	BaseModel
}

// TableName 指定表名
func (DutyOverride) TableName() string { return "daily_duty_overrides" }
