package model

// DutyPerson 值班人员表 — 对应 duty_personnel
// 轮换顺序 = 插入顺序（created_at, duty_person_id），改名不改变位置
type DutyPerson struct {
	DutyPersonID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"duty_person_id"`
	Name         string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"name"`
	BaseModel
}

// TableName 指定表名
func (DutyPerson) TableName() string { return "duty_personnel" }
