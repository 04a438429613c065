package model

// Address 用户地址
type Address struct {
	BaseModel
	UserID int64  `gorm:"not null;index" json:"user_id"`
	Line1  string `gorm:"type:varchar(255);not null" json:"line1"`
	Line2  string `gorm:"type:varchar(255)" json:"line2"`
	City   string `gorm:"type:varchar(128);not null" json:"city"`
	State  string `gorm:"type:varchar(2);not null" json:"state"`
	Zip    string `gorm:"type:varchar(10);not null" json:"zip"`
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
