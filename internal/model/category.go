package model

import "github.com/google/uuid"

// Category 服务类目，uuid 主键对外即为类目 ID
type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"type:varchar(128);not null;uniqueIndex" json:"name"`
	Slug string    `gorm:"type:varchar(128);not null;uniqueIndex" json:"slug"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
