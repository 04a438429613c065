package model

// Review 预约完成后的评价，评分 1-5 由 check 约束兜底
type Review struct {
	BaseModel
	BookingID int64  `gorm:"uniqueIndex;not null" json:"booking_id"`
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string `gorm:"type:text" json:"comment"`
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
