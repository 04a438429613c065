package dto

// ========== 日历排期相关 DTO ==========

// WeekdaySelection 一周内某天的可用性选择
type WeekdaySelection struct {
	Day       string `json:"day" binding:"required"`
	Available bool   `json:"available"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// CreateScheduleRequest 提交周可用时段，触发后台开通任务
type CreateScheduleRequest struct {
	TimeZone string             `json:"time_zone" binding:"required"`
	Weekly   []WeekdaySelection `json:"weekly" binding:"required"`
}

// ScheduleStatusResponse 开通进度
type ScheduleStatusResponse struct {
	// Status 取值 none / pending / complete / failed
	Status     string `json:"status"`
	ScheduleID int64  `json:"schedule_id,omitempty"`
}
