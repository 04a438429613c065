package model

// DayAvailability 一周内某一天的可用区间
type DayAvailability struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// CalendarProvisionMessage 日历开通任务，MessageID 用于消费端幂等
type CalendarProvisionMessage struct {
	MessageID string            `json:"message_id"`
	UserID    int64             `json:"user_id"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	TimeZone  string            `json:"time_zone"`
	Weekly    []DayAvailability `json:"weekly"`
}
