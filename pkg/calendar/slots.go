package calendar

// WeekdayInput 用户提交的一天的可用性选择
type WeekdayInput struct {
	Day       string
	Available bool
	StartTime string
	EndTime   string
}

// BuildSlots 把七天的选择映射成排期服务的格式，不可用的天直接丢弃
func BuildSlots(weekly []WeekdayInput) []DaySlot {
	slots := make([]DaySlot, 0, len(weekly))
	for _, day := range weekly {
		if !day.Available {
			continue
		}
		slots = append(slots, DaySlot{
			Day:       day.Day,
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
		})
	}
	return slots
}
