package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"TidyElephant/internal/model"
	"TidyElephant/internal/model/dto"
	"TidyElephant/internal/queue"
	"TidyElephant/internal/repository"
	pkgerrors "TidyElephant/pkg/errors"
	"TidyElephant/pkg/logger"
	"TidyElephant/utils"
)

var weekdayNames = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

// CalendarService 排期开通：同步路径只做校验、落库、发消息
type CalendarService struct {
	users     *repository.UserRepo
	providers *repository.ProviderRepo
}

func NewCalendarService(users *repository.UserRepo, providers *repository.ProviderRepo) *CalendarService {
	return &CalendarService{
		users:     users,
		providers: providers,
	}
}

// RequestProvisioning 校验周可用时段后发布后台开通任务，立即返回
func (s *CalendarService) RequestProvisioning(ctx context.Context, publicID int64, req *dto.CreateScheduleRequest) (*dto.ScheduleStatusResponse, error) {
	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, pkgerrors.UserNotFound
	}
	profile, err := s.providers.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.ProfileNotFound
	}
	if !profile.FeePaid {
		return nil, pkgerrors.OnboardingFeeUnpaid
	}
	if profile.ProvisionStatus == model.ProvisionStatusPending {
		return nil, pkgerrors.ProvisioningInProgress
	}
	if profile.ProvisionStatus == model.ProvisionStatusComplete {
		return &dto.ScheduleStatusResponse{
			Status:     string(model.ProvisionStatusComplete),
			ScheduleID: profile.CalScheduleID,
		}, nil
	}

	if req.TimeZone == "" {
		return nil, pkgerrors.TimezoneRequired
	}
	weekly, err := validateWeekly(req.Weekly)
	if err != nil {
		return nil, err
	}

	hoursJSON, err := json.Marshal(weekly)
	if err != nil {
		return nil, fmt.Errorf("failed to encode weekly hours: %w", err)
	}

	email := user.Email
	if email == "" {
		// 没留邮箱的用手机密文反解出来的号码造一个占位地址
		phone, derr := utils.DecryptSecret(user.PhoneCipher)
		if derr == nil {
			email = fmt.Sprintf("provider-%s@bookings.tidyelephant.com", utils.Digits(phone))
		}
	}

	// 时区和邮箱随时段一起快照到档案上，补偿扫描重建消息只认这份快照
	if err := s.providers.UpdateFields(ctx, user.ID, map[string]interface{}{
		"weekly_hours_json": string(hoursJSON),
		"cal_time_zone":     req.TimeZone,
		"cal_email":         email,
		"provision_status":  model.ProvisionStatusPending,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist provisioning request: %w", err)
	}

	msg := model.CalendarProvisionMessage{
		UserID:   user.ID,
		Email:    email,
		Name:     profile.DisplayName,
		TimeZone: req.TimeZone,
		Weekly:   weekly,
	}

	if err := queue.PublishCalendarProvision(msg); err != nil {
		// 发布失败回滚状态，让用户能重试
		s.providers.UpdateProvisionStatus(ctx, user.ID, model.ProvisionStatusNone)
		return nil, pkgerrors.CalendarUnavailable
	}

	logger.Logger.Info("calendar provisioning requested",
		zap.Int64("user_id", user.ID),
		zap.String("time_zone", req.TimeZone),
	)

	return &dto.ScheduleStatusResponse{
		Status: string(model.ProvisionStatusPending),
	}, nil
}

// ProvisionStatus 查询开通进度
func (s *CalendarService) ProvisionStatus(ctx context.Context, publicID int64) (*dto.ScheduleStatusResponse, error) {
	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, pkgerrors.UserNotFound
	}
	profile, err := s.providers.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.ProfileNotFound
	}

	resp := &dto.ScheduleStatusResponse{
		Status: string(profile.ProvisionStatus),
	}
	if profile.ProvisionStatus == model.ProvisionStatusComplete {
		resp.ScheduleID = profile.CalScheduleID
	}
	return resp, nil
}

// validateWeekly 至少一天可用，可用的天必须给出合法区间
func validateWeekly(weekly []dto.WeekdaySelection) ([]model.DayAvailability, error) {
	available := 0
	out := make([]model.DayAvailability, 0, len(weekly))
	for _, day := range weekly {
		if !weekdayNames[day.Day] {
			return nil, pkgerrors.InvalidAvailability
		}
		if day.Available {
			if day.StartTime == "" || day.EndTime == "" || day.StartTime >= day.EndTime {
				return nil, pkgerrors.InvalidAvailability
			}
			available++
		}
		out = append(out, model.DayAvailability{
			Day:       day.Day,
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
			Available: day.Available,
		})
	}
	if available == 0 {
		return nil, pkgerrors.InvalidAvailability
	}
	return out, nil
}
