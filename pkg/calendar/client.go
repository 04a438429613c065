package calendar

import (
	"context"
	"fmt"
	"sync"

	"TidyElephant/config"
	"TidyElephant/pkg/logger"
)

// ManagedUser 在外部排期服务侧为服务商建出的账号
type ManagedUser struct {
	ID           int64
	Email        string
	AccessToken  string
	RefreshToken string
}

// DaySlot 一周内某天的可用区间，已过滤掉不可用的天
type DaySlot struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Client 排期服务客户端接口
type Client interface {
	// CreateManagedUser 创建托管账号，timeZone 必填：
	// 排期服务要求非空默认时区，否则后续无法编辑可用时段
	CreateManagedUser(ctx context.Context, email, name, timeZone string) (*ManagedUser, error)

	// CreateSchedule 用托管账号的 access token 建周排期，返回排期 ID
	CreateSchedule(ctx context.Context, accessToken, name, timeZone string, slots []DaySlot) (int64, error)
}

var (
	calClient Client
	calOnce   sync.Once
	calErr    error
)

// Init 初始化排期客户端
func Init() error {
	calOnce.Do(func() {
		cfg := config.Cfg

		if cfg.CalOAuthClientID == "" || cfg.CalOAuthSecretKey == "" {
			calErr = fmt.Errorf("cal client credentials are not configured")
			return
		}

		calClient = NewCalClient(cfg.CalAPIBaseURL, cfg.CalOAuthClientID, cfg.CalOAuthSecretKey)

		logger.Logger.Info("calendar client initialized")
	})

	return calErr
}

func GetClient() Client {
	if calClient == nil {
		panic("calendar client not initialized, call calendar.Init() first")
	}
	return calClient
}

// SetClient 测试用注入点
func SetClient(c Client) {
	calClient = c
}
