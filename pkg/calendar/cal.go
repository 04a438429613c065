package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"TidyElephant/pkg/logger"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const calAPIVersion = "2024-06-11"

// CalClient 基于 Cal.com v2 API 的排期客户端
type CalClient struct {
	baseURL   string
	clientID  string
	secretKey string
	http      *retryablehttp.Client
}

func NewCalClient(baseURL, clientID, secretKey string) *CalClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 4 * time.Second
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = nil

	return &CalClient{
		baseURL:   baseURL,
		clientID:  clientID,
		secretKey: secretKey,
		http:      rc,
	}
}

type managedUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	TimeZone string `json:"timeZone"`
}

type managedUserResponse struct {
	Status string `json:"status"`
	Data   struct {
		User struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"data"`
}

type availabilityBlock struct {
	Days      []string `json:"days"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
}

type scheduleRequest struct {
	Name         string              `json:"name"`
	TimeZone     string              `json:"timeZone"`
	IsDefault    bool                `json:"isDefault"`
	Availability []availabilityBlock `json:"availability"`
}

type scheduleResponse struct {
	Status string `json:"status"`
	Data   struct {
		ID int64 `json:"id"`
	} `json:"data"`
}

// CreateManagedUser 创建托管账号。timeZone 必填，缺省会让排期服务
// 落一个空时区，之后的可用时段编辑全部失败。
func (c *CalClient) CreateManagedUser(ctx context.Context, email, name, timeZone string) (*ManagedUser, error) {
	if timeZone == "" {
		return nil, fmt.Errorf("timeZone is required for managed user creation")
	}

	endpoint := fmt.Sprintf("%s/v2/oauth-clients/%s/users", c.baseURL, c.clientID)
	payload := managedUserRequest{Email: email, Name: name, TimeZone: timeZone}

	var resp managedUserResponse
	if err := c.post(ctx, endpoint, "", payload, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "success" {
		return nil, fmt.Errorf("managed user creation returned status %q", resp.Status)
	}

	logger.Logger.Info("managed calendar user created",
		zap.Int64("managed_user_id", resp.Data.User.ID),
	)

	return &ManagedUser{
		ID:           resp.Data.User.ID,
		Email:        resp.Data.User.Email,
		AccessToken:  resp.Data.AccessToken,
		RefreshToken: resp.Data.RefreshToken,
	}, nil
}

// CreateSchedule 建默认周排期，slots 必须已过滤掉不可用的天
func (c *CalClient) CreateSchedule(ctx context.Context, accessToken, name, timeZone string, slots []DaySlot) (int64, error) {
	endpoint := fmt.Sprintf("%s/v2/schedules", c.baseURL)

	blocks := make([]availabilityBlock, 0, len(slots))
	for _, s := range slots {
		blocks = append(blocks, availabilityBlock{
			Days:      []string{s.Day},
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	payload := scheduleRequest{
		Name:         name,
		TimeZone:     timeZone,
		IsDefault:    true,
		Availability: blocks,
	}

	var resp scheduleResponse
	if err := c.post(ctx, endpoint, accessToken, payload, &resp); err != nil {
		return 0, err
	}
	if resp.Status != "success" {
		return 0, fmt.Errorf("schedule creation returned status %q", resp.Status)
	}

	return resp.Data.ID, nil
}

func (c *CalClient) post(ctx context.Context, endpoint, accessToken string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode cal request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build cal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("cal-api-version", calAPIVersion)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		req.Header.Set("x-cal-secret-key", c.secretKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cal request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read cal response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Logger.Error("cal API error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return fmt.Errorf("cal API error: status=%d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode cal response: %w", err)
	}
	return nil
}
