package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"TidyElephant/pkg/logger"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const (
	lookupBaseURL = "https://lookups.twilio.com/v2"
	verifyBaseURL = "https://verify.twilio.com/v2"

	// Twilio 错误码
	codeMaxCheckAttempts = 60202
	codeMaxSendAttempts  = 60203
	codeNotFound         = 20404
)

// TwilioClient 基于 Twilio Lookup v2 + Verify v2 的验证客户端
type TwilioClient struct {
	accountSID string
	authToken  string
	serviceSID string
	http       *retryablehttp.Client
}

func NewTwilioClient(accountSID, authToken, serviceSID string) *TwilioClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil
	// 4xx 不重试，限流交给业务层处理
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, nil
		}
		return resp.StatusCode >= 500, nil
	}

	return &TwilioClient{
		accountSID: accountSID,
		authToken:  authToken,
		serviceSID: serviceSID,
		http:       rc,
	}
}

type twilioError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type lookupResponse struct {
	PhoneNumber          string `json:"phone_number"`
	LineTypeIntelligence *struct {
		Type string `json:"type"`
	} `json:"line_type_intelligence"`
}

type verificationResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// LookupLineType 调 Lookup v2 的 line_type_intelligence 包查询线路类型
func (c *TwilioClient) LookupLineType(ctx context.Context, phoneE164 string) (LineType, error) {
	endpoint := fmt.Sprintf("%s/PhoneNumbers/%s?Fields=line_type_intelligence",
		lookupBaseURL, url.PathEscape(phoneE164))

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return LineTypeUnknown, err
	}

	var resp lookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return LineTypeUnknown, fmt.Errorf("failed to decode lookup response: %w", err)
	}

	if resp.LineTypeIntelligence == nil || resp.LineTypeIntelligence.Type == "" {
		return LineTypeUnknown, nil
	}
	return LineType(resp.LineTypeIntelligence.Type), nil
}

// StartVerification 通过 Verify v2 下发短信验证码
func (c *TwilioClient) StartVerification(ctx context.Context, phoneE164 string) error {
	endpoint := fmt.Sprintf("%s/Services/%s/Verifications", verifyBaseURL, c.serviceSID)

	form := url.Values{}
	form.Set("To", phoneE164)
	form.Set("Channel", "sms")

	body, err := c.do(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}

	var resp verificationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to decode verification response: %w", err)
	}

	logger.Logger.Info("verification code sent",
		zap.String("status", resp.Status),
	)
	return nil
}

// CheckCode 校验验证码，status == approved 视为通过
func (c *TwilioClient) CheckCode(ctx context.Context, phoneE164, code string) (bool, error) {
	endpoint := fmt.Sprintf("%s/Services/%s/VerificationCheck", verifyBaseURL, c.serviceSID)

	form := url.Values{}
	form.Set("To", phoneE164)
	form.Set("Code", code)

	body, err := c.do(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}

	var resp verificationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("failed to decode verification check response: %w", err)
	}

	return resp.Status == "approved", nil
}

func (c *TwilioClient) do(ctx context.Context, method, endpoint string, payload io.Reader) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to build twilio request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read twilio response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	var terr twilioError
	if err := json.Unmarshal(body, &terr); err == nil {
		switch {
		case terr.Code == codeMaxSendAttempts || resp.StatusCode == http.StatusTooManyRequests:
			return nil, ErrThrottled
		case terr.Code == codeMaxCheckAttempts:
			return nil, ErrMaxCheckAttempts
		case terr.Code == codeNotFound:
			return nil, ErrSessionNotFound
		}
		logger.Logger.Error("twilio API error",
			zap.Int("status", resp.StatusCode),
			zap.Int("code", terr.Code),
			zap.String("message", terr.Message),
		)
		return nil, fmt.Errorf("twilio API error: code=%d %s", terr.Code, terr.Message)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrThrottled
	}
	return nil, fmt.Errorf("twilio API error: status=%d", resp.StatusCode)
}
