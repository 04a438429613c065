package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics 业务指标集合
type OTelMetrics struct {
	// 手机验证
	VerificationSendTotal  metric.Int64Counter
	VerificationCheckTotal metric.Int64Counter
	VerificationDuration   metric.Float64Histogram

	// 日历开通
	ProvisionTotal    metric.Int64Counter
	ProvisionDuration metric.Float64Histogram

	// 支付
	OnboardingFeeTotal metric.Int64Counter
}

var (
	metrics *OTelMetrics

	meter = otel.Meter("tidyelephant")
)

// InitMetrics 初始化业务指标
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	metrics.VerificationSendTotal, err = meter.Int64Counter(
		"verification_send_total",
		metric.WithDescription("Total number of verification code sends"),
		metric.WithUnit("{send}"),
	)
	if err != nil {
		return err
	}

	metrics.VerificationCheckTotal, err = meter.Int64Counter(
		"verification_check_total",
		metric.WithDescription("Total number of verification code checks"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return err
	}

	metrics.VerificationDuration, err = meter.Float64Histogram(
		"verification_vendor_duration_seconds",
		metric.WithDescription("Time spent on verification vendor calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.ProvisionTotal, err = meter.Int64Counter(
		"calendar_provision_total",
		metric.WithDescription("Total number of calendar provisioning jobs"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return err
	}

	metrics.ProvisionDuration, err = meter.Float64Histogram(
		"calendar_provision_duration_seconds",
		metric.WithDescription("Time spent provisioning calendar accounts"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.OnboardingFeeTotal, err = meter.Int64Counter(
		"onboarding_fee_total",
		metric.WithDescription("Total number of onboarding fee charges"),
		metric.WithUnit("{charge}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// GetMetrics 获取全局指标实例
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordVerificationSend 记录一次验证码发送
func (m *OTelMetrics) RecordVerificationSend(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.VerificationSendTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)),
	)
}

// RecordVerificationCheck 记录一次验证码校验
func (m *OTelMetrics) RecordVerificationCheck(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.VerificationCheckTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)),
	)
}

// RecordProvision 记录一次日历开通结果
func (m *OTelMetrics) RecordProvision(ctx context.Context, outcome string, seconds float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.ProvisionTotal.Add(ctx, 1, attrs)
	m.ProvisionDuration.Record(ctx, seconds, attrs)
}

// RecordOnboardingFee 记录一次入驻费收取
func (m *OTelMetrics) RecordOnboardingFee(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.OnboardingFeeTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)),
	)
}
