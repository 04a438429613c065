package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8788"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"tidyelephant"`

	// PostgreSQL 配置
	PostgreSQLHost        string `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort        string `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser        string `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword    string `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase    string `env:"POSTGRESQL_DATABASE" envDefault:"tidyelephant"`
	PostgreSQLSchema      string `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode     string `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLReplicaHost string `env:"POSTGRESQL_REPLICA_HOST"` // 可选的只读副本，空则不启用 dbresolver
	PostgreSQLMaxIdle     int    `env:"POSTGRESQL_MAX_IDLE" envDefault:"30"`
	PostgreSQLMaxOpen     int    `env:"POSTGRESQL_MAX_OPEN" envDefault:"200"`

	// Redis 配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"tidy"`

	// RabbitMQ 配置
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// JWT 配置
	JWTSecret        string `env:"JWT_SECRET"` // 必填，用于签名 JWT
	JWTExpireMinutes int    `env:"JWT_EXPIRE_MINUTES" envDefault:"30"`
	JWTRefreshDays   int    `env:"JWT_REFRESH_DAYS" envDefault:"7"`

	// Twilio 短信验证配置（Verify + Lookup）
	TwilioAccountSID       string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken        string `env:"TWILIO_AUTH_TOKEN"`
	TwilioVerifyServiceSID string `env:"TWILIO_VERIFY_SERVICE_SID"`
	VerifyProvider         string `env:"VERIFY_PROVIDER" envDefault:"twilio"` // twilio, mock

	// Stripe Connect 配置
	StripeSecretKey        string `env:"STRIPE_SECRET_KEY"`
	StripeOnboardingReturn string `env:"STRIPE_ONBOARDING_RETURN_URL" envDefault:"https://app.tidyelephant.com/onboarding/payments/return"`
	StripeOnboardingRetry  string `env:"STRIPE_ONBOARDING_REFRESH_URL" envDefault:"https://app.tidyelephant.com/onboarding/payments/refresh"`
	OnboardingFeeCents     int64  `env:"ONBOARDING_FEE_CENTS" envDefault:"2500"`

	// Cal.com 日历配置
	CalOAuthClientID  string `env:"CAL_OAUTH_CLIENT_ID"`
	CalOAuthSecretKey string `env:"CAL_OAUTH_SECRET_KEY"`
	CalAPIBaseURL     string `env:"CAL_API_BASE_URL" envDefault:"https://api.cal.com/v2"`

	// 加密配置
	EncryptionKey string `env:"ENCRYPTION_KEY"` // 用于加密手机号等敏感数据，32字节 AES-256
	PhoneHashSalt string `env:"PHONEHASH_SALT"`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// OpenTelemetry 配置
	OTLPEndpoint string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTelSampler  float64 `env:"OTEL_SAMPLER" envDefault:"0.1"`

	// 速率限制配置，窗口和各端点档位在中间件内
	RateLimitEnabled    bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitGeneralMax int  `env:"RATE_LIMIT_GENERAL_MAX" envDefault:"100"` // 通用档位窗口内最大请求数

	// 验证码配置
	VerifyCodeTTLSeconds   int `env:"VERIFY_CODE_TTL_SECONDS" envDefault:"600"` // Twilio 默认 10 分钟
	VerifyMaxSendAttempts  int `env:"VERIFY_MAX_SEND_ATTEMPTS" envDefault:"4"`
	VerifyResendBaseDelay  int `env:"VERIFY_RESEND_BASE_DELAY" envDefault:"60"`  // 秒
	VerifyResendDelayStep  int `env:"VERIFY_RESEND_DELAY_STEP" envDefault:"30"`  // 每次重发递增
	VerifyResendMaxDelay   int `env:"VERIFY_RESEND_MAX_DELAY" envDefault:"300"`  // 上限
	VerifySessionTTLHours  int `env:"VERIFY_SESSION_TTL_HOURS" envDefault:"24"`  // 会话内状态/负缓存保留时长
	ProviderMaxCategories  int `env:"PROVIDER_MAX_CATEGORIES" envDefault:"11"`   // 单个服务商可选类目上限
	ProvisionRetryMinutes  int `env:"PROVISION_RETRY_MINUTES" envDefault:"10"`   // 日历开通补偿扫描间隔
	ProvisionStuckMinutes  int `env:"PROVISION_STUCK_MINUTES" envDefault:"30"`   // 超过该时长的 pending 视为卡死
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}
}

// MustValidate 各个二进制的 main 在启动时调用，配置缺失直接退出而不是等到请求时报错
func MustValidate() {
	if Cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	if Cfg.EncryptionKey == "" {
		log.Fatal("ENCRYPTION_KEY is required (32 bytes for AES-256)")
	}

	if len(Cfg.EncryptionKey) != 32 {
		log.Fatal("ENCRYPTION_KEY must be exactly 32 bytes for AES-256")
	}

	// 各 vendor key 缺失只告警不退出，server / worker 按需依赖不同的 vendor
	if Cfg.TwilioAccountSID == "" || Cfg.TwilioAuthToken == "" {
		log.Printf("WARN: TWILIO_ACCOUNT_SID / TWILIO_AUTH_TOKEN not set, phone verification will not work")
	}
	if Cfg.TwilioVerifyServiceSID == "" {
		log.Printf("WARN: TWILIO_VERIFY_SERVICE_SID not set, phone verification will not work")
	}
	if Cfg.StripeSecretKey == "" {
		log.Printf("WARN: STRIPE_SECRET_KEY not set, Connect account provisioning will not work")
	}
	if Cfg.CalOAuthClientID == "" || Cfg.CalOAuthSecretKey == "" {
		log.Printf("WARN: CAL_OAUTH_CLIENT_ID / CAL_OAUTH_SECRET_KEY not set, calendar provisioning will not work")
	}
}

func (c *Config) GetDSN() string {
	return "host=" + c.PostgreSQLHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

// GetReplicaDSN 只读副本 DSN，未配置副本时返回空串
func (c *Config) GetReplicaDSN() string {
	if c.PostgreSQLReplicaHost == "" {
		return ""
	}
	return "host=" + c.PostgreSQLReplicaHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
