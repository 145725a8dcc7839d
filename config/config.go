package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host     string   `envconfig:"HOST" mapstructure:"host"`
	Port     string   `envconfig:"PORT" mapstructure:"port"`
	Prefix   string   `envconfig:"PREFIX" mapstructure:"prefix"`
	Mode     Mode     `envconfig:"MODE" mapstructure:"mode"`
	Debug    bool     `envconfig:"DEBUG" mapstructure:"debug"` // 强制 debug 模式
	Database Database `mapstructure:"database"`
	Backup   Backup   `mapstructure:"backup"`
	Redis    Redis    `mapstructure:"redis"`
	JWT      JWT      `mapstructure:"jwt"`
	Log      Log      `mapstructure:"log"`
	S3       S3       `mapstructure:"s3"`
	Sentry   Sentry   `mapstructure:"sentry"`
	OTel     OTel     `mapstructure:"otel"`
}

// Database URL 形如 sqlite:///./activities.db, postgres://..., mysql://...
type Database struct {
	URL             string `envconfig:"URL" mapstructure:"url"`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" mapstructure:"max_open_conns"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME" mapstructure:"conn_max_lifetime"` // seconds
	BusyTimeout     int    `envconfig:"BUSY_TIMEOUT" mapstructure:"busy_timeout"`           // ms, sqlite only
}

type Backup struct {
	Dir     string `envconfig:"DIR" mapstructure:"dir"`
	Webhook string `envconfig:"WEBHOOK" mapstructure:"webhook"` // 备份完成后通知的地址，可选
}

type S3 struct {
	Endpoint        string `envconfig:"ENDPOINT" mapstructure:"endpoint"`
	Bucket          string `envconfig:"BUCKET" mapstructure:"bucket"`
	Region          string `envconfig:"REGION" mapstructure:"region"`
	AccessKey       string `envconfig:"ACCESS_KEY" mapstructure:"access_key"`
	SecretAccessKey string `envconfig:"SECRET_KEY" mapstructure:"secret_key"`
	Prefix          string `envconfig:"PREFIX" mapstructure:"prefix"`
	UsePathStyle    bool   `envconfig:"PATH_STYLE" mapstructure:"path_style"`
}

type Redis struct {
	Host     string `envconfig:"HOST" mapstructure:"host"`
	Port     string `envconfig:"PORT" mapstructure:"port"`
	Password string `envconfig:"PASSWORD" mapstructure:"password"`
	DB       int    `envconfig:"DB" mapstructure:"db"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET" mapstructure:"access_secret"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE" mapstructure:"access_expire"` // seconds
}

type Log struct {
	FilePath   string `envconfig:"FILE_PATH" mapstructure:"file_path"`     // 日志文件路径
	Level      string `envconfig:"LEVEL" mapstructure:"level"`             // 日志级别：debug, info, warn, error
	MaxSize    int    `envconfig:"MAX_SIZE" mapstructure:"max_size"`       // 日志文件最大大小（MB）
	MaxBackups int    `envconfig:"MAX_BACKUPS" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `envconfig:"MAX_AGE" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `envconfig:"COMPRESS" mapstructure:"compress"`
}

type Sentry struct {
	Dsn         string        `envconfig:"DSN" mapstructure:"dsn"`
	Environment string        `envconfig:"ENVIRONMENT" mapstructure:"environment"`
	SampleRate  float64       `envconfig:"SAMPLE_RATE" mapstructure:"sample_rate"`
	Tracing     SentryTracing `mapstructure:"tracing"`
}

type SentryTracing struct {
	DBSlowThresholdMs    int  `envconfig:"DB_SLOW_THRESHOLD_MS" mapstructure:"db_slow_threshold_ms"`
	RedisSlowThresholdMs int  `envconfig:"REDIS_SLOW_THRESHOLD_MS" mapstructure:"redis_slow_threshold_ms"`
	TraceHTTPCalls       bool `envconfig:"TRACE_HTTP_CALLS" mapstructure:"trace_http_calls"`
}

type OTel struct {
	Enable      bool   `envconfig:"ENABLE" mapstructure:"enable"`
	ServiceName string `envconfig:"SERVICE_NAME" mapstructure:"service_name"`
	AgentHost   string `envconfig:"AGENT_HOST" mapstructure:"agent_host"`
	AgentPort   string `envconfig:"AGENT_PORT" mapstructure:"agent_port"`
}
