package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort     string
	Environment string
	LogLevel    string

	MySQLHost     string
	MySQLPort     string
	MySQLDB       string
	MySQLUser     string
	MySQLPass     string
	DBAutoMigrate bool

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// links in manager emails are built from this
	PublicBaseURL string
	HRNotifyEmail string

	// empty SMTPHost switches delivery to the log sender
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	NotifyWorkers   int
	NotifyQueueSize int

	RenewalCron     string
	RenewalTimezone string
	RenewalLockTTL  time.Duration

	CORSAllowOrigins []string
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("MYSQL_HOST", "mysql")
	v.SetDefault("MYSQL_PORT", "3306")
	v.SetDefault("MYSQL_DB", "hr_portal")
	v.SetDefault("MYSQL_USER", "hr_portal")
	v.SetDefault("MYSQL_PASS", "hr_portal")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_ADDR", "redis:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_TTL_SECONDS", 300)

	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("HR_NOTIFY_EMAIL", "")

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASS", "")
	v.SetDefault("SMTP_FROM", "no-reply@localhost")

	v.SetDefault("NOTIFY_WORKERS", 2)
	v.SetDefault("NOTIFY_QUEUE_SIZE", 256)

	v.SetDefault("RENEWAL_CRON", "0 2 * * *")
	v.SetDefault("RENEWAL_TIMEZONE", "UTC")
	v.SetDefault("RENEWAL_LOCK_TTL", "10m")

	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
}

// Load reads .env (when present) and the process environment; env wins.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	return &Config{
		AppPort:     v.GetString("APP_PORT"),
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),

		MySQLHost:     v.GetString("MYSQL_HOST"),
		MySQLPort:     v.GetString("MYSQL_PORT"),
		MySQLDB:       v.GetString("MYSQL_DB"),
		MySQLUser:     v.GetString("MYSQL_USER"),
		MySQLPass:     v.GetString("MYSQL_PASS"),
		DBAutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),

		RedisAddr:    v.GetString("REDIS_ADDR"),
		RedisDB:      v.GetInt("REDIS_DB"),
		IdempTTLSecs: v.GetInt("IDEMPOTENCY_TTL_SECONDS"),

		PublicBaseURL: v.GetString("PUBLIC_BASE_URL"),
		HRNotifyEmail: v.GetString("HR_NOTIFY_EMAIL"),

		SMTPHost: v.GetString("SMTP_HOST"),
		SMTPPort: v.GetInt("SMTP_PORT"),
		SMTPUser: v.GetString("SMTP_USER"),
		SMTPPass: v.GetString("SMTP_PASS"),
		SMTPFrom: v.GetString("SMTP_FROM"),

		NotifyWorkers:   v.GetInt("NOTIFY_WORKERS"),
		NotifyQueueSize: v.GetInt("NOTIFY_QUEUE_SIZE"),

		RenewalCron:     v.GetString("RENEWAL_CRON"),
		RenewalTimezone: v.GetString("RENEWAL_TIMEZONE"),
		RenewalLockTTL:  v.GetDuration("RENEWAL_LOCK_TTL"),

		CORSAllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.NotifyWorkers < 1 || c.NotifyQueueSize < 1 {
		return errors.New("NOTIFY_WORKERS and NOTIFY_QUEUE_SIZE must be positive")
	}
	if _, err := cron.ParseStandard(c.RenewalCron); err != nil {
		return fmt.Errorf("invalid RENEWAL_CRON %q: %w", c.RenewalCron, err)
	}
	if _, err := time.LoadLocation(c.RenewalTimezone); err != nil {
		return fmt.Errorf("invalid RENEWAL_TIMEZONE %q: %w", c.RenewalTimezone, err)
	}
	if c.RenewalLockTTL <= 0 {
		return errors.New("RENEWAL_LOCK_TTL must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC keeps civil dates stable
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) IsProduction() bool {
	e := strings.ToLower(c.Environment)
	return e == "production" || e == "staging"
}
