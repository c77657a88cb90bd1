package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	c := Load()
	if c.AppPort != "8080" || c.MySQLPort != "3306" || c.IdempTTLSecs != 300 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.RenewalCron != "0 2 * * *" || c.RenewalLockTTL != 10*time.Minute {
		t.Fatalf("renewal defaults: %q %v", c.RenewalCron, c.RenewalLockTTL)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("RENEWAL_LOCK_TTL", "90s")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("ENVIRONMENT", "Production")

	c := Load()
	if c.AppPort != "9090" || c.RedisDB != 3 || c.IdempTTLSecs != 60 {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.DBAutoMigrate {
		t.Fatalf("DB_AUTO_MIGRATE=false ignored")
	}
	if c.RenewalLockTTL != 90*time.Second {
		t.Fatalf("lock ttl = %v", c.RenewalLockTTL)
	}
	if len(c.CORSAllowOrigins) != 2 || c.CORSAllowOrigins[1] != "https://b.example.com" {
		t.Fatalf("origins = %v", c.CORSAllowOrigins)
	}
	if !c.IsProduction() {
		t.Fatalf("environment should be production")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config { return Load() }

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing host", func(c *Config) { c.MySQLHost = "" }, "missing MySQL"},
		{"bad port", func(c *Config) { c.MySQLPort = "not-a-port" }, "MYSQL_PORT"},
		{"missing app port", func(c *Config) { c.AppPort = "" }, "APP_PORT"},
		{"workers", func(c *Config) { c.NotifyWorkers = 0 }, "NOTIFY_WORKERS"},
		{"cron", func(c *Config) { c.RenewalCron = "every day" }, "RENEWAL_CRON"},
		{"timezone", func(c *Config) { c.RenewalTimezone = "Mars/Olympus" }, "RENEWAL_TIMEZONE"},
		{"lock ttl", func(c *Config) { c.RenewalLockTTL = 0 }, "RENEWAL_LOCK_TTL"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "db", MySQLPort: "3306", MySQLDB: "hr"}
	want := "u:p@tcp(db:3306)/hr?parseTime=true&loc=UTC&charset=utf8mb4,utf8"
	if got := c.MySQLDSN(); got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}
