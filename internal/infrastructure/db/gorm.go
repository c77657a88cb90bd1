package db

import (
	"time"

	"hr-portal-backend/internal/domain/employee"
	"hr-portal-backend/internal/domain/entitlement"
	"hr-portal-backend/internal/domain/vacation"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	return openGorm(mysql.Open(dsn), level)
}

// OpenGormWithDialector is OpenGorm for an already-built dialector (tests, sqlite).
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	return openGorm(dial, logger.Warn)
}

func openGorm(dial gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	// we ping explicitly below, once
	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(level),
		TranslateError:       true,
		DisableAutomaticPing: true,
		NowFunc:              func() time.Time { return time.Now().UTC() },
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	logrus.WithField("module", "db").Info("gorm: connected")
	return db, nil
}

// Migrate creates or updates the tables owned by this service, plus the
// employees table used by local setups where the HR directory is co-hosted.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&employee.Employee{}, &entitlement.Period{}, &vacation.Request{})
}

// LogLevel maps an application log level onto gorm's logger levels.
func LogLevel(appLevel string) logger.LogLevel {
	switch appLevel {
	case "debug", "trace":
		return logger.Info
	case "error", "fatal", "panic":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}
