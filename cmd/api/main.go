package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "hr-portal-backend/internal/adapter/http"
	idemp "hr-portal-backend/internal/adapter/middleware"
	"hr-portal-backend/internal/adapter/repository/mysql"
	"hr-portal-backend/internal/config"
	"hr-portal-backend/internal/infrastructure/cache"
	"hr-portal-backend/internal/infrastructure/db"
	"hr-portal-backend/internal/infrastructure/logger"
	"hr-portal-backend/internal/infrastructure/notify"
	"hr-portal-backend/internal/infrastructure/scheduler"
	"hr-portal-backend/internal/usecase/ledger"
	"hr-portal-backend/internal/usecase/renewal"
	"hr-portal-backend/internal/usecase/vacation"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg)
	log := logger.Log

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), db.LogLevel(cfg.LogLevel))
	if err != nil {
		log.WithError(err).Fatal("open mysql")
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.WithError(err).Fatal("migrate")
		}
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.WithError(err).Fatal("sql handle")
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("open redis")
	}
	defer rdb.Close()

	// persistence
	tx := mysql.NewGormUoW(gdb)
	emps := mysql.NewEmployeeRepository(gdb)
	reqs := mysql.NewVacationRequestRepository(gdb)

	// notifications
	var sender notify.Sender = notify.NewLogSender(log)
	if cfg.SMTPHost != "" {
		sender = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	}
	dispatcher := notify.NewAsyncDispatcher(sender, cfg.NotifyWorkers, cfg.NotifyQueueSize, log)

	// usecases
	led := ledger.New(tx, log)
	vac := vacation.NewUsecase(emps, reqs, tx, led, dispatcher, vacation.Options{
		HREmail:       cfg.HRNotifyEmail,
		PublicBaseURL: cfg.PublicBaseURL,
	}, log)
	ren := renewal.NewUsecase(emps, tx, led, log)

	loc, _ := time.LoadLocation(cfg.RenewalTimezone) // checked by Validate
	sched, err := scheduler.New(ren, cache.NewLocker(rdb), cfg.RenewalCron, loc, cfg.RenewalLockTTL, log)
	if err != nil {
		log.WithError(err).Fatal("renewal scheduler")
	}
	sched.Start()

	e := newServer(cfg, log)
	httpadp.Register(e, httpadp.Handlers{
		Health:   httpadp.NewHandler(sqlDB),
		Vacation: httpadp.NewVacationHandler(vac, log),
		Balance:  httpadp.NewBalanceHandler(led, log),
		Renewal:  httpadp.NewRenewalHandler(sched, log),
	}, idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log))

	go func() {
		addr := ":" + cfg.AppPort
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("scheduler stop")
	}
	// drain queued notifications last, handlers may still have enqueued some
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.WithError(err).Warn("notification drain")
	}
}

func newServer(cfg *config.Config, log *logrus.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"module":     "http",
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"request_id": v.RequestID,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			idemp.HeaderRequestID, idemp.HeaderRequestAt, idemp.HeaderActorID,
		},
	}))
	return e
}
