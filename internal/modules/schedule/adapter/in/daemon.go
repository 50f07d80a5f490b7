package in

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"

	schedulein "reflexum/internal/modules/schedule/port/in"
	settingsin "reflexum/internal/modules/settings/port/in"
)

type DaemonConfig struct {
	AutoReportEvery time.Duration
	ReminderEvery   time.Duration
	MetricsAddr     string
	MetricsHandler  http.Handler
}

// Daemon drives the auto-report policy from gocron jobs and re-evaluates it
// whenever the settings file changes.
type Daemon struct {
	schedule schedulein.Usecase
	settings settingsin.Usecase
	logger   logrus.FieldLogger
	cfg      DaemonConfig
}

func NewDaemon(schedule schedulein.Usecase, settings settingsin.Usecase, logger logrus.FieldLogger, cfg DaemonConfig) *Daemon {
	if cfg.AutoReportEvery <= 0 {
		cfg.AutoReportEvery = time.Hour
	}
	if cfg.ReminderEvery <= 0 {
		cfg.ReminderEvery = 6 * time.Hour
	}
	return &Daemon{schedule: schedule, settings: settings, logger: logger, cfg: cfg}
}

// Run blocks until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	if _, err := scheduler.NewJob(
		gocron.DurationJob(d.cfg.AutoReportEvery),
		gocron.NewTask(func() { d.tick(ctx, "timer") }),
		gocron.WithName("auto-report"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	); err != nil {
		return fmt.Errorf("register auto report job: %w", err)
	}
	if _, err := scheduler.NewJob(
		gocron.DurationJob(d.cfg.ReminderEvery),
		gocron.NewTask(func() { d.remind(ctx) }),
		gocron.WithName("deadline-reminders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return fmt.Errorf("register reminder job: %w", err)
	}

	changes, err := d.settings.Watch(ctx)
	if err != nil {
		d.logger.WithError(err).Warn("settings changes will not be picked up until restart")
		changes = nil
	}

	var server *http.Server
	if d.cfg.MetricsAddr != "" && d.cfg.MetricsHandler != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", d.cfg.MetricsHandler)
		server = &http.Server{Addr: d.cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				d.logger.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	scheduler.Start()
	d.logger.WithFields(logrus.Fields{
		"auto_report_every": d.cfg.AutoReportEvery.String(),
		"reminder_every":    d.cfg.ReminderEvery.String(),
		"metrics_addr":      d.cfg.MetricsAddr,
	}).Info("daemon started")

	for {
		select {
		case <-ctx.Done():
			if server != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				_ = server.Shutdown(shutdownCtx)
				cancel()
			}
			if err := scheduler.Shutdown(); err != nil {
				return fmt.Errorf("stop scheduler: %w", err)
			}
			d.logger.Info("daemon stopped")
			return nil
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			d.tick(ctx, "settings")
		}
	}
}

func (d *Daemon) tick(ctx context.Context, source string) {
	out, err := d.schedule.Tick(ctx)
	log := d.logger.WithField("source", source)
	if err != nil {
		log.WithError(err).Error("auto report tick failed")
		return
	}
	if out.Fired {
		log.WithFields(logrus.Fields{"period": out.PeriodLabel, "report": out.ReportPath}).Info("auto report delivered")
	}
}

func (d *Daemon) remind(ctx context.Context) {
	out, err := d.schedule.Remind(ctx)
	if err != nil {
		d.logger.WithError(err).Error("deadline reminder failed")
		return
	}
	if out.Sent {
		d.logger.WithField("due", out.Due).Info("deadline reminder sent")
	}
}
