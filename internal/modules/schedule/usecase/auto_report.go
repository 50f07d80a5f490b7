package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	reportdomain "reflexum/internal/modules/report/domain"
	reportdto "reflexum/internal/modules/report/dto"
	reportin "reflexum/internal/modules/report/port/in"
	"reflexum/internal/modules/schedule/domain"
	"reflexum/internal/modules/schedule/dto"
	schedulein "reflexum/internal/modules/schedule/port/in"
	settingsin "reflexum/internal/modules/settings/port/in"
	"reflexum/internal/platform/clock"
	apperrors "reflexum/internal/platform/errors"
	"reflexum/internal/platform/metrics"
)

// AutoReport evaluates the policy on every tick. The mutex keeps overlapping
// ticks (timer plus settings change) from sending twice.
type AutoReport struct {
	mu       sync.Mutex
	settings settingsin.Usecase
	reports  reportin.Usecase
	clock    clock.Clock
	logger   logrus.FieldLogger
	metrics  *metrics.Recorder
}

func NewAutoReport(settings settingsin.Usecase, reports reportin.Usecase, clk clock.Clock, logger logrus.FieldLogger, recorder *metrics.Recorder) schedulein.Usecase {
	return &AutoReport{settings: settings, reports: reports, clock: clk, logger: logger, metrics: recorder}
}

func (a *AutoReport) Tick(ctx context.Context) (dto.TickOutput, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	settings, err := a.settings.Load(ctx)
	if err != nil {
		a.metrics.Tick("error")
		return dto.TickOutput{}, fmt.Errorf("load settings: %w", err)
	}
	policy, err := domain.PolicyFromSettings(settings)
	if err != nil {
		a.metrics.Tick("misconfigured")
		a.logger.WithError(err).Warn("auto report not armed")
		return dto.TickOutput{Reason: err.Error()}, nil
	}
	now := a.clock.Now().In(policy.Location)
	fire, reason := policy.Decide(now)
	if !fire {
		a.metrics.Tick("skipped")
		a.logger.WithField("reason", reason).Debug("auto report skipped")
		return dto.TickOutput{Reason: reason}, nil
	}

	window := policy.Window(now)
	out := dto.TickOutput{Fired: true, Reason: reason, From: window.From, To: window.To}
	log := a.logger.WithFields(logrus.Fields{"frequency": policy.Frequency, "from": window.From, "to": window.To})

	report, err := a.reports.GenerateReport(ctx, reportdto.ReportInput{From: window.From, To: window.To})
	switch {
	case errors.Is(err, apperrors.ErrNoNotes):
		log.Info("no notes for auto report period")
	case err != nil:
		log.WithError(err).Warn("auto report file not written")
	default:
		out.ReportPath = report.Path
	}

	digest, err := a.reports.SendDigest(ctx, reportdto.DigestInput{From: window.From, To: window.To, Trigger: reportdomain.TriggerSchedule})
	if err != nil {
		a.metrics.Tick("failed")
		log.WithError(err).Error("auto report digest failed")
		return out, fmt.Errorf("send auto report: %w", err)
	}
	out.PeriodLabel = digest.PeriodLabel

	if err := a.settings.MarkAutoReportSent(ctx, now); err != nil {
		a.metrics.Tick("failed")
		return out, fmt.Errorf("record auto report: %w", err)
	}
	a.metrics.Tick("sent")
	a.metrics.AutoReportSent(float64(now.Unix()))
	log.WithField("period", digest.PeriodLabel).Info("auto report sent")
	return out, nil
}

func (a *AutoReport) Status(ctx context.Context) (dto.StatusOutput, error) {
	settings, err := a.settings.Load(ctx)
	if err != nil {
		return dto.StatusOutput{}, fmt.Errorf("load settings: %w", err)
	}
	out := dto.StatusOutput{
		Enabled:         settings.AutoReportEnabled,
		TelegramEnabled: settings.TelegramEnabled,
		Frequency:       settings.AutoReportFrequency,
		Time:            settings.AutoReportTime,
		Timezone:        settings.Timezone,
	}
	policy, err := domain.PolicyFromSettings(settings)
	if err != nil {
		out.Reason = err.Error()
		return out, nil
	}
	now := a.clock.Now().In(policy.Location)
	out.Timezone = policy.Location.String()
	out.LastSent = policy.LastSent
	out.WouldFire, out.Reason = policy.Decide(now)
	window := policy.Window(now)
	out.From, out.To = window.From, window.To
	return out, nil
}

// Remind sends the deadline reminder when Telegram is fully configured.
func (a *AutoReport) Remind(ctx context.Context) (dto.ReminderOutput, error) {
	settings, err := a.settings.Load(ctx)
	if err != nil {
		return dto.ReminderOutput{}, fmt.Errorf("load settings: %w", err)
	}
	if !settings.TelegramReady() {
		return dto.ReminderOutput{}, nil
	}
	out, err := a.reports.CheckDeadlines(ctx, reportdto.DeadlinesInput{Trigger: reportdomain.TriggerSchedule})
	if err != nil {
		return dto.ReminderOutput{Checked: true, Due: len(out.Items)}, err
	}
	return dto.ReminderOutput{Checked: true, Sent: out.Sent, Due: len(out.Items)}, nil
}
