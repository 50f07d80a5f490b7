package bootstrap

import (
	"fmt"
	"io"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	analysisservice "reflexum/internal/modules/analysis/service"
	analysisusecase "reflexum/internal/modules/analysis/usecase"
	noteinadapter "reflexum/internal/modules/note/adapter/in"
	noteoutadapter "reflexum/internal/modules/note/adapter/out"
	noteservice "reflexum/internal/modules/note/service"
	noteusecase "reflexum/internal/modules/note/usecase"
	reportinadapter "reflexum/internal/modules/report/adapter/in"
	reportoutadapter "reflexum/internal/modules/report/adapter/out"
	reportusecase "reflexum/internal/modules/report/usecase"
	scheduleinadapter "reflexum/internal/modules/schedule/adapter/in"
	schedulein "reflexum/internal/modules/schedule/port/in"
	scheduleusecase "reflexum/internal/modules/schedule/usecase"
	sessioninadapter "reflexum/internal/modules/session/adapter/in"
	sessionoutadapter "reflexum/internal/modules/session/adapter/out"
	sessionservice "reflexum/internal/modules/session/service"
	sessionusecase "reflexum/internal/modules/session/usecase"
	settingsinadapter "reflexum/internal/modules/settings/adapter/in"
	settingsoutadapter "reflexum/internal/modules/settings/adapter/out"
	settingsin "reflexum/internal/modules/settings/port/in"
	settingsusecase "reflexum/internal/modules/settings/usecase"
	"reflexum/internal/platform/clock"
	"reflexum/internal/platform/config"
	"reflexum/internal/platform/id"
	"reflexum/internal/platform/logging"
	"reflexum/internal/platform/metrics"
	uiapp "reflexum/internal/ui/app"
)

type App struct {
	NoteCLI     noteinadapter.CLIHandler
	ReportCLI   reportinadapter.CLIHandler
	SessionCLI  sessioninadapter.CLIHandler
	SettingsCLI settingsinadapter.CLIHandler
	ScheduleCLI scheduleinadapter.CLIHandler
	Logger      *logrus.Logger
	Metrics     *metrics.Recorder

	schedule schedulein.Usecase
	settings settingsin.Usecase
	closers  []io.Closer
}

func New(cfg config.Config, logOut io.Writer) (*App, error) {
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, logOut)
	if err != nil {
		return nil, err
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}
	recorder := metrics.New()

	settingsStore := settingsoutadapter.NewFileSettingsStore(cfg.SettingsPath, logger)
	settingsUC := settingsusecase.NewInteractor(settingsStore, settingsStore, settingsusecase.Secrets{
		BotToken:   cfg.Secrets.TelegramBotToken,
		ChatID:     cfg.Secrets.TelegramChatID,
		LLMAPIKey:  cfg.Secrets.LLMAPIKey,
		LLMBaseURL: cfg.Secrets.LLMBaseURL,
		LLMModel:   cfg.Secrets.LLMModel,
	})

	noteUC := noteusecase.NewInteractor(
		noteservice.NewNoteService(noteoutadapter.NewVaultNoteStore(cfg.VaultPath), logger),
		clk,
	)
	analysisUC := analysisusecase.NewInteractor(analysisservice.NewAggregationService())

	journal, err := reportoutadapter.NewSQLiteJournal(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open report journal: %w", err)
	}
	reportUC := reportusecase.NewInteractor(reportusecase.Dependencies{
		Settings:   settingsUC,
		Notes:      noteUC,
		Analysis:   analysisUC,
		Store:      reportoutadapter.NewVaultReportStore(cfg.VaultPath),
		Messengers: reportoutadapter.NewTelegramFactory(cfg.Secrets.TelegramAPIBase, &http.Client{Timeout: 30 * time.Second}),
		Insights:   reportoutadapter.NewOpenAIFactory(),
		Journal:    journal,
		Clock:      clk,
		IDs:        ids,
		Logger:     logger,
		Metrics:    recorder,
	})

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, sessionoutadapter.NewVaultSessionStore(cfg.VaultPath)),
		sessionoutadapter.NewFileActiveSessionStore(cfg.ActivePath),
	)
	scheduleUC := scheduleusecase.NewAutoReport(settingsUC, reportUC, clk, logger, recorder)

	return &App{
		NoteCLI:     noteinadapter.NewCLIHandler(noteUC),
		ReportCLI:   reportinadapter.NewCLIHandler(reportUC),
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		SettingsCLI: settingsinadapter.NewCLIHandler(settingsUC),
		ScheduleCLI: scheduleinadapter.NewCLIHandler(scheduleUC),
		Logger:      logger,
		Metrics:     recorder,
		schedule:    scheduleUC,
		settings:    settingsUC,
		closers:     []io.Closer{journal},
	}, nil
}

// Daemon builds the long-running scheduler; metricsAddr may be empty.
func (a *App) Daemon(metricsAddr string) *scheduleinadapter.Daemon {
	return scheduleinadapter.NewDaemon(a.schedule, a.settings, a.Logger, scheduleinadapter.DaemonConfig{
		MetricsAddr:    metricsAddr,
		MetricsHandler: a.Metrics.Handler(),
	})
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.ReportCLI, app.SessionCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
