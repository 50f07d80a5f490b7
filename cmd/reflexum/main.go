package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"reflexum/internal/bootstrap"
	"reflexum/internal/platform/config"
	apperrors "reflexum/internal/platform/errors"
	"reflexum/internal/platform/period"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var vaultPath string

	root := &cobra.Command{
		Use:           "reflexum",
		Short:         "Study analytics for an Obsidian vault",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&vaultPath, "vault", ".", "Obsidian vault path")

	root.AddCommand(newReportCmd(&vaultPath))
	root.AddCommand(newDigestCmd(&vaultPath))
	root.AddCommand(newDeadlinesCmd(&vaultPath))
	root.AddCommand(newNoteCmd(&vaultPath))
	root.AddCommand(newSessionCmd(&vaultPath))
	root.AddCommand(newSettingsCmd(&vaultPath))
	root.AddCommand(newHistoryCmd(&vaultPath))
	root.AddCommand(newLLMCmd(&vaultPath))
	root.AddCommand(newAutoCmd(&vaultPath))
	root.AddCommand(newDaemonCmd(&vaultPath))
	root.AddCommand(newTUICmd(&vaultPath))
	return root
}

func loadApp(vaultPath string) (*bootstrap.App, error) {
	cfg, err := config.New(vaultPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, os.Stderr)
}

// withApp opens the application for a single command and closes it afterwards.
func withApp(vaultPath string, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(vaultPath)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

// parseRange reads --from/--to as local calendar days. Both empty means the
// configured date preset.
func parseRange(from, to string) (time.Time, time.Time, error) {
	if from == "" && to == "" {
		return time.Time{}, time.Time{}, nil
	}
	if from == "" || to == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: --from and --to must be given together", apperrors.ErrInvalidInput)
	}
	start, err := time.ParseInLocation("2006-01-02", from, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: --from: %v", apperrors.ErrInvalidInput, err)
	}
	end, err := time.ParseInLocation("2006-01-02", to, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: --to: %v", apperrors.ErrInvalidInput, err)
	}
	return period.StartOfDay(start), period.EndOfDay(end), nil
}

func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "warning: "+w)
	}
}

func newReportCmd(vaultPath *string) *cobra.Command {
	var from, to string

	report := &cobra.Command{
		Use:   "report",
		Short: "Generate a period report into Reflexum/Reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, end, err := parseRange(from, to)
			if err != nil {
				return err
			}
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.ReportCLI.Report(cmd.Context(), start, end)
				if errors.Is(err, apperrors.ErrNoNotes) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Notice)
					return nil
				}
				if err != nil {
					return err
				}
				printWarnings(cmd, out.Warnings)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\nnotes=%d sessions=%d assignments=%d\n", out.Notice, out.Files, out.Sessions, out.Assignments)
				return nil
			})
		},
	}
	report.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD)")
	report.Flags().StringVar(&to, "to", "", "last day (YYYY-MM-DD)")

	report.AddCommand(&cobra.Command{
		Use:   "note <path>",
		Short: "Generate a report for a single note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.ReportCLI.NoteReport(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printWarnings(cmd, out.Warnings)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Notice)
				return nil
			})
		},
	})
	return report
}

func newDigestCmd(vaultPath *string) *cobra.Command {
	var from, to string
	var dryRun bool

	digest := &cobra.Command{
		Use:   "digest",
		Short: "Send the Telegram digest for a period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, end, err := parseRange(from, to)
			if err != nil {
				return err
			}
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.ReportCLI.Digest(cmd.Context(), start, end, dryRun)
				if err != nil {
					if out.Notice != "" {
						_, _ = fmt.Fprintln(cmd.ErrOrStderr(), out.Notice)
					}
					return err
				}
				printWarnings(cmd, out.Warnings)
				if dryRun {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
					return nil
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Notice)
				return nil
			})
		},
	}
	digest.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD)")
	digest.Flags().StringVar(&to, "to", "", "last day (YYYY-MM-DD)")
	digest.Flags().BoolVar(&dryRun, "dry-run", false, "print the MarkdownV2 text instead of sending it")
	return digest
}

func newDeadlinesCmd(vaultPath *string) *cobra.Command {
	var dryRun bool

	deadlines := &cobra.Command{
		Use:   "deadlines",
		Short: "List upcoming deadlines and send a reminder when Telegram is configured",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.ReportCLI.Deadlines(cmd.Context(), dryRun)
				if err != nil {
					return err
				}
				if len(out.Items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no upcoming deadlines")
					return nil
				}
				for _, item := range out.Items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.0f%%\n", item.Due, item.Course, item.Title, item.Progress)
				}
				if out.Sent {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reminder sent")
				}
				return nil
			})
		},
	}
	deadlines.Flags().BoolVar(&dryRun, "dry-run", false, "never send a reminder")
	return deadlines
}

func newNoteCmd(vaultPath *string) *cobra.Command {
	note := &cobra.Command{Use: "note", Short: "Note templates"}

	var folder string
	newCmd := &cobra.Command{
		Use:   "new <session|assignment>",
		Short: "Create a note from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.NoteCLI.Create(cmd.Context(), args[0], folder)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", out.Path)
				return nil
			})
		},
	}
	newCmd.Flags().StringVar(&folder, "folder", "", "vault folder for the note")

	note.AddCommand(newCmd)
	return note
}

func newSessionCmd(vaultPath *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Timed study sessions"}

	var course, goal string
	var topics []string
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a study session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Start(cmd.Context(), course, topics, goal)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started %s at %s\n", out.SessionID, out.StartedAt.Format(time.RFC3339))
				return nil
			})
		},
	}
	startCmd.Flags().StringVar(&course, "course", "", "course name")
	startCmd.Flags().StringSliceVar(&topics, "topics", nil, "topics")
	startCmd.Flags().StringVar(&goal, "goal", "", "session goal")

	var sessionID, outcome string
	endCmd := &cobra.Command{
		Use:   "end",
		Short: "End the active session and write its note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.End(cmd.Context(), sessionID, outcome)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session ended: %d min note=%s\n", out.DurationMin, out.Path)
				return nil
			})
		},
	}
	endCmd.Flags().StringVar(&sessionID, "session-id", "", "expected active session id")
	endCmd.Flags().StringVar(&outcome, "outcome", "", "what was achieved")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.GetActive(cmd.Context())
				if errors.Is(err, apperrors.ErrNoActiveSession) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active session")
					return nil
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\tsince %s\n", out.SessionID, out.Course, strings.Join(out.Topics, ","), out.StartedAt.Format(time.RFC3339))
				return nil
			})
		},
	}

	session.AddCommand(startCmd, endCmd, statusCmd)
	return session
}

func newSettingsCmd(vaultPath *string) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Show or change settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print every setting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.SettingsCLI.Show(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", out.Path)
				for _, f := range out.Fields {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", f.Key, f.Value)
				}
				return nil
			})
		},
	})
	settings.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				if _, err := app.SettingsCLI.Set(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])
				return nil
			})
		},
	})
	return settings
}

func newHistoryCmd(vaultPath *string) *cobra.Command {
	var limit int

	history := &cobra.Command{
		Use:   "history",
		Short: "List saved reports and deliveries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				entries, err := app.ReportCLI.History(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no history")
					return nil
				}
				for _, e := range entries {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\t%s\n",
						e.CreatedAt.Format(time.RFC3339), e.Kind, e.Trigger, e.Status, e.Target, e.Detail)
				}
				return nil
			})
		},
	}
	history.Flags().IntVar(&limit, "limit", 20, "number of entries")
	return history
}

func newLLMCmd(vaultPath *string) *cobra.Command {
	llm := &cobra.Command{Use: "llm", Short: "LLM provider commands"}
	llm.AddCommand(&cobra.Command{
		Use:   "models",
		Short: "List models offered by the configured provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				models, err := app.ReportCLI.Models(cmd.Context())
				if err != nil {
					return err
				}
				for _, m := range models {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), m)
				}
				return nil
			})
		},
	})
	return llm
}

func newAutoCmd(vaultPath *string) *cobra.Command {
	auto := &cobra.Command{Use: "auto", Short: "Automatic report schedule"}

	auto.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Evaluate the schedule once and send the report if due",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.ScheduleCLI.Check(cmd.Context())
				if err != nil {
					return err
				}
				if !out.Fired {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "not due: %s\n", out.Reason)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "auto-report sent for %s\n", out.PeriodLabel)
				return nil
			})
		},
	})
	auto.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the schedule and whether it would fire now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.ScheduleCLI.Status(cmd.Context())
				if err != nil {
					return err
				}
				last := "never"
				if out.LastSent != nil {
					last = out.LastSent.Format(time.RFC3339)
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "enabled:   %t\n", out.Enabled)
				_, _ = fmt.Fprintf(w, "telegram:  %t\n", out.TelegramEnabled)
				_, _ = fmt.Fprintf(w, "frequency: %s at %s (%s)\n", out.Frequency, out.Time, out.Timezone)
				_, _ = fmt.Fprintf(w, "last sent: %s\n", last)
				_, _ = fmt.Fprintf(w, "due now:   %t (%s)\n", out.WouldFire, out.Reason)
				if !out.From.IsZero() {
					_, _ = fmt.Fprintf(w, "window:    %s – %s\n", out.From.Format(time.RFC3339), out.To.Format(time.RFC3339))
				}
				return nil
			})
		},
	})
	return auto
}

func newDaemonCmd(vaultPath *string) *cobra.Command {
	daemon := &cobra.Command{Use: "daemon", Short: "Background scheduler"}

	var metricsAddr string
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run auto-reports and deadline reminders until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				return app.Daemon(metricsAddr).Run(ctx)
			})
		},
	}
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address (e.g. :9464)")

	daemon.AddCommand(runCmd)
	return daemon
}

func newTUICmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the study dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(*vaultPath, bootstrap.RunTUI)
		},
	}
}
