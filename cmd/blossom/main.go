package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/blossom/internal/api"
	"github.com/terraincognita07/blossom/internal/config"
	"github.com/terraincognita07/blossom/internal/db"
	"github.com/terraincognita07/blossom/internal/logging"
	"github.com/terraincognita07/blossom/internal/report"
	"github.com/terraincognita07/blossom/internal/security"
	"github.com/terraincognita07/blossom/internal/services"
	"gorm.io/gorm"
)

const todayLayout = "2006-01-02"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "blossom",
		Short:         "Cycle inference and wellness scoring journal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("BLOSSOM_CONFIG"), "YAML config file (env overrides apply on top)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newAnalyzeCmd(&configPath))
	root.AddCommand(newImportCmd(&configPath))
	root.AddCommand(newExportCmd(&configPath))
	root.AddCommand(newSeedCmd(&configPath))
	root.AddCommand(newTokenCmd(&configPath))
	return root
}

type cliEnv struct {
	cfg    config.Config
	logger zerolog.Logger
}

func loadRuntime(configPath string, logOutput io.Writer) (cliEnv, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cliEnv{}, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, logOutput)
	if err != nil {
		return cliEnv{}, err
	}
	return cliEnv{cfg: cfg, logger: logger}, nil
}

func (rt cliEnv) openDatabase() (*gorm.DB, func(), error) {
	database, err := db.OpenSQLite(rt.cfg.DBPath, rt.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	closeDatabase := func() {
		sqlDB, err := database.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			rt.logger.Warn().Err(err).Msg("database close failed")
		}
	}
	return database, closeDatabase, nil
}

func (rt cliEnv) analysisWindows() services.AnalysisWindows {
	return services.AnalysisWindows{
		WellnessDays: rt.cfg.WellnessWindowDays,
		InsightDays:  rt.cfg.InsightWindowDays,
	}
}

// resolveToday pins the clock to noon of the given calendar day, or returns the
// current time when the value is empty.
func (rt cliEnv) resolveToday(raw string) (time.Time, error) {
	location := rt.cfg.Location()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().In(location), nil
	}
	day, err := time.ParseInLocation(todayLayout, raw, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today %q: expected YYYY-MM-DD", raw)
	}
	return day.Add(12 * time.Hour), nil
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the journal HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			location := rt.cfg.Location()
			time.Local = location

			database, closeDatabase, err := rt.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase()

			handler, err := api.NewHandler(database, api.Options{
				SecretKey: rt.cfg.SecretKey,
				Location:  location,
				Windows:   rt.analysisWindows(),
				Logger:    rt.logger,
			})
			if err != nil {
				return fmt.Errorf("handler init failed: %w", err)
			}
			if !rt.cfg.AuthEnabled() {
				rt.logger.Warn().Msg("SECRET_KEY is not set; /api is served without authentication")
			}

			app := api.NewApp(handler)

			sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stopSignals()

			go func() {
				<-sigCtx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := app.ShutdownWithContext(shutdownCtx); err != nil {
					rt.logger.Error().Err(err).Msg("server shutdown failed")
				}
			}()

			rt.logger.Info().
				Str("port", rt.cfg.Port).
				Str("db", rt.cfg.DBPath).
				Str("tz", location.String()).
				Msg("Blossom listening")
			if err := app.Listen(":" + rt.cfg.Port); err != nil {
				return fmt.Errorf("server exited: %w", err)
			}
			return nil
		},
	}
}

func newAnalyzeCmd(configPath *string) *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the cycle, wellness and insight snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			now, err := rt.resolveToday(today)
			if err != nil {
				return err
			}

			database, closeDatabase, err := rt.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase()

			repositories := db.NewRepositories(database)
			analysis := services.NewAnalysisService(repositories.LogEntries, rt.analysisWindows(), rt.cfg.Location(), services.InsightOptions{})
			snapshot, err := analysis.Snapshot(now)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), report.RenderSnapshot(snapshot))
			return nil
		},
	}
	cmd.Flags().StringVar(&today, "today", "", "analyze as of this day (YYYY-MM-DD)")
	return cmd
}

func newImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a JSON array of journal entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			var inputs []services.EntryInput
			if err := json.Unmarshal(raw, &inputs); err != nil {
				return fmt.Errorf("decode import file: %w", err)
			}

			database, closeDatabase, err := rt.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase()

			entries := services.NewEntryService(db.NewRepositories(database).LogEntries)
			written, err := entries.ImportEntries(inputs)
			if err != nil {
				return err
			}
			rt.logger.Debug().Str("file", args[0]).Int("entries", written).Msg("import finished")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries\n", written)
			return nil
		},
	}
}

func newExportCmd(configPath *string) *cobra.Command {
	var format, from, to, outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the journal as JSON (re-importable) or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			database, closeDatabase, err := rt.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase()

			exports := services.NewExportService(db.NewRepositories(database).LogEntries)
			var payload []byte
			switch strings.ToLower(strings.TrimSpace(format)) {
			case "json":
				report, err := exports.BuildJSON(from, to, time.Now().In(rt.cfg.Location()))
				if err != nil {
					return err
				}
				if payload, err = json.MarshalIndent(report.Entries, "", "  "); err != nil {
					return err
				}
				payload = append(payload, '\n')
			case "csv":
				rows, err := exports.BuildCSVRows(from, to)
				if err != nil {
					return err
				}
				var buffer bytes.Buffer
				if err := services.WriteExportCSV(&buffer, rows); err != nil {
					return err
				}
				payload = buffer.Bytes()
			default:
				return fmt.Errorf("unsupported export format %q: use json or csv", format)
			}

			if outputPath == "" || outputPath == "-" {
				_, err = cmd.OutOrStdout().Write(payload)
				return err
			}
			if err := os.WriteFile(outputPath, payload, 0o600); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			rt.logger.Info().Str("file", outputPath).Str("format", format).Msg("export written")
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "export format: json|csv")
	cmd.Flags().StringVar(&from, "from", "", "first day to export (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day to export (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newSeedCmd(configPath *string) *cobra.Command {
	var reset bool
	var today string

	cmd := &cobra.Command{
		Use:   "seed <persona>",
		Short: "Write a demo persona journal (" + strings.Join(services.DemoPersonaNames(), "|") + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			now, err := rt.resolveToday(today)
			if err != nil {
				return err
			}

			inputs, persona, err := services.BuildDemoEntries(args[0], now)
			if errors.Is(err, services.ErrUnknownPersona) {
				return fmt.Errorf("%w %q (known: %s)", err, args[0], strings.Join(services.DemoPersonaNames(), ", "))
			}
			if err != nil {
				return err
			}

			database, closeDatabase, err := rt.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase()

			entries := services.NewEntryService(db.NewRepositories(database).LogEntries)
			if reset {
				deleted, err := entries.ClearEntries()
				if err != nil {
					return err
				}
				rt.logger.Info().Int64("deleted", deleted).Msg("journal cleared")
			}
			written, err := entries.ImportEntries(inputs)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %s: %d entries (expected cycle day %d)\n", persona.Name, written, persona.ExpectedCurrentDay)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "clear the journal before seeding")
	cmd.Flags().StringVar(&today, "today", "", "date the persona relative to this day (YYYY-MM-DD)")
	return cmd
}

func newTokenCmd(configPath *string) *cobra.Command {
	var initSecret bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed API token for the configured secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if initSecret {
				secret, err := security.NewSecretKey()
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), secret)
				return nil
			}

			rt, err := loadRuntime(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			secret, err := rt.cfg.ResolveSecretKey()
			if err != nil {
				return err
			}
			token, err := api.BuildToken([]byte(secret), rt.cfg.TokenTTL, time.Now())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().BoolVar(&initSecret, "init", false, "print a fresh random secret key instead of a token")
	return cmd
}
