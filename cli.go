package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bassamadnan/triage/config"
	"github.com/bassamadnan/triage/inquiry"
	"github.com/bassamadnan/triage/logger"
	"github.com/bassamadnan/triage/notifier"
	"github.com/bassamadnan/triage/processor"
	"github.com/bassamadnan/triage/sheets"
	"github.com/bassamadnan/triage/summarizer"
	"github.com/bassamadnan/triage/tui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// browseLogFile receives log output while the browser owns the terminal.
const browseLogFile = "triage.log"

type globalOptions struct {
	logLevel string
	logJSON  bool
	envFile  string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "triage",
		Short:         "Summarize new patient inquiries from a spreadsheet and notify staff",
		Long:          "Reads form responses from a Google Sheet, summarizes each unprocessed inquiry, sends email and Slack notifications, marks the row processed and archives it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "Emit logs as JSON")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Path to a .env file; empty disables loading")

	root.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Process every unprocessed inquiry once (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "browse",
		Short: "Browse the archive sheet in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return browseArchive(cmd.Context(), opts)
		},
	})
	return root
}

// setup loads the environment and builds the run-scoped logger.
func setup(opts *globalOptions, logOut io.Writer) (config.Config, logger.Logger, error) {
	log := logger.New(logger.Config{Level: opts.logLevel, JSON: opts.logJSON, Output: logOut}).
		With("run_id", uuid.NewString())
	if opts.envFile != "" {
		if err := config.LoadDotEnv(opts.envFile); err != nil {
			return config.Config{}, nil, err
		}
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("unable to load configuration: %w", err)
	}
	if err := cfg.CheckCredentials(); err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

func openWorkbook(ctx context.Context, cfg config.Config, log logger.Logger) (*sheets.Workbook, error) {
	wb, err := sheets.Open(ctx, sheets.Options{
		CredentialsFile: cfg.CredentialsFile,
		SpreadsheetID:   cfg.SpreadsheetID,
		SpreadsheetName: cfg.SpreadsheetName,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open spreadsheet: %w", err)
	}
	log.Info("Opened spreadsheet", "title", wb.Title(), "id", wb.ID())
	return wb, nil
}

func runPipeline(ctx context.Context, opts *globalOptions, out, logOut io.Writer) error {
	cfg, log, err := setup(opts, logOut)
	if err != nil {
		return err
	}
	wb, err := openWorkbook(ctx, cfg, log)
	if err != nil {
		return err
	}
	source, err := wb.FirstWorksheet(ctx)
	if err != nil {
		return err
	}
	log.Info("Reading responses", "sheet", source.Title)

	p := processor.New(processor.Deps{
		Source: source,
		Archive: func(ctx context.Context) (processor.Sheet, error) {
			ws, created, err := wb.EnsureWorksheet(ctx, cfg.ArchiveSheet, inquiry.ArchiveHeader)
			if err != nil {
				return nil, err
			}
			if created {
				log.Info("Created archive sheet", "sheet", ws.Title)
			}
			return ws, nil
		},
		Summarizer: summarizer.New(ctx, cfg.Summarizer, log),
		Notifier: notifier.NewDispatcher(log,
			notifier.NewEmail(cfg.Email, log),
			notifier.NewSlack(cfg.Chat),
		),
		Logger: log,
	})

	res, err := p.Run(ctx)
	return report(out, res, err)
}

// report prints the run summary. An interrupted run still reports the rows it finished.
func report(out io.Writer, res processor.Result, err error) error {
	if err != nil && !errors.Is(err, processor.ErrInterrupted) {
		return err
	}
	fmt.Fprintln(out, tui.RenderReport(res))
	return err
}

func browseArchive(ctx context.Context, opts *globalOptions) error {
	logFile, err := os.OpenFile(browseLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0660)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	defer logFile.Close()

	cfg, log, err := setup(opts, logFile)
	if err != nil {
		return err
	}
	wb, err := openWorkbook(ctx, cfg, log)
	if err != nil {
		return err
	}
	ws, err := wb.Worksheet(ctx, cfg.ArchiveSheet)
	if err != nil {
		return err
	}
	values, err := ws.Values(ctx)
	if err != nil {
		return err
	}
	entries := inquiry.ParseArchive(values)
	log.Info("Loaded archive", "sheet", ws.Title, "entries", len(entries))

	if err := tui.NewBrowser(wb.Title()+" / "+ws.Title, entries).Run(); err != nil {
		return fmt.Errorf("error running archive browser: %w", err)
	}
	log.Info("Archive browser stopped")
	return nil
}
