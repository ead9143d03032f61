package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/PMithila/Group-PPA/internal/dto"
	"github.com/PMithila/Group-PPA/internal/engine"
	"github.com/PMithila/Group-PPA/internal/metrics"
	"github.com/PMithila/Group-PPA/internal/service"
	"github.com/PMithila/Group-PPA/internal/solver"
	"github.com/PMithila/Group-PPA/internal/tables"
	"github.com/PMithila/Group-PPA/pkg/config"
	"github.com/PMithila/Group-PPA/pkg/export"
	"github.com/PMithila/Group-PPA/pkg/logger"
)

var (
	generateInput     string
	generateAlgorithm string
	generateTimeLimit int
	generateFormat    string
	generateOutput    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a weekly schedule from a tables JSON document",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "tables JSON document (required)")
	generateCmd.Flags().StringVarP(&generateAlgorithm, "algorithm", "a", "", "heuristic or ilp (default from env)")
	generateCmd.Flags().IntVarP(&generateTimeLimit, "time-limit", "t", 0, "solver time limit in seconds")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "json", "output format: json, csv or pdf")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file (default stdout, required for pdf)")
	_ = generateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	set, err := tables.FromJSON(generateInput)
	if err != nil {
		return err
	}

	algorithm := generateAlgorithm
	if algorithm == "" {
		algorithm = cfg.Scheduler.Algorithm
	}

	req := dto.GenerateScheduleRequest{
		Teachers:         set.Teachers,
		Subjects:         set.Subjects,
		Rooms:            set.Rooms,
		Availability:     set.Availability,
		Config:           set.Config,
		Algorithm:        algorithm,
		TimeLimitSeconds: generateTimeLimit,
	}

	svc := service.New(newSolver(cfg), metrics.New(), logr, service.Config{
		DefaultGrid: engine.Config{
			Days:        cfg.Scheduler.Days,
			Start:       cfg.Scheduler.Start,
			End:         cfg.Scheduler.End,
			SlotMinutes: cfg.Scheduler.SlotMinutes,
		},
		DefaultAlgorithm: cfg.Scheduler.Algorithm,
		TimeLimit:        cfg.Scheduler.TimeLimit,
		ResultTTL:        cfg.Scheduler.ResultTTL,
		Workers:          cfg.Scheduler.Workers,
	})

	resp, err := svc.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}
	for subjectID, cov := range resp.Coverage {
		if cov.Scheduled < cov.Requested {
			logr.Sugar().Warnw("subject under-scheduled", "subject_id", subjectID, "requested", cov.Requested, "scheduled", cov.Scheduled)
		}
	}

	return writeOutput(resp)
}

func newSolver(cfg *config.Config) solver.Solver {
	if cfg.Scheduler.CBCPath != "" {
		return solver.NewCBC(cfg.Scheduler.CBCPath)
	}
	return solver.NewBranchBound()
}

func writeOutput(resp *dto.GenerateScheduleResponse) error {
	var payload []byte
	var err error

	switch generateFormat {
	case "json":
		payload, err = json.MarshalIndent(resp, "", "  ")
	case "csv":
		payload, err = export.NewCSVExporter().Render(export.FromEvents(resp.Events))
	case "pdf":
		if generateOutput == "" {
			return fmt.Errorf("pdf output requires --output")
		}
		payload, err = export.NewPDFExporter().RenderTimetable(resp.Events, "Weekly Timetable")
	default:
		return fmt.Errorf("unknown format %q", generateFormat)
	}
	if err != nil {
		return err
	}

	if generateOutput == "" {
		_, err = os.Stdout.Write(append(payload, '\n'))
		return err
	}
	return os.WriteFile(generateOutput, payload, 0o644)
}
