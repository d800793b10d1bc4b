package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/echo/internal/api"
	"github.com/jackzampolin/echo/internal/config"
	"github.com/jackzampolin/echo/internal/home"
	"github.com/jackzampolin/echo/internal/ingest"
	"github.com/jackzampolin/echo/internal/llmcall"
	"github.com/jackzampolin/echo/internal/pipeline"
	"github.com/jackzampolin/echo/internal/providers"
	"github.com/jackzampolin/echo/internal/sink"
)

var (
	analyzeOut          string
	analyzeModel        string
	analyzeNoRecord     bool
	analyzeModelCorrect bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <pdf-path | text>",
	Short: "Analyze a PDF (per page) or a raw text passage",
	Long: `Analyze runs the five-stage soundscape pipeline.

Given a path to a PDF, every page is analyzed in order and the merged
per-page records are written as a JSON array. Given any other argument,
it is treated as raw text and analyzed as a single unit.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "echo_output.json", "output file path")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "override the configured model")
	analyzeCmd.Flags().BoolVar(&analyzeNoRecord, "no-record", false, "disable LLM call recording")
	analyzeCmd.Flags().BoolVar(&analyzeModelCorrect, "model-correct", false, "run JSON structure correction as a model pass")
}

// analyzeSummary is printed after a run in the configured output format.
type analyzeSummary struct {
	RunID     string `json:"run_id" yaml:"run_id"`
	Mode      string `json:"mode" yaml:"mode"`
	Pages     int    `json:"pages" yaml:"pages"`
	Parsed    int    `json:"parsed" yaml:"parsed"`
	Fallbacks int    `json:"fallbacks" yaml:"fallbacks"`
	Output    string `json:"output" yaml:"output"`
	Duration  string `json:"duration" yaml:"duration"`
	LLMCalls  int    `json:"llm_calls,omitempty" yaml:"llm_calls,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()
	start := time.Now()

	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := cm.Get()

	hd, err := home.New(homeDir)
	if err != nil {
		return err
	}

	clientCfg := cfg.ToClientConfig()
	if analyzeModel != "" {
		clientCfg.Model = analyzeModel
	}
	client := providers.NewOpenAIClient(clientCfg)

	runnerOpts := []pipeline.Option{pipeline.WithLogger(logger)}

	var store *llmcall.Store
	if cfg.Record.Enabled && !analyzeNoRecord {
		if err := hd.EnsureExists(); err != nil {
			return err
		}
		dbPath := cfg.Record.DBPath
		if dbPath == "" {
			dbPath = hd.CallsDBPath()
		}
		store, err = llmcall.NewStore(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open call store: %w", err)
		}
		defer store.Close()
		runnerOpts = append(runnerOpts, pipeline.WithRecorder(llmcall.NewRecorder(store)))
	}

	if analyzeModelCorrect || cfg.Pipeline.ModelCorrection {
		runnerOpts = append(runnerOpts, pipeline.WithModelCorrection())
	}

	runner := pipeline.New(client, runnerOpts...)
	orch := pipeline.NewOrchestrator(runner, logger)

	runID := uuid.New().String()
	summary := analyzeSummary{RunID: runID, Output: analyzeOut}

	arg := args[0]
	if ingest.IsPDFPath(arg) {
		logger.Info("analyzing PDF", "path", arg, "run_id", runID)
		pages, err := ingest.PDFPages(arg)
		if err != nil {
			return err
		}

		results, err := orch.RunPages(ctx, runID, pages)
		if err != nil {
			return err
		}
		if err := sink.WritePages(analyzeOut, results); err != nil {
			return err
		}

		summary.Mode = "pages"
		summary.Pages = len(results)
		for _, res := range results {
			if res.Unparsed() {
				summary.Fallbacks++
			} else {
				summary.Parsed++
			}
		}
	} else {
		logger.Info("analyzing text", "chars", len(arg), "run_id", runID)
		res, err := orch.RunText(ctx, runID, arg)
		if err != nil {
			return err
		}
		if err := sink.WriteSingle(analyzeOut, res); err != nil {
			return err
		}

		summary.Mode = "text"
		summary.Pages = 1
		if res.Unparsed() {
			summary.Fallbacks = 1
		} else {
			summary.Parsed = 1
		}
	}

	summary.Duration = time.Since(start).Round(time.Millisecond).String()
	if store != nil {
		if count, err := store.CountByRun(runID); err == nil {
			summary.LLMCalls = count
		}
	}

	return api.Output(summary)
}
