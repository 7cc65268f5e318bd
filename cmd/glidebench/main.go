// Package main provides the glidebench CLI: driving the recognition engine
// against synthetic swipe paths and reporting or persisting the outcome.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dettmer/glidetype/internal/bench"
	"github.com/dettmer/glidetype/internal/benchstore"
	"github.com/dettmer/glidetype/internal/config"
	"github.com/dettmer/glidetype/internal/gesture"
	"github.com/dettmer/glidetype/internal/gesturetest"
	"github.com/dettmer/glidetype/internal/wordlist"
)

var (
	runDictPath      string
	runWordlistPath  string
	runMaxCandidates int
	runNoiseStdDevX  float64
	runNoiseStdDevY  float64
	runNoiseSeed     uint32
	runSave          bool
	runWorst         int
	runSlowest       int

	reportLast int
	reportID   int64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "glidebench",
		Short:         "Benchmark the glidetype recognition engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newReportCmd())
	return root
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run synthetic swipe cases through the engine and print a summary",
		Args:  cobra.NoArgs,
		RunE:  runRunCmd,
	}
	cmd.Flags().StringVar(&runDictPath, "dict", "", "path to a .glide dictionary (default: XDG dictionary dir/en-US.glide)")
	cmd.Flags().StringVar(&runWordlistPath, "words", "", "newline-delimited word list to draw cases from (default: dictionary words)")
	cmd.Flags().IntVar(&runMaxCandidates, "max-candidates", gesture.DefaultMaxCandidates, "candidates requested per gesture")
	cmd.Flags().Float64Var(&runNoiseStdDevX, "noise-x", 0, "uniform x jitter amplitude in dp (each point moves by up to this much)")
	cmd.Flags().Float64Var(&runNoiseStdDevY, "noise-y", 0, "uniform y jitter amplitude in dp (each point moves by up to this much)")
	cmd.Flags().Uint32Var(&runNoiseSeed, "noise-seed", 1, "seed for the reproducible jitter generator")
	cmd.Flags().BoolVar(&runSave, "save", true, "persist the run to the benchmark database")
	cmd.Flags().IntVar(&runWorst, "worst", 10, "number of worst-confidence words to print (0 disables)")
	cmd.Flags().IntVar(&runSlowest, "slowest", 5, "number of slowest cases to print (0 disables)")
	return cmd
}

func runRunCmd(cmd *cobra.Command, _ []string) error {
	dictPath := runDictPath
	if dictPath == "" {
		dictPath = config.DefaultDictionaryPath("en-US")
	}

	layout := gesturetest.QwertyLayout()
	engine := gesture.NewEngine()
	if !engine.Init(layout, dictPath) {
		lastErr := engine.GetLastError()
		return fmt.Errorf("failed to init engine from %s: %s", dictPath, lastErr.Message)
	}

	words, err := loadCaseWords(engine)
	if err != nil {
		return err
	}

	cases := make([]bench.Case, 0, len(words))
	for _, w := range words {
		cases = append(cases, bench.Case{
			Word:         w,
			NoiseStdDevX: runNoiseStdDevX,
			NoiseStdDevY: runNoiseStdDevY,
			NoiseSeed:    runNoiseSeed,
		})
	}

	startedAt := time.Now()
	results := bench.Run(engine, layout, cases, runMaxCandidates)

	out := cmd.OutOrStdout()
	if err := bench.RenderSummary(out, results); err != nil {
		return err
	}
	if runWorst > 0 {
		if err := bench.RenderWorstWords(out, results, runWorst); err != nil {
			return err
		}
	}
	if runSlowest > 0 {
		if err := bench.RenderSlowestCases(out, results, runSlowest); err != nil {
			return err
		}
	}
	if err := bench.RenderLatencyPlot(out, results); err != nil {
		return err
	}

	if runSave {
		store, err := benchstore.Open(config.DefaultBenchDBPath())
		if err != nil {
			return fmt.Errorf("failed to open bench store: %w", err)
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				logErrf("failed to close bench store: %v\n", cerr)
			}
		}()
		caseResults := make([]benchstore.CaseResult, 0, len(results))
		for _, r := range results {
			caseResults = append(caseResults, benchstore.CaseResult{
				Word: r.Word, Top1: r.Top1, Top3: r.Top3, Rank: r.Rank,
				Confidence: r.Confidence, LatencyMs: r.LatencyMs,
			})
		}
		runID, err := store.InsertRun(context.Background(), engine.Header().LanguageTag, layout.LanguageTag, startedAt, caseResults)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		logErrf("Saved run %d\n", runID)
	}
	return nil
}

func loadCaseWords(engine *gesture.Engine) ([]string, error) {
	if runWordlistPath != "" {
		words, err := wordlist.LoadWords(runWordlistPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load word list: %w", err)
		}
		return words, nil
	}
	entries := engine.DictionaryEntries()
	words := make([]string, 0, len(entries))
	for _, e := range entries {
		words = append(words, e.Word)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("dictionary has no words to benchmark against")
	}
	return words, nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print saved benchmark runs from the local database",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	cmd.Flags().IntVar(&reportLast, "last", 10, "number of most recent runs to list (0 for all)")
	cmd.Flags().Int64Var(&reportID, "run-id", 0, "print per-case results for a specific run instead of a run list")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	store, err := benchstore.Open(config.DefaultBenchDBPath())
	if err != nil {
		return fmt.Errorf("failed to open bench store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logErrf("failed to close bench store: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if reportID != 0 {
		cases, err := store.ListCaseResults(ctx, reportID)
		if err != nil {
			return fmt.Errorf("failed to list case results: %w", err)
		}
		for _, c := range cases {
			if _, err := fmt.Fprintf(out, "%-24s rank=%-3d conf=%.3f latency=%.2fms\n", c.Word, c.Rank, c.Confidence, c.LatencyMs); err != nil {
				return err
			}
		}
		return nil
	}

	runs, err := store.ListRuns(ctx, reportLast)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	for _, r := range runs {
		if _, err := fmt.Fprintf(out, "run %d  %s  lang=%s layout=%s cases=%d top1=%d top3=%d avg=%.2fms\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.DictLang, r.LayoutTag, r.CaseCount, r.Top1Count, r.Top3Count, r.AvgLatencyMs); err != nil {
			return err
		}
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		_ = err
	}
}
