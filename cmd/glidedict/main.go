// Package main provides the glidedict CLI: building, inspecting, and
// sourcing binary .glide dictionaries.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dettmer/glidetype/internal/config"
	"github.com/dettmer/glidetype/internal/dictgen"
	"github.com/dettmer/glidetype/internal/gesture"
	"github.com/dettmer/glidetype/internal/wordfreq"
)

var (
	buildInput          string
	buildOutput         string
	buildLang           string
	buildSort           bool
	buildMarkProper     bool
	inspectPath         string
	inspectTop          int
	wordlistLang        string
	wordlistSize        int
	wordlistOutput      string
	wordlistMarkProper  bool
	wordlistSortEntries bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "glidedict",
		Short:         "Build and inspect glidetype dictionaries",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newBuildCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newWordlistCmd())
	return root
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Encode a TSV word/frequency file into a .glide dictionary",
		Args:  cobra.NoArgs,
		RunE:  runBuildCmd,
	}
	cmd.Flags().StringVar(&buildInput, "input", "", "path to a word\\tfrequency[\\tflags] TSV file (required)")
	cmd.Flags().StringVar(&buildOutput, "output", "", "output .glide path (default: XDG dictionary dir/<lang>.glide)")
	cmd.Flags().StringVar(&buildLang, "lang", "en-US", "BCP-47 language tag stored in the dictionary header")
	cmd.Flags().BoolVar(&buildSort, "sort", true, "sort entries alphabetically before encoding")
	cmd.Flags().BoolVar(&buildMarkProper, "mark-proper-nouns", true, "flag capitalized words as proper nouns before lowercasing")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runBuildCmd(_ *cobra.Command, _ []string) error {
	f, err := os.Open(buildInput)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close input: %v\n", cerr)
		}
	}()

	entries, warnings := dictgen.ReadTSV(f)
	for _, w := range warnings {
		logErrf("warning: %s\n", w)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no usable entries in %s", buildInput)
	}

	data, err := dictgen.Encode(entries, dictgen.Options{
		LanguageTag:     buildLang,
		Sort:            buildSort,
		MarkProperNouns: buildMarkProper,
	})
	if err != nil {
		return fmt.Errorf("failed to encode dictionary: %w", err)
	}

	outPath := buildOutput
	if outPath == "" {
		outPath = config.DefaultDictionaryPath(buildLang)
	}
	if err := os.MkdirAll(dirOf(outPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dictionary: %w", err)
	}
	logErrf("Wrote %d entries to %s\n", len(entries), outPath)
	return nil
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print header info and top entries of a .glide dictionary",
		Args:  cobra.NoArgs,
		RunE:  runInspectCmd,
	}
	cmd.Flags().StringVar(&inspectPath, "path", "", "path to the .glide dictionary (required)")
	cmd.Flags().IntVar(&inspectTop, "top", 20, "number of highest-frequency entries to print")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

func runInspectCmd(cmd *cobra.Command, _ []string) error {
	store := gesture.NewDictionaryStore()
	if !store.Load(inspectPath) {
		lastErr := store.LastError()
		return fmt.Errorf("failed to load %s: %s", inspectPath, lastErr.Message)
	}
	header := store.Header()
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "language: %s\n", header.LanguageTag); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "version: %d\n", header.Version); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "entries: %d\n", store.EntryCount()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "max frequency: %d\n", store.MaxFrequency()); err != nil {
		return err
	}

	all := append([]gesture.DictionaryEntry(nil), store.AllEntries()...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Frequency > all[j].Frequency })
	if inspectTop > 0 && inspectTop < len(all) {
		all = all[:inspectTop]
	}
	if _, err := fmt.Fprintln(out, "\ntop entries:"); err != nil {
		return err
	}
	for _, e := range all {
		if _, err := fmt.Fprintf(out, "%-24s %10d %02x\n", e.Word, e.Frequency, e.Flags); err != nil {
			return err
		}
	}
	return nil
}

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Build a .glide dictionary directly from the wordfreq dataset",
		Args:  cobra.NoArgs,
		RunE:  runWordlistCmd,
	}
	cmd.Flags().StringVar(&wordlistLang, "lang", "en", "wordfreq language code")
	cmd.Flags().IntVar(&wordlistSize, "size", 20000, "number of words to include")
	cmd.Flags().StringVar(&wordlistOutput, "output", "", "output .glide path (default: XDG dictionary dir/<lang>.glide)")
	cmd.Flags().BoolVar(&wordlistMarkProper, "mark-proper-nouns", false, "flag capitalized source words as proper nouns")
	cmd.Flags().BoolVar(&wordlistSortEntries, "sort", true, "sort entries alphabetically before encoding")
	return cmd
}

func runWordlistCmd(_ *cobra.Command, _ []string) error {
	cacheDir := config.DefaultWordfreqCacheDir()
	logErrln("Fetching wordfreq metadata...")
	wheel, err := wordfreq.DownloadLatestWheel(context.Background(), cacheDir)
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	logErrf("Using wheel %s\n", wheel.Filename)

	freqs, err := wordfreq.ExtractWordFrequencies(wheel.Path, wordlistLang, "large", wordlistSize, 1_000_000)
	if err != nil {
		return fmt.Errorf("failed to extract word frequencies: %w", err)
	}

	entries := make([]dictgen.Entry, 0, len(freqs))
	for _, wf := range freqs {
		entries = append(entries, dictgen.Entry{Word: wf.Word, Frequency: wf.Frequency})
	}

	data, err := dictgen.Encode(entries, dictgen.Options{
		LanguageTag:     wordlistLang,
		Sort:            wordlistSortEntries,
		MarkProperNouns: wordlistMarkProper,
	})
	if err != nil {
		return fmt.Errorf("failed to encode dictionary: %w", err)
	}

	outPath := wordlistOutput
	if outPath == "" {
		outPath = config.DefaultDictionaryPath(wordlistLang)
	}
	if err := os.MkdirAll(dirOf(outPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dictionary: %w", err)
	}
	logErrf("Wrote %d entries to %s\n", len(entries), outPath)
	return nil
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		_ = err
	}
}
