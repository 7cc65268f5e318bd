// Package main provides the glidedemo CLI: an interactive terminal demo of
// the swipe-typing recognition engine over an ASCII QWERTY grid.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dettmer/glidetype/internal/config"
	"github.com/dettmer/glidetype/internal/demoui"
	"github.com/dettmer/glidetype/internal/gesture"
	"github.com/dettmer/glidetype/internal/gesturetest"
)

var (
	demoDictPath      string
	demoMaxCandidates int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "glidedemo",
		Short:         "Interactive terminal demo of the swipe-typing recognizer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDemoCmd,
	}
	rootCmd.Flags().StringVar(&demoDictPath, "dict", "", "path to a .glide dictionary (default: XDG dictionary dir/en-US.glide)")
	rootCmd.Flags().IntVar(&demoMaxCandidates, "max-candidates", gesture.DefaultMaxCandidates, "candidates shown per gesture")
	return rootCmd
}

func runDemoCmd(_ *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dictPath := demoDictPath
	if dictPath == "" && fileCfg.Dictionary.Path != nil {
		dictPath = *fileCfg.Dictionary.Path
	}
	if dictPath == "" {
		lang := "en-US"
		if fileCfg.Dictionary.Lang != nil {
			lang = *fileCfg.Dictionary.Lang
		}
		dictPath = config.DefaultDictionaryPath(lang)
	}

	layout := gesturetest.QwertyLayout()
	engine := gesture.NewEngine()
	if !engine.Init(layout, dictPath) {
		lastErr := engine.GetLastError()
		return fmt.Errorf("failed to init engine from %s: %s\nBuild one with: glidedict wordlist --lang en --output %s", dictPath, lastErr.Message, dictPath)
	}
	engine.Configure(config.ApplyScoringConfig(gesture.DefaultScoringConfig(), fileCfg))

	model := demoui.NewModel(engine, layout, demoMaxCandidates)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run demo TUI: %w", err)
	}
	return nil
}
