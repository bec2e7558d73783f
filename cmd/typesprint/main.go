// Package main provides the CLI entrypoint for typesprint.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typesprint/internal/config"
	"github.com/verte-zerg/typesprint/internal/diff"
	"github.com/verte-zerg/typesprint/internal/logger"
	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/sentence"
	"github.com/verte-zerg/typesprint/internal/session"
	"github.com/verte-zerg/typesprint/internal/stats"
	"github.com/verte-zerg/typesprint/internal/tui"
	"github.com/verte-zerg/typesprint/internal/web"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	defaultLogLevel = "info"
)

var (
	practiceSentences string
	practiceSeed      int64

	serveAddr      string
	serveLogLevel  string
	serveMetrics   bool
	serveSentences string
	serveSeed      int64

	listSentences string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typesprint",
		Short:         "Sentence typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceSentences, "sentences", "", "sentence file, one sentence per line")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "random seed for sentence selection (0: random)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSentencesCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "sentences", &practiceSentences, fileCfg.Practice.Sentences)
	applyInt64Config(cmd, "seed", &practiceSeed, fileCfg.Practice.Seed)

	cfg := model.Config{
		SentencesPath: practiceSentences,
		Seed:          practiceSeed,
	}

	pool, err := loadPool(cfg.SentencesPath, cfg.Seed)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("typesprint needs an interactive terminal; run 'typesprint serve' for the browser test")
	}

	m := tui.NewModel(pool)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if last := m.Session(); last.Phase == session.Completed {
		if err := stats.RenderResult(cmd.OutOrStdout(), last.Result); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the typing test to a browser",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&serveLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&serveMetrics, "metrics", false, "expose Prometheus metrics on /metrics")
	cmd.Flags().StringVar(&serveSentences, "sentences", "", "sentence file, one sentence per line")
	cmd.Flags().Int64Var(&serveSeed, "seed", 0, "random seed for sentence selection (0: random)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Serve.Addr)
	applyStringConfig(cmd, "log-level", &serveLogLevel, fileCfg.Serve.LogLevel)
	applyBoolConfig(cmd, "metrics", &serveMetrics, fileCfg.Serve.Metrics)
	applyStringConfig(cmd, "sentences", &serveSentences, fileCfg.Serve.Sentences)
	applyInt64Config(cmd, "seed", &serveSeed, fileCfg.Serve.Seed)

	cfg := model.ServeConfig{
		Addr:          serveAddr,
		LogLevel:      serveLogLevel,
		Metrics:       serveMetrics,
		SentencesPath: serveSentences,
		Seed:          serveSeed,
	}
	if err := validateServeConfig(cfg); err != nil {
		return err
	}

	log, err := logger.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	pool, err := loadPool(cfg.SentencesPath, cfg.Seed)
	if err != nil {
		return err
	}
	log.Info("sentence pool loaded", "sentences", pool.Len())

	opts := []web.Option{web.WithLogger(log)}
	if cfg.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, web.WithMetrics(reg))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := web.New(pool, opts...).ListenAndServe(ctx, cfg.Addr); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

func newSentencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentences",
		Short: "List the sentence pool",
		Args:  cobra.NoArgs,
		RunE:  runSentencesCmd,
	}
	cmd.Flags().StringVar(&listSentences, "sentences", "", "sentence file, one sentence per line")
	return cmd
}

func runSentencesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "sentences", &listSentences, fileCfg.Practice.Sentences)

	pool, err := loadPool(listSentences, 0)
	if err != nil {
		return err
	}
	for i, s := range pool.Sentences() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", i+1, s); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff TARGET TYPED",
		Short: "Classify typed text against a target sentence",
		Args:  cobra.ExactArgs(2),
		RunE:  runDiffCmd,
	}
}

func runDiffCmd(cmd *cobra.Command, args []string) error {
	target, typed := args[0], args[1]
	if target == "" {
		return fmt.Errorf("TARGET must not be empty")
	}
	res := diff.Diff(target, typed)
	if err := stats.RenderDiff(cmd.OutOrStdout(), target, res, typed); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless a config already exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

// loadPool resolves the sentence source: an explicit file, then the default
// sentence file if present, then the built-in pool.
func loadPool(path string, seed int64) (*sentence.Pool, error) {
	var opts []sentence.Option
	if seed != 0 {
		opts = append(opts, sentence.WithSeed(seed))
	}
	if path != "" {
		pool, err := sentence.Load(path, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load sentences: %w", err)
		}
		return pool, nil
	}
	defaultPath := config.DefaultSentencesPath()
	pool, err := sentence.Load(defaultPath, opts...)
	if err == nil {
		return pool, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		logErrf("ignoring %s: %v\n", defaultPath, err)
	}
	return sentence.Default(opts...), nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typesprint configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# sentences = %q   # Sentence file, one per line
# seed = 0                # Random seed (0: random)

[serve]
# addr = %q    # Listen address
# log-level = %q          # debug, info, warn, error
# metrics = false         # Expose Prometheus metrics on /metrics
# sentences = %q   # Sentence file, one per line
# seed = 0                # Random seed (0: random)
`,
		config.DefaultSentencesPath(),
		defaultAddr,
		defaultLogLevel,
		config.DefaultSentencesPath(),
	)
}

func validateServeConfig(cfg model.ServeConfig) error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("--addr must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
