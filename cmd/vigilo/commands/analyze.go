package commands

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/edsr/vigilo/internal/config"
	"github.com/edsr/vigilo/internal/logging"
	"github.com/edsr/vigilo/internal/metrics"
	"github.com/edsr/vigilo/internal/pipeline"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var (
	analyzeFile         string
	analyzeConfigFile   string
	analyzeMainDoorZone string
	analyzeFormat       string
	analyzeFaultActor   string
	analyzeShowMetrics  bool
	analyzeWatch        bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a behavior log file",
	Long: `Analyze parses a behavior log, reconstructs the causal timeline,
evaluates anomaly rules and prints a per-person dependency report.

With --watch the file is re-analyzed whenever it changes on disk.`,
	Run: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "Path to behavior log file (required)")
	analyzeCmd.Flags().StringVar(&analyzeConfigFile, "config", "", "Path to YAML config file")
	analyzeCmd.Flags().StringVar(&analyzeMainDoorZone, "main-door-zone", "", "Zone containing the dwelling entrance door")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "Report output format: text, json or yaml")
	analyzeCmd.Flags().StringVar(&analyzeFaultActor, "fault-actor", "", "Fault blame selection: earliest or nearest")
	analyzeCmd.Flags().BoolVar(&analyzeShowMetrics, "show-metrics", false, "Print collected metrics to stderr after analysis")
	analyzeCmd.Flags().BoolVar(&analyzeWatch, "watch", false, "Re-run analysis when the file changes")

	_ = analyzeCmd.MarkFlagRequired("file")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	cfg, err := loadAnalyzeConfig(cmd)
	if err != nil {
		HandleError(err, "Failed to load configuration")
	}

	// The config file's logLevel applies unless --log-level was given.
	levelFlags := logLevelFlags
	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
		levelFlags = strings.Split(cfg.LogLevel, ",")
	}
	if err := setupLog(levelFlags); err != nil {
		HandleError(err, "Failed to initialize logging")
	}
	logger := logging.GetLogger("cmd.analyze")

	var m *metrics.Metrics
	if analyzeShowMetrics {
		m = metrics.New()
	}
	p := pipeline.New(cfg, m)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := analyzeOnce(ctx, p, cfg, m); err != nil {
		HandleError(err, "Analysis failed")
	}

	if !analyzeWatch {
		return
	}

	if err := watchAndAnalyze(ctx, p, cfg, m, logger); err != nil {
		HandleError(err, "Watch failed")
	}
}

// loadAnalyzeConfig builds the effective config: file values (or defaults)
// overridden by any flag the user set explicitly.
func loadAnalyzeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if analyzeConfigFile != "" {
		loaded, err := config.Load(analyzeConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("main-door-zone") {
		cfg.MainDoorZone = analyzeMainDoorZone
	}
	if cmd.Flags().Changed("format") {
		cfg.OutputFormat = analyzeFormat
	}
	if cmd.Flags().Changed("fault-actor") {
		cfg.FaultActor = analyzeFaultActor
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func analyzeOnce(ctx context.Context, p *pipeline.Pipeline, cfg *config.Config, m *metrics.Metrics) error {
	rep, err := p.Run(ctx, analyzeFile)
	if err != nil {
		return err
	}
	if err := rep.Render(os.Stdout, cfg.OutputFormat); err != nil {
		return err
	}
	if m != nil {
		return m.WriteTo(os.Stderr)
	}
	return nil
}

// watchAndAnalyze re-runs the analysis whenever the behavior file changes.
// Events are debounced so editor save sequences trigger a single run, and
// rename/remove events re-add the watch since atomic writes replace the inode.
func watchAndAnalyze(ctx context.Context, p *pipeline.Pipeline, cfg *config.Config, m *metrics.Metrics, logger *logging.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(analyzeFile); err != nil {
		return err
	}
	logger.Info("watching %s for changes", analyzeFile)

	const debounce = 500 * time.Millisecond
	var timer *time.Timer
	runs := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down watch")
			return nil

		case <-runs:
			if err := analyzeOnce(ctx, p, cfg, m); err != nil {
				logger.ErrorWithErr("re-analysis failed, keeping watch", err)
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if event.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				// Atomic writes unlink the old file before renaming the
				// new one into place.
				time.Sleep(50 * time.Millisecond)
				if err := watcher.Add(analyzeFile); err != nil {
					logger.Warn("failed to re-add watch after %s: %v", event.Op, err)
					continue
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case runs <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}
