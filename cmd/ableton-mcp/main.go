// ableton-mcp is an MCP server that forwards tool calls to Ableton Live via
// the AbletonOSC remote script. It speaks JSON-RPC over stdio, so all
// diagnostics go to stderr.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ldraney/ableton-mcp-server/internal/config"
	"github.com/ldraney/ableton-mcp-server/internal/live"
	"github.com/ldraney/ableton-mcp-server/internal/logging"
	"github.com/ldraney/ableton-mcp-server/internal/mcp"
	"github.com/ldraney/ableton-mcp-server/internal/tools"
)

const (
	serverName    = "ableton-mcp"
	serverVersion = "0.1.0"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	host        string
	sendPort    int
	receivePort int
	oscTimeout  time.Duration

	logger   *zap.Logger
	logLevel zap.AtomicLevel
)

var rootCmd = &cobra.Command{
	Use:   "ableton-mcp",
	Short: "MCP server for controlling Ableton Live via AbletonOSC",
	Long: `ableton-mcp exposes Ableton Live as MCP tools over stdio.

Every tool forwards one OSC message to the AbletonOSC remote script
(https://github.com/ideoforms/AbletonOSC), which must be installed and
enabled in Live's MIDI preferences. Getters wait for the script's reply;
setters and commands are fire-and-forget, matching the bridge itself.

Run without arguments to start serving on stdin/stdout.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, logLevel, err = logging.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP over stdio (the default command)",
	RunE:  runServe,
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List every exposed tool, grouped by category",
	RunE:  runTools,
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that AbletonOSC is reachable",
	RunE:  runPing,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the server version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", serverName, serverVersion)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "AbletonOSC host (default 127.0.0.1)")
	rootCmd.PersistentFlags().IntVar(&sendPort, "send-port", 0, "AbletonOSC listen port (default 11000)")
	rootCmd.PersistentFlags().IntVar(&receivePort, "receive-port", 0, "AbletonOSC reply port (default 11001)")
	rootCmd.PersistentFlags().DurationVar(&oscTimeout, "timeout", 0, "Reply timeout for getters (default 5s)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig merges defaults, the config file, environment variables, and
// finally command-line flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if host != "" {
		cfg.OSC.Host = host
	}
	if sendPort != 0 {
		cfg.OSC.SendPort = sendPort
	}
	if receivePort != 0 {
		cfg.OSC.ReceivePort = receivePort
	}
	if oscTimeout != 0 {
		cfg.OSC.Timeout = oscTimeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// The logger exists before the config file is read; raise its level in
	// place when the file asks for verbosity.
	if cfg.Logging.Verbose {
		logLevel.SetLevel(zapcore.DebugLevel)
	}
	return cfg, nil
}

func buildRegistry(cfg *config.Config) (*tools.Registry, *live.Client, error) {
	client, err := live.Dial(cfg.OSC, logger.Named(logging.CategoryLive))
	if err != nil {
		return nil, nil, err
	}

	registry := tools.NewRegistry(logger.Named(logging.CategoryTools))
	tools.RegisterAll(registry, client, logger.Named(logging.CategoryExport))
	return registry, client, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry, client, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.Named(logging.CategoryServer)
	log.Info("serving MCP over stdio",
		zap.String("name", serverName),
		zap.String("version", serverVersion),
		zap.Int("tools", registry.Count()))

	srv := mcp.NewServer(registry, log, serverName, serverVersion, os.Stdin, os.Stdout)
	return srv.Run(ctx)
}

func runTools(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry, client, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	categories := []tools.Category{
		tools.CategorySong,
		tools.CategoryTrack,
		tools.CategoryClipSlot,
		tools.CategoryClip,
		tools.CategoryScene,
		tools.CategoryView,
		tools.CategoryDevice,
		tools.CategoryBrowser,
		tools.CategoryExecutor,
		tools.CategoryExport,
	}

	for _, category := range categories {
		catalog := registry.GetByCategory(category)
		if len(catalog) == 0 {
			continue
		}
		fmt.Printf("%s (%d)\n", category, len(catalog))
		for _, tool := range catalog {
			fmt.Printf("  %-32s %s\n", tool.Name, tool.Description)
		}
		fmt.Println()
	}
	fmt.Printf("%d tools total\n", registry.Count())
	return nil
}

func runPing(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := live.Dial(cfg.OSC, logger.Named(logging.CategoryLive))
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	song := live.NewSong(client)
	tempo, err := song.GetTempo(ctx)
	if err != nil {
		return fmt.Errorf("AbletonOSC not reachable at %s:%d: %w", cfg.OSC.Host, cfg.OSC.SendPort, err)
	}

	fmt.Printf("AbletonOSC reachable at %s:%d (tempo %.1f BPM)\n", cfg.OSC.Host, cfg.OSC.SendPort, tempo)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
