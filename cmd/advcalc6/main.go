package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sbanszky/advancedcalculator6/pkg/api"
	"github.com/sbanszky/advancedcalculator6/pkg/ipv6"
	"github.com/sbanszky/advancedcalculator6/pkg/planner"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "advcalc6",
	Short: "IPv6 address engine",
	Long: `advcalc6 - IPv6 address parsing, classification and subnet planning.

Parses textual IPv6 address/prefix notation into its canonical 128-bit
value, derives every standard textual and binary encoding, classifies
the address per RFC rules, and partitions prefixes into subnet plans.`,
	Version: fmt.Sprintf("%s (commit: %s)", version, commit),
}

var parseCmd = &cobra.Command{
	Use:   "parse <address>",
	Short: "Parse an IPv6 address or prefix and print its record",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var planCmd = &cobra.Command{
	Use:   "plan <network>",
	Short: "Partition a prefix into equally-sized child subnets",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <prefix>...",
	Short: "Merge adjacent prefixes into best-effort route summaries",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSummarize,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the engine over JSON HTTP",
	RunE:  runServe,
}

var (
	targetPrefix int
	planLimit    int
	maxSubnets   int
	listenAddr   string
	configFile   string
	logLevel     string
)

func init() {
	planCmd.Flags().IntVarP(&targetPrefix, "target", "t", 0,
		"target prefix length for the child subnets (required)")
	planCmd.Flags().IntVarP(&planLimit, "limit", "n", 0,
		"maximum number of subnet records to generate (0 = up to the safety ceiling)")
	_ = planCmd.MarkFlagRequired("target")

	serveCmd.Flags().StringVar(&listenAddr, "listen", ":8086",
		"address to serve the API on")
	serveCmd.Flags().StringVarP(&configFile, "config", "c", "",
		"path to YAML config file")
	serveCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info",
		"log level (debug, info, warn, error)")
	serveCmd.Flags().IntVar(&maxSubnets, "max-subnets", planner.DefaultMaxSubnets,
		"safety ceiling on generated subnet records per plan")

	rootCmd.AddCommand(parseCmd, planCmd, summarizeCmd, serveCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	return printJSON(ipv6.Parse(args[0]))
}

func runPlan(cmd *cobra.Command, args []string) error {
	p := planner.New(planner.Config{})
	plan, err := p.Plan(args[0], targetPrefix, planLimit)
	if err != nil {
		return err
	}
	return printJSON(plan)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	p := planner.New(planner.Config{})
	return printJSON(p.Summarize(args))
}

// serveConfig is the YAML config for the serve command. CLI flags take
// precedence over config file values.
type serveConfig struct {
	Listen     string `yaml:"listen"`
	LogLevel   string `yaml:"log_level"`
	MaxSubnets int    `yaml:"max_subnets"`
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := loadConfigFile(cmd); err != nil {
		return err
	}

	logger, err := initLogger(logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	pl := planner.New(planner.Config{
		MaxSubnets: maxSubnets,
		Logger:     logger,
	})

	server, err := api.NewServer(api.Config{
		ListenAddr: listenAddr,
		Planner:    pl,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}

func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	config := zap.NewProductionConfig()
	config.Level = zapLevel
	config.Encoding = "json"
	return config.Build()
}

// loadConfigFile reads the YAML config file and applies values to flags
// the user did not set explicitly.
func loadConfigFile(cmd *cobra.Command) error {
	if configFile == "" {
		return nil
	}
	data, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", configFile, err)
	}

	var cfg serveConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", configFile, err)
	}

	if cfg.Listen != "" && !cmd.Flags().Changed("listen") {
		listenAddr = cfg.Listen
	}
	if cfg.LogLevel != "" && !cmd.Flags().Changed("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.MaxSubnets > 0 && !cmd.Flags().Changed("max-subnets") {
		maxSubnets = cfg.MaxSubnets
	}
	return nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
