package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cpnkit/cpn"
	"github.com/cpnkit/cpn/yaml"
)

var (
	inputFile string
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cpn",
	Short: "Work with colored Petri nets",
	Long: `cpn loads colored Petri net definitions, checks them, runs them,
and renders them as graphviz figures.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real env wins either way
		_ = godotenv.Load()
		cfg := zap.NewProductionConfig()
		if lvl, ok := os.LookupEnv("CPN_LOG_LEVEL"); ok {
			parsed, err := zapcore.ParseLevel(lvl)
			if err != nil {
				return fmt.Errorf("CPN_LOG_LEVEL: %w", err)
			}
			cfg.Level = zap.NewAtomicLevelAt(parsed)
		}
		var err error
		logger, err = cfg.Build()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadNet(path string) (*cpn.Net, error) {
	if path == "" {
		return nil, fmt.Errorf("no input file; pass --input")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	svc := &yaml.Service{}
	return svc.Load(f)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "net definition file")
}
