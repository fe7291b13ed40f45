package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leizor/go-onebot-model-generator/pkg/config"
	"github.com/leizor/go-onebot-model-generator/pkg/generate"
	"github.com/leizor/go-onebot-model-generator/pkg/watch"
)

const version = "0.1.0"

const defaultConfigFile = "obmg.yaml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

// session is the configuration and logger shared by every subcommand of one invocation.
type session struct {
	configPath string
	cfg        *config.Config
	logger     zerolog.Logger
}

func (s *session) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(s.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.logger = logger
	return nil
}

func newRootCmd() *cobra.Command {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:           "obmg",
		Short:         "Generate Go models from OneBot Markdown documentation",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&s.configPath, "config", "c", "", "YAML config file")
	flags.StringP("input", "i", "", "The documentation directory to read")
	flags.StringP("output", "o", "", "The output directory to create")
	flags.StringP("package", "p", "", "The go package name to use in generated files")
	flags.String("log-level", "", "Log level: trace, debug, info, warn or error")
	flags.String("log-format", "", "Log format: console or json")

	generateCmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate Go models for the documented APIs, events and message segments",
		PreRunE: s.load,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate.Run(cmd.Context(), s.cfg, s.logger)
		},
	}

	dumpCmd := &cobra.Command{
		Use:     "dump",
		Short:   "Print the schema extracted from the documentation as YAML",
		PreRunE: s.load,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := generate.LoadSchema(cmd.Context(), s.cfg, s.logger)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(schema); err != nil {
				return fmt.Errorf("problem encoding schema: %w", err)
			}
			return enc.Close()
		},
	}

	var delay time.Duration
	watchCmd := &cobra.Command{
		Use:     "watch",
		Short:   "Generate, then regenerate whenever a Markdown document changes",
		PreRunE: s.load,
		RunE: func(cmd *cobra.Command, args []string) error {
			regenerate := func(ctx context.Context) error {
				return generate.Run(ctx, s.cfg, s.logger)
			}
			if err := regenerate(cmd.Context()); err != nil {
				return err
			}
			w, err := watch.New(s.cfg.InputDir, delay, s.logger, regenerate)
			if err != nil {
				return err
			}
			s.logger.Info().Str("dir", s.cfg.InputDir).Msg("watching for changes")
			return w.Run(cmd.Context())
		},
	}
	watchCmd.Flags().DurationVar(&delay, "delay", watch.DefaultDelay, "How long changes must settle before regenerating")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Default().WriteFile(path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(generateCmd, dumpCmd, watchCmd, initCmd)
	return rootCmd
}
