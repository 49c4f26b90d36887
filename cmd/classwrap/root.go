package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/skdltmxn/classwrap/internal/config"
	"github.com/skdltmxn/classwrap/internal/metrics"
)

var (
	outputFile  string
	configFile  string
	logLevel    string
	traceOn     bool
	metricsFile string

	output   io.Writer
	cfg      *config.Config
	logger   *slog.Logger
	recorder *metrics.Recorder
	provider *sdktrace.TracerProvider
)

var rootCmd = &cobra.Command{
	Use:   "classwrap",
	Short: "C++ class binding generator core",
	Long: `classwrap collects C++ class declarations, resolves inheritance and
emits the accessor functions a scripting language binding needs.

Declarations are read from YAML declaration scripts, the events a C++
frontend reports while parsing an interface file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")
	rootCmd.PersistentFlags().BoolVar(&traceOn, "trace", false, "print OpenTelemetry spans to stderr")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus counters to file after the run")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(hierarchyCmd)
	rootCmd.AddCommand(dumpCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		output = f
	} else {
		output = os.Stdout
	}

	cfg = config.Default()
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = c
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	if traceOn {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		provider = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
		otel.SetTracerProvider(provider)
	}

	recorder = metrics.New()
	return nil
}

func teardown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var errs []error
	if provider != nil {
		if err := provider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down tracing: %w", err))
		}
	}
	if metricsFile != "" && recorder != nil {
		if err := writeMetrics(metricsFile); err != nil {
			errs = append(errs, err)
		}
	}
	if f, ok := output.(*os.File); ok && f != os.Stdout {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func writeMetrics(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	if err := recorder.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
