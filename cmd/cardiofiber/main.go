package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cardiofiber/internal/fieldio"
	"cardiofiber/pkg/config"
	"cardiofiber/pkg/ldrb"
	"cardiofiber/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	configPath string

	lvScalar   string
	lvGradient string

	epiScalar   string
	epiGradient string

	apexGradient string

	rvScalar   string
	rvGradient string

	outputDir string
	workers   int
	logLevel  string
	logFile   string
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "cardiofiber",
		Short:         "Generate cardiac fiber, sheet and sheet-normal fields",
		Long: "cardiofiber assigns a fiber-sheet coordinate system to every sample point\n" +
			"of a ventricular geometry, from the scalar depth fields and gradients\n" +
			"exported by a Laplace-Dirichlet solver (raw little-endian float64 files).",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f)
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", "cardiofiber.yaml", "YAML configuration file")
	cmd.Flags().StringVar(&f.lvScalar, "lv-scalar", "", "LV scalar depth field file (required)")
	cmd.Flags().StringVar(&f.lvGradient, "lv-gradient", "", "LV gradient field file (required)")
	cmd.Flags().StringVar(&f.epiScalar, "epi-scalar", "", "epicardial scalar depth field file (required)")
	cmd.Flags().StringVar(&f.epiGradient, "epi-gradient", "", "epicardial gradient field file (required)")
	cmd.Flags().StringVar(&f.apexGradient, "apex-gradient", "", "apex-to-base gradient field file (required)")
	cmd.Flags().StringVar(&f.rvScalar, "rv-scalar", "", "RV scalar depth field file (omit for a pure-LV geometry)")
	cmd.Flags().StringVar(&f.rvGradient, "rv-gradient", "", "RV gradient field file")
	cmd.Flags().StringVar(&f.outputDir, "output-dir", ".", "directory for fiber.bin, sheet.bin and sheet_normal.bin")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "worker goroutines (0 means value from config)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "rotating log file (overrides config)")

	for _, name := range []string{"lv-scalar", "lv-gradient", "epi-scalar", "epi-gradient", "apex-gradient"} {
		_ = cmd.MarkFlagRequired(name)
	}

	cmd.AddCommand(newInitConfigCmd())
	return cmd
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "cardiofiber.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.CreateDefaultConfigFile(path); err != nil {
				return err
			}
			cmd.Printf("Wrote default configuration to %s\n", path)
			return nil
		},
	}
}

func run(f flags) error {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return err
	}
	if f.workers > 0 {
		cfg.Processing.Workers = f.workers
	}
	if f.logLevel != "" {
		cfg.Output.LogLevel = f.logLevel
	}
	if f.logFile != "" {
		cfg.Output.LogFile = f.logFile
	}

	log := logger.New(cfg.Output.LogLevel, cfg.Output.LogFile)
	defer func() { _ = log.Sync() }()

	in, err := loadInput(f)
	if err != nil {
		return err
	}
	log.Info("loaded solver fields",
		zap.Int("points", len(in.LVScalar)),
		zap.Bool("rv", in.RVScalar != nil))

	opts := cfg.ComputeOptions()
	logAngles(log, opts.Angles.Resolve())

	opts.Progress = func(done, total int) {
		log.Info("computing fiber-sheet system",
			zap.Int("done", done),
			zap.Int("total", total),
			zap.Float64("percent", 100*float64(done)/float64(total)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	system, err := ldrb.ComputeFiberSheetSystem(ctx, in, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	log.Info("fiber-sheet system computed",
		zap.Duration("elapsed", elapsed),
		zap.Int("points", system.Stats.Points),
		zap.Int("undefined", system.Stats.Undefined),
		zap.Int("region_fallbacks", system.Stats.RegionFallbacks),
		zap.Int("non_converged", system.Stats.NonConverged))

	if err := writeOutputs(f.outputDir, system); err != nil {
		return err
	}
	log.Info("output fields written", zap.String("dir", f.outputDir))
	return nil
}

func loadInput(f flags) (ldrb.Input, error) {
	var in ldrb.Input
	var err error

	if in.LVScalar, err = fieldio.ReadScalarField(f.lvScalar); err != nil {
		return in, err
	}
	if in.LVGradient, err = fieldio.ReadVectorField(f.lvGradient); err != nil {
		return in, err
	}
	if in.EpiScalar, err = fieldio.ReadScalarField(f.epiScalar); err != nil {
		return in, err
	}
	if in.EpiGradient, err = fieldio.ReadVectorField(f.epiGradient); err != nil {
		return in, err
	}
	if in.ApexGradient, err = fieldio.ReadVectorField(f.apexGradient); err != nil {
		return in, err
	}
	if f.rvScalar != "" {
		if in.RVScalar, err = fieldio.ReadScalarField(f.rvScalar); err != nil {
			return in, err
		}
	}
	if f.rvGradient != "" {
		if in.RVGradient, err = fieldio.ReadVectorField(f.rvGradient); err != nil {
			return in, err
		}
	}
	return in, nil
}

func writeOutputs(dir string, system *ldrb.FiberSheetSystem) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := fieldio.WriteVectorField(filepath.Join(dir, "fiber.bin"), system.Fiber); err != nil {
		return err
	}
	if err := fieldio.WriteVectorField(filepath.Join(dir, "sheet.bin"), system.Sheet); err != nil {
		return err
	}
	return fieldio.WriteVectorField(filepath.Join(dir, "sheet_normal.bin"), system.SheetNormal)
}

// logAngles echoes the resolved per-region angle sets at startup so a run's
// parameters are always on record.
func logAngles(log *zap.Logger, a ldrb.ResolvedAngles) {
	log.Info("alpha (fiber) angles",
		zap.Float64("endo_lv", a.LV.AlphaEndo),
		zap.Float64("epi_lv", a.LV.AlphaEpi),
		zap.Float64("endo_septum", a.Sept.AlphaEndo),
		zap.Float64("epi_septum", a.Sept.AlphaEpi),
		zap.Float64("endo_rv", a.RV.AlphaEndo),
		zap.Float64("epi_rv", a.RV.AlphaEpi))
	log.Info("beta (sheet) angles",
		zap.Float64("endo_lv", a.LV.BetaEndo),
		zap.Float64("epi_lv", a.LV.BetaEpi),
		zap.Float64("endo_septum", a.Sept.BetaEndo),
		zap.Float64("epi_septum", a.Sept.BetaEpi),
		zap.Float64("endo_rv", a.RV.BetaEndo),
		zap.Float64("epi_rv", a.RV.BetaEpi))
}
