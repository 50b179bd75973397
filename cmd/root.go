// Package cmd 提供 gosloc 的命令行命令
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"runtime/trace"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	gctx "github.com/yeisme/gosloc/pkg/context"
	"github.com/yeisme/gosloc/pkg/style"
	log2 "github.com/yeisme/gosloc/pkg/utils/log"
	"github.com/yeisme/gosloc/pkg/utils/version"
)

var (
	slocCtx *gctx.SlocContext
	log     log2.Logger

	// Global flags
	globalFlags = gctx.GlobalFlags{}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gosloc",
	Short: "gosloc counts source, comment and empty lines in your code",
	Long: `gosloc is a command line tool that classifies every physical line of your source files
as source, single-line comment, block comment, mixed or empty, and reports the totals.

Examples:
  gosloc count .                 # Count the current directory
  gosloc count --tolerant src    # Also count files with unknown extensions
  gosloc languages py            # Show the comment rules for Python`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if globalFlags.VersionEnable {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.GetShortVersionString())
			return err
		}
		if len(args) == 0 {
			return cmd.Help()
		}
		return nil
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if globalFlags.CPUProfile != "" {
			f, err := os.Create(globalFlags.CPUProfile)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
		}
		if globalFlags.Trace != "" {
			f, err := os.Create(globalFlags.Trace)
			if err != nil {
				return fmt.Errorf("could not create trace file: %w", err)
			}
			if err := trace.Start(f); err != nil {
				return fmt.Errorf("could not start trace: %w", err)
			}
		}

		ctx, err := gctx.InitSlocContext(cmd.Context(), globalFlags)
		if err != nil {
			return err
		}
		slocCtx = ctx
		log = ctx.Logger
		style.SetColorEnabled(!ctx.Config.App.NoColor)

		log.Debug().Msgf("Execute Command: %s %s", "gosloc", strings.Join(os.Args[1:], " "))
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if globalFlags.CPUProfile != "" {
			pprof.StopCPUProfile()
		}
		if globalFlags.Trace != "" {
			trace.Stop()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Ctrl+C 取消正在进行的统计
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "config file")
	rootCmd.PersistentFlags().StringVar(&globalFlags.CPUProfile, "cpu-profile", "", "write cpu profile to `file`")
	rootCmd.PersistentFlags().StringVar(&globalFlags.Trace, "trace", "", "write execution trace to `file`")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "enable debug mode (prints additional information)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "V", false, "enable verbose output (prints more detailed information)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Quiet, "quiet", false, "suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.NoColor, "no-color", false, "disable color output")
	rootCmd.Flags().BoolVarP(&globalFlags.VersionEnable, "version", "v", false, "show version information")
}
