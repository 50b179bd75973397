package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yeisme/gosloc/pkg/configs"
	"github.com/yeisme/gosloc/pkg/utils/hotload"
)

var (
	watchOpts     countFlags
	watchDebounce int
	watchNoRecur  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Recount a directory whenever its files change",
	Long: `gosloc watch counts a directory once, then watches it and prints a new report
after every batch of changes. Press Ctrl+C to stop.

Examples:
  gosloc watch                      # Watch the current directory
  gosloc watch src --debounce 1000  # Wait one second after the last change
  gosloc watch -r table -l          # Language table on every change`,
	Aliases: []string{"w"},
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := countConfig(cmd.Flags(), &watchOpts)
		if err != nil {
			return err
		}
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		root, err = filepath.Abs(root)
		if err != nil {
			return err
		}

		wcfg := watchConfig(cmd, cfg)
		if err := runCount(cmd.Context(), cmd, cfg, []string{root}); err != nil {
			return err
		}
		log.Info().Str("root", root).Msg("watching for changes")

		return hotload.Watch(cmd.Context(), hotload.Options{Root: root, Config: wcfg, Logger: log},
			func(ctx context.Context, changed []string) {
				log.Debug().Strs("changed", changed).Msg("recount")
				fmt.Fprintln(cmd.OutOrStdout())
				if err := runCount(ctx, cmd, cfg, []string{root}); err != nil && ctx.Err() == nil {
					log.Error().Err(err).Msg("recount failed")
				}
			})
	},
}

// watchConfig 合并 watch 段、标志与 count 的排除规则
func watchConfig(cmd *cobra.Command, cfg configs.CountConfig) configs.WatchConfig {
	w := slocCtx.Config.Watch
	if cmd.Flags().Changed("debounce") {
		w.Debounce = watchDebounce
	}
	if cmd.Flags().Changed("no-recursive") {
		w.Recursive = !watchNoRecur
	}
	w.IgnorePatterns = append(append([]string(nil), w.IgnorePatterns...), cfg.Exclude...)
	w.GitIgnore = w.GitIgnore && cfg.RespectGitignore
	return w
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addCountFlags(watchCmd, &watchOpts)
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "milliseconds to wait after the last change")
	watchCmd.Flags().BoolVar(&watchNoRecur, "no-recursive", false, "only watch the top-level directory")
}
