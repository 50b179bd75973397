package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yeisme/gosloc/pkg/configs"
	"github.com/yeisme/gosloc/pkg/report"
	"github.com/yeisme/gosloc/pkg/style"
	"github.com/yeisme/gosloc/pkg/utils/count"
)

// countFlags count 与 watch 共享的标志
type countFlags struct {
	strict                bool
	tolerant              bool
	reporter              string
	reportFile            string
	include               []string
	exclude               []string
	noGitignore           bool
	followSymlinks        bool
	maxFileSize           int64
	concurrency           int
	skipBinary            bool
	withFiles             bool
	byLanguage            bool
	blankInBlockEmpty     bool
	combinedCommentsMixed bool
}

var countOpts countFlags

var countCmd = &cobra.Command{
	Use:   "count [path...]",
	Short: "Count source, comment and empty lines",
	Long: `gosloc count walks the given files and directories and classifies every line.

In strict mode (the default) files whose extension has no language rule are skipped.
In tolerant mode they are counted too, every non-blank line as source.

Examples:
  gosloc count                          # Count the current directory
  gosloc count src lib/util.js          # Count several paths
  gosloc count --tolerant               # Count unknown files as source
  gosloc count -r json -o out/sloc.json # Write a JSON report
  gosloc count -r table -l -f           # Tables per language and per file
  gosloc count -e "vendor/**" -e "*.min.js"`,
	Aliases: []string{"c", "sloc"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := countConfig(cmd.Flags(), &countOpts)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			args = []string{"."}
		}
		return runCount(cmd.Context(), cmd, cfg, args)
	},
}

// countConfig 以配置文件为基础，叠加显式设置过的标志
func countConfig(fs *pflag.FlagSet, f *countFlags) (configs.CountConfig, error) {
	cfg := slocCtx.Config.Count

	if fs.Changed("strict") {
		cfg.Strict = f.strict
	}
	if fs.Changed("tolerant") {
		cfg.Strict = !f.tolerant
	}
	if fs.Changed("reporter") {
		cfg.ReportType = f.reporter
	}
	if fs.Changed("report-file") {
		cfg.ReportFile = f.reportFile
	}
	if fs.Changed("include") {
		cfg.Include = f.include
	}
	if fs.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, f.exclude...)
	}
	if fs.Changed("no-gitignore") {
		cfg.RespectGitignore = !f.noGitignore
	}
	if fs.Changed("follow-symlinks") {
		cfg.FollowSymlinks = f.followSymlinks
	}
	if fs.Changed("max-file-size") {
		cfg.MaxFileSize = f.maxFileSize
	}
	if fs.Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if fs.Changed("skip-binary") {
		cfg.SkipBinary = f.skipBinary
	}
	if fs.Changed("with-files") {
		cfg.WithFiles = f.withFiles
	}
	if fs.Changed("by-language") {
		cfg.ByLanguage = f.byLanguage
	}
	if fs.Changed("blank-in-block-empty") {
		cfg.BlankInBlockEmpty = f.blankInBlockEmpty
	}
	if fs.Changed("combined-comments-mixed") {
		cfg.CombinedCommentsMixed = f.combinedCommentsMixed
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runCount 执行一次统计并输出报告
func runCount(ctx context.Context, cmd *cobra.Command, cfg configs.CountConfig, paths []string) error {
	opts := count.OptionsFromConfig(cfg, slocCtx.Config.RuleTable())
	opts.Logger = log

	reporter, err := report.New(report.Options{
		Type:       cfg.ReportType,
		ReportFile: cfg.ReportFile,
		WithFiles:  cfg.WithFiles,
		ByLanguage: cfg.ByLanguage,
		Out:        cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	spinner := style.NewSpinner(cmd.ErrOrStderr(), "counting lines")
	spinner.Start()
	res, err := count.NewScanner(opts).Scan(ctx, paths)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}

	for _, e := range res.Errors {
		log.Warn().Str("path", e.Path).Err(e.Err).Msg("path not counted")
	}
	log.Info().
		Int("files", res.Total.File).
		Int("skipped", res.Skipped).
		Int("binary", res.Binary).
		Bool("strict", res.Strict).
		Msg("count finished")

	return reporter.Report(res)
}

func addCountFlags(cmd *cobra.Command, f *countFlags) {
	fs := cmd.Flags()
	fs.BoolVar(&f.strict, "strict", true, "skip files whose extension has no language rule")
	fs.BoolVar(&f.tolerant, "tolerant", false, "count unknown files, every non-blank line as source")
	fs.StringVarP(&f.reporter, "reporter", "r", "", fmt.Sprintf("report type (%s)", strings.Join(configs.ReportTypes, ", ")))
	fs.StringVarP(&f.reportFile, "report-file", "o", "", "file written by the json reporter (\"-\" for stdout); other reporters print to stdout")
	fs.StringSliceVarP(&f.include, "include", "i", nil, "only count paths matching these globs")
	fs.StringSliceVarP(&f.exclude, "exclude", "e", nil, "skip paths matching these globs")
	fs.BoolVar(&f.noGitignore, "no-gitignore", false, "do not read the .gitignore of each root")
	fs.BoolVarP(&f.followSymlinks, "follow-symlinks", "L", false, "count files behind symbolic links")
	fs.Int64VarP(&f.maxFileSize, "max-file-size", "m", 0, "skip files larger than this many bytes (0 means no limit)")
	fs.IntVarP(&f.concurrency, "concurrency", "C", 0, "number of files read in parallel (0 means CPU count)")
	fs.BoolVar(&f.skipBinary, "skip-binary", true, "skip files containing NUL bytes")
	fs.BoolVarP(&f.withFiles, "with-files", "f", false, "include per-file records in the report")
	fs.BoolVarP(&f.byLanguage, "by-language", "l", false, "include per-language totals in the report")
	fs.BoolVar(&f.blankInBlockEmpty, "blank-in-block-empty", true, "count blank lines inside block comments as empty")
	fs.BoolVar(&f.combinedCommentsMixed, "combined-comments-mixed", true, "count a block comment followed by a line comment as mixed")
	cmd.MarkFlagsMutuallyExclusive("strict", "tolerant")
}

func init() {
	rootCmd.AddCommand(countCmd)
	addCountFlags(countCmd, &countOpts)
}
