package cmd

import (
	"errors"
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
	"github.com/yeisme/gosloc/pkg/configs"
	"github.com/yeisme/gosloc/pkg/languages"
	"github.com/yeisme/gosloc/pkg/sloc"
	"github.com/yeisme/gosloc/pkg/style"
)

var (
	langInteractive bool
	langFormat      string
)

var languagesCmd = &cobra.Command{
	Use:   "languages [query]",
	Short: "List the language rules used for classification",
	Long: `gosloc languages shows the comment and string rules of every known language.

The query may be a language name, an extension, a file name or a fuzzy pattern.

Examples:
  gosloc languages                 # Table of all rules
  gosloc languages go              # Rule for Go
  gosloc languages main.rs         # Rule used for main.rs
  gosloc languages scr             # Fuzzy search
  gosloc languages -I              # Pick a rule interactively
  gosloc languages py --format json`,
	Aliases: []string{"lang", "ls"},
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		rule, candidates := languages.Resolve(slocCtx.Config.RuleTable(), query)

		if rule == nil && langInteractive {
			selected, err := languages.InteractiveSelect(candidates)
			switch {
			case errors.Is(err, fuzzyfinder.ErrAbort):
				return nil
			case err != nil:
				return err
			}
			rule = selected
		}
		if rule == nil && len(candidates) == 0 {
			return fmt.Errorf("%w: %q", languages.ErrNoMatch, query)
		}

		out := cmd.OutOrStdout()
		if langFormat != "" {
			format, err := configs.ParseOutputFormat(langFormat)
			if err != nil {
				return err
			}
			rules := candidates
			if rule != nil {
				rules = []sloc.Rule{*rule}
			}
			// TOML 顶层必须是表
			data := map[string]any{"languages": rules}
			return configs.OutputData(data, format, out, style.ColorEnabled())
		}
		if rule != nil {
			return style.PrintTree(out, languages.Tree(*rule))
		}
		return style.PrintTable(out, languages.Table(candidates), 0)
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
	languagesCmd.Flags().BoolVarP(&langInteractive, "interactive", "I", false, "pick a rule with a fuzzy finder")
	languagesCmd.Flags().StringVar(&langFormat, "format", "", "print the rules as yaml, json or toml")
}
