package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/yeisme/gosloc/pkg/languages"
	"github.com/yeisme/gosloc/pkg/sloc"
	"github.com/yeisme/gosloc/pkg/style"
)

var (
	classifyLanguage string
	classifyTolerant bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify <file>",
	Short: "Show the category of every line of a file",
	Long: `gosloc classify prints each line of a single file together with the category
it was counted as, followed by the totals for that file.

Examples:
  gosloc classify main.go
  gosloc classify --lang python scripts/build
  gosloc classify --tolerant notes.txt`,
	Aliases: []string{"explain"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		table := slocCtx.Config.RuleTable()
		var (
			rule  *sloc.Rule
			known bool
		)
		if classifyLanguage != "" {
			if rule, _ = languages.Resolve(table, classifyLanguage); rule == nil {
				return fmt.Errorf("%w: %q", languages.ErrNoMatch, classifyLanguage)
			}
			known = true
		} else {
			rule, known = table.LookupPath(path)
		}
		if !known && !classifyTolerant {
			return fmt.Errorf("%s: no language rule for this file (use --tolerant to count it as plain text)", path)
		}

		classifier := sloc.Classifier{Policy: slocCtx.Config.Count.Policy()}
		acc := classifier.NewAccumulator(path, rule)
		out := cmd.OutOrStdout()
		n := 0
		for line := range sloc.Lines(content) {
			n++
			cat := acc.Feed(line)
			if err := printClassified(out, n, cat, line); err != nil {
				return err
			}
		}

		rec := acc.Record()
		lang := rec.Language
		if lang == "" {
			lang = "unknown"
		}
		fmt.Fprintln(out)
		if err := style.PrintHeading(out, path); err != nil {
			return err
		}
		return style.PrintKeyValues(out, []style.KeyValue{
			{Key: "language", Value: lang},
			{Key: "physical lines", Value: strconv.Itoa(rec.Total)},
			{Key: "source", Value: strconv.Itoa(rec.Source), Style: style.SourceStyle},
			{Key: "comment", Value: strconv.Itoa(rec.Comment), Style: style.CommentStyle},
			{Key: "single-line", Value: strconv.Itoa(rec.Single), Style: style.CommentStyle},
			{Key: "block", Value: strconv.Itoa(rec.Block), Style: style.CommentStyle},
			{Key: "mixed", Value: strconv.Itoa(rec.Mixed), Style: style.CommentStyle},
			{Key: "empty", Value: strconv.Itoa(rec.Empty), Style: style.EmptyStyle},
		})
	},
}

func printClassified(w io.Writer, n int, cat sloc.Category, line string) error {
	var st lipgloss.Style
	switch {
	case cat == sloc.Source:
		st = style.SourceStyle
	case cat.IsComment():
		st = style.CommentStyle
	default:
		st = style.EmptyStyle
	}
	_, err := fmt.Fprintf(w, "%5d  %s  %s\n", n, st.Render(fmt.Sprintf("%-6s", cat)), line)
	return err
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVar(&classifyLanguage, "lang", "", "language name or extension to use instead of the file name")
	classifyCmd.Flags().BoolVar(&classifyTolerant, "tolerant", false, "classify files without a language rule as plain text")
}
