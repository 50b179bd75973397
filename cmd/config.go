package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/gosloc/pkg/configs"
	"github.com/yeisme/gosloc/pkg/style"
	"github.com/yeisme/gosloc/pkg/utils/schema"
)

var (
	configCmd = &cobra.Command{
		Use:     "config",
		Short:   "Manage gosloc configuration",
		Long:    `gosloc config allows you to view and manage your gosloc configuration settings.`,
		Aliases: []string{"cfg"},
	}

	configValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate gosloc configuration",
		Long:  `gosloc config validate checks the configuration file and GOSLOC_* environment variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := slocCtx.Config.Validate(); err != nil {
				_ = style.PrintList(cmd.ErrOrStderr(), strings.Split(err.Error(), "\n")...)
				return errors.New("invalid configuration")
			}
			fileUsed := slocCtx.Viper.ConfigFileUsed()
			if fileUsed == "" {
				fileUsed = "(defaults)"
			}
			return style.PrintKeyValues(cmd.OutOrStdout(), []style.KeyValue{
				{Key: "config", Value: fileUsed},
				{Key: "status", Value: "ok", Style: style.SourceStyle},
			})
		},
		Aliases: []string{"check", "verify"},
	}

	configListCmd = &cobra.Command{
		Use:   "list [section]",
		Short: "List gosloc configuration",
		Long: `gosloc config list displays the current configuration settings.

You can specify a section to display only that part of the configuration:
  - app:       Application settings
  - log:       Logging settings
  - count:     Counting and report settings
  - watch:     Watch mode settings
  - languages: Extra language rules

Examples:
  gosloc config list                    # Show all configuration (viper raw data)
  gosloc config list --all              # Show all configuration with defaults
  gosloc config list count              # Show only count settings
  gosloc config list --format json      # Output in JSON format
  gosloc config list count --all --toml # Show count config with defaults in TOML`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) > 0 {
				section = args[0]
			}

			format, err := configs.GetOutputFormatFromFlags(cmd)
			if err != nil {
				return err
			}
			showAll, _ := cmd.Flags().GetBool("all")

			data, err := configs.GetConfigSection(slocCtx.Viper, section, showAll)
			if err != nil {
				return err
			}
			return configs.OutputData(data, format, cmd.OutOrStdout(), style.ColorEnabled())
		},
		Aliases: []string{"ls"},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize gosloc configuration",
		Long: `gosloc config init creates a new configuration file with default settings.

Examples:
  gosloc config init                             # Create .gosloc.yaml in current directory
  gosloc config init --path ~/.gosloc/config.yaml
  gosloc config init --format toml --force       # Overwrite .gosloc.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			formatStr, _ := cmd.Flags().GetString("format")
			force, _ := cmd.Flags().GetBool("force")

			format, err := configs.ParseOutputFormat(formatStr)
			if err != nil {
				return err
			}
			if format == configs.FormatText {
				return fmt.Errorf("text format is not supported for config files")
			}
			if path == "" {
				path = configs.DefaultConfigPath(format)
			}

			if err := configs.CreateDefaultConfig(path, format, force); err != nil {
				return err
			}
			log.Info().Str("path", path).Msg("config file created")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Config file created: %s\n", path)
			return err
		},
	}

	configSchemaCmd = &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration",
		Long: `gosloc config schema prints a JSON schema usable for editor completion.

Examples:
  gosloc config schema > gosloc.schema.json
  gosloc config schema --rules              # Schema of the languages section entries`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if rules, _ := cmd.Flags().GetBool("rules"); rules {
				return schema.GenRulesSchema(out)
			}
			return schema.GenConfigSchema(out)
		},
	}
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(
		configListCmd,
		configValidateCmd,
		configInitCmd,
		configSchemaCmd,
	)

	configListCmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(configs.ValidFormats(), ", ")))
	configListCmd.Flags().Bool("yaml", false, "Output in YAML format")
	configListCmd.Flags().Bool("json", false, "Output in JSON format")
	configListCmd.Flags().Bool("toml", false, "Output in TOML format")
	configListCmd.Flags().Bool("text", false, "Output in plain text format")
	configListCmd.Flags().BoolP("all", "a", false, "Show complete configuration with defaults (processed struct)")

	configInitCmd.Flags().StringP("path", "p", "", "Path to the config file")
	configInitCmd.Flags().StringP("format", "f", "yaml", "Format of the config file (yaml, json, toml)")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	configSchemaCmd.Flags().Bool("rules", false, "Print the schema of a single language rule")
}
