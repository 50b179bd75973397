package configs

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yeisme/gosloc/pkg/style"
	"gopkg.in/yaml.v3"
)

// OutputFormat 输出格式类型
type OutputFormat string

const (
	// FormatYAML represents the YAML output format.
	FormatYAML OutputFormat = "yaml"
	// FormatJSON represents the JSON output format.
	FormatJSON OutputFormat = "json"
	// FormatTOML represents the TOML output format.
	FormatTOML OutputFormat = "toml"
	// FormatText represents the plain text output format.
	FormatText OutputFormat = "text"
)

// ValidFormats 返回所有有效的输出格式
func ValidFormats() []string {
	return []string{string(FormatYAML), string(FormatJSON), string(FormatTOML), string(FormatText)}
}

// ParseOutputFormat 解析输出格式字符串
func ParseOutputFormat(format string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported format '%s', supported formats: %s", format, strings.Join(ValidFormats(), ", "))
	}
}

// GetOutputFormatFromFlags 从命令行标志获取输出格式，--format 优先于 --yaml/--json/--toml/--text
func GetOutputFormatFromFlags(cmd *cobra.Command) (OutputFormat, error) {
	if formatFlag, _ := cmd.Flags().GetString("format"); formatFlag != "" {
		return ParseOutputFormat(formatFlag)
	}
	for _, f := range ValidFormats() {
		if set, _ := cmd.Flags().GetBool(f); set {
			return OutputFormat(f), nil
		}
	}
	return FormatYAML, nil
}

// OutputData 按指定格式输出数据；color 为 true 时使用高亮输出
func OutputData(data any, format OutputFormat, out io.Writer, color bool) error {
	switch format {
	case FormatYAML:
		if color {
			return style.PrintYAML(out, data)
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		return enc.Close()

	case FormatJSON:
		if color {
			return style.PrintJSON(out, data)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to marshal to JSON: %w", err)
		}
		return nil

	case FormatTOML:
		if color {
			return style.PrintTOML(out, data)
		}
		b, err := toml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal to TOML: %w", err)
		}
		_, err = out.Write(b)
		return err

	case FormatText:
		_, err := fmt.Fprintf(out, "%+v\n", data)
		return err

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// GetConfigSection 获取指定配置段
//
// showAll 为 true 时返回解析后的结构体（包含默认值），否则返回 viper 的原始数据
func GetConfigSection(v *viper.Viper, section string, showAll bool) (any, error) {
	lowerSection := strings.ToLower(strings.TrimSpace(section))

	if showAll {
		var config Config
		if err := v.Unmarshal(&config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
		if lowerSection == "" {
			return config, nil
		}

		val := reflect.ValueOf(config)
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			if strings.ToLower(typ.Field(i).Tag.Get("mapstructure")) == lowerSection {
				return val.Field(i).Interface(), nil
			}
		}
		return nil, fmt.Errorf("unknown configuration section: %s", section)
	}

	if lowerSection == "" {
		return v.AllSettings(), nil
	}
	if v.IsSet(lowerSection) {
		return v.Get(lowerSection), nil
	}
	return nil, fmt.Errorf("unknown or unset configuration section %s", section)
}
