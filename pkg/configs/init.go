package configs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultConfig 返回只包含默认值的配置，不读取环境变量与配置文件
func DefaultConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析默认配置失败: %w", err)
	}
	return &config, nil
}

// DefaultConfigPath 返回指定格式的默认配置文件名
func DefaultConfigPath(format OutputFormat) string {
	switch format {
	case FormatJSON:
		return ".gosloc.json"
	case FormatTOML:
		return ".gosloc.toml"
	default:
		return ".gosloc.yaml"
	}
}

// MarshalConfig 按格式序列化配置
func MarshalConfig(config *Config, format OutputFormat) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(config); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		b, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case FormatTOML:
		return toml.Marshal(config)
	default:
		return nil, fmt.Errorf("format %s is not supported for config files", format)
	}
}

// CreateDefaultConfig 在 path 写入一份默认配置；文件已存在且 force 为 false 时返回错误
func CreateDefaultConfig(path string, format OutputFormat, force bool) error {
	if path == "" {
		path = DefaultConfigPath(format)
	}
	config, err := DefaultConfig()
	if err != nil {
		return err
	}
	data, err := MarshalConfig(config, format)
	if err != nil {
		return fmt.Errorf("序列化默认配置失败: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建配置目录失败: %w", err)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("配置文件已存在: %s (使用 --force 覆盖)", path)
		}
		return fmt.Errorf("创建配置文件失败: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}
