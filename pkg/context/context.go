// Package context 保存一次命令执行共享的配置、viper 实例与日志记录器
package context

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"github.com/yeisme/gosloc/pkg/configs"
	"github.com/yeisme/gosloc/pkg/utils/log"
)

// GlobalFlags 根命令的全局标志
type GlobalFlags struct {
	ConfigPath    string
	Debug         bool
	Verbose       bool
	Quiet         bool
	NoColor       bool
	CPUProfile    string
	Trace         string
	VersionEnable bool
}

// SlocContext 命令执行上下文
type SlocContext struct {
	context.Context
	Config *configs.Config // 应用配置
	Viper  *viper.Viper    // 原始配置来源，供 config 子命令使用
	Logger log.Logger      // 日志记录器
}

// InitSlocContext 加载配置并初始化日志；命令行标志覆盖配置文件中的 app 段
func InitSlocContext(ctx context.Context, flags GlobalFlags) (*SlocContext, error) {
	config, v, err := configs.LoadConfig(flags.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if flags.Debug {
		config.App.Debug = true
	}
	if flags.Verbose {
		config.App.Verbose = true
	}
	if flags.Quiet {
		config.App.Quiet = true
	}
	if flags.NoColor {
		config.App.NoColor = true
	}

	logger := log.InitLogger(ctx, &config.Log, &config.App)
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug().Str("file", used).Msg("config loaded")
	}

	return &SlocContext{
		Context: ctx,
		Config:  config,
		Viper:   v,
		Logger:  logger,
	}, nil
}
