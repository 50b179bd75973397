// Package log 初始化全局 zerolog 日志记录器
//
// 日志写到 stderr（或经 lumberjack 轮转的文件），stdout 只留给统计报告
package log

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yeisme/gosloc/pkg/configs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger 全局日志记录器类型
type Logger = *zerolog.Logger

var globalLogger Logger

// consoleOut 控制台日志的输出目标，测试中可替换
var consoleOut io.Writer = os.Stderr

// InitLogger 初始化日志记录器
//
// 级别优先级：quiet > debug > verbose > config.Level
func InitLogger(ctx context.Context, config *configs.LogConfig, appConfig *configs.AppConfig) Logger {
	if appConfig.Quiet {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		logger := zerolog.New(io.Discard)
		return setGlobal(logger)
	}

	switch {
	case appConfig.Debug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case appConfig.Verbose:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(parseLogLevel(config.Level))
	}

	var writers []io.Writer
	switch strings.ToLower(config.Mode) {
	case "file":
		writers = append(writers, createFileWriter(config))
	case "both":
		writers = append(writers, createConsoleWriter(config.JSON, appConfig.NoColor), createFileWriter(config))
	default:
		writers = append(writers, createConsoleWriter(config.JSON, appConfig.NoColor))
	}

	output := writers[0]
	if len(writers) > 1 {
		output = zerolog.MultiLevelWriter(writers...)
	}

	ctxLogger := zerolog.New(output).With().Timestamp()
	if appConfig.Debug {
		ctxLogger = ctxLogger.Caller()
	}
	if appConfig.Debug || appConfig.Verbose {
		ctxLogger = ctxLogger.Str("app", appConfig.Name).Ctx(ctx)
	}
	return setGlobal(ctxLogger.Logger())
}

func setGlobal(logger zerolog.Logger) Logger {
	globalLogger = &logger
	log.Logger = logger
	return &logger
}

// createConsoleWriter 创建控制台输出写入器
func createConsoleWriter(useJSON, noColor bool) io.Writer {
	if useJSON {
		return consoleOut
	}
	return zerolog.ConsoleWriter{
		Out:        consoleOut,
		NoColor:    noColor,
		TimeFormat: "15:04:05",
	}
}

// createFileWriter 创建带轮转的文件写入器，目录无法创建时退回 stderr
func createFileWriter(config *configs.LogConfig) io.Writer {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
		return consoleOut
	}
	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   true,
	}
}

// GetLogger 获取全局日志记录器，未初始化时按全局配置初始化
func GetLogger() Logger {
	if globalLogger == nil {
		config := configs.GetConfig()
		return InitLogger(context.Background(), &config.Log, &config.App)
	}
	return globalLogger
}

// parseLogLevel 解析日志级别，无法识别时为 warn
func parseLogLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return zerolog.WarnLevel
	}
	if l, err := zerolog.ParseLevel(level); err == nil && level != "" {
		return l
	}
	return zerolog.WarnLevel
}

// Debug 创建一个 Debug 级别的日志事件
func Debug() *zerolog.Event {
	return GetLogger().Debug()
}

// Info 创建一个 Info 级别的日志事件
func Info() *zerolog.Event {
	return GetLogger().Info()
}

// Warn 创建一个 Warn 级别的日志事件
func Warn() *zerolog.Event {
	return GetLogger().Warn()
}

// Error 创建一个 Error 级别的日志事件
func Error() *zerolog.Event {
	return GetLogger().Error()
}
