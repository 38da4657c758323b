package main

import (
	"github.com/hoverpick/hoverpick/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(cfg config.LoggingConfig, frontend string) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	out := logOutput(cfg, frontend)
	if out != "stderr" && out != "stdout" {
		// colour codes only make sense on a terminal
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	zapCfg.OutputPaths = []string{out}
	zapCfg.ErrorOutputPaths = []string{out}

	return zapCfg.Build()
}

// logOutput picks the sink. tcell draws on the tty, so the terminal
// frontend never logs to stderr or stdout.
func logOutput(cfg config.LoggingConfig, frontend string) string {
	out := cfg.Output
	if out == "" {
		out = "stderr"
	}
	if frontend == "terminal" && (out == "stderr" || out == "stdout") {
		if cfg.TerminalOutput != "" {
			return cfg.TerminalOutput
		}
		return "hoverpick.log"
	}
	return out
}
