// Package logging はslogのデフォルトロガーを構成します。
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"company_research/internal/platform/config"
)

const envLocal = "local"

// Setup はconsole（通常はstdout）とローテーションするログファイルの両方に出力するロガーを生成し、
// slogのデフォルトに設定します。戻り値の io.Closer でファイルを閉じます。
func Setup(env string, cfg config.Log, console io.Writer) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir %q: %w", cfg.Dir, err)
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, cfg.File),
		MaxSize:    cfg.MaxSizeMB, // megabytes
		MaxBackups: cfg.MaxBackups,
	}

	logger := New(env, ParseLevel(cfg.Level), io.MultiWriter(console, file))
	slog.SetDefault(logger)
	return logger, file, nil
}

// New はenvに応じたハンドラーでロガーを生成します。localはテキスト、それ以外はJSONです。
// ctxにリクエストIDがあれば request_id 属性を付けます。
func New(env string, level slog.Level, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if env == envLocal {
		return slog.New(contextHandler{slog.NewTextHandler(w, opts)})
	}
	return slog.New(contextHandler{slog.NewJSONHandler(w, opts)})
}

// ParseLevel は "debug" / "info" / "warn" / "error" をslog.Levelに変換します。不明な値はinfoです。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
