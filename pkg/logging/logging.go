// Package logging はslogベースの構造化ロガーを構築する。
// ファイル出力を指定した場合はlumberjackでローテーションする。
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// maxLogSizeMB はローテーション前のログファイル最大サイズ（MB）。
	maxLogSizeMB = 20
	// maxLogBackups は保持する古いログファイルの数。
	maxLogBackups = 5
	// maxLogAgeDays は古いログファイルを保持する日数。
	maxLogAgeDays = 14
)

// Options はロガーの構築オプション。
type Options struct {
	// Level はログレベル（debug, info, warn, error）。
	Level string
	// Format は出力形式（json, text）。
	Format string
	// File はログファイルのパス。空の場合は標準出力に書き込む。
	File string
}

// New はオプションに従ってロガーと出力先を生成する。
// 返されるio.Writerはginのデバッグ出力など他の出力先にも共有できる。
func New(opts Options) (*slog.Logger, io.Writer, error) {
	var out io.Writer = os.Stdout

	if path := strings.TrimSpace(opts.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, nil, fmt.Errorf("ログディレクトリの作成に失敗: %w", err)
		}
		out = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
			Compress:   true,
		}
	}

	handlerOptions := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	return slog.New(newHandler(opts.Format, out, handlerOptions)), out, nil
}

// ParseLevel はログレベル文字列をslog.Levelに変換する。
// 不明な値はInfoとして扱う。
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}
