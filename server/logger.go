package server

import (
	"context"
	"io"
	"log/slog"
	"os"

	"iluminati/server/middleware"
)

// Logger глобальный структурированный логгер сервера
var Logger = NewLogger(os.Stdout, slog.LevelInfo)

// NewLogger создает JSON-логгер с указанием источника
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}))
}

// SetupLogger переключает глобальный логгер и slog.Default на заданный уровень
func SetupLogger(level slog.Level) *slog.Logger {
	Logger = NewLogger(os.Stdout, level)
	slog.SetDefault(Logger)
	return Logger
}

// LogError логирует ошибку с request ID из контекста
func LogError(ctx context.Context, err error, msg string, attrs ...any) {
	attrs = append(attrs, "error", err, "request_id", middleware.GetRequestID(ctx))
	Logger.ErrorContext(ctx, msg, attrs...)
}

// LogInfo логирует информационное сообщение
func LogInfo(ctx context.Context, msg string, attrs ...any) {
	attrs = append(attrs, "request_id", middleware.GetRequestID(ctx))
	Logger.InfoContext(ctx, msg, attrs...)
}
