package sl

import (
	"io"
	"log/slog"

	"github.com/magabrotheeeer/storefront/internal/config"
)

// New создаёт логгер для окружения env: текстовый с уровнем debug локально,
// JSON в prod, текстовый с уровнем info в остальных случаях.
func New(env string, w io.Writer) *slog.Logger {
	switch env {
	case config.EnvLocal:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}
