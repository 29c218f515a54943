package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// DefaultErrorsFile файл, куда дублируются записи уровня error.
const DefaultErrorsFile = "errors.log"

// dualHandler пишет всё в основной вывод, а ошибки ещё и в отдельный файл.
type dualHandler struct {
	core   slog.Handler
	errors slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.core.Enabled(ctx, lvl) || h.errors.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	if h.core.Enabled(ctx, r.Level) {
		err = h.core.Handle(ctx, r)
	}

	if r.Level >= slog.LevelError && h.errors.Enabled(ctx, r.Level) {
		// ошибка записи в файл не должна ронять основной лог
		_ = h.errors.Handle(ctx, r.Clone())
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		core:   h.core.WithAttrs(attrs),
		errors: h.errors.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		core:   h.core.WithGroup(name),
		errors: h.errors.WithGroup(name),
	}
}

// New собирает логгер для окружения env. Пустой errorsPath отключает файл ошибок.
func New(env string, out io.Writer, errorsPath string) *slog.Logger {
	core := coreHandler(env, out)

	if errorsPath == "" {
		return slog.New(core)
	}

	errorFile, err := os.OpenFile(errorsPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log := slog.New(core)
		log.Warn("cannot open error log file", slog.String("path", errorsPath), slog.String("error", err.Error()))
		return log
	}

	return slog.New(NewDualHandler(core, errorFile))
}

// NewDualHandler оборачивает core, дублируя ошибки в errOut текстом.
func NewDualHandler(core slog.Handler, errOut io.Writer) slog.Handler {
	return &dualHandler{
		core:   core,
		errors: slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelError}),
	}
}

func coreHandler(env string, out io.Writer) slog.Handler {
	level := slog.LevelDebug
	if env == EnvProd {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	switch env {
	case EnvDev:
		return slog.NewJSONHandler(out, opts)
	default:
		return slog.NewTextHandler(out, opts)
	}
}
