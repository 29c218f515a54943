package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"technet-admin/http-server/apierr"
	"technet-admin/internal/service/importer"
)

const (
	importTimeout  = 2 * time.Minute
	previewTimeout = 30 * time.Second
	// запас на чтение тела и запись ответа поверх времени обработки
	deadlineMargin = 30 * time.Second
)

type Importer interface {
	RunImport(ctx context.Context, in importer.ImportInput) (*importer.ImportSummary, error)
}

type Previewer interface {
	Preview(ctx context.Context, in importer.ImportInput) (*importer.PreviewResult, error)
}

// ImportInstallations POST multipart с полем file: разбор, преобразование и отправка одним запросом.
func ImportInstallations(log *slog.Logger, imp Importer, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.installations.upload.ImportInstallations"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		extendDeadlines(log, w, importTimeout+deadlineMargin)

		in, err := readUpload(w, r, maxBytes)
		if err != nil {
			log.Warn("bad upload", slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), importTimeout)
		defer cancel()

		summary, err := imp.RunImport(ctx, in)
		if err != nil {
			status, msg := importStatus(err)
			log.Error("import failed", slog.String("filename", in.Filename), slog.String("error", err.Error()))
			render.Status(r, status)
			render.JSON(w, r, apierr.Response{Error: msg})
			return
		}

		if summary.Submitted {
			render.Status(r, http.StatusCreated)
		}
		render.JSON(w, r, summary)
	}
}

// PreviewImport тот же разбор без отправки: записи, ошибки строк, предупреждения, дубли.
func PreviewImport(log *slog.Logger, prev Previewer, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.installations.upload.PreviewImport"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		extendDeadlines(log, w, previewTimeout+deadlineMargin)

		in, err := readUpload(w, r, maxBytes)
		if err != nil {
			log.Warn("bad upload", slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), previewTimeout)
		defer cancel()

		res, err := prev.Preview(ctx, in)
		if err != nil {
			status, msg := importStatus(err)
			log.Error("preview failed", slog.String("filename", in.Filename), slog.String("error", err.Error()))
			render.Status(r, status)
			render.JSON(w, r, apierr.Response{Error: msg})
			return
		}

		render.JSON(w, r, res)
	}
}

// extendDeadlines сдвигает серверные ReadTimeout/WriteTimeout для долгих маршрутов.
func extendDeadlines(log *slog.Logger, w http.ResponseWriter, d time.Duration) {
	rc := http.NewResponseController(w)
	deadline := time.Now().Add(d)

	if err := rc.SetReadDeadline(deadline); err != nil && !errors.Is(err, http.ErrNotSupported) {
		log.Warn("failed to set read deadline", slog.String("error", err.Error()))
	}
	if err := rc.SetWriteDeadline(deadline); err != nil && !errors.Is(err, http.ErrNotSupported) {
		log.Warn("failed to set write deadline", slog.String("error", err.Error()))
	}
}

func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (importer.ImportInput, error) {
	// файл плюс поля формы и границы multipart
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return importer.ImportInput{}, fmt.Errorf("formulario inválido: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return importer.ImportInput{}, errors.New("falta el archivo (campo file)")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return importer.ImportInput{}, fmt.Errorf("no se pudo leer el archivo: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return importer.ImportInput{}, fmt.Errorf("el archivo supera %d bytes", maxBytes)
	}

	return importer.ImportInput{Filename: header.Filename, Data: data}, nil
}

func importStatus(err error) (int, string) {
	for _, parseErr := range []error{
		importer.ErrEmptyFile,
		importer.ErrUnreadableWorkbook,
		importer.ErrUnsupportedFormat,
		importer.ErrTooManyRows,
	} {
		if errors.Is(err, parseErr) {
			return http.StatusBadRequest, parseErr.Error()
		}
	}

	status, msg := apierr.FromTechnet(err)
	return status, "Error al importar el archivo: " + msg
}
