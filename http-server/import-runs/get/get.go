package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"technet-admin/internal/storage"
)

type ResponseImportRuns struct {
	Runs   []storage.ImportRun `json:"runs"`
	Status string              `json:"status"`
	Error  string              `json:"error,omitempty"`
}

type ImportRunLister interface {
	ListImportRuns(ctx context.Context, limit int) ([]storage.ImportRun, error)
}

// GetImportRuns журнал импортов. Без настроенной БД отдаёт пустой список.
func GetImportRuns(log *slog.Logger, lister ImportRunLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.import_runs.get.GetImportRuns"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		limit := 50
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				http.Error(w, "Invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}

		if lister == nil {
			render.JSON(w, r, ResponseImportRuns{Runs: []storage.ImportRun{}, Status: strconv.Itoa(http.StatusOK)})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		runs, err := lister.ListImportRuns(ctx, limit)
		if err != nil {
			log.Error("Ошибка при получении журнала импортов", slog.String("error", err.Error()))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ResponseImportRuns{Error: "No se pudo obtener el historial de importaciones"})
			return
		}

		render.JSON(w, r, ResponseImportRuns{Runs: runs, Status: strconv.Itoa(http.StatusOK)})
	}
}
