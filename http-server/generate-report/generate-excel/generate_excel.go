package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"technet-admin/http-server/apierr"
	getinstallations "technet-admin/http-server/installations/get"
	"technet-admin/internal/storage"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, filter storage.InstallationFilter) ([]byte, error)
}

// GenerateReportExcel выгрузка инсталляций в xlsx с теми же фильтрами, что и листинг.
func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		filter, err := getinstallations.ParseFilter(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// на Excel времени побольше
		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, filter)
		if err != nil {
			status, msg := apierr.FromTechnet(err)
			log.Error("failed to generate excel", slog.String("error", err.Error()))
			render.Status(r, status)
			render.JSON(w, r, apierr.Response{Error: msg})
			return
		}

		fileName := fmt.Sprintf("Instalaciones_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		if _, err := w.Write(excelBytes); err != nil {
			log.Error("failed to write response", slog.String("error", err.Error()))
		}
	}
}
