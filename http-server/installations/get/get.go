package get

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"technet-admin/http-server/apierr"
	"technet-admin/internal/service/importer"
	"technet-admin/internal/storage"
	"technet-admin/internal/technet"
)

const defaultPageSize = 20

type ResponseGrouped struct {
	importer.GroupedInstallations
	Total    int    `json:"total_count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
}

type InstallationPager interface {
	PageInstallations(ctx context.Context, filter storage.InstallationFilter) (*technet.Page[storage.Installation], error)
}

// GetGroupedInstallations страница инсталляций, сгруппированная по базовому номеру OT.
func GetGroupedInstallations(log *slog.Logger, pager InstallationPager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.installations.get.GetGroupedInstallations"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		filter, err := ParseFilter(r.URL.Query())
		if err != nil {
			log.Warn("invalid filter", slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if filter.Page == 0 {
			filter.Page = 1
		}
		if filter.PageSize == 0 {
			filter.PageSize = defaultPageSize
		}

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		page, err := pager.PageInstallations(ctx, filter)
		if err != nil {
			status, msg := apierr.FromTechnet(err)
			log.Error("failed to load installations", slog.String("error", err.Error()))
			render.Status(r, status)
			render.JSON(w, r, apierr.Response{Error: msg})
			return
		}

		render.JSON(w, r, ResponseGrouped{
			GroupedInstallations: importer.GroupInstallations(page.Results),
			Total:                page.Count,
			Next:                 page.Next,
			Previous:             page.Previous,
		})
	}
}

type filterError string

func (e filterError) Error() string { return string(e) }

// ParseFilter query-параметры листинга: page, page_size, search, id_tecnico, id_operador, fecha_inicio, fecha_fin.
func ParseFilter(q url.Values) (storage.InstallationFilter, error) {
	f := storage.InstallationFilter{
		Search:       q.Get("search"),
		TechnicianID: q.Get("id_tecnico"),
		OperatorID:   q.Get("id_operador"),
		DateFrom:     q.Get("fecha_inicio"),
		DateTo:       q.Get("fecha_fin"),
	}

	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return f, filterError("invalid page")
		}
		f.Page = n
	}
	if s := q.Get("page_size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return f, filterError("invalid page_size")
		}
		f.PageSize = n
	}

	for _, id := range []string{f.TechnicianID, f.OperatorID} {
		if id == "" {
			continue
		}
		if _, err := strconv.ParseInt(id, 10, 64); err != nil {
			return f, filterError("invalid id filter")
		}
	}

	for _, d := range []string{f.DateFrom, f.DateTo} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return f, filterError("invalid date, expected YYYY-MM-DD")
		}
	}

	return f, nil
}
