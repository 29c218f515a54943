package resources

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"technet-admin/http-server/apierr"
	"technet-admin/internal/technet"
)

const defaultPageSize = 20

// ResourceAPI коллекция technet, реализуется technet.Resource[T].
type ResourceAPI[T any] interface {
	List(ctx context.Context, params technet.ListParams) (*technet.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item T) (*T, error)
	Update(ctx context.Context, id string, item T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Mount GET/POST {path}, GET/PUT/DELETE {path}/{id}.
func Mount[T any](router chi.Router, path string, log *slog.Logger, res ResourceAPI[T]) {
	router.Route(path, func(r chi.Router) {
		r.Get("/", List(log, res))
		r.Post("/", Create(log, res))
		r.Get("/{id}", Get(log, res))
		r.Put("/{id}", Update(log, res))
		r.Delete("/{id}", Delete(log, res))
	})
}

// List пагинированный список; передаёт page, page_size, search и прочие фильтры как есть.
func List[T any](log *slog.Logger, res ResourceAPI[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.resources.List"
		log := requestLog(log, r, op)

		q := r.URL.Query()
		params := technet.ListParams{
			Page:     1,
			PageSize: defaultPageSize,
			Search:   q.Get("search"),
			Filters:  map[string]string{},
		}
		for key, vals := range q {
			switch key {
			case "page":
				n, err := strconv.Atoi(vals[0])
				if err != nil || n < 1 {
					http.Error(w, "Invalid page", http.StatusBadRequest)
					return
				}
				params.Page = n
			case "page_size":
				n, err := strconv.Atoi(vals[0])
				if err != nil || n < 1 {
					http.Error(w, "Invalid page_size", http.StatusBadRequest)
					return
				}
				params.PageSize = n
			case "search":
			default:
				params.Filters[key] = vals[0]
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		page, err := res.List(ctx, params)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		if page.Results == nil {
			page.Results = []T{}
		}

		render.JSON(w, r, page)
	}
}

func Get[T any](log *slog.Logger, res ResourceAPI[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.resources.Get"
		log := requestLog(log, r, op)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		item, err := res.Get(ctx, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		render.JSON(w, r, item)
	}
}

func Create[T any](log *slog.Logger, res ResourceAPI[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.resources.Create"
		log := requestLog(log, r, op)

		var item T
		if err := render.DecodeJSON(r.Body, &item); err != nil {
			log.Warn("ошибка парсинга JSON", slog.String("error", err.Error()))
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		created, err := res.Create(ctx, item)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, created)
	}
}

func Update[T any](log *slog.Logger, res ResourceAPI[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.resources.Update"
		log := requestLog(log, r, op)

		var item T
		if err := render.DecodeJSON(r.Body, &item); err != nil {
			log.Warn("ошибка парсинга JSON", slog.String("error", err.Error()))
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		updated, err := res.Update(ctx, chi.URLParam(r, "id"), item)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		render.JSON(w, r, updated)
	}
}

func Delete[T any](log *slog.Logger, res ResourceAPI[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.resources.Delete"
		log := requestLog(log, r, op)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := res.Delete(ctx, chi.URLParam(r, "id")); err != nil {
			writeError(w, r, log, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func requestLog(log *slog.Logger, r *http.Request, op string) *slog.Logger {
	return log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("path", r.URL.Path),
	)
}

func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, msg := apierr.FromTechnet(err)
	if status >= http.StatusInternalServerError {
		log.Error("technet request failed", slog.String("error", err.Error()))
	} else {
		log.Warn("technet request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}

	render.Status(r, status)
	render.JSON(w, r, apierr.Response{Error: msg})
}
