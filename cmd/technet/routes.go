package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"technet-admin/http-server/generate-report/generate-excel"
	getimportruns "technet-admin/http-server/import-runs/get"
	getinstallations "technet-admin/http-server/installations/get"
	"technet-admin/http-server/installations/upload"
	"technet-admin/http-server/resources"
	"technet-admin/internal/config"
	"technet-admin/internal/middleware/auth"
	"technet-admin/internal/service/importer"
	"technet-admin/internal/storage"
	"technet-admin/internal/technet"
)

type dependencies struct {
	api      *technet.API
	importer *importer.Service
	excel    generate_excel.GenerateExcelHandler
	runs     getimportruns.ImportRunLister
	maxBytes int64
}

func routes(cfg config.Config, log *slog.Logger, deps dependencies) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	//ip пользователя
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api", func(r chi.Router) {
		r.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

		// импорт из excel
		r.Post("/instalaciones/import", upload.ImportInstallations(log, deps.importer, deps.maxBytes))
		r.Post("/instalaciones/import/preview", upload.PreviewImport(log, deps.importer, deps.maxBytes))
		r.Get("/instalaciones/grouped", getinstallations.GetGroupedInstallations(log, deps.api))

		r.Get("/report/excel", generate_excel.GenerateReportExcel(log, deps.excel))
		r.Get("/imports", getimportruns.GetImportRuns(log, deps.runs))

		// справочники и инсталляции как есть
		resources.Mount[storage.Operator](r, "/operadores", log, deps.api.Operators)
		resources.Mount[storage.Technician](r, "/tecnicos", log, deps.api.Technicians)
		resources.Mount[storage.OrderType](r, "/tipodeordenes", log, deps.api.OrderTypes)
		resources.Mount[storage.DrType](r, "/dr", log, deps.api.DrTypes)
		resources.Mount[storage.Acometida](r, "/acometidas", log, deps.api.Acometidas)
		resources.Mount[storage.Product](r, "/productos", log, deps.api.Products)
		resources.Mount[storage.Discount](r, "/descuentos", log, deps.api.Discounts)
		resources.Mount[storage.Installation](r, "/instalaciones", log, deps.api.Installations)
	})

	frontend(router, log, cfg.FrontendDir)

	return router
}

// frontend статика собранного vue, если папка есть.
func frontend(router chi.Router, log *slog.Logger, dir string) {
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); err != nil {
		log.Warn("frontend dir not found, static disabled", slog.String("path", dir))
		return
	}

	fileServer := http.FileServer(http.Dir(dir))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	// SPA fallback: любой другой путь → index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	})
}
