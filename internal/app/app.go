package app

import (
	"context"
	"fmt"
	"log/slog"

	"technet-admin/internal/config"
	"technet-admin/internal/service/importer"
	"technet-admin/internal/session"
	"technet-admin/internal/storage/mysql"
	"technet-admin/internal/technet"
)

// Technet клиент с сессией. Без токена в конфиге пробует войти по логину и паролю.
func Technet(ctx context.Context, log *slog.Logger, cfg config.Technet) (*technet.API, error) {
	const op = "app.Technet"

	client := technet.New(cfg.BaseURL, cfg.Timeout, session.New(cfg.Token))

	if cfg.Token == "" && cfg.Username != "" {
		res, err := client.Login(ctx, cfg.Username, cfg.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: login: %w", op, err)
		}
		log.Info("technet login ok", slog.String("user", res.Username))
	}

	return technet.NewAPI(client, cfg.PageSize), nil
}

// Journal журнал импортов в MySQL. nil без ошибки, если БД не настроена.
func Journal(ctx context.Context, cfg config.DB) (*mysql.Storage, error) {
	const op = "app.Journal"

	if !cfg.Enabled() {
		return nil, nil
	}

	store, err := mysql.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return store, nil
}

// Importer сервис импорта. journal может быть nil.
func Importer(log *slog.Logger, api *technet.API, journal *mysql.Storage, cfg config.Import) *importer.Service {
	var recorder importer.RunRecorder
	if journal != nil {
		recorder = journal
	}

	return importer.NewService(log, api, api, recorder, ImportOptions(cfg))
}

func ImportOptions(cfg config.Import) importer.Options {
	return importer.Options{
		MaxRows:        cfg.MaxRows,
		FailurePreview: cfg.FailurePreview,
		Defaults: importer.Defaults{
			TechnicianID: cfg.DefaultTechnicianID,
			OperatorID:   cfg.DefaultOperatorID,
		},
	}
}

// MaxUploadBytes лимит тела multipart-запроса.
func MaxUploadBytes(cfg config.Import) int64 {
	mb := cfg.MaxFileMB
	if mb <= 0 {
		mb = 25
	}
	return int64(mb) << 20
}
