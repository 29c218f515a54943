package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"technet-admin/internal/app"
	"technet-admin/internal/config"
	"technet-admin/internal/logger"
	"technet-admin/internal/service/importer"
)

func main() {
	file := flag.String("file", "", "путь к .xlsx/.xls с инсталляциями")
	dryRun := flag.Bool("dry-run", false, "только разобрать и показать результат, без отправки")
	asJSON := flag.Bool("json", false, "вывести результат в JSON")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: technet-import -file instalaciones.xlsx [-dry-run] [-json]")
		os.Exit(2)
	}

	cfg := config.MustConfig()

	// stdout занят отчётом, лог в stderr
	log := logger.New(cfg.Env, os.Stderr, cfg.ErrorsLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, cfg, *file, *dryRun, *asJSON, os.Stdout); err != nil {
		log.Error("import failed", slog.String("file", *file), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, cfg *config.Config, path string, dryRun, asJSON bool, out io.Writer) error {
	const op = "technet-import.run"

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	in := importer.ImportInput{Filename: filepath.Base(path), Data: data}

	api, err := app.Technet(ctx, log, cfg.Technet)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if dryRun {
		svc := app.Importer(log, api, nil, cfg.Import)
		preview, err := svc.Preview(ctx, in)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return writePreview(out, preview, asJSON)
	}

	journal, err := app.Journal(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if journal != nil {
		defer journal.Close()
	}

	svc := app.Importer(log, api, journal, cfg.Import)
	summary, err := svc.RunImport(ctx, in)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return writeSummary(out, summary, asJSON)
}

func writePreview(out io.Writer, p *importer.PreviewResult, asJSON bool) error {
	if asJSON {
		return encode(out, p)
	}

	fmt.Fprintf(out, "Filas leídas: %d\n", p.TotalRows)
	fmt.Fprintf(out, "Listas para importar: %d\n", len(p.Rows))

	if len(p.Errors) > 0 {
		fmt.Fprintf(out, "\nErrores: %d\n", len(p.Errors))
		for _, e := range p.Errors {
			fmt.Fprintf(out, "- Fila %d: %s\n", e.Row, e.Error)
		}
	}
	if len(p.Warnings) > 0 {
		fmt.Fprintf(out, "\nAdvertencias: %d\n", len(p.Warnings))
		for _, w := range p.Warnings {
			fmt.Fprintf(out, "- Fila %d: %s\n", w.Row, w.Message)
		}
	}
	if p.DuplicateMessage != "" {
		fmt.Fprintf(out, "\n%s\n", p.DuplicateMessage)
	}

	return nil
}

func writeSummary(out io.Writer, s *importer.ImportSummary, asJSON bool) error {
	if asJSON {
		return encode(out, s)
	}

	if s.DuplicateMessage != "" {
		fmt.Fprintf(out, "%s\n\n", s.DuplicateMessage)
	}
	fmt.Fprintln(out, s.Message)

	return nil
}

func encode(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
