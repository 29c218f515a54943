package importer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"technet-admin/internal/storage"
	"technet-admin/internal/technet"
)

type Submitter interface {
	BulkImport(ctx context.Context, drafts []storage.InstallationDraft) (*technet.BulkImportResult, error)
}

type RunRecorder interface {
	SaveImportRun(ctx context.Context, run storage.ImportRun) error
}

type Options struct {
	MaxRows        int
	FailurePreview int
	Defaults       Defaults
}

type Service struct {
	log       *slog.Logger
	refs      ReferenceSource
	submitter Submitter
	recorder  RunRecorder
	opts      Options
	now       func() time.Time
}

// NewService recorder может быть nil: тогда журнал импортов не ведётся.
func NewService(log *slog.Logger, refs ReferenceSource, submitter Submitter, recorder RunRecorder, opts Options) *Service {
	if opts.FailurePreview <= 0 {
		opts.FailurePreview = 5
	}

	return &Service{
		log:       log,
		refs:      refs,
		submitter: submitter,
		recorder:  recorder,
		opts:      opts,
		now:       time.Now,
	}
}

type ImportInput struct {
	Filename string
	Data     []byte
}

type PreviewResult struct {
	TotalRows        int              `json:"total_rows"`
	Rows             []TransformedRow `json:"rows"`
	Errors           []RowError       `json:"errors"`
	Warnings         []RowWarning     `json:"warnings"`
	Duplicates       []DuplicateGroup `json:"duplicates"`
	DuplicateMessage string           `json:"duplicate_message,omitempty"`
}

func (p *PreviewResult) Drafts() []storage.InstallationDraft {
	drafts := make([]storage.InstallationDraft, len(p.Rows))
	for i, r := range p.Rows {
		drafts[i] = r.Draft
	}
	return drafts
}

type ImportSummary struct {
	RunID            uuid.UUID        `json:"run_id"`
	Filename         string           `json:"filename"`
	TotalRows        int              `json:"total_rows"`
	Transformed      int              `json:"transformed"`
	Submitted        bool             `json:"submitted"`
	Total            int              `json:"total"`
	Created          int              `json:"created"`
	Failures         []RowError       `json:"failures"`
	Warnings         []RowWarning     `json:"warnings"`
	Duplicates       []DuplicateGroup `json:"duplicates"`
	DuplicateMessage string           `json:"duplicate_message,omitempty"`
	Message          string           `json:"message"`
}

// Preview разбор, справочники, преобразование и отчёт о дублях. Ничего не отправляет.
func (s *Service) Preview(ctx context.Context, in ImportInput) (*PreviewResult, error) {
	const op = "importer.Service.Preview"

	rows, err := ParseWorkbook(in.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.opts.MaxRows > 0 && len(rows) > s.opts.MaxRows {
		return nil, fmt.Errorf("%s: %d > %d: %w", op, len(rows), s.opts.MaxRows, ErrTooManyRows)
	}

	ref, err := LoadReferenceData(ctx, s.refs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	t := NewTransformer(ref, s.opts.Defaults, s.now)
	transformed, rowErrors := t.TransformAll(rows)

	res := &PreviewResult{
		TotalRows:  len(rows),
		Rows:       transformed,
		Errors:     rowErrors,
		Warnings:   collectWarnings(transformed),
		Duplicates: DuplicateReport(transformed),
	}
	res.DuplicateMessage = DuplicateMessage(res.Duplicates, len(transformed))

	s.log.Debug("spreadsheet prepared",
		slog.String("op", op),
		slog.String("filename", in.Filename),
		slog.Int("rows", res.TotalRows),
		slog.Int("transformed", len(transformed)),
		slog.Int("row_errors", len(rowErrors)),
		slog.Int("duplicate_groups", len(res.Duplicates)),
	)

	return res, nil
}

// RunImport полный импорт: все записи, включая дубли, уходят одним запросом.
// Повторный запуск с тем же файлом отправляет записи ещё раз.
func (s *Service) RunImport(ctx context.Context, in ImportInput) (*ImportSummary, error) {
	const op = "importer.Service.RunImport"

	log := s.log.With(slog.String("op", op), slog.String("filename", in.Filename))

	run := storage.ImportRun{
		ID:         uuid.New(),
		Filename:   in.Filename,
		FileSHA256: fileDigest(in.Data),
		CreatedAt:  s.now().UTC(),
	}

	prepared, err := s.Preview(ctx, in)
	if err != nil {
		run.Status = storage.ImportStatusFailed
		run.Error = err.Error()
		s.record(ctx, log, run)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary := &ImportSummary{
		RunID:            run.ID,
		Filename:         in.Filename,
		TotalRows:        prepared.TotalRows,
		Transformed:      len(prepared.Rows),
		Failures:         prepared.Errors,
		Warnings:         prepared.Warnings,
		Duplicates:       prepared.Duplicates,
		DuplicateMessage: prepared.DuplicateMessage,
	}

	run.TotalRows = summary.TotalRows
	run.Transformed = summary.Transformed
	run.DuplicateGroups = len(summary.Duplicates)

	if len(prepared.Rows) == 0 {
		summary.Message = NoRowsMessage
		run.Status = storage.ImportStatusNoRows
		run.Failed = len(summary.Failures)
		s.record(ctx, log, run)
		return summary, nil
	}

	result, err := s.submitter.BulkImport(ctx, prepared.Drafts())
	if err != nil {
		log.Error("bulk import failed", slog.String("error", err.Error()))
		run.Status = storage.ImportStatusFailed
		run.Error = err.Error()
		run.Failed = len(summary.Failures)
		s.record(ctx, log, run)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary.Submitted = true
	summary.Total = result.Total
	summary.Created = result.Created
	for _, e := range result.Errors {
		summary.Failures = append(summary.Failures, RowError{
			Row:   sourceRow(prepared.Rows, e.Row),
			Error: e.Message(),
		})
	}
	sort.SliceStable(summary.Failures, func(i, j int) bool {
		return summary.Failures[i].Row < summary.Failures[j].Row
	})
	summary.Message = SummaryMessage(summary, s.opts.FailurePreview)

	run.Status = storage.ImportStatusSubmitted
	run.Created = result.Created
	run.Failed = len(summary.Failures)
	s.record(ctx, log, run)

	log.Info("import finished",
		slog.String("run_id", run.ID.String()),
		slog.Int("total_rows", summary.TotalRows),
		slog.Int("created", summary.Created),
		slog.Int("failed", len(summary.Failures)),
	)

	return summary, nil
}

func (s *Service) record(ctx context.Context, log *slog.Logger, run storage.ImportRun) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.SaveImportRun(ctx, run); err != nil {
		log.Error("failed to save import run", slog.String("run_id", run.ID.String()), slog.String("error", err.Error()))
	}
}

// sourceRow fila бэкенда (1-based позиция в отправленном массиве) в номер строки листа.
func sourceRow(rows []TransformedRow, fila int) int {
	if fila >= 1 && fila <= len(rows) {
		return rows[fila-1].Row
	}
	return fila
}

func collectWarnings(rows []TransformedRow) []RowWarning {
	var out []RowWarning
	for _, r := range rows {
		for _, w := range r.Warnings {
			out = append(out, RowWarning{Row: r.Row, Message: w})
		}
	}
	return out
}

func fileDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
