package technet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"technet-admin/internal/storage"
)

// BulkRowError ошибка бэкенда по одной записи. Fila: 1-based позиция в отправленном массиве.
type BulkRowError struct {
	Row    int             `json:"fila"`
	Error  string          `json:"error,omitempty"`
	Errors json.RawMessage `json:"errores,omitempty"`
}

// Message текст ошибки: error, иначе ошибки валидации как компактный JSON.
func (e BulkRowError) Message() string {
	if e.Error != "" {
		return e.Error
	}

	raw := bytes.TrimSpace(e.Errors)
	if len(raw) == 0 || string(raw) == "null" {
		return "error desconocido"
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}

	return buf.String()
}

type BulkImportResult struct {
	Total   int            `json:"total"`
	Created int            `json:"creadas"`
	Errors  []BulkRowError `json:"errores"`
}

type bulkImportRequest struct {
	Installations []storage.InstallationDraft `json:"instalaciones"`
}

// BulkImport отправляет все записи одним запросом. Без повторов.
// 400 с телом результата (ни одна запись не создана): это результат, не ошибка.
func (c *Client) BulkImport(ctx context.Context, drafts []storage.InstallationDraft) (*BulkImportResult, error) {
	const op = "technet.BulkImport"

	if drafts == nil {
		drafts = []storage.InstallationDraft{}
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.url(pathBulkImport, nil), bulkImportRequest{Installations: drafts})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	status, data, err := c.send(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if status >= 200 && status < 300 {
		var result BulkImportResult
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("%s: decode result: %w", op, err)
		}
		return &result, nil
	}

	if status == http.StatusBadRequest {
		if result, ok := decodeBulkResult(data); ok {
			return result, nil
		}
	}

	return nil, fmt.Errorf("%s: %w", op, newAPIError(status, data))
}

func decodeBulkResult(data []byte) (*BulkImportResult, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, false
	}
	if _, ok := fields["creadas"]; !ok {
		return nil, false
	}

	var result BulkImportResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}

	return &result, true
}
