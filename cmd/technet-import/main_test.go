package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"technet-admin/internal/config"
	"technet-admin/internal/service/importer"
)

var referenceBodies = map[string]string{
	"/technet/operadores/":    `[{"id_ope":1,"nombre_operador":"Claro"}]`,
	"/technet/tecnicos/":      `[{"id_unico_tecnico":7,"id_tecnico":"7","nombre":"Juan","apellido":"Perez"}]`,
	"/technet/tipodeordenes/": `[{"id_tipo_orden":3,"nombre_orden":"No definido","valor_orden":"10","valor_orden_empresa":"15"}]`,
	"/technet/dr/":            `[{"id_dr":4,"nombre_dr":"No definido","valor_dr":"0","valor_dr_empresa":"0"}]`,
	"/technet/acometidas/":    `[{"id_acometida":5,"nombre_acometida":"No definido","precio":"0"}]`,
}

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Cliente", "Cod. cliente 1", "Fecha fin actuación", "Técnico cumplimentación"},
		{"Claro", "OT-1", "05/03/2025", "Juan Perez"},
		{"Claro", "OT-1_DUP1", "05/03/2025", "Juan Perez"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "instalaciones.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestRun_DryRun(t *testing.T) {
	var bulkCalls int
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "bulk-import/") {
			bulkCalls++
		}
		body, ok := referenceBodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer backend.Close()

	cfg := &config.Config{
		Technet: config.Technet{BaseURL: backend.URL, Token: "tok", Timeout: time.Second},
		Import:  config.Import{MaxRows: 100},
	}

	var out bytes.Buffer
	err := run(context.Background(), slog.Default(), cfg, writeWorkbook(t), true, false, &out)
	require.NoError(t, err)

	assert.Zero(t, bulkCalls)
	assert.Contains(t, out.String(), "Filas leídas: 2")
	assert.Contains(t, out.String(), "Listas para importar: 2")
	assert.Contains(t, out.String(), `OT "OT-1": 2 veces`)
}

func TestRun_MissingFile(t *testing.T) {
	err := run(context.Background(), slog.Default(), &config.Config{}, filepath.Join(t.TempDir(), "nope.xlsx"), true, false, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteSummary(t *testing.T) {
	var out bytes.Buffer
	err := writeSummary(&out, &importer.ImportSummary{
		Message:          "Importación completada:\nTotal procesadas: 2\n",
		DuplicateMessage: "Se encontraron 1 números de OT duplicados:",
	}, false)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.String(), "Se encontraron 1"))
	assert.Contains(t, out.String(), "Total procesadas: 2")
}

func TestWriteSummary_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeSummary(&out, &importer.ImportSummary{Created: 3}, true))
	assert.Contains(t, out.String(), `"created": 3`)
}
