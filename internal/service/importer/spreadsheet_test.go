package importer

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseWorkbook_XLSX(t *testing.T) {
	data := buildWorkbook(t,
		[]string{"Cliente", "Cod. cliente 1", "Fecha fin actuación", "N/S", "Cliente"},
		[][]any{
			{"Claro", 1001, 45000.0, "0012", "dup"},
			{nil, nil, nil, nil, nil},
			{"Movistar", "OT-2", "15/03/2024", nil, nil},
		},
	)

	rows, err := ParseWorkbook(data)
	require.NoError(t, err)
	require.Len(t, rows, 2, "blank rows are skipped")

	first := rows[0]
	assert.Equal(t, []string{"Cliente", "Cod. cliente 1", "Fecha fin actuación", "N/S", "Cliente_1"}, first.Keys())

	v, _ := first.Get("Cod. cliente 1")
	assert.Equal(t, 1001.0, v)
	v, _ = first.Get("Fecha fin actuación")
	assert.Equal(t, "2023-03-15", NormalizeDate(v))
	v, _ = first.Get("N/S")
	assert.Equal(t, "0012", v, "text cells stay text")

	second := rows[1]
	_, ok := second.Get("N/S")
	assert.False(t, ok, "empty cells are omitted")
	v, _ = second.Get("Cod. cliente 1")
	assert.Equal(t, "OT-2", v)
}

func TestParseWorkbook_OnlyFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Cliente"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "Claro"))
	_, err := f.NewSheet("Otra")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Otra", "A1", "Cliente"))
	require.NoError(t, f.SetCellValue("Otra", "A2", "Movistar"))
	require.NoError(t, f.SetCellValue("Otra", "A3", "Tigo"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ParseWorkbook(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	v, _ := rows[0].Get("Cliente")
	assert.Equal(t, "Claro", v)
}

func TestParseWorkbook_HeaderOnlyIsEmpty(t *testing.T) {
	data := buildWorkbook(t, []string{"Cliente", "N/S"}, nil)

	_, err := ParseWorkbook(data)
	assert.True(t, errors.Is(err, ErrEmptyFile))
}

func TestParseWorkbook_Errors(t *testing.T) {
	_, err := ParseWorkbook(nil)
	assert.True(t, errors.Is(err, ErrEmptyFile))

	_, err = ParseWorkbook([]byte("fecha;cliente\n1;2"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = ParseWorkbook([]byte("PK\x03\x04not really a zip"))
	assert.True(t, errors.Is(err, ErrUnreadableWorkbook))
}

func TestProjectRows_EmptyHeaderAndTrailingCells(t *testing.T) {
	rows := projectRows([][]any{
		nil,
		{"A", nil, "A"},
		{1.0, "x", 3.0, "beyond header"},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"A", "__EMPTY", "A_1"}, rows[0].Keys())
}

func TestProjectRows_DecomposedAccents(t *testing.T) {
	// "Técnico cumplimentación" с комбинируемыми акцентами
	header := "Te\u0301cnico cumplimentacio\u0301n"
	rows := projectRows([][]any{
		{header},
		{"Jose\u0301 Pe\u0301rez"},
	})

	require.Len(t, rows, 1)

	v, ok := ResolveColumn(rows[0], []string{"Técnico cumplimentación"})
	require.True(t, ok)
	assert.Equal(t, "José Pérez", v)
}

func TestParseWorkbook_XLS(t *testing.T) {
	// testdata/instalaciones.xls: BIFF8, строки LABEL, дата NUMBER, серия RK
	data, err := os.ReadFile("testdata/instalaciones.xls")
	require.NoError(t, err)

	rows, err := ParseWorkbook(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"Cliente", "Cod. cliente 1", "Fecha fin actuación",
		"Técnico cumplimentación", "N/S", "Descripción",
	}, rows[0].Keys())

	v, _ := rows[0].Get("Cod. cliente 1")
	assert.Equal(t, "1234567890123456789", v, "numeric-looking text stays text")
	v, _ = rows[0].Get("N/S")
	assert.Equal(t, "48E5", v)
	v, _ = rows[0].Get("Fecha fin actuación")
	assert.Equal(t, 45731.0, v)

	v, _ = rows[1].Get("N/S")
	assert.Equal(t, 998877.0, v, "RK integers are numbers")
	_, ok := rows[1].Get("Descripción")
	assert.False(t, ok)

	tr := NewTransformer(testReference(), Defaults{}, fixedNow)
	drafts, failures := tr.TransformAll(rows)
	require.Empty(t, failures)
	require.Len(t, drafts, 2)

	first := drafts[0].Draft
	assert.Equal(t, "1234567890123456789", first.OrderNumber)
	assert.Equal(t, "48E5", first.ProductSerial)
	assert.Equal(t, "2025-03-15", first.Date)
	assert.Equal(t, "instalación nueva", first.Notes)

	second := drafts[1].Draft
	assert.Equal(t, "0012_DUP1", second.OrderNumber)
	assert.Equal(t, "998877", second.ProductSerial)
	assert.Equal(t, "2025-03-05", second.Date)
}

func TestXLSXValue(t *testing.T) {
	assert.Equal(t, 45000.0, xlsxValue(excelize.CellTypeNumber, "45000"))
	assert.Equal(t, 45000.0, xlsxValue(excelize.CellTypeDate, "45000"))
	assert.Equal(t, "2024-03-15", xlsxValue(excelize.CellTypeDate, "2024-03-15T00:00:00Z"))
	assert.Equal(t, "2024-03-15", NormalizeDate(xlsxValue(excelize.CellTypeDate, "2024-03-15T10:30:00")))
	assert.Equal(t, "0012", xlsxValue(excelize.CellTypeSharedString, "0012"))
	assert.Equal(t, true, xlsxValue(excelize.CellTypeBool, "1"))
}
