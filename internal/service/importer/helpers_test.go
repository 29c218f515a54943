package importer

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"technet-admin/internal/storage"
)

var fixedNow = func() time.Time {
	return time.Date(2025, 6, 1, 22, 30, 0, 0, time.UTC)
}

func testReference() storage.ReferenceData {
	return storage.ReferenceData{
		Operators: []storage.Operator{
			{ID: 1, Name: "Movistar"},
			{ID: 2, Name: "Claro"},
		},
		Technicians: []storage.Technician{
			{ID: 10, Code: "1", FirstName: "Mauricio", LastName: "Espejo"},
			{ID: 11, Code: "84128", FirstName: "Jeison Duban", LastName: "Londoño"},
			{ID: 12, Code: "3", FirstName: "77-Carlos", LastName: "Ruiz"},
		},
		OrderTypes: []storage.OrderType{
			{ID: 20, Name: "Alta", Price: decimal.NewFromInt(50000), PriceCompany: decimal.NewFromInt(70000)},
			{ID: 21, Name: "No definido", Price: decimal.NewFromInt(1000), PriceCompany: decimal.NewFromInt(2000)},
		},
		DrTypes: []storage.DrType{
			{ID: 30, Name: "DR - No Definido", Price: decimal.RequireFromString("12.50"), PriceCompany: decimal.RequireFromString("25.00")},
		},
		Acometidas: []storage.Acometida{
			{ID: 40, Name: "Aérea", Price: decimal.NewFromInt(8000)},
		},
	}
}

type staticRefs struct {
	ref storage.ReferenceData
	err error
}

func (s staticRefs) ListOperators(context.Context) ([]storage.Operator, error) {
	return s.ref.Operators, s.err
}

func (s staticRefs) ListTechnicians(context.Context) ([]storage.Technician, error) {
	return s.ref.Technicians, nil
}

func (s staticRefs) ListOrderTypes(context.Context) ([]storage.OrderType, error) {
	return s.ref.OrderTypes, nil
}

func (s staticRefs) ListDrTypes(context.Context) ([]storage.DrType, error) {
	return s.ref.DrTypes, nil
}

func (s staticRefs) ListAcometidas(context.Context) ([]storage.Acometida, error) {
	return s.ref.Acometidas, nil
}

func newRow(pairs ...any) Row {
	var r Row
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i].(string), pairs[i+1])
	}
	return r
}

// buildWorkbook xlsx в памяти: первая строка: заголовок, nil: пустая ячейка.
func buildWorkbook(t *testing.T, header []string, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for c, h := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	return buf.Bytes()
}
