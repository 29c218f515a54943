package generate_excel

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"technet-admin/internal/constants"
	"technet-admin/internal/storage"
)

const (
	InstallationsSheet = "Instalaciones"
	exportPageSize     = 10000
)

type InstallationSource interface {
	ListInstallations(ctx context.Context, filter storage.InstallationFilter) ([]storage.Installation, error)
	ListTechnicians(ctx context.Context) ([]storage.Technician, error)
	ListOperators(ctx context.Context) ([]storage.Operator, error)
}

type GenerateExcelService struct {
	source InstallationSource
}

func NewGenerateService(source InstallationSource) *GenerateExcelService {
	return &GenerateExcelService{source: source}
}

// GenerateExcel выгрузка инсталляций по фильтру в один лист.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, filter storage.InstallationFilter) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	filter.Page = 0
	filter.PageSize = exportPageSize

	var (
		installations []storage.Installation
		technicians   []storage.Technician
		operators     []storage.Operator
	)

	gr, gCtx := errgroup.WithContext(ctx)
	gr.Go(func() error {
		var err error
		installations, err = g.source.ListInstallations(gCtx, filter)
		if err != nil {
			return fmt.Errorf("instalaciones: %w", err)
		}
		return nil
	})
	gr.Go(func() error {
		var err error
		technicians, err = g.source.ListTechnicians(gCtx)
		if err != nil {
			return fmt.Errorf("tecnicos: %w", err)
		}
		return nil
	})
	gr.Go(func() error {
		var err error
		operators, err = g.source.ListOperators(gCtx)
		if err != nil {
			return fmt.Errorf("operadores: %w", err)
		}
		return nil
	})
	if err := gr.Wait(); err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	techNames := make(map[int64]string, len(technicians))
	for _, t := range technicians {
		techNames[t.ID] = t.FullName()
	}
	opNames := make(map[int64]string, len(operators))
	for _, o := range operators {
		opNames[o.ID] = o.Name
	}

	records := make([][]any, 0, len(installations))
	for _, inst := range installations {
		records = append(records, []any{
			inst.OrderNumber,
			exportDate(inst.Date),
			inst.Address,
			nameOr(techNames, inst.TechnicianID),
			nameOr(opNames, inst.OperatorID),
			inst.CableMeters,
			inst.ProductSerial,
			inst.ReusedEquipment,
			inst.RemovedEquipment,
			inst.Total.InexactFloat64(),
			inst.TotalCompany.InexactFloat64(),
			inst.Notes,
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := WriteRecords(f, InstallationsSheet, constants.InstallationExportHeaders, records); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write buffer: %w", op, err)
	}

	return buf.Bytes(), nil
}

// WriteRecords пишет плоские записи в лист sheet (первый лист книги переименовывается):
// шапка со стилем и закреплённой первой строкой, дальше по строке на запись.
func WriteRecords(f *excelize.File, sheet string, headers []string, records [][]any) error {
	const op = "service.generate_excel.WriteRecords"

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return fmt.Errorf("%s: style: %w", op, err)
	}

	for i, name := range headers {
		if err := f.SetCellValue(sheet, cellName(i+1, 1), name); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if len(headers) > 0 {
		if err := f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	for r, rec := range records {
		for c, v := range rec {
			if err := f.SetCellValue(sheet, cellName(c+1, r+2), v); err != nil {
				return fmt.Errorf("%s: row %d: %w", op, r+2, err)
			}
		}
	}

	// шапка остаётся на месте при прокрутке
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("%s: panes: %w", op, err)
	}

	if len(headers) > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(headers))
		if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// exportDate YYYY-MM-DD → DD/MM/YYYY, остальное как есть.
func exportDate(s string) string {
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}

func nameOr(names map[int64]string, id int64) string {
	if n, ok := names[id]; ok {
		return n
	}
	return "-"
}
