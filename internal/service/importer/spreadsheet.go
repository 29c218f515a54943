package importer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/record"
	"github.com/shakinm/xlsReader/xls/structure"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// ParseWorkbook первый лист книги как набор строк. Первая непустая строка: заголовок.
func ParseWorkbook(data []byte) ([]Row, error) {
	const op = "importer.ParseWorkbook"

	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyFile)
	}

	var (
		cells [][]any
		err   error
	)

	switch {
	case bytes.HasPrefix(data, zipMagic):
		cells, err = readXLSX(data)
	case bytes.HasPrefix(data, oleMagic):
		cells, err = readXLS(data)
	default:
		return nil, fmt.Errorf("%s: %w", op, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrUnreadableWorkbook, err)
	}

	rows := projectRows(cells)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyFile)
	}

	return rows, nil
}

func readXLSX(data []byte) ([][]any, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	sheet := sheets[0]

	// сырые значения: даты приходят серийным номером, а не в формате ячейки
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	out := make([][]any, len(raw))
	for r, cols := range raw {
		out[r] = make([]any, len(cols))
		for c, val := range cols {
			if val == "" {
				continue
			}
			name, _ := excelize.CoordinatesToCellName(c+1, r+1)
			typ, err := f.GetCellType(sheet, name)
			if err != nil {
				out[r][c] = val
				continue
			}
			out[r][c] = xlsxValue(typ, val)
		}
	}

	return out, nil
}

func xlsxValue(typ excelize.CellType, val string) any {
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if n, err := strconv.ParseFloat(val, 64); err == nil {
			return n
		}
	case excelize.CellTypeDate:
		if n, err := strconv.ParseFloat(val, 64); err == nil {
			return n
		}
		// t="d": ISO 8601, от времени остаётся только дата
		if len(val) >= len(dateLayout) {
			if _, err := time.Parse(dateLayout, val[:len(dateLayout)]); err == nil {
				return val[:len(dateLayout)]
			}
		}
	case excelize.CellTypeBool:
		return val == "1" || strings.EqualFold(val, "true")
	}
	return val
}

func readXLS(data []byte) ([][]any, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if wb.GetNumberSheets() == 0 {
		return nil, fmt.Errorf("no sheets")
	}

	sheet, err := wb.GetSheet(0)
	if err != nil {
		return nil, err
	}

	var out [][]any
	for i := 0; i < sheet.GetNumberRows(); i++ {
		row, err := sheet.GetRow(i)
		if err != nil || row == nil {
			out = append(out, nil)
			continue
		}

		cols := row.GetCols()
		vals := make([]any, len(cols))
		for c, col := range cols {
			if col == nil {
				continue
			}
			vals[c] = xlsValue(col)
		}
		out = append(out, vals)
	}

	return out, nil
}

// xlsValue значение по типу записи BIFF: числа только из NUMBER/RK,
// строковые ячейки остаются строками даже если похожи на число.
func xlsValue(cell structure.CellData) any {
	switch cell.(type) {
	case *record.Number, *record.Rk:
		return cell.GetFloat64()
	case *record.Blank, *record.FakeBlank:
		return nil
	case *record.BoolErr:
		switch s := cell.GetString(); s {
		case "TRUE":
			return true
		case "FALSE":
			return false
		default:
			return s
		}
	}

	if s := cell.GetString(); s != "" {
		return s
	}
	return nil
}

// projectRows строки в записи по заголовку. Пустые ячейки пропускаются,
// полностью пустые строки отбрасываются, повторяющиеся заголовки получают суффикс _1, _2.
func projectRows(cells [][]any) []Row {
	headerIdx := -1
	for i, r := range cells {
		if !blankRow(r) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	header := headerKeys(cells[headerIdx])

	var rows []Row
	for _, r := range cells[headerIdx+1:] {
		var row Row
		for c, v := range r {
			if v == nil || c >= len(header) {
				continue
			}
			if s, ok := v.(string); ok {
				if s == "" {
					continue
				}
				// xls/xlsx из macOS хранят "ó" разложенным (NFD)
				v = norm.NFC.String(s)
			}
			row.Set(header[c], v)
		}
		if row.Len() > 0 {
			rows = append(rows, row)
		}
	}

	return rows
}

func headerKeys(cells []any) []string {
	keys := make([]string, len(cells))
	seen := make(map[string]int)

	for i, v := range cells {
		key := norm.NFC.String(cellText(v))
		if key == "" {
			key = "__EMPTY"
		}
		if n, ok := seen[key]; ok {
			seen[key] = n + 1
			key = key + "_" + strconv.Itoa(n+1)
		} else {
			seen[key] = 0
		}
		keys[i] = key
	}

	return keys
}

func blankRow(r []any) bool {
	for _, v := range r {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		return false
	}
	return true
}
