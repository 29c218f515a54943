package importer

import (
	"fmt"
	"time"

	"technet-admin/internal/constants"
	"technet-admin/internal/storage"
)

// RowError строка, которая не попала в отправку или была отклонена бэкендом.
// Row: номер строки данных (1 = первая строка после заголовка).
type RowError struct {
	Row   int    `json:"fila"`
	Error string `json:"error"`
}

type RowWarning struct {
	Row     int    `json:"fila"`
	Message string `json:"mensaje"`
}

// TransformedRow готовая запись и её исходная строка.
type TransformedRow struct {
	Row      int                       `json:"fila"`
	Draft    storage.InstallationDraft `json:"instalacion"`
	Warnings []string                  `json:"advertencias,omitempty"`
}

type Defaults struct {
	TechnicianID int64
	OperatorID   int64
}

// Transformer превращает строки листа в записи по снимку справочников.
type Transformer struct {
	ref      storage.ReferenceData
	defaults Defaults
	now      func() time.Time
}

func NewTransformer(ref storage.ReferenceData, defaults Defaults, now func() time.Time) *Transformer {
	if now == nil {
		now = time.Now
	}
	return &Transformer{ref: ref, defaults: defaults, now: now}
}

// TransformAll один проход по всем строкам, ошибки строк не останавливают обработку.
func (t *Transformer) TransformAll(rows []Row) ([]TransformedRow, []RowError) {
	drafts := make([]TransformedRow, 0, len(rows))
	var failed []RowError

	for i, row := range rows {
		res, rowErr := t.TransformRow(i, row)
		if rowErr != nil {
			failed = append(failed, *rowErr)
			continue
		}
		drafts = append(drafts, res)
	}

	return drafts, failed
}

// TransformRow index: позиция строки в листе (0 = первая строка данных).
func (t *Transformer) TransformRow(index int, row Row) (res TransformedRow, rowErr *RowError) {
	rowNum := index + 1

	defer func() {
		if r := recover(); r != nil {
			res = TransformedRow{}
			rowErr = &RowError{Row: rowNum, Error: fmt.Sprintf("error procesando fila: %v", r)}
		}
	}()

	operatorValue, _ := ResolveColumn(row, constants.ColumnOperator)
	orderValue, _ := ResolveColumn(row, constants.ColumnOrderNumber)
	dateValue, _ := ResolveColumn(row, constants.ColumnDate)
	technicianValue, _ := ResolveColumn(row, constants.ColumnTechnician)
	serialValue, _ := ResolveColumn(row, constants.ColumnSerial)
	notesValue, _ := ResolveColumn(row, constants.ColumnNotes)
	categoryValue, _ := ResolveColumn(row, constants.ColumnCategory)

	var warnings []string

	technician, err := t.resolveTechnician(textOr(technicianValue, ""), &warnings)
	if err != nil {
		return TransformedRow{}, &RowError{Row: rowNum, Error: err.Error()}
	}

	operator, err := t.resolveOperator(textOr(operatorValue, ""), &warnings)
	if err != nil {
		return TransformedRow{}, &RowError{Row: rowNum, Error: err.Error()}
	}

	dr, err := DefaultDr(t.ref.DrTypes)
	if err != nil {
		return TransformedRow{}, &RowError{Row: rowNum, Error: err.Error()}
	}
	orderType, err := DefaultOrderType(t.ref.OrderTypes)
	if err != nil {
		return TransformedRow{}, &RowError{Row: rowNum, Error: err.Error()}
	}
	acometida, err := DefaultAcometida(t.ref.Acometidas)
	if err != nil {
		return TransformedRow{}, &RowError{Row: rowNum, Error: err.Error()}
	}

	date := NormalizeDate(dateValue)
	if date == "" {
		date = t.now().UTC().Format(dateLayout)
		if dateValue != nil {
			warnings = append(warnings, fmt.Sprintf("fecha %q no reconocida, se usó %s", textOr(dateValue, ""), date))
		} else {
			warnings = append(warnings, fmt.Sprintf("sin fecha, se usó %s", date))
		}
	}

	draft := storage.InstallationDraft{
		Date:              date,
		TechnicianID:      technician.ID,
		OperatorID:        operator.ID,
		Address:           constants.DefaultText,
		OrderNumber:       textOr(orderValue, constants.DefaultText),
		ProductSerial:     textOr(serialValue, constants.DefaultText),
		Category:          textOr(categoryValue, constants.DefaultText),
		DrID:              dr.ID,
		DrSerial:          "",
		ReusedEquipment:   constants.DefaultText,
		RemovedEquipment:  constants.DefaultText,
		OrderTypeID:       orderType.ID,
		CableMeters:       constants.DefaultCableMeters,
		AcometidaID:       acometida.ID,
		Notes:             textOr(notesValue, constants.DefaultText),
		DrPrice:           dr.Price,
		OrderPrice:        orderType.Price,
		OrderPriceCompany: orderType.PriceCompany,
		DrPriceCompany:    dr.PriceCompany,
	}

	return TransformedRow{Row: rowNum, Draft: draft, Warnings: warnings}, nil
}

func (t *Transformer) resolveTechnician(name string, warnings *[]string) (storage.Technician, error) {
	if name != "" {
		tec, tier := MatchTechnician(name, t.ref.Technicians)
		switch tier {
		case MatchExact, MatchIDStripped:
			return tec, nil
		case MatchSurname:
			*warnings = append(*warnings, fmt.Sprintf("técnico %q asignado por apellido a %s", name, tec.FullName()))
			return tec, nil
		}
	}

	def, err := DefaultTechnician(t.ref.Technicians, t.defaults.TechnicianID)
	if err != nil {
		return def, err
	}

	if name == "" {
		*warnings = append(*warnings, fmt.Sprintf("sin técnico, se asignó %s", def.FullName()))
		return def, nil
	}

	msg := fmt.Sprintf("técnico %q no encontrado, se asignó %s", name, def.FullName())
	if hint := SuggestTechnician(name, t.ref.Technicians); hint != "" {
		msg += fmt.Sprintf(" (¿%s?)", hint)
	}
	*warnings = append(*warnings, msg)

	return def, nil
}

func (t *Transformer) resolveOperator(name string, warnings *[]string) (storage.Operator, error) {
	if op, ok := MatchOperator(name, t.ref.Operators); ok {
		return op, nil
	}

	def, err := DefaultOperator(t.ref.Operators, t.defaults.OperatorID)
	if err != nil {
		return def, err
	}

	if name == "" {
		*warnings = append(*warnings, fmt.Sprintf("sin operador, se asignó %s", def.Name))
	} else {
		*warnings = append(*warnings, fmt.Sprintf("operador %q no encontrado, se asignó %s", name, def.Name))
	}

	return def, nil
}
