package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/schollz/closestmatch"

	"technet-admin/internal/constants"
	"technet-admin/internal/storage"
)

// MatchTier по какому правилу найден техник.
type MatchTier int

const (
	MatchNone MatchTier = iota
	MatchExact
	MatchIDStripped
	MatchSurname
)

var (
	// "84128 - JEISON DUBAN", "1. Mauricio Espejo"
	sheetNamePrefix = regexp.MustCompile(`^\d+[.\-\s]+`)
	// код внутри имени в справочнике: "84128-Jeison Duban"
	refNamePrefix = regexp.MustCompile(`^\d+[\-\s]+`)
)

// MatchOperator точное совпадение по имени оператора без учёта регистра.
func MatchOperator(name string, operators []storage.Operator) (storage.Operator, bool) {
	candidate := strings.ToLower(strings.TrimSpace(name))
	if candidate == "" {
		return storage.Operator{}, false
	}

	for _, op := range operators {
		if strings.ToLower(op.Name) == candidate {
			return op, true
		}
	}

	return storage.Operator{}, false
}

// MatchTechnician ищет первого техника по списку, подходящего под любое из правил:
// полное имя, полное имя без кода в имени справочника, фамилия как подстрока.
// Совпадение по фамилии неоднозначно при однофамильцах, выигрывает первый в списке.
func MatchTechnician(name string, technicians []storage.Technician) (storage.Technician, MatchTier) {
	candidate := strings.TrimSpace(sheetNamePrefix.ReplaceAllString(strings.TrimSpace(name), ""))
	candidate = strings.ToLower(candidate)
	if candidate == "" {
		return storage.Technician{}, MatchNone
	}

	for _, tec := range technicians {
		if tier := technicianTier(candidate, tec); tier != MatchNone {
			return tec, tier
		}
	}

	return storage.Technician{}, MatchNone
}

func technicianTier(candidate string, tec storage.Technician) MatchTier {
	if strings.ToLower(tec.FullName()) == candidate {
		return MatchExact
	}

	stripped := refNamePrefix.ReplaceAllString(tec.FirstName, "")
	if strings.ToLower(stripped+" "+tec.LastName) == candidate {
		return MatchIDStripped
	}

	surname := strings.ToLower(tec.LastName)
	if surname != "" && strings.Contains(candidate, surname) {
		return MatchSurname
	}

	return MatchNone
}

// SuggestTechnician ближайшее по написанию полное имя. Только для подсказок,
// на выбор техника не влияет.
func SuggestTechnician(name string, technicians []storage.Technician) string {
	candidate := strings.ToLower(strings.TrimSpace(sheetNamePrefix.ReplaceAllString(strings.TrimSpace(name), "")))
	if candidate == "" || len(technicians) == 0 {
		return ""
	}

	byKey := make(map[string]string, len(technicians))
	keys := make([]string, 0, len(technicians))
	for _, tec := range technicians {
		key := strings.ToLower(tec.FullName())
		if _, ok := byKey[key]; ok {
			continue
		}
		byKey[key] = tec.FullName()
		keys = append(keys, key)
	}

	cm := closestmatch.New(keys, []int{2, 3})
	return byKey[cm.Closest(candidate)]
}

func DefaultTechnician(technicians []storage.Technician, preferredID int64) (storage.Technician, error) {
	if len(technicians) == 0 {
		return storage.Technician{}, fmt.Errorf("técnicos: %w", ErrMissingReference)
	}
	for _, tec := range technicians {
		if preferredID != 0 && tec.ID == preferredID {
			return tec, nil
		}
	}
	return technicians[0], nil
}

func DefaultOperator(operators []storage.Operator, preferredID int64) (storage.Operator, error) {
	if len(operators) == 0 {
		return storage.Operator{}, fmt.Errorf("operadores: %w", ErrMissingReference)
	}
	for _, op := range operators {
		if preferredID != 0 && op.ID == preferredID {
			return op, nil
		}
	}
	return operators[0], nil
}

func DefaultDr(drs []storage.DrType) (storage.DrType, error) {
	dr, ok := undefinedOrFirst(drs, func(d storage.DrType) string { return d.Name })
	if !ok {
		return dr, fmt.Errorf("DR: %w", ErrMissingReference)
	}
	return dr, nil
}

func DefaultOrderType(types []storage.OrderType) (storage.OrderType, error) {
	ot, ok := undefinedOrFirst(types, func(t storage.OrderType) string { return t.Name })
	if !ok {
		return ot, fmt.Errorf("tipos de orden: %w", ErrMissingReference)
	}
	return ot, nil
}

func DefaultAcometida(acometidas []storage.Acometida) (storage.Acometida, error) {
	a, ok := undefinedOrFirst(acometidas, func(a storage.Acometida) string { return a.Name })
	if !ok {
		return a, fmt.Errorf("acometidas: %w", ErrMissingReference)
	}
	return a, nil
}

// undefinedOrFirst запись с "no definido" в имени, иначе первая.
func undefinedOrFirst[T any](items []T, name func(T) string) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}

	for _, item := range items {
		if strings.Contains(strings.ToLower(name(item)), constants.UndefinedMarker) {
			return item, true
		}
	}

	return items[0], true
}
