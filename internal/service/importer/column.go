package importer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Row строка листа: ключи: текст заголовков в порядке колонок.
// Пустые ячейки в строку не попадают.
type Row struct {
	keys   []string
	values map[string]any
}

func (r *Row) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r Row) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r Row) Keys() []string {
	return r.keys
}

func (r Row) Len() int {
	return len(r.keys)
}

func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.values)
}

// ResolveColumn для каждого кандидата по порядку: сначала точный ключ,
// затем ключ без учёта регистра (первый по порядку колонок).
func ResolveColumn(row Row, candidates []string) (any, bool) {
	for _, name := range candidates {
		if v, ok := row.values[name]; ok {
			return v, true
		}

		lower := strings.ToLower(name)
		for _, key := range row.keys {
			if strings.ToLower(key) == lower {
				return row.values[key], true
			}
		}
	}

	return nil, false
}

// cellText значение ячейки как текст, без подстановок.
func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// textOr строковое значение ячейки; пустое/нулевое значение заменяется на fallback.
func textOr(v any, fallback string) string {
	switch val := v.(type) {
	case nil:
		return fallback
	case string:
		if val == "" {
			return fallback
		}
		return val
	case float64:
		if val == 0 {
			return fallback
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		if val == 0 {
			return fallback
		}
		return strconv.Itoa(val)
	case int64:
		if val == 0 {
			return fallback
		}
		return strconv.FormatInt(val, 10)
	case bool:
		if !val {
			return fallback
		}
		return "true"
	default:
		return fmt.Sprint(val)
	}
}
