package importer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	// дней от 1899-12-30 (день 0 таблиц) до 1970-01-01
	serialEpochOffset = 25569
	msPerDay          = 86400 * 1000
)

var (
	dayFirstDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoDate      = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// NormalizeDate приводит ячейку с датой к YYYY-MM-DD. Пустая строка: дату распознать не удалось.
func NormalizeDate(raw any) string {
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		if m := dayFirstDate.FindStringSubmatch(s); m != nil {
			day, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			return fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
		}
		if isoDate.MatchString(s) {
			return s
		}
		return ""
	case float64:
		return serialDate(v)
	case float32:
		return serialDate(float64(v))
	case int:
		return serialDate(float64(v))
	case int32:
		return serialDate(float64(v))
	case int64:
		return serialDate(float64(v))
	default:
		return ""
	}
}

func serialDate(n float64) string {
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return ""
	}

	ms := (n - serialEpochOffset) * msPerDay
	if math.Abs(ms) > 8.64e15 {
		return ""
	}

	return time.UnixMilli(int64(ms)).UTC().Format(dateLayout)
}
