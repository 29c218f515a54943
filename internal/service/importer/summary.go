package importer

import (
	"fmt"
	"strconv"
	"strings"
)

const NoRowsMessage = "No se encontraron instalaciones para importar."

// SummaryMessage итоговое сообщение пользователю: счётчики и первые preview ошибок.
func SummaryMessage(s *ImportSummary, preview int) string {
	var b strings.Builder

	b.WriteString("Importación completada:\n")
	fmt.Fprintf(&b, "Total procesadas: %d\n", s.Total)
	fmt.Fprintf(&b, "Creadas exitosamente: %d\n", s.Created)

	if len(s.Failures) > 0 {
		fmt.Fprintf(&b, "\nErrores: %d\n", len(s.Failures))

		shown := s.Failures
		if len(shown) > preview {
			shown = shown[:preview]
		}
		for _, f := range shown {
			fmt.Fprintf(&b, "- Fila %d: %s\n", f.Row, f.Error)
		}
		if rest := len(s.Failures) - len(shown); rest > 0 {
			fmt.Fprintf(&b, "... y %d errores más\n", rest)
		}
	}

	return b.String()
}

// DuplicateMessage предупреждение о повторяющихся OT. Пустая строка, если дублей нет.
func DuplicateMessage(groups []DuplicateGroup, total int) string {
	if len(groups) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Se encontraron %d números de OT duplicados:\n\n", len(groups))
	for _, g := range groups {
		rows := make([]string, len(g.Rows))
		for i, r := range g.Rows {
			rows[i] = strconv.Itoa(r)
		}
		fmt.Fprintf(&b, "• OT %q: %d veces (filas: %s)\n", g.Base, g.Count, strings.Join(rows, ", "))
	}
	fmt.Fprintf(&b, "\n\nSe importarán TODAS las instalaciones (%d en total).", total)
	b.WriteString("\nLas duplicadas se agruparán visualmente en el listado.")

	return b.String()
}
