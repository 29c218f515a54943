package importer

import (
	"regexp"

	"github.com/shopspring/decimal"

	"technet-admin/internal/storage"
)

// суффиксы, которые бэкенд добавляет к номеру OT: _DUP1, _AGILETV, _ABC2
var orderSuffix = regexp.MustCompile(`_(DUP\d+|AGILETV|[A-Z]+\d*)$`)

func BaseOrderNumber(orderNumber string) string {
	return orderSuffix.ReplaceAllString(orderNumber, "")
}

type Group[T any] struct {
	Base  string
	Items []T
}

// GroupByBaseOrderNumber группы в порядке первого появления базового номера,
// элементы внутри группы в исходном порядке.
func GroupByBaseOrderNumber[T any](items []T, orderNumber func(T) string, base func(string) string) []Group[T] {
	if base == nil {
		base = BaseOrderNumber
	}

	index := make(map[string]int)
	var groups []Group[T]

	for _, item := range items {
		key := base(orderNumber(item))
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group[T]{Base: key})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}

type DuplicateGroup struct {
	Base  string `json:"numero_ot"`
	Count int    `json:"cantidad"`
	Rows  []int  `json:"filas"`
}

// DuplicateReport только группы из нескольких строк. Ничего не удаляет.
func DuplicateReport(rows []TransformedRow) []DuplicateGroup {
	groups := GroupByBaseOrderNumber(rows, func(r TransformedRow) string { return r.Draft.OrderNumber }, nil)

	var dups []DuplicateGroup
	for _, g := range groups {
		if len(g.Items) < 2 {
			continue
		}

		rowNums := make([]int, 0, len(g.Items))
		for _, item := range g.Items {
			rowNums = append(rowNums, item.Row)
		}
		dups = append(dups, DuplicateGroup{Base: g.Base, Count: len(g.Items), Rows: rowNums})
	}

	return dups
}

type InstallationGroup struct {
	Base            string                 `json:"base_ot"`
	Items           []storage.Installation `json:"instalaciones"`
	TotalTechnician decimal.Decimal        `json:"total"`
	TotalCompany    decimal.Decimal        `json:"valor_total_empresa"`
	Collapsible     bool                   `json:"agrupada"`
}

type GroupedInstallations struct {
	Count           int                 `json:"count"`
	Groups          []InstallationGroup `json:"groups"`
	TotalTechnician decimal.Decimal     `json:"total"`
	TotalCompany    decimal.Decimal     `json:"valor_total_empresa"`
}

// GroupInstallations группировка листинга с суммами по группе и по странице.
func GroupInstallations(items []storage.Installation) GroupedInstallations {
	groups := GroupByBaseOrderNumber(items, func(i storage.Installation) string { return i.OrderNumber }, nil)

	res := GroupedInstallations{
		Count:           len(items),
		Groups:          make([]InstallationGroup, 0, len(groups)),
		TotalTechnician: decimal.Zero,
		TotalCompany:    decimal.Zero,
	}

	for _, g := range groups {
		group := InstallationGroup{
			Base:            g.Base,
			Items:           g.Items,
			TotalTechnician: decimal.Zero,
			TotalCompany:    decimal.Zero,
			Collapsible:     len(g.Items) > 1,
		}
		for _, inst := range g.Items {
			group.TotalTechnician = group.TotalTechnician.Add(inst.Total)
			group.TotalCompany = group.TotalCompany.Add(inst.TotalCompany)
		}

		res.TotalTechnician = res.TotalTechnician.Add(group.TotalTechnician)
		res.TotalCompany = res.TotalCompany.Add(group.TotalCompany)
		res.Groups = append(res.Groups, group)
	}

	return res
}
