package storage

import (
	"github.com/shopspring/decimal"
)

// InstallationDraft запись для bulk-import. Цены копируются из справочников в момент
// импорта и дальше не пересчитываются.
type InstallationDraft struct {
	Date              string          `json:"fecha_instalacion"`
	TechnicianID      int64           `json:"id_tecnico"`
	OperatorID        int64           `json:"id_operador"`
	Address           string          `json:"direccion"`
	OrderNumber       string          `json:"numero_ot"`
	ProductSerial     string          `json:"producto_serie"`
	Category          string          `json:"categoria"`
	DrID              int64           `json:"id_dr"`
	DrSerial          string          `json:"serie_dr"`
	ReusedEquipment   string          `json:"eq_reutilizado"`
	RemovedEquipment  string          `json:"eq_retirado"`
	OrderTypeID       int64           `json:"id_tipo_orden"`
	CableMeters       string          `json:"metros_cable"`
	AcometidaID       int64           `json:"id_acometida"`
	Notes             string          `json:"observaciones"`
	DrPrice           decimal.Decimal `json:"valor_dr"`
	OrderPrice        decimal.Decimal `json:"valor_orden"`
	OrderPriceCompany decimal.Decimal `json:"valor_orden_empresa"`
	DrPriceCompany    decimal.Decimal `json:"valor_dr_empresa"`
}

// Installation запись в том виде, в котором её отдаёт список /instalaciones/.
type Installation struct {
	ID                   int64               `json:"id_instalacion"`
	Date                 string              `json:"fecha_instalacion"`
	TechnicianID         int64               `json:"id_tecnico"`
	OperatorID           int64               `json:"id_operador"`
	Address              string              `json:"direccion"`
	OrderNumber          string              `json:"numero_ot"`
	ProductSerial        string              `json:"producto_serie"`
	Category             string              `json:"categoria,omitempty"`
	DrID                 int64               `json:"id_dr"`
	DrSerial             string              `json:"serie_dr,omitempty"`
	ReusedEquipment      string              `json:"eq_reutilizado,omitempty"`
	RemovedEquipment     string              `json:"eq_retirado,omitempty"`
	OrderTypeID          int64               `json:"id_tipo_orden"`
	CableMeters          string              `json:"metros_cable"`
	AcometidaID          int64               `json:"id_acometida"`
	Notes                string              `json:"observaciones,omitempty"`
	AddedValue           decimal.NullDecimal `json:"valor_añadido"`
	OptionalValueCompany decimal.NullDecimal `json:"valor_opcional_empresa"`
	DrPrice              decimal.Decimal     `json:"valor_dr"`
	OrderPrice           decimal.Decimal     `json:"valor_orden"`
	OrderPriceCompany    decimal.Decimal     `json:"valor_orden_empresa"`
	DrPriceCompany       decimal.Decimal     `json:"valor_dr_empresa"`
	Total                decimal.Decimal     `json:"total"`
	Shared               string              `json:"instalacion_compartida,omitempty"`
	TotalCompany         decimal.Decimal     `json:"valor_total_empresa"`
}

// InstallationFilter фильтры списка инсталляций (те же параметры, что у бэкенда).
type InstallationFilter struct {
	Page         int
	PageSize     int
	Search       string
	TechnicianID string
	OperatorID   string
	DateFrom     string
	DateTo       string
}
