package storage

import (
	"github.com/shopspring/decimal"
)

type Operator struct {
	ID   int64  `json:"id_ope"`
	Name string `json:"nombre_operador"`
}

type Technician struct {
	ID        int64  `json:"id_unico_tecnico"`
	Code      string `json:"id_tecnico"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
}

// FullName "{nombre} {apellido}": так техник показывается в выпадающих списках и в экспорте.
func (t Technician) FullName() string {
	return t.FirstName + " " + t.LastName
}

type OrderType struct {
	ID           int64           `json:"id_tipo_orden"`
	Name         string          `json:"nombre_orden"`
	Price        decimal.Decimal `json:"valor_orden"`
	PriceCompany decimal.Decimal `json:"valor_orden_empresa"`
}

type DrType struct {
	ID           int64           `json:"id_dr"`
	Name         string          `json:"nombre_dr"`
	Price        decimal.Decimal `json:"valor_dr"`
	PriceCompany decimal.Decimal `json:"valor_dr_empresa"`
}

type Acometida struct {
	ID    int64           `json:"id_acometida"`
	Name  string          `json:"nombre_acometida"`
	Price decimal.Decimal `json:"precio"`
}

type Product struct {
	ID             int64  `json:"id_producto"`
	Category       string `json:"categoria"`
	Name           string `json:"nombre_producto"`
	Serial         string `json:"producto_serie"`
	Quantity       int    `json:"cantidad"`
	TechnicianID   int64  `json:"id_tecnico"`
	AssignmentDate string `json:"fecha_asignacion"`
}

type Discount struct {
	ID             int64           `json:"id_descuento"`
	Value          decimal.Decimal `json:"valor_descuento"`
	InstallationID int64           `json:"id_instalacion"`
}

// ReferenceData снимок справочников, загруженный один раз на импорт.
type ReferenceData struct {
	Operators   []Operator
	Technicians []Technician
	OrderTypes  []OrderType
	DrTypes     []DrType
	Acometidas  []Acometida
}
