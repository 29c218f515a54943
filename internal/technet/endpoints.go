package technet

import (
	"context"

	"technet-admin/internal/storage"
)

const (
	PathOperators     = "technet/operadores/"
	PathTechnicians   = "technet/tecnicos/"
	PathOrderTypes    = "technet/tipodeordenes/"
	PathDrTypes       = "technet/dr/"
	PathAcometidas    = "technet/acometidas/"
	PathProducts      = "technet/productos/"
	PathDiscounts     = "technet/descuentos/"
	PathInstallations = "technet/instalaciones/"

	pathBulkImport = PathInstallations + "bulk-import/"
	pathLogin      = "token/login/"
)

// API все коллекции technet поверх одного клиента.
type API struct {
	*Client

	Operators     *Resource[storage.Operator]
	Technicians   *Resource[storage.Technician]
	OrderTypes    *Resource[storage.OrderType]
	DrTypes       *Resource[storage.DrType]
	Acometidas    *Resource[storage.Acometida]
	Products      *Resource[storage.Product]
	Discounts     *Resource[storage.Discount]
	Installations *Resource[storage.Installation]

	pageSize int
}

// NewAPI pageSize размер страницы при выгрузке справочников.
func NewAPI(client *Client, pageSize int) *API {
	if pageSize <= 0 {
		pageSize = 1000
	}

	return &API{
		Client:        client,
		pageSize:      pageSize,
		Operators:     NewResource[storage.Operator](client, PathOperators),
		Technicians:   NewResource[storage.Technician](client, PathTechnicians),
		OrderTypes:    NewResource[storage.OrderType](client, PathOrderTypes),
		DrTypes:       NewResource[storage.DrType](client, PathDrTypes),
		Acometidas:    NewResource[storage.Acometida](client, PathAcometidas),
		Products:      NewResource[storage.Product](client, PathProducts),
		Discounts:     NewResource[storage.Discount](client, PathDiscounts),
		Installations: NewResource[storage.Installation](client, PathInstallations),
	}
}

func (a *API) ListOperators(ctx context.Context) ([]storage.Operator, error) {
	return a.Operators.ListAll(ctx, ListParams{PageSize: a.pageSize})
}

func (a *API) ListTechnicians(ctx context.Context) ([]storage.Technician, error) {
	return a.Technicians.ListAll(ctx, ListParams{PageSize: a.pageSize})
}

func (a *API) ListOrderTypes(ctx context.Context) ([]storage.OrderType, error) {
	return a.OrderTypes.ListAll(ctx, ListParams{PageSize: a.pageSize})
}

func (a *API) ListDrTypes(ctx context.Context) ([]storage.DrType, error) {
	return a.DrTypes.ListAll(ctx, ListParams{PageSize: a.pageSize})
}

func (a *API) ListAcometidas(ctx context.Context) ([]storage.Acometida, error) {
	return a.Acometidas.ListAll(ctx, ListParams{PageSize: a.pageSize})
}

// ListInstallations все инсталляции по фильтру (для экспорта и группировки).
func (a *API) ListInstallations(ctx context.Context, filter storage.InstallationFilter) ([]storage.Installation, error) {
	return a.Installations.ListAll(ctx, FilterParams(filter))
}

// PageInstallations одна страница инсталляций по фильтру.
func (a *API) PageInstallations(ctx context.Context, filter storage.InstallationFilter) (*Page[storage.Installation], error) {
	return a.Installations.List(ctx, FilterParams(filter))
}

func FilterParams(f storage.InstallationFilter) ListParams {
	return ListParams{
		Page:     f.Page,
		PageSize: f.PageSize,
		Search:   f.Search,
		Filters: map[string]string{
			"id_tecnico":   f.TechnicianID,
			"id_operador":  f.OperatorID,
			"fecha_inicio": f.DateFrom,
			"fecha_fin":    f.DateTo,
		},
	}
}
