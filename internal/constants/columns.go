package constants

// Варианты заголовков колонок выгрузки оператора. Порядок важен: первый найденный выигрывает.
var (
	ColumnOperator    = []string{"Cliente", "cliente", "CLIENTE"}
	ColumnOrderNumber = []string{"Cod. cliente 1", "COD. CLIENTE 1", "Cod cliente 1"}
	ColumnDate        = []string{"Fecha fin actuación", "Fecha fin actuacion", "FECHA FIN ACTUACION"}
	ColumnTechnician  = []string{"Técnico cumplimentación", "Tecnico cumplimentacion", "TECNICO CUMPLIMENTACION"}
	ColumnSerial      = []string{"N/S", "N S", "NS"}
	ColumnNotes       = []string{"Descripción", "Descripcion", "DESCRIPCION"}
	ColumnCategory    = []string{"Categoria", "categoria", "CATEGORIA", "Categoría"}
)

// Значения по умолчанию для полей, которых нет в выгрузке.
const (
	DefaultText        = "NA"
	DefaultCableMeters = "0"
	UndefinedMarker    = "no definido"
)

// Колонки экспорта инсталляций.
var InstallationExportHeaders = []string{
	"Número OT",
	"Fecha",
	"Dirección",
	"Técnico",
	"Operador",
	"Metros Cable",
	"Serie Producto",
	"Equipo Reutilizado",
	"Equipo Retirado",
	"Total Técnico",
	"Total Empresa",
	"Observaciones",
}
