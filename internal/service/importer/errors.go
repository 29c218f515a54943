package importer

import "errors"

var (
	ErrEmptyFile          = errors.New("el archivo no contiene filas de datos")
	ErrUnreadableWorkbook = errors.New("no se pudo leer el libro de Excel")
	ErrUnsupportedFormat  = errors.New("formato de archivo no soportado (se espera .xlsx o .xls)")
	ErrTooManyRows        = errors.New("el archivo supera el máximo de filas permitido")
	ErrMissingReference   = errors.New("no hay registros de referencia configurados")
)
