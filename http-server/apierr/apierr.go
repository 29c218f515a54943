package apierr

import (
	"errors"
	"net/http"

	"technet-admin/internal/technet"
)

const networkMessage = "Error de conexión con el servidor technet"

// FromTechnet статус и текст ответа для ошибки клиента technet.
// 4xx бэкенда пробрасываются как есть, остальное: 502.
func FromTechnet(err error) (int, string) {
	var apiErr *technet.APIError

	switch {
	case errors.Is(err, technet.ErrUnauthorized):
		return http.StatusUnauthorized, "Sesión de technet expirada o token inválido"
	case errors.Is(err, technet.ErrNotFound):
		return http.StatusNotFound, "No encontrado"
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode, apiErr.Message
		}
		return http.StatusBadGateway, apiErr.Message
	default:
		return http.StatusBadGateway, networkMessage
	}
}

type Response struct {
	Error string `json:"error"`
}
