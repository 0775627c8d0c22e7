package httperr

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

// FromError writes a use case error with the status its kind maps to.
// Anything outside the taxonomy is treated as transient infrastructure.
func FromError(c *gin.Context, err error) {
	switch KindOf(err) {
	case KindValidation:
		BadRequest(c, err.Error(), messageFor(err.Error(), "Dados inválidos."))
	case KindPrecondition, KindConflict:
		Conflict(c, err.Error(), messageFor(err.Error(), "Operação não permitida no estado atual."))
	case KindNotFound:
		NotFound(c, err.Error(), messageFor(err.Error(), "Registro não encontrado."))
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		Internal(c, "internal_error", "Erro temporário. Tente novamente.")
	}
}
