package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsBusinessError(err error) bool {
	var be BusinessError
	return errors.As(err, &be)
}

// WriteBusiness traduz o código de negócio para o status HTTP:
// *_not_found vira 404, invalid_* vira 400, o resto 409.
func WriteBusiness(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	status := http.StatusConflict
	switch {
	case strings.HasSuffix(be.Code, "_not_found"):
		status = http.StatusNotFound
	case strings.HasPrefix(be.Code, "invalid_") || strings.HasSuffix(be.Code, "_required"):
		status = http.StatusBadRequest
	}

	Write(c, status, be.Code, "Operação não permitida: "+be.Code)
}
