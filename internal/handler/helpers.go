package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/apierror"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondServiceError traduce los errores de dominio a códigos HTTP.
// Todo lo no reconocido se reporta como 500 sin filtrar detalles internos.
func respondServiceError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrProductoNoEncontrado),
		errors.Is(err, service.ErrClienteNoEncontrado),
		errors.Is(err, service.ErrProveedorNoEncontrado),
		errors.Is(err, service.ErrPedidoNoEncontrado),
		errors.Is(err, service.ErrDetalleNoEncontrado),
		errors.Is(err, service.ErrComprobanteNoEncontrado),
		errors.Is(err, service.ErrUsuarioNoEncontrado):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrComprobanteDuplicado),
		errors.Is(err, service.ErrPedidoYaAnulado),
		errors.Is(err, service.ErrComprobanteYaAnulado),
		errors.Is(err, service.ErrStockInsuficiente),
		errors.Is(err, service.ErrUsernameEnUso),
		errors.Is(err, service.ErrDocumentoEnUso),
		errors.Is(err, service.ErrRUCEnUso):
		status = http.StatusConflict
	case errors.Is(err, service.ErrCantidadInvalida),
		errors.Is(err, service.ErrPrecioInvalido),
		errors.Is(err, service.ErrTipoComprobanteInvalido),
		errors.Is(err, service.ErrPedidoSinDetalles),
		errors.Is(err, service.ErrPedidoAnulado):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrCredencialesInvalidas):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrSecuenciaAgotada):
		status = http.StatusServiceUnavailable
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(status, apierror.New(err.Error()))
}
