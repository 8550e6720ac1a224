package service

import "errors"

// Errores de dominio. Los handlers los traducen a códigos HTTP con
// errors.Is; los servicios pueden envolverlos con %w para añadir contexto.
var (
	ErrProductoNoEncontrado    = errors.New("producto no encontrado")
	ErrClienteNoEncontrado     = errors.New("cliente no encontrado")
	ErrProveedorNoEncontrado   = errors.New("proveedor no encontrado")
	ErrPedidoNoEncontrado      = errors.New("pedido no encontrado")
	ErrDetalleNoEncontrado     = errors.New("detalle de pedido no encontrado")
	ErrComprobanteNoEncontrado = errors.New("comprobante no encontrado")
	ErrUsuarioNoEncontrado     = errors.New("usuario no encontrado")

	ErrStockInsuficiente = errors.New("stock insuficiente")
	ErrCantidadInvalida  = errors.New("la cantidad debe ser mayor que cero")
	ErrPrecioInvalido    = errors.New("el precio debe ser mayor que cero")

	ErrPedidoAnulado        = errors.New("el pedido está anulado y no admite cambios")
	ErrPedidoYaAnulado      = errors.New("el pedido ya está anulado")
	ErrComprobanteYaAnulado = errors.New("el comprobante ya está anulado")

	ErrTipoComprobanteInvalido = errors.New("tipo de comprobante inválido")
	ErrComprobanteDuplicado    = errors.New("el pedido ya tiene un comprobante emitido")
	ErrPedidoSinDetalles       = errors.New("el pedido no tiene detalles")
	ErrSecuenciaAgotada        = errors.New("no se pudo generar un número de comprobante único")

	ErrCredencialesInvalidas = errors.New("usuario o contraseña incorrectos")
	ErrUsernameEnUso         = errors.New("el nombre de usuario ya está en uso")
	ErrDocumentoEnUso        = errors.New("el número de documento ya está registrado")
	ErrRUCEnUso              = errors.New("el RUC ya está registrado")
)
