package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DetallePedidoService maneja las líneas de un pedido ya registrado. Toda
// mutación recalcula el total del pedido antes de devolver el control.
//
// Agregar descuenta stock (es una extensión de la venta); Actualizar y
// Eliminar no lo tocan — el stock solo se mueve al vender y al anular, nunca
// en ediciones intermedias, para no contarlo dos veces en la restauración.
type DetallePedidoService interface {
	Agregar(ctx context.Context, pedidoID uuid.UUID, req dto.DetallePedidoRequest) (*dto.DetallePedidoResponse, error)
	Actualizar(ctx context.Context, detalleID int64, req dto.ActualizarDetalleRequest) (*dto.DetallePedidoResponse, error)
	Eliminar(ctx context.Context, detalleID int64) error
	ListarPorPedido(ctx context.Context, pedidoID uuid.UUID) ([]dto.DetallePedidoResponse, error)
	TotalPedido(ctx context.Context, pedidoID uuid.UUID) (decimal.Decimal, error)
	// RecalcularTotalTx suma los subtotales vigentes y persiste el total.
	// Idempotente; lee las líneas dentro de tx, nunca un caché.
	RecalcularTotalTx(tx *gorm.DB, pedidoID uuid.UUID) (decimal.Decimal, error)
}

type detallePedidoService struct {
	detalleRepo  repository.DetallePedidoRepository
	pedidoRepo   repository.PedidoRepository
	productoRepo repository.ProductoRepository
	inventario   InventarioService
}

func NewDetallePedidoService(
	detalleRepo repository.DetallePedidoRepository,
	pedidoRepo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	inventario InventarioService,
) DetallePedidoService {
	return &detallePedidoService{
		detalleRepo:  detalleRepo,
		pedidoRepo:   pedidoRepo,
		productoRepo: productoRepo,
		inventario:   inventario,
	}
}

func (s *detallePedidoService) Agregar(ctx context.Context, pedidoID uuid.UUID, req dto.DetallePedidoRequest) (*dto.DetallePedidoResponse, error) {
	if req.Cantidad <= 0 {
		return nil, ErrCantidadInvalida
	}

	pedido, err := s.pedidoRepo.FindByID(ctx, pedidoID)
	if err != nil {
		return nil, ErrPedidoNoEncontrado
	}
	if pedido.Estado == model.EstadoAnulado {
		return nil, ErrPedidoAnulado
	}

	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", err)
	}
	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}
	if producto.Estado != model.ProductoActivo {
		return nil, fmt.Errorf("%w: %s está inactivo", ErrProductoNoEncontrado, producto.Modelo)
	}

	// Precio congelado: el de la petición si viene, el vigente del catálogo
	// si no. Cambios futuros de precio no alteran esta línea.
	precio := producto.PrecioVenta
	if req.PrecioUnitario != nil {
		precio = *req.PrecioUnitario
	}
	if !precio.IsPositive() {
		return nil, ErrPrecioInvalido
	}

	detalle := model.DetallePedido{
		PedidoID:       pedidoID,
		ProductoID:     productoID,
		Cantidad:       req.Cantidad,
		PrecioUnitario: precio,
		Subtotal:       precio.Mul(decimal.NewFromInt(int64(req.Cantidad))),
	}

	txErr := runTx(ctx, s.detalleRepo.DB(), func(tx *gorm.DB) error {
		ref := pedidoID
		motivo := fmt.Sprintf("Venta pedido %s", pedidoID)
		if err := s.inventario.DescontarStockTx(tx, productoID, req.Cantidad, motivo, &ref); err != nil {
			return err
		}
		if err := s.detalleRepo.CreateTx(tx, &detalle); err != nil {
			return err
		}
		_, err := s.RecalcularTotalTx(tx, pedidoID)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := detalleToResponse(&detalle)
	resp.Producto = producto.Modelo
	return &resp, nil
}

func (s *detallePedidoService) Actualizar(ctx context.Context, detalleID int64, req dto.ActualizarDetalleRequest) (*dto.DetallePedidoResponse, error) {
	detalle, err := s.detalleRepo.FindByID(ctx, detalleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDetalleNoEncontrado
		}
		return nil, err
	}

	pedido, err := s.pedidoRepo.FindByID(ctx, detalle.PedidoID)
	if err != nil {
		return nil, ErrPedidoNoEncontrado
	}
	if pedido.Estado == model.EstadoAnulado {
		return nil, ErrPedidoAnulado
	}

	if req.Cantidad != nil {
		if *req.Cantidad <= 0 {
			return nil, ErrCantidadInvalida
		}
		detalle.Cantidad = *req.Cantidad
	}
	if req.PrecioUnitario != nil {
		if !req.PrecioUnitario.IsPositive() {
			return nil, ErrPrecioInvalido
		}
		detalle.PrecioUnitario = *req.PrecioUnitario
	}
	detalle.Subtotal = detalle.PrecioUnitario.Mul(decimal.NewFromInt(int64(detalle.Cantidad)))

	txErr := runTx(ctx, s.detalleRepo.DB(), func(tx *gorm.DB) error {
		if err := s.detalleRepo.UpdateTx(tx, detalle); err != nil {
			return err
		}
		_, err := s.RecalcularTotalTx(tx, detalle.PedidoID)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := detalleToResponse(detalle)
	return &resp, nil
}

// Eliminar quita la línea y recalcula el total. No repone stock.
func (s *detallePedidoService) Eliminar(ctx context.Context, detalleID int64) error {
	detalle, err := s.detalleRepo.FindByID(ctx, detalleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDetalleNoEncontrado
		}
		return err
	}

	pedido, err := s.pedidoRepo.FindByID(ctx, detalle.PedidoID)
	if err != nil {
		return ErrPedidoNoEncontrado
	}
	if pedido.Estado == model.EstadoAnulado {
		return ErrPedidoAnulado
	}

	return runTx(ctx, s.detalleRepo.DB(), func(tx *gorm.DB) error {
		if err := s.detalleRepo.DeleteTx(tx, detalleID); err != nil {
			return err
		}
		_, err := s.RecalcularTotalTx(tx, detalle.PedidoID)
		return err
	})
}

func (s *detallePedidoService) ListarPorPedido(ctx context.Context, pedidoID uuid.UUID) ([]dto.DetallePedidoResponse, error) {
	if _, err := s.pedidoRepo.FindByID(ctx, pedidoID); err != nil {
		return nil, ErrPedidoNoEncontrado
	}
	detalles, err := s.detalleRepo.FindByPedidoID(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DetallePedidoResponse, 0, len(detalles))
	for i := range detalles {
		out = append(out, detalleToResponse(&detalles[i]))
	}
	return out, nil
}

func (s *detallePedidoService) TotalPedido(ctx context.Context, pedidoID uuid.UUID) (decimal.Decimal, error) {
	detalles, err := s.detalleRepo.FindByPedidoID(ctx, pedidoID)
	if err != nil {
		return decimal.Zero, err
	}
	return sumarSubtotales(detalles), nil
}

func (s *detallePedidoService) RecalcularTotalTx(tx *gorm.DB, pedidoID uuid.UUID) (decimal.Decimal, error) {
	detalles, err := s.detalleRepo.FindByPedidoIDTx(tx, pedidoID)
	if err != nil {
		return decimal.Zero, err
	}
	total := sumarSubtotales(detalles)
	if err := s.pedidoRepo.UpdateTotalTx(tx, pedidoID, total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func sumarSubtotales(detalles []model.DetallePedido) decimal.Decimal {
	total := decimal.Zero
	for _, d := range detalles {
		total = total.Add(d.Subtotal)
	}
	return total
}

func detalleToResponse(d *model.DetallePedido) dto.DetallePedidoResponse {
	resp := dto.DetallePedidoResponse{
		ID:             d.ID,
		ProductoID:     d.ProductoID.String(),
		Cantidad:       d.Cantidad,
		PrecioUnitario: d.PrecioUnitario,
		Subtotal:       d.Subtotal,
	}
	if d.Producto != nil {
		resp.Producto = d.Producto.Modelo
	}
	return resp
}
