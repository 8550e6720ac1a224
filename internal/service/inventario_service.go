package service

import (
	"context"
	"errors"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventarioService es el ledger de inventario: todo cambio de stock pasa por
// aquí y deja un MovimientoStock. Las variantes Tx participan en la
// transacción del caso de uso que las llama (venta, anulación).
type InventarioService interface {
	DescontarStockTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, motivo string, referenciaID *uuid.UUID) error
	ReponerStockTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, tipo, motivo string, referenciaID *uuid.UUID) error
	AjustarStock(ctx context.Context, productoID uuid.UUID, req dto.AjusteStockRequest) (*dto.MovimientoStockResponse, error)
	ListarMovimientos(ctx context.Context, productoID uuid.UUID, limit int) ([]dto.MovimientoStockResponse, error)
	// StockRestaurado consulta el token de reversa de un pedido.
	StockRestaurado(tx *gorm.DB, pedidoID uuid.UUID) (bool, error)
}

type inventarioService struct {
	productoRepo   repository.ProductoRepository
	movimientoRepo repository.MovimientoStockRepository
}

func NewInventarioService(
	productoRepo repository.ProductoRepository,
	movimientoRepo repository.MovimientoStockRepository,
) InventarioService {
	return &inventarioService{productoRepo: productoRepo, movimientoRepo: movimientoRepo}
}

// DescontarStockTx resta cantidad dentro de la transacción tx. El UPDATE
// condicional del repositorio garantiza que dos descuentos concurrentes que
// sumados exceden el stock terminen en exactamente un éxito: el perdedor ve
// cero filas afectadas y recibe ErrStockInsuficiente sin haber tocado nada.
// El antes/después del movimiento sale del stock que devolvió ese mismo
// UPDATE, nunca de una lectura separada que otra transacción pudo dejar
// obsoleta entre medio.
func (s *inventarioService) DescontarStockTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, motivo string, referenciaID *uuid.UUID) error {
	if cantidad <= 0 {
		return ErrCantidadInvalida
	}

	// Solo para distinguir producto inexistente de stock insuficiente.
	if _, err := s.productoRepo.FindByIDTx(tx, productoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductoNoEncontrado
		}
		return err
	}

	nuevo, rows, err := s.productoRepo.DescontarStockTx(tx, productoID, cantidad)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStockInsuficiente
	}

	return s.movimientoRepo.CreateTx(tx, &model.MovimientoStock{
		ProductoID:    productoID,
		Tipo:          model.MovimientoVenta,
		Cantidad:      -cantidad,
		StockAnterior: nuevo + cantidad,
		StockNuevo:    nuevo,
		Motivo:        motivo,
		ReferenciaID:  referenciaID,
	})
}

// ReponerStockTx suma cantidad dentro de la transacción tx. tipo distingue
// reposición normal de restauración por anulación: las filas de restauración
// son además el token de reversa del pedido referenciado.
func (s *inventarioService) ReponerStockTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, tipo, motivo string, referenciaID *uuid.UUID) error {
	if cantidad <= 0 {
		return ErrCantidadInvalida
	}

	nuevo, rows, err := s.productoRepo.ReponerStockTx(tx, productoID, cantidad)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProductoNoEncontrado
	}

	return s.movimientoRepo.CreateTx(tx, &model.MovimientoStock{
		ProductoID:    productoID,
		Tipo:          tipo,
		Cantidad:      cantidad,
		StockAnterior: nuevo - cantidad,
		StockNuevo:    nuevo,
		Motivo:        motivo,
		ReferenciaID:  referenciaID,
	})
}

// AjustarStock cubre la corrección manual de inventario desde el panel:
// "ajuste" fija el stock en el valor dado, "reposicion" lo incrementa.
func (s *inventarioService) AjustarStock(ctx context.Context, productoID uuid.UUID, req dto.AjusteStockRequest) (*dto.MovimientoStockResponse, error) {
	var mov model.MovimientoStock

	txErr := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		// Lock sobre la fila: el stock leído como "anterior" no puede cambiar
		// por debajo antes de aplicar la corrección.
		p, err := s.productoRepo.FindByIDForUpdateTx(tx, productoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductoNoEncontrado
			}
			return err
		}

		var stockNuevo int
		switch req.Tipo {
		case "ajuste":
			stockNuevo = req.Cantidad
			if _, err := s.productoRepo.EstablecerStockTx(tx, productoID, req.Cantidad); err != nil {
				return err
			}
		case "reposicion":
			if req.Cantidad <= 0 {
				return ErrCantidadInvalida
			}
			nuevo, _, err := s.productoRepo.ReponerStockTx(tx, productoID, req.Cantidad)
			if err != nil {
				return err
			}
			stockNuevo = nuevo
		}

		tipo := model.MovimientoAjuste
		if req.Tipo == "reposicion" {
			tipo = model.MovimientoReposicion
		}
		mov = model.MovimientoStock{
			ProductoID:    productoID,
			Tipo:          tipo,
			Cantidad:      stockNuevo - p.Stock,
			StockAnterior: p.Stock,
			StockNuevo:    stockNuevo,
			Motivo:        req.Motivo,
		}
		return s.movimientoRepo.CreateTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := movimientoToResponse(&mov)
	return &resp, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, productoID uuid.UUID, limit int) ([]dto.MovimientoStockResponse, error) {
	movs, err := s.movimientoRepo.ListByProducto(ctx, productoID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoStockResponse, 0, len(movs))
	for i := range movs {
		out = append(out, movimientoToResponse(&movs[i]))
	}
	return out, nil
}

func (s *inventarioService) StockRestaurado(tx *gorm.DB, pedidoID uuid.UUID) (bool, error) {
	return s.movimientoRepo.ExistsRestauracionTx(tx, pedidoID)
}

func movimientoToResponse(m *model.MovimientoStock) dto.MovimientoStockResponse {
	resp := dto.MovimientoStockResponse{
		ID:            m.ID.String(),
		ProductoID:    m.ProductoID.String(),
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Motivo:        m.Motivo,
		CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if m.ReferenciaID != nil {
		resp.ReferenciaID = m.ReferenciaID.String()
	}
	return resp
}
