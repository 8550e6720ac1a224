package repository

import (
	"context"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovimientoStockRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovimientoStock) error
	ListByProducto(ctx context.Context, productoID uuid.UUID, limit int) ([]model.MovimientoStock, error)
	// ExistsRestauracionTx responde si el stock de un pedido ya fue restaurado
	// (token de reversa): evita la doble reposición cuando se anulan pedido y
	// comprobante por separado.
	ExistsRestauracionTx(tx *gorm.DB, pedidoID uuid.UUID) (bool, error)
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) CreateTx(tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.Create(m).Error
}

func (r *movimientoStockRepo) ListByProducto(ctx context.Context, productoID uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	if limit <= 0 {
		limit = 50
	}
	var movs []model.MovimientoStock
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movs).Error
	return movs, err
}

func (r *movimientoStockRepo) ExistsRestauracionTx(tx *gorm.DB, pedidoID uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&model.MovimientoStock{}).
		Where("referencia_id = ? AND tipo = ?", pedidoID, model.MovimientoRestauracion).
		Count(&count).Error
	return count > 0, err
}
