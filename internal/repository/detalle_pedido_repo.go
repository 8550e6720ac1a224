package repository

import (
	"context"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DetallePedidoRepository maneja las líneas de pedido. El orden canónico es el
// id autoincremental (orden de inserción): es el que consume la emisión de
// comprobantes.
type DetallePedidoRepository interface {
	CreateTx(tx *gorm.DB, d *model.DetallePedido) error
	FindByID(ctx context.Context, id int64) (*model.DetallePedido, error)
	FindByPedidoID(ctx context.Context, pedidoID uuid.UUID) ([]model.DetallePedido, error)
	FindByPedidoIDTx(tx *gorm.DB, pedidoID uuid.UUID) ([]model.DetallePedido, error)
	UpdateTx(tx *gorm.DB, d *model.DetallePedido) error
	DeleteTx(tx *gorm.DB, id int64) error
	DeleteByPedidoIDTx(tx *gorm.DB, pedidoID uuid.UUID) error
	ExistsByProductoID(ctx context.Context, productoID uuid.UUID) (bool, error)
	DB() *gorm.DB
}

type detallePedidoRepo struct{ db *gorm.DB }

func NewDetallePedidoRepository(db *gorm.DB) DetallePedidoRepository {
	return &detallePedidoRepo{db: db}
}

func (r *detallePedidoRepo) DB() *gorm.DB { return r.db }

func (r *detallePedidoRepo) CreateTx(tx *gorm.DB, d *model.DetallePedido) error {
	return tx.Create(d).Error
}

func (r *detallePedidoRepo) FindByID(ctx context.Context, id int64) (*model.DetallePedido, error) {
	var d model.DetallePedido
	err := r.db.WithContext(ctx).Preload("Producto").First(&d, "id = ?", id).Error
	return &d, err
}

func (r *detallePedidoRepo) FindByPedidoID(ctx context.Context, pedidoID uuid.UUID) ([]model.DetallePedido, error) {
	var detalles []model.DetallePedido
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("pedido_id = ?", pedidoID).
		Order("id ASC").
		Find(&detalles).Error
	return detalles, err
}

func (r *detallePedidoRepo) FindByPedidoIDTx(tx *gorm.DB, pedidoID uuid.UUID) ([]model.DetallePedido, error) {
	var detalles []model.DetallePedido
	err := tx.Where("pedido_id = ?", pedidoID).Order("id ASC").Find(&detalles).Error
	return detalles, err
}

func (r *detallePedidoRepo) UpdateTx(tx *gorm.DB, d *model.DetallePedido) error {
	return tx.Save(d).Error
}

func (r *detallePedidoRepo) DeleteTx(tx *gorm.DB, id int64) error {
	return tx.Delete(&model.DetallePedido{}, "id = ?", id).Error
}

func (r *detallePedidoRepo) DeleteByPedidoIDTx(tx *gorm.DB, pedidoID uuid.UUID) error {
	return tx.Delete(&model.DetallePedido{}, "pedido_id = ?", pedidoID).Error
}

func (r *detallePedidoRepo) ExistsByProductoID(ctx context.Context, productoID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DetallePedido{}).
		Where("producto_id = ?", productoID).
		Count(&count).Error
	return count > 0, err
}
