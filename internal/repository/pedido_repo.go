package repository

import (
	"context"
	"time"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PedidoRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Pedido, error)
	// FindByIDForUpdateTx lee el pedido con SELECT ... FOR UPDATE. Es el punto
	// de serialización de las anulaciones: quien llega segundo se bloquea en la
	// fila hasta el COMMIT del primero y luego ve su estado y sus movimientos
	// ya confirmados.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error)
	FindByClienteID(ctx context.Context, clienteID uuid.UUID) ([]model.Pedido, error)
	FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) ([]model.Pedido, error)
	UpdateTotalTx(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	TotalVentasPorFecha(ctx context.Context, fecha time.Time) (decimal.Decimal, error)
	TotalVentasPorMes(ctx context.Context, year int, month time.Month) (decimal.Decimal, error)
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) CreateTx(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Usuario").
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Detalles.Producto").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pedidoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := tx.
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pedidoRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pedidoRepo) List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var pedidos []model.Pedido
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Pedido{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.TipoPago != "" {
		q = q.Where("tipo_pago = ?", filter.TipoPago)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(fecha_pedido) = ?", filter.Fecha)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").Preload("Usuario").
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Detalles.Producto").
		Order("fecha_pedido DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) FindByClienteID(ctx context.Context, clienteID uuid.UUID) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Detalles.Producto").
		Where("cliente_id = ?", clienteID).
		Order("fecha_pedido DESC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("usuario_id = ?", usuarioID).
		Order("fecha_pedido DESC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) UpdateTotalTx(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	return tx.Model(&model.Pedido{}).Where("id = ?", id).
		Update("total_pagar", total).Error
}

func (r *pedidoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Pedido{}).Where("id = ?", id).
		Update("estado", estado).Error
}

func (r *pedidoRepo) TotalVentasPorFecha(ctx context.Context, fecha time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Select("SUM(total_pagar)").
		Where("DATE(fecha_pedido) = ? AND estado = ?", fecha.Format("2006-01-02"), model.EstadoEmitido).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *pedidoRepo) TotalVentasPorMes(ctx context.Context, year int, month time.Month) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Select("SUM(total_pagar)").
		Where("EXTRACT(YEAR FROM fecha_pedido) = ? AND EXTRACT(MONTH FROM fecha_pedido) = ? AND estado = ?",
			year, int(month), model.EstadoEmitido).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}
