package repository

import (
	"context"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComprobanteRepository interface {
	// CreateTx inserta el comprobante con sus detalles. Un choque contra el
	// índice único de numero_comprobante (o de pedido_id) se reporta como
	// gorm.ErrDuplicatedKey para que el servicio pueda reintentar.
	CreateTx(tx *gorm.DB, c *model.Comprobante) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comprobante, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Comprobante, error)
	FindByPedidoID(ctx context.Context, pedidoID uuid.UUID) (*model.Comprobante, error)
	FindByPedidoIDTx(tx *gorm.DB, pedidoID uuid.UUID) (*model.Comprobante, error)
	FindByNumero(ctx context.Context, numero string) (*model.Comprobante, error)
	List(ctx context.Context, filter dto.ComprobanteFilter) ([]model.Comprobante, int64, error)
	ExistsByPedidoID(ctx context.Context, pedidoID uuid.UUID) (bool, error)
	// MaxNumeroSufijoTx devuelve el mayor correlativo ya emitido para un
	// prefijo (0 si no hay ninguno). Se consulta dentro de la transacción de
	// emisión; el índice único resuelve la carrera entre lectores concurrentes.
	MaxNumeroSufijoTx(tx *gorm.DB, prefijo string) (int64, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error
	DB() *gorm.DB
}

type comprobanteRepo struct{ db *gorm.DB }

func NewComprobanteRepository(db *gorm.DB) ComprobanteRepository {
	return &comprobanteRepo{db: db}
}

func (r *comprobanteRepo) DB() *gorm.DB { return r.db }

func (r *comprobanteRepo) CreateTx(tx *gorm.DB, c *model.Comprobante) error {
	return tx.Create(c).Error
}

func (r *comprobanteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comprobante, error) {
	var c model.Comprobante
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Usuario").
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Detalles.Producto").
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *comprobanteRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Comprobante, error) {
	var c model.Comprobante
	err := tx.
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *comprobanteRepo) FindByPedidoID(ctx context.Context, pedidoID uuid.UUID) (*model.Comprobante, error) {
	var c model.Comprobante
	err := r.db.WithContext(ctx).
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&c, "pedido_id = ?", pedidoID).Error
	return &c, err
}

func (r *comprobanteRepo) FindByPedidoIDTx(tx *gorm.DB, pedidoID uuid.UUID) (*model.Comprobante, error) {
	var c model.Comprobante
	err := tx.First(&c, "pedido_id = ?", pedidoID).Error
	return &c, err
}

func (r *comprobanteRepo) FindByNumero(ctx context.Context, numero string) (*model.Comprobante, error) {
	var c model.Comprobante
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Usuario").
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Detalles.Producto").
		First(&c, "numero_comprobante = ?", numero).Error
	return &c, err
}

func (r *comprobanteRepo) List(ctx context.Context, filter dto.ComprobanteFilter) ([]model.Comprobante, int64, error) {
	var comprobantes []model.Comprobante
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Comprobante{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo_comprobante = ?", filter.Tipo)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(fecha_emision) = ?", filter.Fecha)
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
		Order("fecha_emision DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&comprobantes).Error
	return comprobantes, total, err
}

func (r *comprobanteRepo) ExistsByPedidoID(ctx context.Context, pedidoID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comprobante{}).
		Where("pedido_id = ?", pedidoID).
		Count(&count).Error
	return count > 0, err
}

func (r *comprobanteRepo) MaxNumeroSufijoTx(tx *gorm.DB, prefijo string) (int64, error) {
	var max *int64
	err := tx.Model(&model.Comprobante{}).
		Select("MAX(CAST(SUBSTRING(numero_comprobante FROM ?) AS BIGINT))", len(prefijo)+1).
		Where("numero_comprobante LIKE ?", prefijo+"%").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *comprobanteRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Comprobante{}).Where("id = ?", id).
		Update("estado", estado).Error
}

func (r *comprobanteRepo) UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.Comprobante{}).Where("id = ?", id).
		Update("pdf_path", path).Error
}
