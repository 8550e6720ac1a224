package repository

import (
	"context"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository es el contrato de acceso a datos de productos.
// Los servicios dependen de esta interfaz, no de la implementación GORM,
// lo que permite tests unitarios con stubs en memoria.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	// FindByIDForUpdateTx lee el producto con SELECT ... FOR UPDATE: el valor
	// leído queda estable hasta el COMMIT de tx.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	FindByProveedorID(ctx context.Context, proveedorID uuid.UUID) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	// Mutación de stock — siempre dentro de la transacción del caso de uso.
	// Descontar y Reponer devuelven el stock resultante (RETURNING) junto a las
	// filas afectadas: 0 filas significa que la condición de guarda (stock
	// suficiente / producto activo / producto existente) falló.
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int, int64, error)
	ReponerStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int, int64, error)
	EstablecerStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int64, error)

	// DB expone el *gorm.DB subyacente para que los servicios abran transacciones.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Proveedor").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := tx.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	// Estado: "Inactivo" = solo inactivos, "all" = todos, cualquier otro = activos
	switch filter.Estado {
	case model.ProductoInactivo:
		q = q.Where("estado = ?", model.ProductoInactivo)
	case "all":
		// sin filtro
	default:
		q = q.Where("estado = ?", model.ProductoActivo)
	}

	if filter.Modelo != "" {
		q = q.Where("modelo ILIKE ?", "%"+filter.Modelo+"%")
	}
	if filter.ProveedorID != "" {
		q = q.Where("proveedor_id = ?", filter.ProveedorID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("modelo ASC").Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) FindByProveedorID(ctx context.Context, proveedorID uuid.UUID) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("proveedor_id = ? AND estado = ?", proveedorID, model.ProductoActivo).
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).
		Update("estado", model.ProductoInactivo).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).
		Update("estado", model.ProductoActivo).Error
}

// DescontarStockTx resta cantidad de forma atómica. La guarda stock >= cantidad
// en el WHERE garantiza que dos descuentos concurrentes que excederían el stock
// terminen en exactamente un éxito y un rechazo — nunca stock negativo.
// El RETURNING entrega el stock que dejó este mismo UPDATE, de modo que la
// auditoría no depende de una lectura previa que otra transacción pudo volver
// obsoleta.
func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int, int64, error) {
	var nuevo int
	res := tx.Raw(
		`UPDATE productos SET stock = stock - ?, updated_at = NOW()
		 WHERE id = ? AND estado = ? AND stock >= ?
		 RETURNING stock`,
		cantidad, id, model.ProductoActivo, cantidad,
	).Scan(&nuevo)
	return nuevo, res.RowsAffected, res.Error
}

func (r *productoRepo) ReponerStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int, int64, error) {
	var nuevo int
	res := tx.Raw(
		`UPDATE productos SET stock = stock + ?, updated_at = NOW()
		 WHERE id = ?
		 RETURNING stock`,
		cantidad, id,
	).Scan(&nuevo)
	return nuevo, res.RowsAffected, res.Error
}

func (r *productoRepo) EstablecerStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int64, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ?", id).
		Update("stock", cantidad)
	return res.RowsAffected, res.Error
}
