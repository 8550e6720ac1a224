package repository

import (
	"context"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CargoRepository interface {
	Create(ctx context.Context, c *model.Cargo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cargo, error)
	List(ctx context.Context) ([]model.Cargo, error)
	Update(ctx context.Context, c *model.Cargo) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type cargoRepo struct{ db *gorm.DB }

func NewCargoRepository(db *gorm.DB) CargoRepository { return &cargoRepo{db: db} }

func (r *cargoRepo) Create(ctx context.Context, c *model.Cargo) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cargoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cargo, error) {
	var c model.Cargo
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cargoRepo) List(ctx context.Context) ([]model.Cargo, error) {
	var cargos []model.Cargo
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&cargos).Error
	return cargos, err
}

func (r *cargoRepo) Update(ctx context.Context, c *model.Cargo) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cargoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cargo{}).Where("id = ?", id).
		Update("activo", false).Error
}
