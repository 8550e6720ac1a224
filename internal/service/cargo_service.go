package service

import (
	"context"
	"errors"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/repository"

	"github.com/google/uuid"
)

// CargoService mantiene la tabla de cargos asignables a usuarios.
type CargoService interface {
	Crear(ctx context.Context, req dto.CrearCargoRequest) (*dto.CargoResponse, error)
	Listar(ctx context.Context) ([]dto.CargoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type cargoService struct {
	repo repository.CargoRepository
}

func NewCargoService(repo repository.CargoRepository) CargoService {
	return &cargoService{repo: repo}
}

func (s *cargoService) Crear(ctx context.Context, req dto.CrearCargoRequest) (*dto.CargoResponse, error) {
	c := model.Cargo{Nombre: req.Nombre, Activo: true}
	if req.Descripcion != "" {
		c.Descripcion = &req.Descripcion
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	resp := cargoToResponse(&c)
	return &resp, nil
}

func (s *cargoService) Listar(ctx context.Context) ([]dto.CargoResponse, error) {
	cargos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CargoResponse, 0, len(cargos))
	for i := range cargos {
		out = append(out, cargoToResponse(&cargos[i]))
	}
	return out, nil
}

func (s *cargoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("cargo no encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func cargoToResponse(c *model.Cargo) dto.CargoResponse {
	resp := dto.CargoResponse{
		ID:     c.ID.String(),
		Nombre: c.Nombre,
		Activo: c.Activo,
	}
	if c.Descripcion != nil {
		resp.Descripcion = *c.Descripcion
	}
	return resp
}
