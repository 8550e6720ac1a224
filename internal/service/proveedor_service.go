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

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	if _, err := s.repo.FindByRUC(ctx, req.RUC); err == nil {
		return nil, ErrRUCEnUso
	}

	p := model.Proveedor{
		RazonSocial: req.RazonSocial,
		RUC:         req.RUC,
		Estado:      "Activo",
	}
	if req.Telefono != "" {
		p.Telefono = &req.Telefono
	}
	if req.Email != "" {
		p.Email = &req.Email
	}
	if req.Direccion != "" {
		p.Direccion = &req.Direccion
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRUCEnUso
		}
		return nil, err
	}
	resp := proveedorToResponse(&p)
	return &resp, nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProveedorNoEncontrado
		}
		return nil, err
	}
	resp := proveedorToResponse(p)
	return &resp, nil
}

func (s *proveedorService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		out = append(out, proveedorToResponse(&proveedores[i]))
	}
	return out, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProveedorNoEncontrado
		}
		return nil, err
	}

	if req.RazonSocial != nil {
		p.RazonSocial = *req.RazonSocial
	}
	if req.Telefono != nil {
		p.Telefono = req.Telefono
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.Direccion != nil {
		p.Direccion = req.Direccion
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := proveedorToResponse(p)
	return &resp, nil
}

func (s *proveedorService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProveedorNoEncontrado
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *proveedorService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProveedorNoEncontrado
	}
	return s.repo.Reactivar(ctx, id)
}

func proveedorToResponse(p *model.Proveedor) dto.ProveedorResponse {
	resp := dto.ProveedorResponse{
		ID:          p.ID.String(),
		RazonSocial: p.RazonSocial,
		RUC:         p.RUC,
		Estado:      p.Estado,
	}
	if p.Telefono != nil {
		resp.Telefono = *p.Telefono
	}
	if p.Email != nil {
		resp.Email = *p.Email
	}
	if p.Direccion != nil {
		resp.Direccion = *p.Direccion
	}
	return resp
}
