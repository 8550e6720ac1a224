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

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	BuscarPorDocumento(ctx context.Context, numDoc string) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if _, err := s.repo.FindByNumDoc(ctx, req.NumDoc); err == nil {
		return nil, ErrDocumentoEnUso
	}

	c := model.Cliente{
		TipoDoc: req.TipoDoc,
		NumDoc:  req.NumDoc,
		Nombre:  req.Nombre,
		Estado:  "Activo",
	}
	if req.Telefono != "" {
		c.Telefono = &req.Telefono
	}
	if req.Email != "" {
		c.Email = &req.Email
	}
	if req.Direccion != "" {
		c.Direccion = &req.Direccion
	}

	if err := s.repo.Create(ctx, &c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDocumentoEnUso
		}
		return nil, err
	}
	resp := clienteToResponse(&c)
	return &resp, nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNoEncontrado
		}
		return nil, err
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) BuscarPorDocumento(ctx context.Context, numDoc string) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByNumDoc(ctx, numDoc)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNoEncontrado
		}
		return nil, err
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNoEncontrado
		}
		return nil, err
	}

	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Direccion != nil {
		c.Direccion = req.Direccion
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrClienteNoEncontrado
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *clienteService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrClienteNoEncontrado
	}
	return s.repo.Reactivar(ctx, id)
}

func clienteToResponse(c *model.Cliente) dto.ClienteResponse {
	resp := dto.ClienteResponse{
		ID:      c.ID.String(),
		TipoDoc: c.TipoDoc,
		NumDoc:  c.NumDoc,
		Nombre:  c.Nombre,
		Estado:  c.Estado,
	}
	if c.Telefono != nil {
		resp.Telefono = *c.Telefono
	}
	if c.Email != nil {
		resp.Email = *c.Email
	}
	if c.Direccion != nil {
		resp.Direccion = *c.Direccion
	}
	return resp
}
