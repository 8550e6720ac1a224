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

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	ListarPorProveedor(ctx context.Context, proveedorID uuid.UUID) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo          repository.ProductoRepository
	proveedorRepo repository.ProveedorRepository
}

func NewProductoService(repo repository.ProductoRepository, proveedorRepo repository.ProveedorRepository) ProductoService {
	return &productoService{repo: repo, proveedorRepo: proveedorRepo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, ErrProveedorNoEncontrado
	}
	if _, err := s.proveedorRepo.FindByID(ctx, proveedorID); err != nil {
		return nil, ErrProveedorNoEncontrado
	}
	if !req.PrecioVenta.IsPositive() || req.PrecioCosto.IsNegative() {
		return nil, ErrPrecioInvalido
	}

	p := model.Producto{
		ProveedorID:    proveedorID,
		Modelo:         req.Modelo,
		Lanzamiento:    req.Lanzamiento,
		Procesador:     req.Procesador,
		Ram:            req.Ram,
		Almacenamiento: req.Almacenamiento,
		PrecioVenta:    req.PrecioVenta,
		PrecioCosto:    req.PrecioCosto,
		Stock:          req.Stock,
		Estado:         model.ProductoActivo,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	resp := productoToResponse(&p)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) ListarPorProveedor(ctx context.Context, proveedorID uuid.UUID) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.FindByProveedorID(ctx, proveedorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, productoToResponse(&productos[i]))
	}
	return out, nil
}

// Actualizar nunca toca el stock: eso es terreno del ledger de inventario.
func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}

	if req.ProveedorID != nil {
		proveedorID, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, ErrProveedorNoEncontrado
		}
		if _, err := s.proveedorRepo.FindByID(ctx, proveedorID); err != nil {
			return nil, ErrProveedorNoEncontrado
		}
		p.ProveedorID = proveedorID
	}
	if req.Modelo != nil {
		p.Modelo = *req.Modelo
	}
	if req.Lanzamiento != nil {
		p.Lanzamiento = *req.Lanzamiento
	}
	if req.Procesador != nil {
		p.Procesador = *req.Procesador
	}
	if req.Ram != nil {
		p.Ram = *req.Ram
	}
	if req.Almacenamiento != nil {
		p.Almacenamiento = *req.Almacenamiento
	}
	if req.PrecioVenta != nil {
		if !req.PrecioVenta.IsPositive() {
			return nil, ErrPrecioInvalido
		}
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.PrecioCosto != nil {
		if req.PrecioCosto.IsNegative() {
			return nil, ErrPrecioInvalido
		}
		p.PrecioCosto = *req.PrecioCosto
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProductoNoEncontrado
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProductoNoEncontrado
	}
	return s.repo.Reactivar(ctx, id)
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:             p.ID.String(),
		ProveedorID:    p.ProveedorID.String(),
		Modelo:         p.Modelo,
		Lanzamiento:    p.Lanzamiento,
		Procesador:     p.Procesador,
		Ram:            p.Ram,
		Almacenamiento: p.Almacenamiento,
		PrecioVenta:    p.PrecioVenta,
		PrecioCosto:    p.PrecioCosto,
		Stock:          p.Stock,
		Estado:         p.Estado,
	}
	if p.Proveedor != nil {
		resp.Proveedor = p.Proveedor.RazonSocial
	}
	return resp
}
