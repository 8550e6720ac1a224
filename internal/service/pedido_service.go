package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PedidoService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarPedidoRequest) (*dto.PedidoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
	ListarPorCliente(ctx context.Context, clienteID uuid.UUID) ([]dto.PedidoResponse, error)
	ListarPorUsuario(ctx context.Context, usuarioID uuid.UUID) ([]dto.PedidoResponse, error)
	RecalcularTotal(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Anular(ctx context.Context, id uuid.UUID, motivo string) error
	TotalVentasDia(ctx context.Context, fecha time.Time) (*dto.TotalVentasResponse, error)
	TotalVentasMes(ctx context.Context, year int, month time.Month) (*dto.TotalVentasResponse, error)
}

type pedidoService struct {
	repo            repository.PedidoRepository
	detalleRepo     repository.DetallePedidoRepository
	productoRepo    repository.ProductoRepository
	clienteRepo     repository.ClienteRepository
	comprobanteRepo repository.ComprobanteRepository
	inventario      InventarioService
	detalles        DetallePedidoService

	now func() time.Time
}

func NewPedidoService(
	repo repository.PedidoRepository,
	detalleRepo repository.DetallePedidoRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	comprobanteRepo repository.ComprobanteRepository,
	inventario InventarioService,
	detalles DetallePedidoService,
) PedidoService {
	return &pedidoService{
		repo:            repo,
		detalleRepo:     detalleRepo,
		productoRepo:    productoRepo,
		clienteRepo:     clienteRepo,
		comprobanteRepo: comprobanteRepo,
		inventario:      inventario,
		detalles:        detalles,
		now:             time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Registrar ────────────────────────────────────────────────────────────────
// Venta todo-o-nada:
//   1. Resolver cliente y productos, congelar precios, validar stock (pre-vuelo)
//   2. BEGIN TX: crear pedido + detalles, descontar stock línea por línea
//   3. COMMIT — si cualquier línea falla, ningún descuento sobrevive

func (s *pedidoService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarPedidoRequest) (*dto.PedidoResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente_id inválido: %w", err)
	}
	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, ErrClienteNoEncontrado
	}

	var fechaEntrega *time.Time
	if req.FechaEntrega != nil && *req.FechaEntrega != "" {
		fe, err := time.Parse("2006-01-02", *req.FechaEntrega)
		if err != nil {
			return nil, fmt.Errorf("fecha_entrega inválida: %w", err)
		}
		fechaEntrega = &fe
	}

	// Pre-vuelo fuera de la transacción: cualquier línea inválida rechaza la
	// venta entera antes de tocar el stock.
	type lineaResuelta struct {
		productoID uuid.UUID
		modelo     string
		cantidad   int
		precio     decimal.Decimal
		subtotal   decimal.Decimal
	}

	var resueltas []lineaResuelta
	total := decimal.Zero

	for _, linea := range req.Detalles {
		if linea.Cantidad <= 0 {
			return nil, ErrCantidadInvalida
		}
		pid, err := uuid.Parse(linea.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductoNoEncontrado, linea.ProductoID)
		}
		if p.Estado != model.ProductoActivo {
			return nil, fmt.Errorf("%w: %s está inactivo", ErrProductoNoEncontrado, p.Modelo)
		}
		if p.Stock < linea.Cantidad {
			return nil, fmt.Errorf("%w: %s (disponible %d, pedido %d)",
				ErrStockInsuficiente, p.Modelo, p.Stock, linea.Cantidad)
		}

		precio := p.PrecioVenta
		if linea.PrecioUnitario != nil {
			precio = *linea.PrecioUnitario
		}
		if !precio.IsPositive() {
			return nil, ErrPrecioInvalido
		}

		subtotal := precio.Mul(decimal.NewFromInt(int64(linea.Cantidad)))
		total = total.Add(subtotal)
		resueltas = append(resueltas, lineaResuelta{
			productoID: pid,
			modelo:     p.Modelo,
			cantidad:   linea.Cantidad,
			precio:     precio,
			subtotal:   subtotal,
		})
	}

	pedido := model.Pedido{
		ClienteID:    clienteID,
		UsuarioID:    usuarioID,
		FechaPedido:  s.now(),
		FechaEntrega: fechaEntrega,
		TipoPago:     req.TipoPago,
		TotalPagar:   total,
		Estado:       model.EstadoEmitido,
	}
	for _, r := range resueltas {
		pedido.Detalles = append(pedido.Detalles, model.DetallePedido{
			ProductoID:     r.productoID,
			Cantidad:       r.cantidad,
			PrecioUnitario: r.precio,
			Subtotal:       r.subtotal,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(ctx, tx, &pedido); err != nil {
			return err
		}
		ref := pedido.ID
		for _, r := range resueltas {
			motivo := fmt.Sprintf("Venta pedido %s", pedido.ID)
			if err := s.inventario.DescontarStockTx(tx, r.productoID, r.cantidad, motivo, &ref); err != nil {
				return fmt.Errorf("descontando stock de %s: %w", r.modelo, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := pedidoToResponse(&pedido)
	resp.Cliente = cliente.Nombre
	for i, r := range resueltas {
		resp.Detalles[i].Producto = r.modelo
	}
	return resp, nil
}

// ── Anular ───────────────────────────────────────────────────────────────────
// Coordinador de reversa: en una sola transacción repone el stock de cada
// línea vigente, marca el pedido Anulado y, si hay comprobante Emitido, lo
// anula también. El token de reversa (movimiento restauracion_anulacion por
// pedido) garantiza que el stock se reponga exactamente una vez aunque el
// comprobante se anule por separado. Tanto esta ruta como la anulación del
// comprobante abren su transacción tomando el lock de la fila del pedido:
// dos anulaciones concurrentes del mismo pedido se serializan ahí, y la que
// llega segunda reevalúa estado y token ya confirmados por la primera.

func (s *pedidoService) Anular(ctx context.Context, id uuid.UUID, motivo string) error {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrPedidoNoEncontrado
	}
	if pedido.Estado == model.EstadoAnulado {
		return ErrPedidoYaAnulado
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		pedido, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			return ErrPedidoNoEncontrado
		}
		if pedido.Estado == model.EstadoAnulado {
			return ErrPedidoYaAnulado
		}

		restaurado, err := s.inventario.StockRestaurado(tx, id)
		if err != nil {
			return err
		}
		if !restaurado {
			ref := id
			for _, d := range pedido.Detalles {
				m := fmt.Sprintf("Anulación pedido %s — %s", id, motivo)
				if err := s.inventario.ReponerStockTx(tx, d.ProductoID, d.Cantidad,
					model.MovimientoRestauracion, m, &ref); err != nil {
					return err
				}
			}
		}

		if err := s.repo.UpdateEstadoTx(tx, id, model.EstadoAnulado); err != nil {
			return err
		}

		comprobante, err := s.comprobanteRepo.FindByPedidoIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if comprobante.Estado == model.EstadoEmitido {
			return s.comprobanteRepo.UpdateEstadoTx(tx, comprobante.ID, model.EstadoAnulado)
		}
		return nil
	})
}

// RecalcularTotal vuelve a derivar el total desde las líneas persistidas.
// Idempotente: sin mutaciones intermedias, dos llamadas seguidas dan lo mismo.
func (s *pedidoService) RecalcularTotal(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, ErrPedidoNoEncontrado
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		_, err := s.detalles.RecalcularTotalTx(tx, id)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, id)
}

func (s *pedidoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPedidoNoEncontrado
		}
		return nil, err
	}
	return pedidoToResponse(pedido), nil
}

func (s *pedidoService) Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	pedidos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		data = append(data, *pedidoToResponse(&pedidos[i]))
	}
	return &dto.PedidoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *pedidoService) ListarPorCliente(ctx context.Context, clienteID uuid.UUID) ([]dto.PedidoResponse, error) {
	pedidos, err := s.repo.FindByClienteID(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		out = append(out, *pedidoToResponse(&pedidos[i]))
	}
	return out, nil
}

// ListarPorUsuario lista las ventas registradas por un vendedor.
func (s *pedidoService) ListarPorUsuario(ctx context.Context, usuarioID uuid.UUID) ([]dto.PedidoResponse, error) {
	pedidos, err := s.repo.FindByUsuarioID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		out = append(out, *pedidoToResponse(&pedidos[i]))
	}
	return out, nil
}

func (s *pedidoService) TotalVentasDia(ctx context.Context, fecha time.Time) (*dto.TotalVentasResponse, error) {
	total, err := s.repo.TotalVentasPorFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}
	return &dto.TotalVentasResponse{
		Fecha: fecha.Format("2006-01-02"),
		Total: total,
	}, nil
}

func (s *pedidoService) TotalVentasMes(ctx context.Context, year int, month time.Month) (*dto.TotalVentasResponse, error) {
	total, err := s.repo.TotalVentasPorMes(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return &dto.TotalVentasResponse{
		Mes:   fmt.Sprintf("%04d-%02d", year, int(month)),
		Total: total,
	}, nil
}

func pedidoToResponse(p *model.Pedido) *dto.PedidoResponse {
	detalles := make([]dto.DetallePedidoResponse, 0, len(p.Detalles))
	for i := range p.Detalles {
		detalles = append(detalles, detalleToResponse(&p.Detalles[i]))
	}
	resp := &dto.PedidoResponse{
		ID:          p.ID.String(),
		ClienteID:   p.ClienteID.String(),
		UsuarioID:   p.UsuarioID.String(),
		FechaPedido: p.FechaPedido.Format("2006-01-02T15:04:05Z"),
		TipoPago:    p.TipoPago,
		TotalPagar:  p.TotalPagar,
		Estado:      p.Estado,
		Detalles:    detalles,
	}
	if p.FechaEntrega != nil {
		fe := p.FechaEntrega.Format("2006-01-02")
		resp.FechaEntrega = &fe
	}
	if p.Cliente != nil {
		resp.Cliente = p.Cliente.Nombre
	}
	if p.Usuario != nil {
		resp.Usuario = p.Usuario.Nombre
	}
	return resp
}
