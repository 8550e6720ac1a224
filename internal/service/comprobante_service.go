package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/repository"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// igvRate es la tasa de IGV peruana aplicada al emitir.
var igvRate = decimal.RequireFromString("0.18")

const (
	// maxIntentosNumero acota el reintento del generador de correlativos.
	maxIntentosNumero = 5
	prefijoBoleta     = "BOL"
	prefijoFactura    = "FAC"
)

type ComprobanteService interface {
	GenerarDesdePedido(ctx context.Context, usuarioID uuid.UUID, req dto.GenerarComprobanteRequest) (*dto.ComprobanteResponse, error)
	Anular(ctx context.Context, id uuid.UUID, motivo string) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ComprobanteResponse, error)
	ObtenerPorNumero(ctx context.Context, numero string) (*dto.ComprobanteResponse, error)
	ObtenerPorPedido(ctx context.Context, pedidoID uuid.UUID) (*dto.ComprobanteResponse, error)
	Listar(ctx context.Context, filter dto.ComprobanteFilter) (*dto.ComprobanteListResponse, error)
}

type comprobanteService struct {
	repo        repository.ComprobanteRepository
	pedidoRepo  repository.PedidoRepository
	detalleRepo repository.DetallePedidoRepository
	inventario  InventarioService
	dispatcher  *worker.Dispatcher

	now     func() time.Time
	backoff time.Duration
}

func NewComprobanteService(
	repo repository.ComprobanteRepository,
	pedidoRepo repository.PedidoRepository,
	detalleRepo repository.DetallePedidoRepository,
	inventario InventarioService,
	dispatcher *worker.Dispatcher,
) ComprobanteService {
	return &comprobanteService{
		repo:        repo,
		pedidoRepo:  pedidoRepo,
		detalleRepo: detalleRepo,
		inventario:  inventario,
		dispatcher:  dispatcher,
		now:         time.Now,
		backoff:     10 * time.Millisecond,
	}
}

// ── GenerarDesdePedido ───────────────────────────────────────────────────────
// Emite el comprobante de un pedido:
//   1. Un pedido tiene a lo sumo un comprobante, anulado o no — no se reemite.
//   2. Las líneas se congelan como DetalleComprobante; ediciones posteriores
//      del pedido no tocan el documento.
//   3. igv = round(subtotal × 0.18, 2), total = subtotal + igv.
//   4. El correlativo sale de max(sufijo del prefijo) + 1 dentro de la misma
//      transacción del INSERT; si el índice único detecta una colisión con
//      otra emisión concurrente se reintenta hasta maxIntentosNumero veces.

func (s *comprobanteService) GenerarDesdePedido(ctx context.Context, usuarioID uuid.UUID, req dto.GenerarComprobanteRequest) (*dto.ComprobanteResponse, error) {
	pedidoID, err := uuid.Parse(req.PedidoID)
	if err != nil {
		return nil, fmt.Errorf("pedido_id inválido: %w", err)
	}

	var prefijo string
	switch req.TipoComprobante {
	case model.ComprobanteBoleta:
		prefijo = prefijoBoleta
	case model.ComprobanteFactura:
		prefijo = prefijoFactura
	default:
		return nil, ErrTipoComprobanteInvalido
	}

	pedido, err := s.pedidoRepo.FindByID(ctx, pedidoID)
	if err != nil {
		return nil, ErrPedidoNoEncontrado
	}
	if pedido.Estado == model.EstadoAnulado {
		return nil, ErrPedidoAnulado
	}
	if len(pedido.Detalles) == 0 {
		return nil, ErrPedidoSinDetalles
	}

	existe, err := s.repo.ExistsByPedidoID(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, ErrComprobanteDuplicado
	}

	subtotal := sumarSubtotales(pedido.Detalles)
	igv := subtotal.Mul(igvRate).Round(2)
	total := subtotal.Add(igv)

	var comprobante model.Comprobante
	for intento := 1; intento <= maxIntentosNumero; intento++ {
		comprobante = model.Comprobante{
			PedidoID:        pedidoID,
			ClienteID:       pedido.ClienteID,
			UsuarioID:       usuarioID,
			TipoPago:        pedido.TipoPago,
			TipoComprobante: req.TipoComprobante,
			Subtotal:        subtotal,
			IGV:             igv,
			TotalPagar:      total,
			FechaEmision:    s.now(),
			Estado:          model.EstadoEmitido,
		}
		for _, d := range pedido.Detalles {
			comprobante.Detalles = append(comprobante.Detalles, model.DetalleComprobante{
				ProductoID:     d.ProductoID,
				Cantidad:       d.Cantidad,
				PrecioUnitario: d.PrecioUnitario,
				Subtotal:       d.Subtotal,
			})
		}

		txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			max, err := s.repo.MaxNumeroSufijoTx(tx, prefijo)
			if err != nil {
				return err
			}
			comprobante.NumeroComprobante = fmt.Sprintf("%s%06d", prefijo, max+1)
			return s.repo.CreateTx(tx, &comprobante)
		})
		if txErr == nil {
			break
		}
		if !errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return nil, txErr
		}

		// Colisión de índice único. Si fue sobre pedido_id, otra emisión
		// concurrente ganó este pedido; si fue sobre el número, reintentamos
		// con un correlativo fresco.
		if existe, err := s.repo.ExistsByPedidoID(ctx, pedidoID); err == nil && existe {
			return nil, ErrComprobanteDuplicado
		}
		if intento == maxIntentosNumero {
			return nil, fmt.Errorf("%w: %d intentos con prefijo %s", ErrSecuenciaAgotada, maxIntentosNumero, prefijo)
		}
		time.Sleep(s.backoff)
	}

	// Render de PDF y correo en segundo plano — la emisión no espera.
	if s.dispatcher != nil {
		payload := map[string]interface{}{
			"comprobante_id": comprobante.ID.String(),
		}
		if req.ClienteEmail != nil && *req.ClienteEmail != "" {
			payload["cliente_email"] = *req.ClienteEmail
		}
		_ = s.dispatcher.EnqueueComprobante(ctx, payload)
	}

	resp := comprobanteToResponse(&comprobante)
	if pedido.Cliente != nil {
		resp.Cliente = pedido.Cliente.Nombre
	}
	return resp, nil
}

// ── Anular ───────────────────────────────────────────────────────────────────
// Marca el comprobante Anulado y repone el stock de sus líneas, salvo que el
// token de reversa indique que la anulación del pedido ya lo hizo. La
// transacción abre tomando el lock de la fila del pedido — el mismo punto de
// serialización que usa la anulación del pedido — y reevalúa estado y token
// bajo el lock: si una anulación concurrente ganó, aquí se ve su resultado
// confirmado y no se repone dos veces.

func (s *comprobanteService) Anular(ctx context.Context, id uuid.UUID, motivo string) error {
	comprobante, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrComprobanteNoEncontrado
	}
	if comprobante.Estado == model.EstadoAnulado {
		return ErrComprobanteYaAnulado
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.pedidoRepo.FindByIDForUpdateTx(tx, comprobante.PedidoID); err != nil {
			return err
		}
		actual, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return ErrComprobanteNoEncontrado
		}
		if actual.Estado == model.EstadoAnulado {
			return ErrComprobanteYaAnulado
		}

		restaurado, err := s.inventario.StockRestaurado(tx, comprobante.PedidoID)
		if err != nil {
			return err
		}
		if !restaurado {
			ref := comprobante.PedidoID
			for _, d := range comprobante.Detalles {
				m := fmt.Sprintf("Anulación comprobante %s — %s", comprobante.NumeroComprobante, motivo)
				if err := s.inventario.ReponerStockTx(tx, d.ProductoID, d.Cantidad,
					model.MovimientoRestauracion, m, &ref); err != nil {
					return err
				}
			}
		}
		return s.repo.UpdateEstadoTx(tx, id, model.EstadoAnulado)
	})
}

func (s *comprobanteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ComprobanteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComprobanteNoEncontrado
		}
		return nil, err
	}
	return comprobanteToResponse(c), nil
}

func (s *comprobanteService) ObtenerPorNumero(ctx context.Context, numero string) (*dto.ComprobanteResponse, error) {
	c, err := s.repo.FindByNumero(ctx, numero)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComprobanteNoEncontrado
		}
		return nil, err
	}
	return comprobanteToResponse(c), nil
}

func (s *comprobanteService) ObtenerPorPedido(ctx context.Context, pedidoID uuid.UUID) (*dto.ComprobanteResponse, error) {
	c, err := s.repo.FindByPedidoID(ctx, pedidoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComprobanteNoEncontrado
		}
		return nil, err
	}
	return comprobanteToResponse(c), nil
}

func (s *comprobanteService) Listar(ctx context.Context, filter dto.ComprobanteFilter) (*dto.ComprobanteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	comprobantes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ComprobanteResponse, 0, len(comprobantes))
	for i := range comprobantes {
		data = append(data, *comprobanteToResponse(&comprobantes[i]))
	}
	return &dto.ComprobanteListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func comprobanteToResponse(c *model.Comprobante) *dto.ComprobanteResponse {
	detalles := make([]dto.DetalleComprobanteResponse, 0, len(c.Detalles))
	for _, d := range c.Detalles {
		item := dto.DetalleComprobanteResponse{
			ProductoID:     d.ProductoID.String(),
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		}
		if d.Producto != nil {
			item.Producto = d.Producto.Modelo
		}
		detalles = append(detalles, item)
	}
	resp := &dto.ComprobanteResponse{
		ID:                c.ID.String(),
		PedidoID:          c.PedidoID.String(),
		NumeroComprobante: c.NumeroComprobante,
		TipoComprobante:   c.TipoComprobante,
		FechaEmision:      c.FechaEmision.Format("2006-01-02T15:04:05Z"),
		Subtotal:          c.Subtotal,
		IGV:               c.IGV,
		TotalPagar:        c.TotalPagar,
		Estado:            c.Estado,
		Detalles:          detalles,
	}
	if c.Cliente != nil {
		resp.Cliente = c.Cliente.Nombre
	}
	if c.Usuario != nil {
		resp.Usuario = c.Usuario.Nombre
	}
	if c.PDFPath != nil {
		resp.PDFPath = *c.PDFPath
	}
	return resp
}
