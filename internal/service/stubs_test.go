package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. All Tx methods accept a nil *gorm.DB: runTx
// detects the nil DB() and calls the closure directly, so the services under
// test run their transactional logic against these maps.

// ── stubProductoRepo ─────────────────────────────────────────────────────────

type stubProductoRepo struct {
	mu        sync.Mutex
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) FindByProveedorID(_ context.Context, proveedorID uuid.UUID) ([]model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Producto
	for _, p := range r.productos {
		if p.ProveedorID == proveedorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.productos[id]; ok {
		p.Estado = model.ProductoInactivo
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.productos[id]; ok {
		p.Estado = model.ProductoActivo
	}
	return nil
}

func (r *stubProductoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

// DescontarStockTx replicates the conditional UPDATE with RETURNING: check,
// decrement and resulting stock all happen under one lock, so concurrent
// overdraws see 0 rows and the returned stock is exactly what this call left.
func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (int, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok || p.Estado != model.ProductoActivo || p.Stock < cantidad {
		return 0, 0, nil
	}
	p.Stock -= cantidad
	return p.Stock, 1, nil
}

func (r *stubProductoRepo) ReponerStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (int, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return 0, 0, nil
	}
	p.Stock += cantidad
	return p.Stock, 1, nil
}

func (r *stubProductoRepo) EstablecerStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return 0, nil
	}
	p.Stock = cantidad
	return 1, nil
}

func (r *stubProductoRepo) stock(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.productos[id].Stock
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── stubMovimientoRepo ───────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	mu          sync.Mutex
	movimientos []model.MovimientoStock
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) ListByProducto(_ context.Context, productoID uuid.UUID, _ int) ([]model.MovimientoStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovimientoRepo) ExistsRestauracionTx(_ *gorm.DB, pedidoID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movimientos {
		if m.Tipo == model.MovimientoRestauracion && m.ReferenciaID != nil && *m.ReferenciaID == pedidoID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubMovimientoRepo) countRestauraciones(pedidoID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.movimientos {
		if m.Tipo == model.MovimientoRestauracion && m.ReferenciaID != nil && *m.ReferenciaID == pedidoID {
			n++
		}
	}
	return n
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

// ── stubDetalleRepo ──────────────────────────────────────────────────────────

type stubDetalleRepo struct {
	mu       sync.Mutex
	seq      int64
	detalles map[int64]*model.DetallePedido
}

func newStubDetalleRepo() *stubDetalleRepo {
	return &stubDetalleRepo{detalles: make(map[int64]*model.DetallePedido)}
}

func (r *stubDetalleRepo) DB() *gorm.DB { return nil }

func (r *stubDetalleRepo) CreateTx(_ *gorm.DB, d *model.DetallePedido) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	d.ID = r.seq
	cp := *d
	r.detalles[d.ID] = &cp
	return nil
}

func (r *stubDetalleRepo) FindByID(_ context.Context, id int64) (*model.DetallePedido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.detalles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *stubDetalleRepo) FindByPedidoID(_ context.Context, pedidoID uuid.UUID) ([]model.DetallePedido, error) {
	return r.FindByPedidoIDTx(nil, pedidoID)
}

func (r *stubDetalleRepo) FindByPedidoIDTx(_ *gorm.DB, pedidoID uuid.UUID) ([]model.DetallePedido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.DetallePedido
	for _, d := range r.detalles {
		if d.PedidoID == pedidoID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubDetalleRepo) UpdateTx(_ *gorm.DB, d *model.DetallePedido) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.detalles[d.ID] = &cp
	return nil
}

func (r *stubDetalleRepo) DeleteTx(_ *gorm.DB, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.detalles, id)
	return nil
}

func (r *stubDetalleRepo) DeleteByPedidoIDTx(_ *gorm.DB, pedidoID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, d := range r.detalles {
		if d.PedidoID == pedidoID {
			delete(r.detalles, id)
		}
	}
	return nil
}

func (r *stubDetalleRepo) ExistsByProductoID(_ context.Context, productoID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.detalles {
		if d.ProductoID == productoID {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.DetallePedidoRepository = (*stubDetalleRepo)(nil)

// ── stubPedidoRepo ───────────────────────────────────────────────────────────

// stubPedidoRepo delegates line storage to a shared stubDetalleRepo, matching
// the preload the GORM implementation does.
type stubPedidoRepo struct {
	mu       sync.Mutex
	pedidos  map[uuid.UUID]*model.Pedido
	detalles *stubDetalleRepo

	// forUpdateHook, when set, runs once before FindByIDForUpdateTx returns.
	// Tests use it to complete a competing anulación between a caller's
	// pre-flight read and its row lock, reproducing the interleaving where
	// the second transaction wakes up after the first committed.
	forUpdateHook func()
}

func newStubPedidoRepo(detalles *stubDetalleRepo) *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.Pedido), detalles: detalles}
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

func (r *stubPedidoRepo) CreateTx(_ context.Context, _ *gorm.DB, p *model.Pedido) error {
	r.mu.Lock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.mu.Unlock()

	for i := range p.Detalles {
		p.Detalles[i].PedidoID = p.ID
		if err := r.detalles.CreateTx(nil, &p.Detalles[i]); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	cp.Detalles = nil
	r.pedidos[p.ID] = &cp
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	r.mu.Lock()
	p, ok := r.pedidos[id]
	if !ok {
		r.mu.Unlock()
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	r.mu.Unlock()

	detalles, _ := r.detalles.FindByPedidoIDTx(nil, id)
	cp.Detalles = detalles
	return &cp, nil
}

func (r *stubPedidoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Pedido, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubPedidoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Pedido, error) {
	if hook := r.forUpdateHook; hook != nil {
		r.forUpdateHook = nil
		hook()
	}
	return r.FindByID(context.Background(), id)
}

func (r *stubPedidoRepo) List(_ context.Context, _ dto.PedidoFilter) ([]model.Pedido, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Pedido, 0, len(r.pedidos))
	for _, p := range r.pedidos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPedidoRepo) FindByClienteID(_ context.Context, clienteID uuid.UUID) ([]model.Pedido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Pedido
	for _, p := range r.pedidos {
		if p.ClienteID == clienteID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPedidoRepo) FindByUsuarioID(_ context.Context, usuarioID uuid.UUID) ([]model.Pedido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Pedido
	for _, p := range r.pedidos {
		if p.UsuarioID == usuarioID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPedidoRepo) UpdateTotalTx(_ *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pedidos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.TotalPagar = total
	return nil
}

func (r *stubPedidoRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pedidos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Estado = estado
	return nil
}

func (r *stubPedidoRepo) TotalVentasPorFecha(_ context.Context, fecha time.Time) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, p := range r.pedidos {
		if p.Estado == model.EstadoEmitido && p.FechaPedido.Format("2006-01-02") == fecha.Format("2006-01-02") {
			total = total.Add(p.TotalPagar)
		}
	}
	return total, nil
}

func (r *stubPedidoRepo) TotalVentasPorMes(_ context.Context, year int, month time.Month) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, p := range r.pedidos {
		if p.Estado == model.EstadoEmitido && p.FechaPedido.Year() == year && p.FechaPedido.Month() == month {
			total = total.Add(p.TotalPagar)
		}
	}
	return total, nil
}

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

// ── stubComprobanteRepo ──────────────────────────────────────────────────────

type stubComprobanteRepo struct {
	mu           sync.Mutex
	comprobantes map[uuid.UUID]*model.Comprobante
	porPedido    map[uuid.UUID]uuid.UUID
	porNumero    map[string]uuid.UUID

	// maxOverride, when set, replaces MaxNumeroSufijoTx — lets tests feed the
	// sequence generator a stale max and force unique-index collisions.
	maxOverride func(prefijo string) (int64, error)
}

func newStubComprobanteRepo() *stubComprobanteRepo {
	return &stubComprobanteRepo{
		comprobantes: make(map[uuid.UUID]*model.Comprobante),
		porPedido:    make(map[uuid.UUID]uuid.UUID),
		porNumero:    make(map[string]uuid.UUID),
	}
}

func (r *stubComprobanteRepo) DB() *gorm.DB { return nil }

func (r *stubComprobanteRepo) CreateTx(_ *gorm.DB, c *model.Comprobante) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.porNumero[c.NumeroComprobante]; dup {
		return gorm.ErrDuplicatedKey
	}
	if _, dup := r.porPedido[c.PedidoID]; dup {
		return gorm.ErrDuplicatedKey
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.comprobantes[c.ID] = &cp
	r.porPedido[c.PedidoID] = c.ID
	r.porNumero[c.NumeroComprobante] = c.ID
	return nil
}

func (r *stubComprobanteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Comprobante, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comprobantes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubComprobanteRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Comprobante, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubComprobanteRepo) FindByPedidoID(_ context.Context, pedidoID uuid.UUID) (*model.Comprobante, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.porPedido[pedidoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.comprobantes[id]
	return &cp, nil
}

func (r *stubComprobanteRepo) FindByPedidoIDTx(_ *gorm.DB, pedidoID uuid.UUID) (*model.Comprobante, error) {
	return r.FindByPedidoID(context.Background(), pedidoID)
}

func (r *stubComprobanteRepo) FindByNumero(_ context.Context, numero string) (*model.Comprobante, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.porNumero[numero]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.comprobantes[id]
	return &cp, nil
}

func (r *stubComprobanteRepo) List(_ context.Context, _ dto.ComprobanteFilter) ([]model.Comprobante, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Comprobante, 0, len(r.comprobantes))
	for _, c := range r.comprobantes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubComprobanteRepo) ExistsByPedidoID(_ context.Context, pedidoID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.porPedido[pedidoID]
	return ok, nil
}

func (r *stubComprobanteRepo) MaxNumeroSufijoTx(_ *gorm.DB, prefijo string) (int64, error) {
	if r.maxOverride != nil {
		return r.maxOverride(prefijo)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var max int64
	for numero := range r.porNumero {
		if !strings.HasPrefix(numero, prefijo) {
			continue
		}
		n, err := strconv.ParseInt(numero[len(prefijo):], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("numero mal formado %q: %w", numero, err)
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}

func (r *stubComprobanteRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comprobantes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Estado = estado
	return nil
}

func (r *stubComprobanteRepo) UpdatePDFPath(_ context.Context, id uuid.UUID, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comprobantes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.PDFPath = &path
	return nil
}

var _ repository.ComprobanteRepository = (*stubComprobanteRepo)(nil)

// ── stubClienteRepo ──────────────────────────────────────────────────────────

type stubClienteRepo struct {
	mu       sync.Mutex
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClienteRepo) FindByNumDoc(_ context.Context, numDoc string) (*model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clientes {
		if c.NumDoc == numDoc {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) List(_ context.Context, _ bool) ([]model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clientes[id]; ok {
		c.Estado = "Inactivo"
	}
	return nil
}

func (r *stubClienteRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clientes[id]; ok {
		c.Estado = "Activo"
	}
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── stubUsuarioRepo ──────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	mu       sync.Mutex
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.usuarios {
		if ex.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

// FindByUsername sólo devuelve usuarios activos, como el WHERE del repositorio
// real: un usuario desactivado no puede iniciar sesión.
func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.usuarios[id]; ok {
		u.Activo = false
	}
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.usuarios[id]; ok {
		u.Activo = true
	}
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── stubCargoRepo ────────────────────────────────────────────────────────────

type stubCargoRepo struct {
	mu     sync.Mutex
	cargos map[uuid.UUID]*model.Cargo
}

func newStubCargoRepo() *stubCargoRepo {
	return &stubCargoRepo{cargos: make(map[uuid.UUID]*model.Cargo)}
}

func (r *stubCargoRepo) Create(_ context.Context, c *model.Cargo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.cargos[c.ID] = &cp
	return nil
}

func (r *stubCargoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cargo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cargos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCargoRepo) List(_ context.Context) ([]model.Cargo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Cargo
	for _, c := range r.cargos {
		if c.Activo {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCargoRepo) Update(_ context.Context, c *model.Cargo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.cargos[c.ID] = &cp
	return nil
}

func (r *stubCargoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cargos[id]; ok {
		c.Activo = false
	}
	return nil
}

var _ repository.CargoRepository = (*stubCargoRepo)(nil)

// ── Shared test environment ──────────────────────────────────────────────────

type testEnv struct {
	productoRepo    *stubProductoRepo
	movimientoRepo  *stubMovimientoRepo
	detalleRepo     *stubDetalleRepo
	pedidoRepo      *stubPedidoRepo
	comprobanteRepo *stubComprobanteRepo
	clienteRepo     *stubClienteRepo

	inventario   InventarioService
	detalles     DetallePedidoService
	pedidos      PedidoService
	comprobantes ComprobanteService

	cliente *model.Cliente
}

func newTestEnv() *testEnv {
	e := &testEnv{
		productoRepo:    newStubProductoRepo(),
		movimientoRepo:  &stubMovimientoRepo{},
		detalleRepo:     newStubDetalleRepo(),
		comprobanteRepo: newStubComprobanteRepo(),
		clienteRepo:     newStubClienteRepo(),
	}
	e.pedidoRepo = newStubPedidoRepo(e.detalleRepo)

	e.inventario = NewInventarioService(e.productoRepo, e.movimientoRepo)
	e.detalles = NewDetallePedidoService(e.detalleRepo, e.pedidoRepo, e.productoRepo, e.inventario)
	e.pedidos = NewPedidoService(e.pedidoRepo, e.detalleRepo, e.productoRepo, e.clienteRepo, e.comprobanteRepo, e.inventario, e.detalles)
	e.comprobantes = NewComprobanteService(e.comprobanteRepo, e.pedidoRepo, e.detalleRepo, e.inventario, nil)
	e.comprobantes.(*comprobanteService).backoff = 0

	e.cliente = &model.Cliente{NumDoc: "45678912", Nombre: "María Quispe", TipoDoc: "DNI", Estado: "Activo"}
	_ = e.clienteRepo.Create(context.Background(), e.cliente)
	return e
}

// seedProducto registers an active product with the given stock and price.
func seedProducto(repo *stubProductoRepo, modelo string, stock int, precio float64) *model.Producto {
	p := &model.Producto{
		ID:          uuid.New(),
		ProveedorID: uuid.New(),
		Modelo:      modelo,
		PrecioVenta: decimal.NewFromFloat(precio),
		PrecioCosto: decimal.NewFromFloat(precio * 0.7),
		Stock:       stock,
		Estado:      model.ProductoActivo,
	}
	_ = repo.Create(context.Background(), p)
	return p
}

// registrarPedido is a shorthand for placing a single-product order.
func (e *testEnv) registrarPedido(p *model.Producto, cantidad int) (*dto.PedidoResponse, error) {
	return e.pedidos.Registrar(context.Background(), uuid.New(), dto.RegistrarPedidoRequest{
		ClienteID: e.cliente.ID.String(),
		TipoPago:  model.PagoEfectivo,
		Detalles: []dto.DetallePedidoRequest{
			{ProductoID: p.ID.String(), Cantidad: cantidad},
		},
	})
}
