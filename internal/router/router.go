package router

import (
	"time"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/config"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/handler"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/middleware"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/repository"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/service"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.Domain))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	cargoRepo := repository.NewCargoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	detalleRepo := repository.NewDetallePedidoRepository(db)
	comprobanteRepo := repository.NewComprobanteRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cargoRepo, cfg, dispatcher)
	cargoSvc := service.NewCargoService(cargoRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	productoSvc := service.NewProductoService(productoRepo, proveedorRepo)
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoRepo)
	detalleSvc := service.NewDetallePedidoService(detalleRepo, pedidoRepo, productoRepo, inventarioSvc)
	pedidoSvc := service.NewPedidoService(pedidoRepo, detalleRepo, productoRepo, clienteRepo, comprobanteRepo, inventarioSvc, detalleSvc)
	comprobanteSvc := service.NewComprobanteService(comprobanteRepo, pedidoRepo, detalleRepo, inventarioSvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, cargoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc, productoSvc)
	productosH := handler.NewProductosHandler(productoSvc, inventarioSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc, detalleSvc)
	detallesH := handler.NewDetallesHandler(detalleSvc)
	comprobantesH := handler.NewComprobantesHandler(comprobanteSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/precio/:id", consultaH.GetPrecio)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RolVendedor, model.RolAdministrador)
	adminOnly := middleware.RequireRole(model.RolAdministrador)

	v1 := r.Group("/v1", jwtMW)
	{
		// Pedidos — vendedor y administrador
		v1.POST("/pedidos", anyRole, pedidosH.Registrar)
		v1.GET("/pedidos", anyRole, pedidosH.Listar)
		v1.GET("/pedidos/:id", anyRole, pedidosH.Obtener)
		v1.DELETE("/pedidos/:id", adminOnly, pedidosH.Anular)
		v1.POST("/pedidos/:id/recalcular", anyRole, pedidosH.RecalcularTotal)

		// Líneas del pedido
		v1.GET("/pedidos/:id/detalles", anyRole, detallesH.Listar)
		v1.POST("/pedidos/:id/detalles", anyRole, detallesH.Agregar)
		v1.PUT("/detalles/:detalleId", anyRole, detallesH.Actualizar)
		v1.DELETE("/detalles/:detalleId", anyRole, detallesH.Eliminar)

		// Comprobantes
		v1.POST("/comprobantes", anyRole, comprobantesH.Generar)
		v1.GET("/comprobantes", anyRole, comprobantesH.Listar)
		v1.GET("/comprobantes/:id", anyRole, comprobantesH.Obtener)
		v1.GET("/comprobantes/numero/:numero", anyRole, comprobantesH.ObtenerPorNumero)
		v1.GET("/pedidos/:id/comprobante", anyRole, comprobantesH.ObtenerPorPedido)
		v1.DELETE("/comprobantes/:id", adminOnly, comprobantesH.Anular)

		// Productos — lectura para todos los autenticados
		v1.GET("/productos", anyRole, productosH.Listar)
		v1.GET("/productos/:id", anyRole, productosH.ObtenerPorID)
		v1.GET("/productos/:id/movimientos", anyRole, productosH.Movimientos)
		// Ajuste de stock y escritura — administrador
		v1.PATCH("/productos/:id/stock", adminOnly, productosH.AjustarStock)
		prods := v1.Group("/productos", adminOnly)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		// Clientes
		v1.GET("/clientes", anyRole, clientesH.Listar)
		v1.GET("/clientes/:id", anyRole, clientesH.ObtenerPorID)
		v1.GET("/clientes/documento/:numDoc", anyRole, clientesH.BuscarPorDocumento)
		v1.GET("/clientes/:id/pedidos", anyRole, pedidosH.ListarPorCliente)
		v1.POST("/clientes", anyRole, clientesH.Crear)
		v1.PUT("/clientes/:id", anyRole, clientesH.Actualizar)
		v1.DELETE("/clientes/:id", adminOnly, clientesH.Desactivar)
		v1.PATCH("/clientes/:id/reactivar", adminOnly, clientesH.Reactivar)

		// Proveedores — administrador
		prov := v1.Group("/proveedores", adminOnly)
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.ObtenerPorID)
			prov.GET("/:id/productos", proveedoresH.Productos)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Desactivar)
			prov.PATCH("/:id/reactivar", proveedoresH.Reactivar)
		}

		// Reportes de ventas
		reportes := v1.Group("/reportes", adminOnly)
		{
			reportes.GET("/ventas/dia", pedidosH.TotalDia)
			reportes.GET("/ventas/mes", pedidosH.TotalMes)
		}

		// Usuarios y cargos — administrador
		usuarios := v1.Group("/usuarios", adminOnly)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
			usuarios.PATCH("/:id/reactivar", authH.ReactivarUsuario)
			usuarios.GET("/:id/pedidos", pedidosH.ListarPorUsuario)
		}

		cargos := v1.Group("/cargos", adminOnly)
		{
			cargos.POST("", authH.CrearCargo)
			cargos.GET("", authH.ListarCargos)
			cargos.DELETE("/:id", authH.DesactivarCargo)
		}
	}

	return r
}
