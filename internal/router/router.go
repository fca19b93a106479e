package router

import (
	"time"

	"github.com/vibesind/vibes-gestion/internal/config"
	"github.com/vibesind/vibes-gestion/internal/handler"
	"github.com/vibesind/vibes-gestion/internal/middleware"
	"github.com/vibesind/vibes-gestion/internal/repository"
	"github.com/vibesind/vibes-gestion/internal/service"
	"github.com/vibesind/vibes-gestion/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	presupuestoRepo := repository.NewPresupuestoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo, movimientoStockRepo, rdb)
	categoriaSvc := service.NewCategoriaService(categoriaRepo, productoRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	presupuestoSvc := service.NewPresupuestoService(presupuestoRepo, ventaRepo, productoRepo, clienteRepo, movimientoStockRepo, dispatcher, cfg.PDFStoragePath, cfg.NegocioNombre)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, clienteRepo, movimientoStockRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, proveedorRepo, movimientoStockRepo)
	gastoSvc := service.NewGastoService(gastoRepo)
	reporteSvc := service.NewReporteService(ventaRepo, productoRepo, gastoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	presupuestosH := handler.NewPresupuestosHandler(presupuestoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required, cached in Redis
	r.GET("/v1/precio/:sku", productosH.ObtenerPrecio)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: vendedor operates sales and quotes; admin owns the catalog,
		// suppliers, expenses and user management.
		lectura := middleware.RequireRole("vendedor", "admin")
		soloAdmin := middleware.RequireRole("admin")

		// Productos — admin writes, everyone authenticated reads
		v1.GET("/productos", lectura, productosH.Listar)
		v1.GET("/productos/:sku_base", lectura, productosH.ObtenerPorSkuBase)
		prods := v1.Group("/productos", soloAdmin)
		{
			prods.POST("", productosH.Guardar)
			prods.PUT("/:sku_base", productosH.Actualizar)
			prods.DELETE("/:sku_base", productosH.Eliminar)
		}
		v1.DELETE("/variantes/:id", soloAdmin, productosH.EliminarVariante)
		v1.GET("/movimientos", soloAdmin, productosH.Movimientos)

		// Categorías
		v1.GET("/categorias", lectura, categoriasH.Listar)
		v1.GET("/categorias/:id", lectura, categoriasH.ObtenerPorID)
		categorias := v1.Group("/categorias", soloAdmin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Eliminar)
		}

		// Clientes
		clientes := v1.Group("/clientes", lectura)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PUT("/:id", clientesH.Actualizar)
		}
		v1.DELETE("/clientes/:id", soloAdmin, clientesH.Eliminar)

		// Proveedores — admin only
		prov := v1.Group("/proveedores", soloAdmin)
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.ObtenerPorID)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Eliminar)
		}

		// Presupuestos
		pres := v1.Group("/presupuestos", lectura)
		{
			pres.POST("", presupuestosH.Crear)
			pres.GET("", presupuestosH.Listar)
			pres.GET("/:id", presupuestosH.ObtenerPorID)
			pres.PUT("/:id", presupuestosH.Actualizar)
			pres.PATCH("/:id/estado", presupuestosH.CambiarEstado)
			pres.POST("/:id/convertir", presupuestosH.Convertir)
			pres.GET("/:id/pdf", presupuestosH.DescargarPDF)
			pres.POST("/:id/enviar", presupuestosH.Enviar)
		}
		v1.DELETE("/presupuestos/:id", soloAdmin, presupuestosH.Eliminar)

		// Ventas
		v1.POST("/ventas", lectura, ventasH.Registrar)
		v1.GET("/ventas", lectura, ventasH.Listar)
		v1.GET("/ventas/:id", lectura, ventasH.ObtenerPorID)
		v1.DELETE("/ventas/:id", soloAdmin, ventasH.Eliminar)

		// Pedidos a proveedores — admin only
		pedidos := v1.Group("/pedidos", soloAdmin)
		{
			pedidos.POST("", pedidosH.Crear)
			pedidos.GET("", pedidosH.Listar)
			pedidos.GET("/:id", pedidosH.ObtenerPorID)
			pedidos.PATCH("/:id/estado", pedidosH.CambiarEstado)
			pedidos.DELETE("/:id", pedidosH.Eliminar)
		}

		// Gastos — admin only
		gastos := v1.Group("/gastos", soloAdmin)
		{
			gastos.POST("", gastosH.Crear)
			gastos.GET("", gastosH.Listar)
			gastos.GET("/:id", gastosH.ObtenerPorID)
			gastos.PUT("/:id", gastosH.Actualizar)
			gastos.DELETE("/:id", gastosH.Eliminar)
		}

		// Reportes
		reportes := v1.Group("/reportes", lectura)
		{
			reportes.GET("/ventas-por-dia", reportesH.VentasPorDia)
			reportes.GET("/top-productos", reportesH.TopProductos)
			reportes.GET("/ganancias", reportesH.Ganancias)
			reportes.GET("/alertas-stock", reportesH.AlertasStock)
			reportes.GET("/resumen", reportesH.Resumen)
		}

		// Usuarios — admin only
		usuarios := v1.Group("/usuarios", soloAdmin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
