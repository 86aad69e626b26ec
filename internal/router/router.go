package router

import (
	"time"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/config"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/handler"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/middleware"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/repository"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/service"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	ventaRepo := repository.NewVentaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	metodoPagoRepo := repository.NewMetodoPagoRepository(db)
	serieRepo := repository.NewSerieRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	historialPrecioRepo := repository.NewHistorialPrecioRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, historialPrecioRepo)
	ajusteSvc := service.NewAjusteService(productoRepo, movimientoStockRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, clienteRepo, usuarioRepo,
		metodoPagoRepo, serieRepo, movimientoStockRepo, dispatcher)
	clienteSvc := service.NewClienteService(clienteRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	catalogoSvc := service.NewCatalogoService(metodoPagoRepo, serieRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	inventarioH := handler.NewInventarioHandler(ajusteSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: vendedor, administrador — declared per-endpoint
		vender := middleware.RequireRole("vendedor", "administrador")
		admin := middleware.RequireRole("administrador")

		v1.POST("/ventas", vender, ventasH.CrearVenta)
		v1.GET("/ventas", vender, ventasH.ListarVentas)
		v1.GET("/ventas/resumen", vender, ventasH.Resumen)
		v1.GET("/ventas/:id", vender, ventasH.ObtenerVenta)
		v1.GET("/ventas/:id/cuotas", vender, ventasH.ListarCuotas)
		v1.GET("/ventas/:id/pagos", vender, ventasH.ListarPagos)
		v1.POST("/ventas/:id/anular", admin, ventasH.AnularVenta)
		v1.POST("/ventas/:id/reemplazar", admin, ventasH.ReemplazarVenta)
		v1.POST("/cuotas/:id/pagos", vender, ventasH.RegistrarPago)

		v1.GET("/productos", vender, productosH.Listar)
		v1.GET("/productos/:id", vender, productosH.Obtener)
		v1.GET("/productos/codigo/:codigo", vender, productosH.BuscarPorCodigo)
		v1.GET("/productos/:id/historial-precios", vender, productosH.HistorialPrecios)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.POST("/:id/reactivar", productosH.Reactivar)
		}

		inv := v1.Group("/inventario", admin)
		{
			inv.POST("/productos/:id/ajustes", inventarioH.AjustarStock)
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
			inv.GET("/alertas", inventarioH.Alertas)
		}

		v1.GET("/clientes", vender, clientesH.Listar)
		v1.GET("/clientes/:id", vender, clientesH.Obtener)
		v1.GET("/clientes/documento/:documento", vender, clientesH.BuscarPorDocumento)
		v1.POST("/clientes", vender, clientesH.Crear)
		v1.PUT("/clientes/:id", vender, clientesH.Actualizar)
		v1.DELETE("/clientes/:id", admin, clientesH.Desactivar)

		prov := v1.Group("/proveedores", admin)
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.Obtener)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Desactivar)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
			usuarios.POST("/:id/reactivar", authH.ReactivarUsuario)
		}

		// Categorías — administrador can write, all authenticated can read
		v1.GET("/categorias", vender, categoriasH.Listar)
		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Desactivar)
		}

		// Sale-configuration catalogs (read-only)
		v1.GET("/metodos-pago", vender, catalogoH.ListarMetodosPago)
		v1.GET("/series", vender, catalogoH.ListarSeries)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
