package router

import (
	"time"

	"github.com/tiagok38-hash/iStorePro/internal/config"
	"github.com/tiagok38-hash/iStorePro/internal/handler"
	"github.com/tiagok38-hash/iStorePro/internal/middleware"
	"github.com/tiagok38-hash/iStorePro/internal/repository"
	"github.com/tiagok38-hash/iStorePro/internal/service"
	"github.com/tiagok38-hash/iStorePro/internal/worker"

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
	produtoRepo := repository.NewProdutoRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	parametroRepo := repository.NewParametroRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	produtoSvc := service.NewProdutoService(produtoRepo)
	caixaSvc := service.NewCaixaService(caixaRepo, vendaRepo)
	vendaSvc := service.NewVendaService(vendaRepo, caixaSvc, produtoRepo, dispatcher)
	estoqueSvc := service.NewEstoqueService(compraRepo, produtoRepo)
	parametroSvc := service.NewParametroService(parametroRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	vendasH := handler.NewVendasHandler(vendaSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	comprasH := handler.NewComprasHandler(estoqueSvc)
	parametrosH := handler.NewParametrosHandler(parametroSvc)
	precosH := handler.NewPrecosHandler(produtoSvc, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required (customer-facing terminal)
	r.GET("/v1/preco/:barcode", precosH.ConsultarPorBarcode)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: vendedor, gerente, administrador — declared per-endpoint
		todos := middleware.RequireRole("vendedor", "gerente", "administrador")
		gestao := middleware.RequireRole("gerente", "administrador")

		v1.POST("/vendas", todos, vendasH.Registrar)
		v1.GET("/vendas", todos, vendasH.Listar)
		v1.GET("/vendas/sessao/:sessao_id", todos, vendasH.PorSessao)
		v1.DELETE("/vendas/:id", gestao, vendasH.Cancelar)

		caixa := v1.Group("/caixa")
		{
			caixa.POST("/abrir", todos, caixaH.Abrir)
			caixa.POST("/:id/fechar", todos, caixaH.Fechar)
			caixa.POST("/:id/reabrir", gestao, caixaH.Reabrir)
			caixa.GET("/:id/resumo", todos, caixaH.Resumo)
			caixa.POST("/movimento", todos, caixaH.RegistrarMovimento)
			caixa.GET("/ativa", todos, caixaH.SessaoAtiva)
			caixa.GET("", gestao, caixaH.Listar)
		}

		compras := v1.Group("/compras")
		{
			compras.POST("", gestao, comprasH.Criar)
			compras.GET("", todos, comprasH.Listar)
			compras.GET("/:id", todos, comprasH.Obter)
			compras.GET("/:id/lancamento", gestao, comprasH.PrepararLancamento)
			compras.POST("/:id/lancar", gestao, comprasH.Lancar)
		}

		v1.GET("/produtos", todos, produtosH.Listar)
		v1.GET("/produtos/:id", todos, produtosH.ObterPorID)

		// Parâmetros — all authenticated can read, administrador can write
		v1.GET("/parametros/condicoes", todos, parametrosH.ListarCondicoes)
		v1.GET("/parametros/locais", todos, parametrosH.ListarLocais)
		v1.GET("/parametros/garantias", todos, parametrosH.ListarGarantias)
		parametros := v1.Group("/parametros", middleware.RequireRole("administrador"))
		{
			parametros.POST("/condicoes", parametrosH.CriarCondicao)
			parametros.POST("/locais", parametrosH.CriarLocal)
			parametros.POST("/garantias", parametrosH.CriarGarantia)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Desativar)
			usuarios.PATCH("/:id/reativar", usuariosH.Reativar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
