// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"allot/internal/core/numerator"
	"allot/internal/domain/auth"
	"allot/internal/domain/catalogs/distributor"
	"allot/internal/domain/catalogs/party"
	"allot/internal/domain/catalogs/ticket"
	"allot/internal/domain/documents/purchase"
	"allot/internal/domain/documents/sale"
	"allot/internal/domain/ledger"
	"allot/internal/domain/pricing"
	"allot/internal/domain/reports"
	"allot/internal/domain/stock"
	"allot/internal/infrastructure/http/v1/handlers"
	"allot/internal/infrastructure/http/v1/middleware"
	"allot/internal/infrastructure/storage/postgres"
	"allot/internal/infrastructure/storage/postgres/catalog_repo"
	"allot/internal/infrastructure/storage/postgres/document_repo"
	"allot/internal/infrastructure/storage/postgres/ledger_repo"
	"allot/internal/infrastructure/storage/postgres/pricing_repo"
	"allot/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager coordinates transactions for all repositories
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator for document number generation
	Numerator numerator.Generator

	// Audit records document lifecycle events (optional)
	Audit *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		registerAuthRoutes(apiV1, cfg)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, cfg)
		registerDocumentRoutes(protected, cfg)
		registerStockRoutes(protected, cfg)
		registerPricingRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	publicAuth := rg.Group("/auth")

	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- TICKETS ---
	{
		repo := catalog_repo.NewTicketRepo(cfg.TxManager)
		service := ticket.NewService(repo)
		handler := handlers.NewTicketHandler(baseHandler, service)
		handler.RegisterRoutes(catalogs.Group("/tickets"))
	}

	// --- DISTRIBUTORS ---
	{
		repo := catalog_repo.NewDistributorRepo(cfg.TxManager)
		service := distributor.NewService(repo)
		handler := handlers.NewDistributorHandler(baseHandler, service)
		handler.RegisterRoutes(catalogs.Group("/distributors"))
	}

	// --- PARTIES ---
	{
		repo := catalog_repo.NewPartyRepo(cfg.TxManager)
		service := party.NewService(repo)
		handler := handlers.NewPartyHandler(baseHandler, service)
		handler.RegisterRoutes(catalogs.Group("/parties"))
	}
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docsGroup := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	// Shared dependencies for documents
	ticketRepo := catalog_repo.NewTicketRepo(cfg.TxManager)
	ticketService := ticket.NewService(ticketRepo)
	ledgerService := ledger.NewService(ledger_repo.NewStockLedgerRepo(cfg.TxManager))

	purchaseRepo := document_repo.NewPurchaseRepo(cfg.TxManager)
	saleRepo := document_repo.NewSaleRepo(cfg.TxManager)
	stockService := stock.NewService(purchaseRepo, saleRepo)

	// --- PURCHASES ---
	{
		service := purchase.NewService(purchaseRepo, ticketService, ledgerService, cfg.Numerator, cfg.TxManager, auditorOrNil(cfg))
		handler := handlers.NewPurchaseHandler(baseHandler, service)
		handler.RegisterRoutes(docsGroup.Group("/purchases"))
	}

	// --- SALES ---
	{
		service := sale.NewService(saleRepo, ticketService, ledgerService, cfg.Numerator, cfg.TxManager, saleAuditorOrNil(cfg))
		handler := handlers.NewSaleHandler(baseHandler, service, stockService)
		handler.RegisterRoutes(docsGroup.Group("/sales"))
	}
}

// registerStockRoutes registers stock view endpoints.
func registerStockRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	purchaseRepo := document_repo.NewPurchaseRepo(cfg.TxManager)
	saleRepo := document_repo.NewSaleRepo(cfg.TxManager)
	stockService := stock.NewService(purchaseRepo, saleRepo)
	ledgerService := ledger.NewService(ledger_repo.NewStockLedgerRepo(cfg.TxManager))

	handler := handlers.NewStockHandler(baseHandler, stockService, ledgerService)
	handler.RegisterRoutes(rg.Group("/stock"))
}

// registerPricingRoutes registers pricing endpoints.
func registerPricingRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	service := pricing.NewService(pricing_repo.NewPriceRepo(cfg.TxManager))
	handler := handlers.NewPricingHandler(baseHandler, service)
	handler.RegisterRoutes(rg.Group("/pricing"))
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	purchaseRepo := document_repo.NewPurchaseRepo(cfg.TxManager)
	saleRepo := document_repo.NewSaleRepo(cfg.TxManager)
	service := reports.NewService(purchaseRepo, saleRepo)

	handler := handlers.NewReportsHandler(baseHandler, service)
	handler.RegisterRoutes(rg.Group("/reports"))
}

// auditorOrNil avoids a non-nil interface wrapping a nil service.
func auditorOrNil(cfg RouterConfig) purchase.Auditor {
	if cfg.Audit == nil {
		return nil
	}
	return cfg.Audit
}

func saleAuditorOrNil(cfg RouterConfig) sale.Auditor {
	if cfg.Audit == nil {
		return nil
	}
	return cfg.Audit
}
