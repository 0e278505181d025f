package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	purchaseapp "github.com/nexuscrm/backend/internal/application/purchase"
	salesapp "github.com/nexuscrm/backend/internal/application/sales"
	"github.com/nexuscrm/backend/internal/infrastructure/config"
	"github.com/nexuscrm/backend/internal/infrastructure/logger"
	"github.com/nexuscrm/backend/internal/infrastructure/persistence"
	"github.com/nexuscrm/backend/internal/infrastructure/printing"
	"github.com/nexuscrm/backend/internal/interfaces/http/handler"
	"github.com/nexuscrm/backend/internal/interfaces/http/middleware"
	"github.com/nexuscrm/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const appVersion = "1.0.0"

const shutdownGrace = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Nexus CRM Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Query logging goes through zap at the configured level
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Document number allocator shared by the sales document repositories
	sequences := persistence.NewSequenceAllocator(db.DB, log)

	clientRepo := persistence.NewGormClientRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	opportunityRepo := persistence.NewGormOpportunityRepository(db.DB, sequences)
	offerRepo := persistence.NewGormOfferRepository(db.DB, sequences)
	saleOrderRepo := persistence.NewGormSaleOrderRepository(db.DB, sequences)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB, sequences)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	purchaseInvoiceRepo := persistence.NewGormPurchaseInvoiceRepository(db.DB)

	// Invoice PDF renderer with the issuer block from config
	invoiceRenderer := printing.NewInvoiceRenderer(printing.CompanyInfo{
		Name:      cfg.Company.Name,
		Address:   cfg.Company.Address,
		City:      cfg.Company.City,
		VATNumber: cfg.Company.VATNumber,
		Email:     cfg.Company.Email,
		Phone:     cfg.Company.Phone,
	})

	clientService := salesapp.NewClientService(clientRepo)
	contactService := salesapp.NewContactService(contactRepo, clientRepo)
	opportunityService := salesapp.NewOpportunityService(opportunityRepo, offerRepo, clientRepo)
	offerService := salesapp.NewOfferService(offerRepo, opportunityRepo)
	saleOrderService := salesapp.NewSaleOrderService(saleOrderRepo, offerRepo)
	invoiceService := salesapp.NewInvoiceService(invoiceRepo, saleOrderRepo, clientRepo, invoiceRenderer)
	contractService := salesapp.NewContractService(contractRepo, clientRepo)
	supplierService := purchaseapp.NewSupplierService(supplierRepo)
	purchaseOrderService := purchaseapp.NewPurchaseOrderService(purchaseOrderRepo, supplierRepo)
	purchaseInvoiceService := purchaseapp.NewPurchaseInvoiceService(purchaseInvoiceRepo, purchaseOrderRepo, supplierRepo)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Trusted proxy setup failed", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so the recovery and request logs
	// carry it, then CORS and the body size limit.
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	// Resource routes under /api/v1
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewClientHandler(clientService, contactService)).
		Register(handler.NewContactHandler(contactService)).
		Register(handler.NewOpportunityHandler(opportunityService)).
		Register(handler.NewOfferHandler(offerService)).
		Register(handler.NewSaleOrderHandler(saleOrderService)).
		Register(handler.NewInvoiceHandler(invoiceService)).
		Register(handler.NewContractHandler(contractService)).
		Register(handler.NewSupplierHandler(supplierService)).
		Register(handler.NewPurchaseOrderHandler(purchaseOrderService)).
		Register(handler.NewPurchaseInvoiceHandler(purchaseInvoiceService)).
		Register(handler.NewSystemHandler(db, appVersion))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server stopped", zap.Error(err))
		}
	}()

	// Block until SIGINT or SIGTERM, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Shutdown did not complete in time", zap.Error(err))
	}
	log.Info("Server stopped")
}
