package routes

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/audit"
	"github.com/oficinaplus/oficina-api/internal/config"
	"github.com/oficinaplus/oficina-api/internal/handlers"
	"github.com/oficinaplus/oficina-api/internal/infra/repository"
	"github.com/oficinaplus/oficina-api/internal/integrations/ai"
	"github.com/oficinaplus/oficina-api/internal/integrations/billing"
	"github.com/oficinaplus/oficina-api/internal/integrations/cep"
	"github.com/oficinaplus/oficina-api/internal/integrations/fipe"
	"github.com/oficinaplus/oficina-api/internal/middleware"
	"github.com/oficinaplus/oficina-api/internal/session"
	"github.com/oficinaplus/oficina-api/internal/storage"
	"github.com/oficinaplus/oficina-api/internal/usecase/provision"
	"github.com/oficinaplus/oficina-api/internal/usecase/quote"
)

// RegisterRoutes monta toda a árvore de rotas e as dependências dos
// handlers. É o único ponto de wiring da aplicação.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA
	// ======================================================

	store := session.NewStore(rdb)
	resolver := session.NewResolver(cfg.JWTSecret, store, session.NewGormProfileSource(db))
	roles := middleware.NewGormRoleSource(db)
	dispatcher := audit.NewDispatcher(audit.New(db))

	quoteRepo := repository.NewQuoteGormRepository(db)
	provisionRepo := repository.NewProvisionGormRepository(db)

	// ======================================================
	// INTEGRAÇÕES (chave ausente não derruba o boot)
	// ======================================================

	var generator ai.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Println("gemini client disabled:", err)
		} else {
			generator = gemini
		}
	} else {
		log.Println("GEMINI_API_KEY not set, ai diagnosis disabled")
	}

	var gateway *billing.Gateway
	if cfg.MercadoPagoAccessToken != "" {
		g, err := billing.NewGateway(cfg.MercadoPagoAccessToken, cfg.AppURL)
		if err != nil {
			log.Println("mercado pago gateway disabled:", err)
		} else {
			gateway = g
		}
	} else {
		log.Println("MERCADOPAGO_ACCESS_TOKEN not set, billing disabled")
	}

	mediaStore, err := storage.NewMediaStore(cfg)
	if err != nil {
		log.Println("media storage disabled:", err)
		mediaStore = nil
	}

	plateClient := fipe.NewClient(cfg.PlateAPIURL, cfg.PlateFallbackAPIURL)
	cepClient := cep.NewClient(cfg.ViaCEPURL, cfg.NominatimURL)

	// ======================================================
	// USE CASES
	// ======================================================

	createProfile := provision.NewCreateProfile(provisionRepo)
	submitQuote := quote.NewSubmitQuote(quoteRepo, dispatcher)
	respondQuote := quote.NewRespondQuote(quoteRepo, dispatcher)
	decideQuote := quote.NewDecideQuote(quoteRepo, dispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================

	authHandler := handlers.NewAuthHandler(db, cfg, store, resolver)
	profileHandler := handlers.NewProfileHandler(createProfile, cfg, resolver)
	meHandler := handlers.NewMeHandler(db)
	workshopHandler := handlers.NewWorkshopHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	vehicleHandler := handlers.NewVehicleHandler(db)
	serviceOrderHandler := handlers.NewServiceOrderHandler(db, dispatcher)
	inventoryHandler := handlers.NewInventoryHandler(db)
	transactionHandler := handlers.NewTransactionHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	quoteHandler := handlers.NewQuoteHandler(quoteRepo, submitQuote, respondQuote, decideQuote, rdb)
	reviewHandler := handlers.NewReviewHandler(db)
	motoristHandler := handlers.NewMotoristHandler(db)
	diagnosisHandler := handlers.NewDiagnosisHandler(db, generator)
	paymentsHandler := handlers.NewPaymentsHandler(db, gateway)
	plateHandler := handlers.NewPlateHandler(plateClient)
	addressHandler := handlers.NewAddressHandler(cepClient)
	mediaHandler := handlers.NewMediaHandler(db, mediaStore)
	flagsHandler := handlers.NewFlagsHandler(rdb)
	publicHandler := handlers.NewPublicHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	webHandler := handlers.NewWebHandler(resolver)

	// ======================================================
	// PÁGINAS WEB (toda navegação passa pelo RouteGuard)
	// ======================================================

	web := r.Group("/", middleware.RouteGuard(resolver, middleware.DefaultGuardRules))
	{
		web.GET("/", webHandler.Home())
		web.GET("/login-oficina", webHandler.LoginWorkshop())
		web.GET("/login-motorista", webHandler.LoginMotorist())
		web.GET("/cadastro-oficina", webHandler.SignupWorkshop())
		web.GET("/cadastro-motorista", webHandler.SignupMotorist())
		web.GET("/completar-cadastro", webHandler.CompleteSignup())
		web.GET("/oficina", webHandler.WorkshopPanel())
		web.GET("/oficina/*page", webHandler.WorkshopPanel())
		web.GET("/motorista", webHandler.MotoristPanel())
		web.GET("/motorista/*page", webHandler.MotoristPanel())
	}

	// ======================================================
	// API PÚBLICA
	// ======================================================

	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// provisionamento: resolve a sessão por conta própria para
		// cobrir a corrida logo após o signup
		api.POST("/create-profile", profileHandler.CreateProfile)

		api.GET("/public/workshops", publicHandler.ListWorkshops)
		api.GET("/public/workshops/:slug", publicHandler.GetWorkshopBySlug)
		api.GET("/public/workshops/:slug/reviews", reviewHandler.ListForWorkshop)

		api.GET("/address/search", addressHandler.Search)
	}

	// ======================================================
	// API AUTENTICADA
	// ======================================================

	auth := api.Group("", middleware.AuthMiddleware(cfg, db))
	{
		auth.GET("/me", meHandler.GetMe)
		auth.GET("/me/flags/:key", flagsHandler.Get)
		auth.POST("/me/flags/:key", flagsHandler.Set)

		auth.GET("/vehicle/plate", plateHandler.Lookup)
	}

	// o diagnóstico serve aos dois lados; ResolveRole injeta o
	// workshop_id ou motorist_id dono do histórico
	aiRoutes := auth.Group("/ai", middleware.ResolveRole(roles))
	{
		aiRoutes.POST("/diagnose", diagnosisHandler.Diagnose)
		aiRoutes.GET("/history", diagnosisHandler.History)
	}

	// ======================================================
	// OFICINA
	// ======================================================

	shop := auth.Group("", middleware.RequireWorkshop(roles))
	{
		shop.GET("/me/workshop", workshopHandler.GetMeWorkshop)
		shop.PUT("/me/workshop", workshopHandler.UpdateMeWorkshop)
		shop.POST("/me/workshop/logo", mediaHandler.UploadLogo)

		shop.GET("/clients", clientHandler.List)
		shop.POST("/clients", clientHandler.Create)
		shop.PUT("/clients/:id", clientHandler.Update)
		shop.DELETE("/clients/:id", clientHandler.Delete)

		shop.GET("/vehicles", vehicleHandler.List)
		shop.POST("/vehicles", vehicleHandler.Create)
		shop.PUT("/vehicles/:id", vehicleHandler.Update)
		shop.DELETE("/vehicles/:id", vehicleHandler.Delete)

		shop.GET("/service-orders", serviceOrderHandler.List)
		shop.GET("/service-orders/:id", serviceOrderHandler.Get)
		shop.POST("/service-orders", serviceOrderHandler.Create)
		shop.PUT("/service-orders/:id", serviceOrderHandler.Update)
		shop.DELETE("/service-orders/:id", serviceOrderHandler.Delete)

		shop.GET("/inventory", inventoryHandler.List)
		shop.POST("/inventory", inventoryHandler.Create)
		shop.PUT("/inventory/:id", inventoryHandler.Update)
		shop.DELETE("/inventory/:id", inventoryHandler.Delete)

		shop.GET("/transactions", transactionHandler.List)
		shop.POST("/transactions", transactionHandler.Create)
		shop.DELETE("/transactions/:id", transactionHandler.Delete)
		shop.GET("/transactions/summary", transactionHandler.Summary)

		shop.GET("/appointments", appointmentHandler.List)
		shop.POST("/appointments", appointmentHandler.Create)
		shop.PUT("/appointments/:id", appointmentHandler.Update)
		shop.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
		shop.POST("/appointments/:id/complete", appointmentHandler.Complete)

		shop.GET("/quotes", quoteHandler.ListForWorkshop)
		shop.GET("/me/quotes/pending-count", quoteHandler.PendingCount)
		shop.POST("/quotes/:id/respond", quoteHandler.Respond)

		shop.POST("/payments/create-subscription", paymentsHandler.CreateSubscription)
		shop.GET("/payments/subscription", paymentsHandler.SubscriptionStatus)

		shop.GET("/audit-logs", auditLogsHandler.List)
	}

	// ======================================================
	// MOTORISTA
	// ======================================================

	driver := auth.Group("/motorist", middleware.RequireMotorist(roles))
	{
		driver.GET("/vehicles", motoristHandler.ListVehicles)
		driver.POST("/vehicles", motoristHandler.CreateVehicle)
		driver.PUT("/vehicles/:id", motoristHandler.UpdateVehicle)
		driver.DELETE("/vehicles/:id", motoristHandler.DeleteVehicle)

		driver.GET("/maintenance", motoristHandler.ListMaintenance)
		driver.POST("/maintenance", motoristHandler.CreateMaintenance)
		driver.DELETE("/maintenance/:id", motoristHandler.DeleteMaintenance)

		driver.GET("/quotes", quoteHandler.ListForMotorist)
		driver.POST("/quotes", quoteHandler.Submit)
		driver.POST("/quotes/:id/accept", quoteHandler.Accept)
		driver.POST("/quotes/:id/reject", quoteHandler.Reject)

		driver.POST("/reviews", reviewHandler.Create)
	}
}
