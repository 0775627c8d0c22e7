package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/BruksfildServices01/barber-queue/internal/app"
	"github.com/BruksfildServices01/barber-queue/internal/effects"
	"github.com/BruksfildServices01/barber-queue/internal/handlers"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-queue/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/barber-queue/internal/usecase/catalog"
	ucCRM "github.com/BruksfildServices01/barber-queue/internal/usecase/crm"
	ucFinance "github.com/BruksfildServices01/barber-queue/internal/usecase/finance"
	ucInventory "github.com/BruksfildServices01/barber-queue/internal/usecase/inventory"
	ucQueue "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
	ucStats "github.com/BruksfildServices01/barber-queue/internal/usecase/stats"
	ucStatus "github.com/BruksfildServices01/barber-queue/internal/usecase/status"
)

const serviceName = "barber-queue"

func RegisterRoutes(r *gin.Engine, a *app.App) {
	cfg := a.Config
	s := a.Stores

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(otelgin.Middleware(serviceName))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	runner := effects.DefaultRunner()
	auditDispatcher := a.Audit
	pub := a.Publisher

	// ======================================================
	// 🧠 USE CASES: QUEUE
	// ======================================================
	listWaitingUC := ucQueue.NewListWaiting(s.Queue, s.Barbers)
	enqueueUC := ucQueue.NewEnqueue(s.Queue, s.Services, s.Profiles, runner, auditDispatcher, pub)
	rateUC := ucQueue.NewRate(s.Queue, auditDispatcher)

	queueHandler := handlers.NewQueueHandler(handlers.QueueHandlerDeps{
		Enqueue:       enqueueUC,
		List:          listWaitingUC,
		Update:        ucQueue.NewUpdate(s.Queue, s.Services, auditDispatcher, pub),
		Move:          ucQueue.NewMove(s.Queue, auditDispatcher, pub),
		Complete:      ucQueue.NewCompleteFirst(s.Queue, s.Products, s.Profiles, runner, auditDispatcher, pub),
		Undo:          ucQueue.NewUndoComplete(s.Queue, auditDispatcher, pub),
		Cancel:        ucQueue.NewCancel(s.Queue, auditDispatcher, pub),
		Remove:        ucQueue.NewRemove(s.Queue, auditDispatcher, pub),
		Rate:          rateUC,
		Photo:         ucQueue.NewAttachPhoto(s.Queue, a.Photos, auditDispatcher, pub),
		Pix:           ucQueue.NewPixCharge(s.Queue, a.Pix, auditDispatcher),
		Barbers:       s.Barbers,
		Profiles:      s.Profiles,
		Entries:       s.Queue,
		PublicBaseURL: cfg.PublicBaseURL,
	})

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(s.Appointments, s.Services, s.Barbers, auditDispatcher),
		ucAppointment.NewCancelAppointment(s.Appointments, auditDispatcher),
		ucAppointment.NewPromoteAppointment(s.Appointments, s.Queue, auditDispatcher, pub),
		ucAppointment.NewListAppointmentsByDate(s.Appointments, s.Barbers),
		ucAppointment.NewListAppointmentsByMonth(s.Appointments, s.Barbers),
	)

	// ======================================================
	// 🧠 USE CASES: CRM / ESTOQUE / FINANCEIRO
	// ======================================================
	backfillUC := ucCRM.NewBackfill(s.Profiles, s.Queue)
	crmHandler := handlers.NewCRMHandler(
		ucCRM.NewUpsertProfile(s.Profiles),
		ucCRM.NewGetProfile(s.Profiles),
		ucCRM.NewListProfiles(s.Profiles),
		ucCRM.NewListInactive(s.Profiles, backfillUC),
		backfillUC,
		cfg.InactiveDays,
	)

	serviceHandler := handlers.NewServiceHandler(ucCatalog.NewServices(s.Services, s.Products, auditDispatcher))
	productHandler := handlers.NewProductHandler(ucInventory.NewProducts(s.Products, auditDispatcher))
	financeHandler := handlers.NewFinanceHandler(
		ucFinance.NewExpenses(s.Finance, s.Barbers, auditDispatcher),
		ucFinance.NewGoals(s.Finance, auditDispatcher),
	)
	statsHandler := handlers.NewStatsHandler(ucStats.NewDashboard(s.Queue, s.Finance, s.Barbers))
	statusHandler := handlers.NewStatusHandler(
		ucStatus.NewGetStatus(s.Barbers),
		ucStatus.NewSetStatus(s.Barbers, auditDispatcher, pub),
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(s.Barbers, cfg.JWTSecret)
	meHandler := handlers.NewMeHandler(s.Barbers)
	barbershopHandler := handlers.NewBarbershopHandler(s.Barbers)
	auditLogsHandler := handlers.NewAuditLogsHandler(s.AuditLogs)

	publicHandler := handlers.NewPublicHandler(
		s.Barbers,
		s.Services,
		s.Queue,
		listWaitingUC,
		enqueueUC,
		rateUC,
		cfg.PublicBaseURL,
	)
	liveHandler := handlers.NewLiveHandler(a.Hub, publicHandler)

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	// ======================================================
	// 🔧 OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.RateLimit(limiter))
		{
			publicAPI.GET("/:slug", publicHandler.Shop)
			publicAPI.POST("/:slug/queue", publicHandler.CheckIn)
			publicAPI.GET("/:slug/queue/:id", publicHandler.EntryStatus)
			publicAPI.GET("/:slug/queue/:id/live", liveHandler.EntryFeed)
			publicAPI.POST("/:slug/queue/:id/rating", publicHandler.Rate)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(limiter))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("", meHandler.GetMe)

			secured.GET("/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/barbershop", barbershopHandler.UpdateMeBarbershop)

			secured.GET("/status", statusHandler.Get)
			secured.PUT("/status", statusHandler.Set)

			// ------------------------------
			// QUEUE
			// ------------------------------
			secured.GET("/queue", queueHandler.List)
			secured.GET("/queue/live", liveHandler.BarberFeed)
			secured.GET("/queue/history", queueHandler.History)
			secured.POST("/queue", queueHandler.Enqueue)
			secured.POST("/queue/complete", queueHandler.Complete)
			secured.PATCH("/queue/:id", queueHandler.Update)
			secured.DELETE("/queue/:id", queueHandler.Remove)
			secured.POST("/queue/:id/move", queueHandler.Move)
			secured.POST("/queue/:id/undo", queueHandler.Undo)
			secured.POST("/queue/:id/cancel", queueHandler.Cancel)
			secured.POST("/queue/:id/rating", queueHandler.Rate)
			secured.GET("/queue/:id/message", queueHandler.StatusMessage)
			secured.POST("/queue/:id/photo", queueHandler.UploadPhoto)
			secured.POST("/queue/:id/pix", queueHandler.Pix)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/appointments/:id/promote", appointmentHandler.Promote)

			// ------------------------------
			// CLIENTES
			// ------------------------------
			secured.GET("/clients", crmHandler.List)
			secured.GET("/clients/inactive", crmHandler.Inactive)
			secured.POST("/clients/backfill", crmHandler.Backfill)
			secured.GET("/clients/:phone", crmHandler.Get)
			secured.PUT("/clients/:phone", crmHandler.Upsert)

			// ------------------------------
			// CATÁLOGO / ESTOQUE
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)

			secured.GET("/products", productHandler.List)
			secured.POST("/products", productHandler.Create)
			secured.PATCH("/products/:id", productHandler.Update)
			secured.DELETE("/products/:id", productHandler.Delete)
			secured.POST("/products/:id/adjust", productHandler.Adjust)

			// ------------------------------
			// FINANCEIRO
			// ------------------------------
			secured.GET("/expenses", financeHandler.ListExpenses)
			secured.POST("/expenses", financeHandler.CreateExpense)
			secured.DELETE("/expenses/:id", financeHandler.DeleteExpense)
			secured.GET("/goals", financeHandler.GetGoals)
			secured.PUT("/goals", financeHandler.SaveGoals)

			secured.GET("/stats", statsHandler.Dashboard)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
