package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dominio-lash/lumiere-api/internal/audit"
	"github.com/dominio-lash/lumiere-api/internal/config"
	"github.com/dominio-lash/lumiere-api/internal/docstore"
	"github.com/dominio-lash/lumiere-api/internal/facade"
	"github.com/dominio-lash/lumiere-api/internal/handlers"
	"github.com/dominio-lash/lumiere-api/internal/middleware"
	"github.com/dominio-lash/lumiere-api/internal/photostore"
)

func RegisterRoutes(
	r *gin.Engine,
	store docstore.Store,
	db *gorm.DB,
	photos photostore.Storage,
	cfg *config.Config,
	logger *zap.Logger,
) *facade.Facade {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	fc := facade.New(
		store,
		auditDispatcher,
		facade.LogReporter{Log: logger},
		cfg.MaxDocumentBytes,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(cfg)
	clientHandler := handlers.NewClientHandler(store, fc, photos, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(store, fc, cfg)
	reminderHandler := handlers.NewReminderHandler(store, fc)
	clinicHandler := handlers.NewClinicHandler(store, fc)
	syncHandler := handlers.NewSyncHandler(store, logger)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/google", authHandler.GoogleLogin)
		api.GET("/install", authHandler.InstallInstructions)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", authHandler.GetMe)
			secured.GET("/me/dashboard", appointmentHandler.Dashboard)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)
			secured.POST("/me/clients/:id/photo", clientHandler.UploadPhoto)
			secured.GET("/me/clients/:id/history", appointmentHandler.HistoryByClient)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.PATCH("/me/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/me/reminders", reminderHandler.List)
			secured.POST("/me/reminders", reminderHandler.Create)
			secured.DELETE("/me/reminders/:id", reminderHandler.Delete)

			secured.GET("/me/clinic", clinicHandler.Get)
			secured.PUT("/me/clinic", clinicHandler.Update)

			// snapshots em tempo real
			secured.GET("/me/stream", syncHandler.Stream)
		}
	}

	return fc
}
