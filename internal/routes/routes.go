package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/garage-coop/internal/audit"
	"github.com/BruksfildServices01/garage-coop/internal/auth"
	"github.com/BruksfildServices01/garage-coop/internal/config"
	accountDomain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
	"github.com/BruksfildServices01/garage-coop/internal/domain/role"
	"github.com/BruksfildServices01/garage-coop/internal/handlers"
	infraRepo "github.com/BruksfildServices01/garage-coop/internal/infra/repository"
	"github.com/BruksfildServices01/garage-coop/internal/middleware"
	"github.com/BruksfildServices01/garage-coop/internal/notify"
	ucAccount "github.com/BruksfildServices01/garage-coop/internal/usecase/account"
	ucGarage "github.com/BruksfildServices01/garage-coop/internal/usecase/garage"
	ucRole "github.com/BruksfildServices01/garage-coop/internal/usecase/role"
	"github.com/BruksfildServices01/garage-coop/internal/validators"
)

// Deps are the process-owned collaborators the routes are built from.
// Photos may be nil (uploads disabled); everything else is required.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Tokens   *auth.Tokens
	Hasher   accountDomain.PasswordHasher
	Store    accountDomain.TokenStore
	Photos   accountDomain.PhotoStore
	Notifier *notify.Dispatcher
	Audit    *audit.Dispatcher
	Metrics  *middleware.Metrics
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins()))
	if d.Metrics != nil {
		r.Use(d.Metrics.Handler())
		d.Metrics.RegisterMetricsEndpoint(r)
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	accountRepo := infraRepo.NewAccountGormRepository(d.DB)
	roleRepo := infraRepo.NewRoleGormRepository(d.DB)
	garageRepo := infraRepo.NewGarageGormRepository(d.DB)
	auditLogger := audit.New(d.DB)

	var checkDomain accountDomain.DomainChecker
	if cfg.CheckEmailDomain {
		checkDomain = validators.IsEmailDomainValid
	}

	// ======================================================
	// USE CASES - ROLES
	// ======================================================
	resolver := ucRole.NewResolver(roleRepo)
	transition := ucRole.NewTransition(roleRepo, d.Audit)

	var observe ucRole.DecisionObserver
	if d.Metrics != nil {
		observe = d.Metrics.ObserveGate
	}
	gate := ucRole.NewGate(accountRepo, resolver, observe)

	// ======================================================
	// USE CASES - ACCOUNTS
	// ======================================================
	registerUC := ucAccount.NewRegister(accountRepo, d.Hasher, checkDomain, d.Audit)
	loginUC := ucAccount.NewLogin(accountRepo, d.Hasher, d.Tokens)
	changePasswordUC := ucAccount.NewChangePassword(accountRepo, d.Hasher, d.Audit)
	profileUC := ucAccount.NewGetProfile(accountRepo, resolver)
	updateProfileUC := ucAccount.NewUpdateProfile(accountRepo)
	uploadPhotoUC := ucAccount.NewUploadPhoto(accountRepo, d.Photos)
	requestResetUC := ucAccount.NewRequestPasswordReset(accountRepo, d.Store, d.Notifier, cfg.ResetTokenTTL)
	resetPasswordUC := ucAccount.NewResetPassword(accountRepo, d.Store, d.Hasher, d.Audit)
	requestEmailUC := ucAccount.NewRequestEmailChange(accountRepo, d.Store, d.Notifier, checkDomain, cfg.ResetTokenTTL)
	confirmEmailUC := ucAccount.NewConfirmEmailChange(accountRepo, d.Store, d.Audit)
	listAccountsUC := ucAccount.NewListAccounts(accountRepo, resolver)
	setStatusUC := ucAccount.NewSetStatus(accountRepo, d.Audit)

	// ======================================================
	// USE CASES - GARAGES
	// ======================================================
	createGarageUC := ucGarage.NewCreateGarage(garageRepo, d.Audit)
	listGaragesUC := ucGarage.NewListGarages(garageRepo)
	getGarageUC := ucGarage.NewGetGarage(garageRepo)
	assignGarageUC := ucGarage.NewAssignGarage(garageRepo, accountRepo, d.Audit)
	releaseGarageUC := ucGarage.NewReleaseGarage(garageRepo, d.Audit)
	maintenanceUC := ucGarage.NewSetMaintenance(garageRepo, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, requestResetUC, resetPasswordUC, confirmEmailUC)
	meHandler := handlers.NewMeHandler(profileUC, updateProfileUC, changePasswordUC, uploadPhotoUC, requestEmailUC)
	accountHandler := handlers.NewAccountHandler(listAccountsUC, profileUC, setStatusUC, transition)
	garageHandler := handlers.NewGarageHandler(
		createGarageUC,
		listGaragesUC,
		getGarageUC,
		assignGarageUC,
		releaseGarageUC,
		maintenanceUC,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)

	r.GET("/health", health(d.DB))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH (public)
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/password/forgot", authHandler.ForgotPassword)
		api.POST("/auth/password/reset", authHandler.ResetPassword)
		api.POST("/auth/email/confirm", authHandler.ConfirmEmail)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Tokens))

		// ------------------------------
		// USER
		// ------------------------------
		user := secured.Group("/", middleware.RequireRole(gate, role.ThresholdUser))
		{
			user.GET("/me", meHandler.GetMe)
			user.PATCH("/me", meHandler.UpdateMe)
			user.PUT("/me/password", meHandler.ChangePassword)
			user.PUT("/me/photo", meHandler.UploadPhoto)
			user.POST("/me/email", meHandler.RequestEmailChange)

			user.GET("/garages", garageHandler.List)
			user.GET("/garages/:id", garageHandler.Get)
		}

		// ------------------------------
		// MANAGER
		// ------------------------------
		manager := secured.Group("/", middleware.RequireRole(gate, role.ThresholdManager))
		{
			manager.GET("/accounts", accountHandler.List)
			manager.GET("/accounts/:id/role", accountHandler.GetRole)

			manager.POST("/garages/:id/assign", garageHandler.Assign)
			manager.POST("/garages/:id/release", garageHandler.Release)
			manager.POST("/garages/:id/maintenance", garageHandler.Maintenance)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := secured.Group("/", middleware.RequireRole(gate, role.ThresholdAdmin))
		{
			admin.PUT("/accounts/:id/role", accountHandler.SetRole)
			admin.PATCH("/accounts/:id/status", accountHandler.SetStatus)
			admin.POST("/garages", garageHandler.Create)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
