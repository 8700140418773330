package router

import (
	"github.com/Zenthoriax/personal-finance-app/internal/config"
	"github.com/Zenthoriax/personal-finance-app/internal/handler"
	"github.com/Zenthoriax/personal-finance-app/internal/ledger"
	"github.com/Zenthoriax/personal-finance-app/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, static resources and the API.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// browser UI is plain static files
	r.Static("/static", "./web/static")
	r.StaticFile("/", "./web/static/index.html")

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.Issuer, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/me", handler.GetMe)
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db))

	accountHandler := handler.NewAccountHandler(db)
	protected.GET("/accounts", accountHandler.List)
	protected.POST("/accounts", accountHandler.Create)
	protected.PUT("/accounts/:id", accountHandler.Update)
	protected.DELETE("/accounts/:id", accountHandler.Delete)

	categoryHandler := handler.NewCategoryHandler(db)
	protected.GET("/categories", categoryHandler.List)
	protected.POST("/categories", categoryHandler.Create)
	protected.DELETE("/categories/:id", categoryHandler.Delete)

	budgetHandler := handler.NewBudgetHandler(db)
	protected.GET("/budgets", budgetHandler.List)
	protected.POST("/budgets", budgetHandler.Create)
	protected.PUT("/budgets/:id", budgetHandler.Update)
	protected.DELETE("/budgets/:id", budgetHandler.Delete)

	goalHandler := handler.NewGoalHandler(db)
	protected.GET("/goals", goalHandler.List)
	protected.POST("/goals", goalHandler.Create)
	protected.PUT("/goals/:id", goalHandler.Update)
	protected.DELETE("/goals/:id", goalHandler.Delete)

	transactionHandler := handler.NewTransactionHandler(db, ledger.New(db), cfg.App.PageSize)
	protected.GET("/transactions", transactionHandler.List)
	protected.POST("/transactions", transactionHandler.Create)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	dashboardHandler := handler.NewDashboardHandler(db)
	protected.GET("/dashboard", dashboardHandler.Get)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	auditHandler := handler.NewAuditHandler(db)
	protected.GET("/logs", auditHandler.List)

	return r
}
