package router

import (
	"github.com/gin-gonic/gin"

	"github.com/invoicemgr/backend/internal/interfaces/http/handler"
	"github.com/invoicemgr/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router wires up
type Handlers struct {
	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	Invoice     *handler.InvoiceHandler
	Import      *handler.ImportHandler
	Company     *handler.CompanyHandler
	BankAccount *handler.BankAccountHandler
	Worker      *handler.WorkerHandler
	Job         *handler.JobHandler
	Settings    *handler.SettingsHandler
}

// Config carries the middleware the route tree depends on
type Config struct {
	// AuthMiddleware guards every route below /api/v1 except the
	// public ones. Required.
	AuthMiddleware gin.HandlerFunc
}

// Setup registers the full API route tree on the engine.
//
// Reads are open to any authenticated user; mutations of master data,
// invoices, users and settings require the admin role. Recording a
// print is the one mutation viewers may perform.
func Setup(engine *gin.Engine, h Handlers, cfg Config) {
	api := engine.Group("/api/v1")

	// Public endpoints
	api.GET("/health", h.System.Health)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.RefreshToken)

	protected := api.Group("", cfg.AuthMiddleware)
	admin := middleware.RequireAdmin()

	protected.GET("/system/info", h.System.GetSystemInfo)

	auth := protected.Group("/auth")
	{
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", h.Auth.GetCurrentUser)
		auth.PUT("/password", h.Auth.ChangePassword)
		auth.POST("/register", admin, h.Auth.Register)
		auth.GET("/users", admin, h.Auth.ListUsers)
	}

	invoices := protected.Group("/invoices")
	{
		invoices.POST("", admin, h.Invoice.Create)
		invoices.GET("", h.Invoice.List)
		invoices.POST("/import", admin, h.Import.Import)
		invoices.POST("/preview", h.Invoice.Preview)
		invoices.GET("/summary", h.Invoice.StatusSummary)
		invoices.GET("/by-number/:number", h.Invoice.GetByNumber)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", admin, h.Invoice.Update)
		invoices.DELETE("/:id", admin, h.Invoice.Delete)
		invoices.POST("/:id/lines", admin, h.Invoice.AddLine)
		invoices.PUT("/:id/lines/:lineId", admin, h.Invoice.UpdateLine)
		invoices.DELETE("/:id/lines/:lineId", admin, h.Invoice.RemoveLine)
		invoices.POST("/:id/transition", admin, h.Invoice.Transition)
		invoices.POST("/:id/print", h.Invoice.RecordPrint)
		invoices.POST("/:id/clone", admin, h.Invoice.Clone)
	}

	companies := protected.Group("/companies")
	{
		companies.POST("", admin, h.Company.Create)
		companies.GET("", h.Company.List)
		companies.GET("/search", h.Company.Search)
		companies.GET("/:id", h.Company.Get)
		companies.PUT("/:id", admin, h.Company.Update)
		companies.DELETE("/:id", admin, h.Company.Delete)
	}

	workers := protected.Group("/workers")
	{
		workers.POST("", admin, h.Worker.Create)
		workers.GET("", h.Worker.List)
		workers.GET("/search", h.Worker.Search)
		workers.GET("/:id", h.Worker.Get)
		workers.PUT("/:id", admin, h.Worker.Update)
		workers.DELETE("/:id", admin, h.Worker.Delete)
		workers.POST("/:id/family", admin, h.Worker.AddFamilyMember)
		workers.GET("/:id/family", h.Worker.ListFamilyMembers)
		workers.DELETE("/:id/family/:memberId", admin, h.Worker.RemoveFamilyMember)
	}

	jobs := protected.Group("/jobs")
	{
		jobs.POST("", admin, h.Job.Create)
		jobs.GET("", h.Job.ListByCompany)
		jobs.PUT("/:id", admin, h.Job.Update)
		jobs.DELETE("/:id", admin, h.Job.Delete)
	}

	bankAccounts := protected.Group("/bank-accounts")
	{
		bankAccounts.POST("", admin, h.BankAccount.Create)
		bankAccounts.GET("", h.BankAccount.List)
		bankAccounts.PUT("/:id/default", admin, h.BankAccount.SetDefault)
		bankAccounts.DELETE("/:id", admin, h.BankAccount.Delete)
	}

	settings := protected.Group("/settings")
	{
		settings.GET("", h.Settings.List)
		settings.GET("/:key", h.Settings.Get)
		settings.PUT("/:key", admin, h.Settings.Set)
	}
}
