package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finsarthi/leads-api/internal/auth"
	"github.com/finsarthi/leads-api/internal/config"
	"github.com/finsarthi/leads-api/internal/handler"
	middlewarepkg "github.com/finsarthi/leads-api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserAdminHandler
	Calculators *handler.CalculatorHandler
	Leads       *handler.LeadsHandler
	Labour      *handler.LabourHandler
	Loans       *handler.LoansHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	calculators := e.Group("/calculators")
	calculators.POST("/car", handlers.Calculators.Car)
	calculators.POST("/bike", handlers.Calculators.Bike)
	calculators.POST("/health", handlers.Calculators.Health)
	calculators.POST("/term", handlers.Calculators.Term)
	calculators.POST("/travel", handlers.Calculators.Travel)
	calculators.POST("/credit-card", handlers.Calculators.CreditCard)
	calculators.POST("/idv", handlers.Calculators.IDV)

	submitLimiter := middlewarepkg.SubmitRateLimiter(cfg.RateLimitSubmit)
	e.POST("/leads", handlers.Leads.Submit, submitLimiter)
	e.POST("/applications/labour", handlers.Labour.Submit, submitLimiter)
	e.POST("/applications/loan", handlers.Loans.Submit, submitLimiter)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.GET("/leads", handlers.Leads.List)
	admin.GET("/leads/export", handlers.Leads.Export)
	admin.GET("/leads/stats", handlers.Leads.Stats)
	admin.GET("/leads/:id", handlers.Leads.Get)
	admin.PATCH("/leads/:id/status", handlers.Leads.Transition)

	admin.GET("/applications/labour", handlers.Labour.List)
	admin.POST("/applications/labour/:id/approve", handlers.Labour.Approve)
	admin.POST("/applications/labour/:id/reject", handlers.Labour.Reject)
	admin.GET("/profiles", handlers.Labour.ListProfiles)
	admin.DELETE("/profiles/:id", handlers.Labour.DeleteProfile)

	admin.GET("/applications/loan", handlers.Loans.List)
	admin.PATCH("/applications/loan/:id/status", handlers.Loans.Transition)

	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.UpdateRole)
	admin.DELETE("/users/:id", handlers.Users.Delete)
}
