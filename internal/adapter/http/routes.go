package http

import (
	"time"

	"farmfund-backend/internal/adapter/middleware"
	"farmfund-backend/internal/domain/identity"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

type Routes struct {
	Health     *Handler
	Loans      *LoanHandler
	Approvals  *ApprovalHandler
	Investors  *InvestorHandler
	Settlement *SettlementHandler

	JWTSecret      string
	Redis          *redis.Client
	IdempotencyTTL time.Duration
	InvestLimiter  *middleware.RateLimiter
}

// Register mounts the API on e. The validator and error handler are set here
// so every entry point renders the same envelope.
func (r Routes) Register(e *echo.Echo) {
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health", r.Health.Health)

	api := e.Group("/api", middleware.Auth(r.JWTSecret))
	idem := middleware.Idempotency(r.Redis, r.IdempotencyTTL)

	farmer := middleware.RequireRole(identity.RoleFarmer)
	admin := middleware.RequireRole(identity.RoleAdmin)
	inv := middleware.RequireRole(identity.RoleInvestor)

	loans := api.Group("/loans")
	loans.POST("/applications", r.Loans.CreateLoan, farmer, idem)
	loans.GET("/my-applications", r.Loans.MyApplications, farmer)
	loans.GET("/recent-applications", r.Loans.RecentApplications, farmer)
	loans.GET("/dashboard-stats", r.Loans.DashboardStats, farmer)
	loans.GET("/:loan_id", r.Loans.GetLoan)
	loans.POST("/:loan_id/approve", r.Approvals.ApproveLoan, admin, idem)
	loans.POST("/:loan_id/reject", r.Approvals.RejectLoan, admin, idem)

	investors := api.Group("/investors", inv)
	investors.GET("/dashboard-stats", r.Investors.DashboardStats)
	investors.GET("/portfolio", r.Investors.Portfolio)
	investors.GET("/portfolio/:investment_id", r.Investors.Investment)
	investors.GET("/marketplace-loans", r.Investors.MarketplaceLoans)
	investors.POST("/invest/:loan_id", r.Investors.Invest, middleware.RateLimit(r.InvestLimiter), idem)
	investors.GET("/transactions", r.Investors.Transactions)
	investors.GET("/profile", r.Investors.Profile)
	investors.PUT("/profile", r.Investors.UpdateProfile, idem)

	api.POST("/settlements/:investment_id", r.Settlement.Settle, admin, idem)
}
