package http

import (
	"net/http"

	"farmfund-backend/internal/usecase/funding"
	"farmfund-backend/internal/usecase/investor"
	"farmfund-backend/internal/usecase/marketplace"

	"github.com/labstack/echo/v4"
)

type InvestorHandler struct {
	investors *investor.Usecase
	market    *marketplace.Usecase
	funding   *funding.Usecase
}

func NewInvestorHandler(investors *investor.Usecase, market *marketplace.Usecase, fund *funding.Usecase) *InvestorHandler {
	return &InvestorHandler{investors: investors, market: market, funding: fund}
}

type investReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

type updateProfileReq struct {
	InvestmentCapacity *float64 `json:"investment_capacity" validate:"omitempty,gt=0,dec2"`
	RiskTolerance      *string  `json:"risk_tolerance"      validate:"omitempty,oneof=low medium high"`
	PreferredCrops     []string `json:"preferred_crops"     validate:"omitempty,dive,crop"`
	PreferredRegions   []string `json:"preferred_regions"   validate:"omitempty,dive,max=100"`
}

func (h *InvestorHandler) DashboardStats(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	out, err := h.investors.Dashboard(c.Request().Context(), a)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, out)
}

func (h *InvestorHandler) Portfolio(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	out, err := h.investors.Portfolio(c.Request().Context(), a)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, out)
}

func (h *InvestorHandler) Investment(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	out, err := h.investors.Investment(c.Request().Context(), a, c.Param("investment_id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, out)
}

func (h *InvestorHandler) Transactions(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	out, err := h.investors.Transactions(c.Request().Context(), a)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, out)
}

func (h *InvestorHandler) Profile(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	out, err := h.investors.Profile(c.Request().Context(), a)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, out)
}

func (h *InvestorHandler) UpdateProfile(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req updateProfileReq
	if valid, werr := bindValid(c, &req); !valid {
		return werr
	}
	out, err := h.investors.UpdateProfile(c.Request().Context(), a, investor.UpdateProfileInput{
		InvestmentCapacity: moneyPtr(req.InvestmentCapacity),
		RiskTolerance:      req.RiskTolerance,
		PreferredCrops:     req.PreferredCrops,
		PreferredRegions:   req.PreferredRegions,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, out)
}

// MarketplaceLoans lists fundable loans.
// Query: min_amount, max_amount, crop_type, risk_level, max_duration.
func (h *InvestorHandler) MarketplaceLoans(c echo.Context) error {
	var f marketplace.Filter
	var parsed bool
	if f.MinAmount, parsed = queryDecimal(c, "min_amount"); !parsed {
		return badRequest(c, "min_amount must be a number")
	}
	if f.MaxAmount, parsed = queryDecimal(c, "max_amount"); !parsed {
		return badRequest(c, "max_amount must be a number")
	}
	if f.MaxDuration, parsed = queryInt(c, "max_duration"); !parsed {
		return badRequest(c, "max_duration must be an integer")
	}
	f.CropTypes = queryList(c, "crop_type")
	f.RiskLevels = queryList(c, "risk_level")

	out, err := h.market.List(c.Request().Context(), f)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, out)
}

func (h *InvestorHandler) Invest(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	loanID := c.Param("loan_id")
	if loanID == "" {
		return badRequest(c, "missing loan_id path param")
	}
	var req investReq
	if valid, werr := bindValid(c, &req); !valid {
		return werr
	}
	out, err := h.funding.Invest(c.Request().Context(), funding.InvestInput{
		LoanID:       loanID,
		UserID:       a.UserID,
		InvestorName: a.Name,
		Amount:       money(req.Amount),
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, out)
}
