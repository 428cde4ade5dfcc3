package http

import (
	"net/http"

	"farmfund-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	Amount              float64  `json:"amount"                validate:"required,gt=0,dec2"`
	Purpose             string   `json:"purpose"               validate:"required,max=500"`
	Duration            int      `json:"duration"              validate:"required,min=1,max=120"`
	Season              string   `json:"season"                validate:"omitempty,max=50"`
	CropType            string   `json:"crop_type"             validate:"required,max=50"`
	Acreage             float64  `json:"acreage"               validate:"gte=0"`
	ExpectedYield       float64  `json:"expected_yield"        validate:"gte=0"`
	ExpectedMarketPrice float64  `json:"expected_market_price" validate:"gte=0,dec2"`
	ProductionCost      float64  `json:"production_cost"       validate:"gte=0,dec2"`
	ExpectedProfit      *float64 `json:"expected_profit"       validate:"omitempty,dec2"`
	InterestRate        *float64 `json:"interest_rate"         validate:"omitempty,gte=0,lte=100"`
	RiskLevel           string   `json:"risk_level"            validate:"omitempty,oneof=low medium high"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req createLoanReq
	if valid, werr := bindValid(c, &req); !valid {
		return werr
	}
	dto, err := h.uc.Create(c.Request().Context(), a, loan.CreateLoanInput{
		Amount:              money(req.Amount),
		Purpose:             req.Purpose,
		Duration:            req.Duration,
		Season:              req.Season,
		CropType:            req.CropType,
		Acreage:             money(req.Acreage),
		ExpectedYield:       money(req.ExpectedYield),
		ExpectedMarketPrice: money(req.ExpectedMarketPrice),
		ProductionCost:      money(req.ProductionCost),
		ExpectedProfit:      moneyPtr(req.ExpectedProfit),
		InterestRate:        moneyPtr(req.InterestRate),
		RiskLevel:           req.RiskLevel,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), a, c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *LoanHandler) MyApplications(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListMine(c.Request().Context(), a.UserID)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, out)
}

func (h *LoanHandler) RecentApplications(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Recent(c.Request().Context(), a.UserID)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, out)
}

func (h *LoanHandler) DashboardStats(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	out, err := h.uc.DashboardStats(c.Request().Context(), a.UserID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, out)
}
