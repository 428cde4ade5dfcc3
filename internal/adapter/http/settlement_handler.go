package http

import (
	"net/http"

	"farmfund-backend/internal/usecase/settlement"

	"github.com/labstack/echo/v4"
)

type SettlementHandler struct{ uc *settlement.Usecase }

func NewSettlementHandler(uc *settlement.Usecase) *SettlementHandler {
	return &SettlementHandler{uc: uc}
}

type settleReq struct {
	Status       string   `json:"status"        validate:"required"`
	ActualReturn *float64 `json:"actual_return" validate:"omitempty,gte=0,dec2"`
}

// Settle is the entry point of the external repayment process.
func (h *SettlementHandler) Settle(c echo.Context) error {
	var req settleReq
	if valid, werr := bindValid(c, &req); !valid {
		return werr
	}
	out, err := h.uc.Settle(c.Request().Context(), settlement.SettleInput{
		InvestmentID: c.Param("investment_id"),
		Status:       req.Status,
		ActualReturn: moneyPtr(req.ActualReturn),
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, out)
}
