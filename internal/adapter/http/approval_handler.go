package http

import (
	"context"
	"net/http"

	"farmfund-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type ApprovalHandler struct{ uc *approval.Usecase }

func NewApprovalHandler(uc *approval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type reviewReq struct {
	Note string `json:"note" validate:"max=1000"`
}

func (h *ApprovalHandler) ApproveLoan(c echo.Context) error {
	return h.review(c, h.uc.Approve)
}

func (h *ApprovalHandler) RejectLoan(c echo.Context) error {
	return h.review(c, h.uc.Reject)
}

func (h *ApprovalHandler) review(c echo.Context, decide func(ctx context.Context, in approval.ReviewInput) (*approval.ReviewDTO, error)) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	loanID := c.Param("loan_id")
	if loanID == "" {
		return badRequest(c, "missing loan_id path param")
	}
	// an empty body is a valid approval
	var req reviewReq
	if c.Request().ContentLength != 0 {
		if valid, werr := bindValid(c, &req); !valid {
			return werr
		}
	}
	dto, err := decide(c.Request().Context(), approval.ReviewInput{
		LoanID:     loanID,
		ReviewerID: a.UserID,
		Note:       req.Note,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, dto)
}
