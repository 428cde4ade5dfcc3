package loan

import "farmfund-backend/internal/domain/apperr"

var (
	ErrNotFound             = apperr.NotFound("loan not found")
	ErrForbidden            = apperr.Forbidden("access denied")
	ErrNotFundable          = apperr.Conflict("loan is not available for investment")
	ErrInsufficientCapacity = apperr.Conflict("investment exceeds the remaining loan amount")
	ErrConcurrentFunding    = apperr.Conflict("loan funding changed concurrently, please retry")
	ErrAlreadyApproved      = apperr.Conflict("loan already approved")
	ErrInvalidTransition    = apperr.Conflict("invalid loan state transition")
)
