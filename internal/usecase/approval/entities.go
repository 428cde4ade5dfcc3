package approval

import "time"

type ReviewInput struct {
	LoanID     string
	ReviewerID string
	Note       string
}

type ReviewDTO struct {
	ApprovalID   string    `json:"approval_id"`
	LoanID       string    `json:"loan_id"`
	Decision     string    `json:"decision"`
	Note         string    `json:"note,omitempty"`
	ReviewedAt   time.Time `json:"reviewed_at"`
	LoanStatus   string    `json:"loan_status"`
	Installments int       `json:"installments"`
}
