package investor

import (
	"time"

	"farmfund-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

type Verification string

const (
	VerificationPending  Verification = "pending"
	VerificationVerified Verification = "verified"
	VerificationRejected Verification = "rejected"
)

var (
	ErrNotFound = apperr.NotFound("investor not found")

	DefaultCapacity      = decimal.NewFromInt(100000)
	DefaultRiskTolerance = "medium"
)

// Crops accepted as investment preferences.
var Crops = []string{
	"Wheat", "Rice", "Cotton", "Sugarcane", "Corn", "Soybean",
	"Potato", "Tomato", "Vegetables", "Fruits", "Pulses",
}

func ValidCrop(c string) bool {
	for _, k := range Crops {
		if k == c {
			return true
		}
	}
	return false
}

type KYCDocument struct {
	Type       string    `json:"type"`
	Reference  string    `json:"reference"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Investor is the investment profile of a user. The rollup columns are
// derived from the investor's investments and written only by Recompute.
type Investor struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	UserID string `gorm:"size:64;not null;uniqueIndex:ux_investors_user" json:"user_id"`
	Name   string `gorm:"size:128" json:"name"`

	InvestmentCapacity decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"investment_capacity"`
	RiskTolerance      string          `gorm:"size:16;default:'medium'" json:"risk_tolerance"`
	PreferredCrops     []string        `gorm:"serializer:json;type:text" json:"preferred_crops"`
	PreferredRegions   []string        `gorm:"serializer:json;type:text" json:"preferred_regions"`
	KYCDocuments       []KYCDocument   `gorm:"serializer:json;type:text" json:"kyc_documents"`
	VerificationStatus Verification    `gorm:"size:16;default:'pending'" json:"verification_status"`

	TotalInvested        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_invested"`
	TotalReturns         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_returns"`
	ActiveInvestments    int             `gorm:"not null;default:0" json:"active_investments"`
	CompletedInvestments int             `gorm:"not null;default:0" json:"completed_investments"`
	AverageROI           decimal.Decimal `gorm:"column:average_roi;type:decimal(18,4);not null;default:0" json:"average_roi"`
	ROISampleSize        int             `gorm:"column:roi_sample_size;not null;default:0" json:"roi_sample_size"`
	StatsUpdatedAt       *time.Time      `json:"stats_updated_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Investor) TableName() string { return "investors" }

// New returns a profile with the platform defaults.
func New(userID, name string) *Investor {
	return &Investor{
		UserID:             userID,
		Name:               name,
		InvestmentCapacity: DefaultCapacity,
		RiskTolerance:      DefaultRiskTolerance,
		PreferredCrops:     []string{},
		PreferredRegions:   []string{},
		KYCDocuments:       []KYCDocument{},
		VerificationStatus: VerificationPending,
	}
}
