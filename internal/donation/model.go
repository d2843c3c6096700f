package donation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alumni-portal/backend/internal/alumni"
	"github.com/alumni-portal/backend/internal/event"
)

const DefaultCurrency = "INR"

// Donation records money given by an alumnus, optionally towards an event.
type Donation struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	AlumniID      uint            `gorm:"not null;index" json:"alumni_id"`
	Alumni        *alumni.Profile `gorm:"foreignKey:AlumniID;references:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	EventID       *uint           `gorm:"index" json:"event_id"`
	Event         *event.Event    `gorm:"foreignKey:EventID;constraint:OnDelete:SET NULL" json:"-"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency      string          `gorm:"type:char(3);not null;default:'INR'" json:"currency"`
	TransactionID string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"transaction_id"`
	DonationDate  time.Time       `gorm:"not null;index" json:"donation_date"`
}

// DonationWithDonor includes the donor's name and the event's name.
type DonationWithDonor struct {
	Donation
	AlumniName string  `json:"alumni_name"`
	EventName  *string `json:"event_name"`
}

type CreateDonationRequest struct {
	AlumniID      uint            `json:"alumni_id" binding:"required"`
	EventID       *uint           `json:"event_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency,omitempty" binding:"omitempty,len=3,alpha"`
	TransactionID string          `json:"transaction_id,omitempty" binding:"omitempty,max=64"`
	DonationDate  *time.Time      `json:"donation_date,omitempty"`
}

type DonationFilters struct {
	AlumniID *uint
	EventID  *uint
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

type PaginatedDonations struct {
	Data  []DonationWithDonor `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

type TopDonor struct {
	AlumniID   uint            `json:"alumni_id"`
	AlumniName string          `json:"alumni_name"`
	Total      decimal.Decimal `json:"total"`
	Count      int64           `json:"count"`
}

type Stats struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int64           `json:"count"`
	UniqueDonor int64           `json:"unique_donors"`
	TopDonors   []TopDonor      `json:"top_donors"`
}
