package model

import "time"

// Buyer identifies the contracting organization on a notice.
type Buyer struct {
	Name         string `json:"name"`
	Region       string `json:"region,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

// Value holds the advertised contract value range.
type Value struct {
	AmountMin float64 `json:"amount_min,omitempty"`
	AmountMax float64 `json:"amount_max,omitempty"`
	Currency  string  `json:"currency,omitempty"`
}

// Suitability carries the SME/VCSE suitability flags published with a notice.
type Suitability struct {
	SME  bool `json:"sme,omitempty"`
	VCSE bool `json:"vcse,omitempty"`
}

// Notice is a published procurement notice as received from the feed.
// It is treated as immutable input throughout the pipeline.
type Notice struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Status        string      `json:"status,omitempty"`
	Buyer         Buyer       `json:"buyer"`
	Value         Value       `json:"value,omitempty"`
	ContractType  string      `json:"contract_type,omitempty"`
	PublishedDate *time.Time  `json:"published_date,omitempty"`
	ClosingDate   *time.Time  `json:"closing_date,omitempty"`
	StartDate     *time.Time  `json:"start_date,omitempty"`
	EndDate       *time.Time  `json:"end_date,omitempty"`
	CPVCodes      []string    `json:"cpv_codes,omitempty"`
	Links         []string    `json:"links,omitempty"`
	Suitability   Suitability `json:"suitability,omitempty"`
}
