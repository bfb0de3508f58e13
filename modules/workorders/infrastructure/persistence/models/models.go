package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WorkOrder struct {
	ID              int
	Number          string
	ProjectID       *int
	StatusID        *int
	ServiceTypeID   *int
	MeterType       string
	TroubleCodes    string
	Address         string
	City            string
	State           string
	Zip             string
	Route           string
	Zone            string
	OldMeterID      string
	NewMeterID      string
	OldMeterReading *decimal.Decimal
	Latitude        *float64
	Longitude       *float64
	AssignedUserID  *int
	AssignedGroupID *int
	CreatedByID     *int
	CreatedByName   string
	UpdatedByID     *int
	UpdatedByName   string
	CreatedAt       *time.Time
	UpdatedAt       *time.Time
	CompletedAt     *time.Time
	Notes           string
}

type Status struct {
	ID    int
	Label string
	Color string
}

type ServiceType struct {
	ID    int
	Label string
}

type MeterType struct {
	ID        int
	ProductID string
	Label     string
}

type TroubleCode struct {
	ID    int
	Code  string
	Label string
}
