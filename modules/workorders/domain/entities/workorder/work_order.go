package workorder

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("work order not found")

// WorkOrder is a single meter service order. Two fields deliberately keep
// their legacy encodings: MeterType holds either a product id or the label
// the old system wrote, and TroubleCodes holds a JSON array, a comma list,
// or a bare code depending on which importer produced the row.
type WorkOrder struct {
	ID        int
	Number    string
	ProjectID *int

	StatusID      *int
	ServiceTypeID *int
	MeterType     string
	TroubleCodes  string

	Address string
	City    string
	State   string
	Zip     string
	Route   string
	Zone    string

	OldMeterID      string
	NewMeterID      string
	OldMeterReading *decimal.Decimal
	Latitude        *float64
	Longitude       *float64

	AssignedUserID  *int
	AssignedGroupID *int

	CreatedByID   *int
	CreatedByName string
	UpdatedByID   *int
	UpdatedByName string

	CreatedAt   *time.Time
	UpdatedAt   *time.Time
	CompletedAt *time.Time

	Notes string
}

type CreateDTO struct {
	Number    string
	ProjectID *int

	StatusID      *int
	ServiceTypeID *int
	MeterType     string
	TroubleCodes  string

	Address string
	City    string
	State   string
	Zip     string
	Route   string
	Zone    string

	OldMeterID      string
	NewMeterID      string
	OldMeterReading *decimal.Decimal
	Latitude        *float64
	Longitude       *float64

	AssignedUserID  *int
	AssignedGroupID *int

	Notes string
}

type UpdateDTO struct {
	Number    string
	ProjectID *int

	StatusID      *int
	ServiceTypeID *int
	MeterType     string
	TroubleCodes  string

	Address string
	City    string
	State   string
	Zip     string
	Route   string
	Zone    string

	OldMeterID      string
	NewMeterID      string
	OldMeterReading *decimal.Decimal
	Latitude        *float64
	Longitude       *float64

	AssignedUserID  *int
	AssignedGroupID *int

	CompletedAt *time.Time

	Notes string
}

type FindParams struct {
	ProjectID *int
	Limit     int
	Offset    int
}

type Repository interface {
	GetAll(ctx context.Context, params *FindParams) ([]*WorkOrder, error)
	GetByID(ctx context.Context, id int) (*WorkOrder, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	Create(ctx context.Context, actorID int, dto *CreateDTO) (*WorkOrder, error)
	Update(ctx context.Context, id, actorID int, dto *UpdateDTO) (*WorkOrder, error)
	Delete(ctx context.Context, id int) error
}

// Events published on the application event bus after successful writes.
type CreatedEvent struct {
	Result *WorkOrder
}

type UpdatedEvent struct {
	Result *WorkOrder
}

type DeletedEvent struct {
	ID int
}
