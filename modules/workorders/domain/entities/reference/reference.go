package reference

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("reference entity not found")

// Status is a work-order state, e.g. Open or Closed. Color drives the badge
// on the list screen.
type Status struct {
	ID    int
	Label string
	Color string
}

type ServiceType struct {
	ID    int
	Label string
}

// MeterType carries both a product id (the value new rows store) and the
// label legacy rows stored verbatim.
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

type StatusDTO struct {
	Label string
	Color string
}

type ServiceTypeDTO struct {
	Label string
}

type MeterTypeDTO struct {
	ProductID string
	Label     string
}

type TroubleCodeDTO struct {
	Code  string
	Label string
}

type StatusRepository interface {
	List(ctx context.Context) ([]*Status, error)
	Create(ctx context.Context, dto *StatusDTO) (*Status, error)
	Update(ctx context.Context, id int, dto *StatusDTO) (*Status, error)
	Delete(ctx context.Context, id int) error
}

type ServiceTypeRepository interface {
	List(ctx context.Context) ([]*ServiceType, error)
	Create(ctx context.Context, dto *ServiceTypeDTO) (*ServiceType, error)
	Update(ctx context.Context, id int, dto *ServiceTypeDTO) (*ServiceType, error)
	Delete(ctx context.Context, id int) error
}

type MeterTypeRepository interface {
	List(ctx context.Context) ([]*MeterType, error)
	Create(ctx context.Context, dto *MeterTypeDTO) (*MeterType, error)
	Update(ctx context.Context, id int, dto *MeterTypeDTO) (*MeterType, error)
	Delete(ctx context.Context, id int) error
}

type TroubleCodeRepository interface {
	List(ctx context.Context) ([]*TroubleCode, error)
	Create(ctx context.Context, dto *TroubleCodeDTO) (*TroubleCode, error)
	Update(ctx context.Context, id int, dto *TroubleCodeDTO) (*TroubleCode, error)
	Delete(ctx context.Context, id int) error
}
