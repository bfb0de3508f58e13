package accesslevel

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("access level not found")

// AccessLevel ranks a user's capabilities; higher Level means broader
// access. Enforcement lives at the gateway, this is directory data.
type AccessLevel struct {
	ID    int
	Name  string
	Level int
}

type AccessLevelDTO struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type Repository interface {
	List(ctx context.Context) ([]*AccessLevel, error)
	Create(ctx context.Context, dto *AccessLevelDTO) (*AccessLevel, error)
	Update(ctx context.Context, id int, dto *AccessLevelDTO) (*AccessLevel, error)
	Delete(ctx context.Context, id int) error
}
