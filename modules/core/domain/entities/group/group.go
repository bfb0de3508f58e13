package group

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("group not found")

type Group struct {
	ID   int
	Name string
}

type GroupDTO struct {
	Name string `json:"name"`
}

type Repository interface {
	List(ctx context.Context) ([]*Group, error)
	Create(ctx context.Context, dto *GroupDTO) (*Group, error)
	Update(ctx context.Context, id int, dto *GroupDTO) (*Group, error)
	Delete(ctx context.Context, id int) error
}
