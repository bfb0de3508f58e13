package project

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("project not found")

type Project struct {
	ID   int
	Name string
}

type ProjectDTO struct {
	Name string `json:"name"`
}

type Repository interface {
	List(ctx context.Context) ([]*Project, error)
	Create(ctx context.Context, dto *ProjectDTO) (*Project, error)
	Update(ctx context.Context, id int, dto *ProjectDTO) (*Project, error)
	Delete(ctx context.Context, id int) error
}
