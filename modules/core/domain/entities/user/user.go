package user

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

type User struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	Phone     string

	AccessLevelID *int
	GroupIDs      []int
	ProjectIDs    []int

	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// FullName is the display form used across list views and work-order
// attribution.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type CreateDTO struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string

	AccessLevelID *int
	GroupIDs      []int
	ProjectIDs    []int
}

type UpdateDTO struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string

	AccessLevelID *int
	GroupIDs      []int
	ProjectIDs    []int
}

type Repository interface {
	GetAll(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	Create(ctx context.Context, dto *CreateDTO) (*User, error)
	Update(ctx context.Context, id int, dto *UpdateDTO) (*User, error)
	Delete(ctx context.Context, id int) error
}

type CreatedEvent struct {
	Result *User
}

type UpdatedEvent struct {
	Result *User
}

type DeletedEvent struct {
	ID int
}
