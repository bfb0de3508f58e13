package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/meterdesk/meterdesk/modules/core/domain/entities/user"
	"github.com/meterdesk/meterdesk/pkg/composables"
	"github.com/meterdesk/meterdesk/pkg/eventbus"
)

type UserService struct {
	repo      user.Repository
	publisher eventbus.EventBus
}

func NewUserService(repo user.Repository, publisher eventbus.EventBus) *UserService {
	return &UserService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *UserService) GetAll(ctx context.Context) ([]*user.User, error) {
	return s.repo.GetAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id int) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, dto *user.CreateDTO) (*user.User, error) {
	var created *user.User
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.Create(txCtx, dto)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.publisher.Publish(&user.CreatedEvent{Result: created})
	return created, nil
}

func (s *UserService) Update(ctx context.Context, id int, dto *user.UpdateDTO) (*user.User, error) {
	var updated *user.User
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.repo.Update(txCtx, id, dto)
		return err
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	s.publisher.Publish(&user.UpdatedEvent{Result: updated})
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	s.publisher.Publish(&user.DeletedEvent{ID: id})
	return nil
}
