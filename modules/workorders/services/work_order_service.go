package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/meterdesk/meterdesk/modules/workorders/domain/entities/workorder"
	"github.com/meterdesk/meterdesk/pkg/composables"
	"github.com/meterdesk/meterdesk/pkg/eventbus"
)

type WorkOrderService struct {
	repo      workorder.Repository
	publisher eventbus.EventBus
}

func NewWorkOrderService(repo workorder.Repository, publisher eventbus.EventBus) *WorkOrderService {
	return &WorkOrderService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *WorkOrderService) GetAll(ctx context.Context, params *workorder.FindParams) ([]*workorder.WorkOrder, error) {
	return s.repo.GetAll(ctx, params)
}

func (s *WorkOrderService) GetByID(ctx context.Context, id int) (*workorder.WorkOrder, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *WorkOrderService) Count(ctx context.Context, params *workorder.FindParams) (int64, error) {
	return s.repo.Count(ctx, params)
}

func (s *WorkOrderService) Create(ctx context.Context, dto *workorder.CreateDTO) (*workorder.WorkOrder, error) {
	actorID, _ := composables.UseUserID(ctx)

	var created *workorder.WorkOrder
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.Create(txCtx, actorID, dto)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}
	s.publisher.Publish(&workorder.CreatedEvent{Result: created})
	return created, nil
}

func (s *WorkOrderService) Update(ctx context.Context, id int, dto *workorder.UpdateDTO) (*workorder.WorkOrder, error) {
	actorID, _ := composables.UseUserID(ctx)

	var updated *workorder.WorkOrder
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.repo.Update(txCtx, id, actorID, dto)
		return err
	})
	if err != nil {
		if errors.Is(err, workorder.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update work order %d: %w", id, err)
	}
	s.publisher.Publish(&workorder.UpdatedEvent{Result: updated})
	return updated, nil
}

func (s *WorkOrderService) Delete(ctx context.Context, id int) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		if errors.Is(err, workorder.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete work order %d: %w", id, err)
	}
	s.publisher.Publish(&workorder.DeletedEvent{ID: id})
	return nil
}
