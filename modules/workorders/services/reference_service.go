package services

import (
	"context"
	"fmt"

	"github.com/meterdesk/meterdesk/modules/workorders/domain/entities/reference"
	"github.com/meterdesk/meterdesk/pkg/composables"
)

// ReferenceService manages the lookup tables the work-order form draws from:
// statuses, service types, meter types, and trouble codes.
type ReferenceService struct {
	statuses     reference.StatusRepository
	serviceTypes reference.ServiceTypeRepository
	meterTypes   reference.MeterTypeRepository
	troubleCodes reference.TroubleCodeRepository
}

func NewReferenceService(
	statuses reference.StatusRepository,
	serviceTypes reference.ServiceTypeRepository,
	meterTypes reference.MeterTypeRepository,
	troubleCodes reference.TroubleCodeRepository,
) *ReferenceService {
	return &ReferenceService{
		statuses:     statuses,
		serviceTypes: serviceTypes,
		meterTypes:   meterTypes,
		troubleCodes: troubleCodes,
	}
}

func (s *ReferenceService) Statuses(ctx context.Context) ([]*reference.Status, error) {
	return s.statuses.List(ctx)
}

func (s *ReferenceService) CreateStatus(ctx context.Context, dto *reference.StatusDTO) (*reference.Status, error) {
	var created *reference.Status
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.statuses.Create(txCtx, dto)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create status: %w", err)
	}
	return created, nil
}

func (s *ReferenceService) UpdateStatus(ctx context.Context, id int, dto *reference.StatusDTO) (*reference.Status, error) {
	var updated *reference.Status
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.statuses.Update(txCtx, id, dto)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ReferenceService) DeleteStatus(ctx context.Context, id int) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.statuses.Delete(txCtx, id)
	})
}

func (s *ReferenceService) ServiceTypes(ctx context.Context) ([]*reference.ServiceType, error) {
	return s.serviceTypes.List(ctx)
}

func (s *ReferenceService) CreateServiceType(ctx context.Context, dto *reference.ServiceTypeDTO) (*reference.ServiceType, error) {
	var created *reference.ServiceType
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.serviceTypes.Create(txCtx, dto)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create service type: %w", err)
	}
	return created, nil
}

func (s *ReferenceService) UpdateServiceType(ctx context.Context, id int, dto *reference.ServiceTypeDTO) (*reference.ServiceType, error) {
	var updated *reference.ServiceType
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.serviceTypes.Update(txCtx, id, dto)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ReferenceService) DeleteServiceType(ctx context.Context, id int) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.serviceTypes.Delete(txCtx, id)
	})
}

func (s *ReferenceService) MeterTypes(ctx context.Context) ([]*reference.MeterType, error) {
	return s.meterTypes.List(ctx)
}

func (s *ReferenceService) CreateMeterType(ctx context.Context, dto *reference.MeterTypeDTO) (*reference.MeterType, error) {
	var created *reference.MeterType
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.meterTypes.Create(txCtx, dto)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create meter type: %w", err)
	}
	return created, nil
}

func (s *ReferenceService) UpdateMeterType(ctx context.Context, id int, dto *reference.MeterTypeDTO) (*reference.MeterType, error) {
	var updated *reference.MeterType
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.meterTypes.Update(txCtx, id, dto)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ReferenceService) DeleteMeterType(ctx context.Context, id int) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.meterTypes.Delete(txCtx, id)
	})
}

func (s *ReferenceService) TroubleCodes(ctx context.Context) ([]*reference.TroubleCode, error) {
	return s.troubleCodes.List(ctx)
}

func (s *ReferenceService) CreateTroubleCode(ctx context.Context, dto *reference.TroubleCodeDTO) (*reference.TroubleCode, error) {
	var created *reference.TroubleCode
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.troubleCodes.Create(txCtx, dto)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create trouble code: %w", err)
	}
	return created, nil
}

func (s *ReferenceService) UpdateTroubleCode(ctx context.Context, id int, dto *reference.TroubleCodeDTO) (*reference.TroubleCode, error) {
	var updated *reference.TroubleCode
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.troubleCodes.Update(txCtx, id, dto)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ReferenceService) DeleteTroubleCode(ctx context.Context, id int) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.troubleCodes.Delete(txCtx, id)
	})
}
