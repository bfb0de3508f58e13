package persistence

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/meterdesk/meterdesk/modules/workorders/domain/entities/reference"
	"github.com/meterdesk/meterdesk/modules/workorders/infrastructure/persistence/models"
	"github.com/meterdesk/meterdesk/pkg/composables"
)

type StatusRepository struct{}

func NewStatusRepository() reference.StatusRepository {
	return &StatusRepository{}
}

func (r *StatusRepository) List(ctx context.Context) ([]*reference.Status, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT id, label, color FROM wo_statuses ORDER BY label`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query statuses")
	}
	defer rows.Close()

	var results []*reference.Status
	for rows.Next() {
		var row models.Status
		if err := rows.Scan(&row.ID, &row.Label, &row.Color); err != nil {
			return nil, errors.Wrap(err, "failed to scan status")
		}
		results = append(results, toDomainStatus(&row))
	}
	return results, rows.Err()
}

func (r *StatusRepository) Create(ctx context.Context, dto *reference.StatusDTO) (*reference.Status, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.Status
	if err := tx.QueryRow(ctx, `
		INSERT INTO wo_statuses (label, color) VALUES ($1, $2)
		RETURNING id, label, color`,
		dto.Label, dto.Color,
	).Scan(&row.ID, &row.Label, &row.Color); err != nil {
		return nil, errors.Wrap(err, "failed to insert status")
	}
	return toDomainStatus(&row), nil
}

func (r *StatusRepository) Update(ctx context.Context, id int, dto *reference.StatusDTO) (*reference.Status, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.Status
	if err := tx.QueryRow(ctx, `
		UPDATE wo_statuses SET label = $2, color = $3 WHERE id = $1
		RETURNING id, label, color`,
		id, dto.Label, dto.Color,
	).Scan(&row.ID, &row.Label, &row.Color); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, reference.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to update status")
	}
	return toDomainStatus(&row), nil
}

func (r *StatusRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, "wo_statuses", id)
}

type ServiceTypeRepository struct{}

func NewServiceTypeRepository() reference.ServiceTypeRepository {
	return &ServiceTypeRepository{}
}

func (r *ServiceTypeRepository) List(ctx context.Context) ([]*reference.ServiceType, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT id, label FROM service_types ORDER BY label`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query service types")
	}
	defer rows.Close()

	var results []*reference.ServiceType
	for rows.Next() {
		var row models.ServiceType
		if err := rows.Scan(&row.ID, &row.Label); err != nil {
			return nil, errors.Wrap(err, "failed to scan service type")
		}
		results = append(results, toDomainServiceType(&row))
	}
	return results, rows.Err()
}

func (r *ServiceTypeRepository) Create(ctx context.Context, dto *reference.ServiceTypeDTO) (*reference.ServiceType, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.ServiceType
	if err := tx.QueryRow(ctx, `
		INSERT INTO service_types (label) VALUES ($1)
		RETURNING id, label`,
		dto.Label,
	).Scan(&row.ID, &row.Label); err != nil {
		return nil, errors.Wrap(err, "failed to insert service type")
	}
	return toDomainServiceType(&row), nil
}

func (r *ServiceTypeRepository) Update(ctx context.Context, id int, dto *reference.ServiceTypeDTO) (*reference.ServiceType, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.ServiceType
	if err := tx.QueryRow(ctx, `
		UPDATE service_types SET label = $2 WHERE id = $1
		RETURNING id, label`,
		id, dto.Label,
	).Scan(&row.ID, &row.Label); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, reference.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to update service type")
	}
	return toDomainServiceType(&row), nil
}

func (r *ServiceTypeRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, "service_types", id)
}

type MeterTypeRepository struct{}

func NewMeterTypeRepository() reference.MeterTypeRepository {
	return &MeterTypeRepository{}
}

func (r *MeterTypeRepository) List(ctx context.Context) ([]*reference.MeterType, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT id, product_id, label FROM meter_types ORDER BY label`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query meter types")
	}
	defer rows.Close()

	var results []*reference.MeterType
	for rows.Next() {
		var row models.MeterType
		if err := rows.Scan(&row.ID, &row.ProductID, &row.Label); err != nil {
			return nil, errors.Wrap(err, "failed to scan meter type")
		}
		results = append(results, toDomainMeterType(&row))
	}
	return results, rows.Err()
}

func (r *MeterTypeRepository) Create(ctx context.Context, dto *reference.MeterTypeDTO) (*reference.MeterType, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.MeterType
	if err := tx.QueryRow(ctx, `
		INSERT INTO meter_types (product_id, label) VALUES ($1, $2)
		RETURNING id, product_id, label`,
		dto.ProductID, dto.Label,
	).Scan(&row.ID, &row.ProductID, &row.Label); err != nil {
		return nil, errors.Wrap(err, "failed to insert meter type")
	}
	return toDomainMeterType(&row), nil
}

func (r *MeterTypeRepository) Update(ctx context.Context, id int, dto *reference.MeterTypeDTO) (*reference.MeterType, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.MeterType
	if err := tx.QueryRow(ctx, `
		UPDATE meter_types SET product_id = $2, label = $3 WHERE id = $1
		RETURNING id, product_id, label`,
		id, dto.ProductID, dto.Label,
	).Scan(&row.ID, &row.ProductID, &row.Label); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, reference.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to update meter type")
	}
	return toDomainMeterType(&row), nil
}

func (r *MeterTypeRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, "meter_types", id)
}

type TroubleCodeRepository struct{}

func NewTroubleCodeRepository() reference.TroubleCodeRepository {
	return &TroubleCodeRepository{}
}

func (r *TroubleCodeRepository) List(ctx context.Context) ([]*reference.TroubleCode, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT id, code, label FROM trouble_codes ORDER BY code`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query trouble codes")
	}
	defer rows.Close()

	var results []*reference.TroubleCode
	for rows.Next() {
		var row models.TroubleCode
		if err := rows.Scan(&row.ID, &row.Code, &row.Label); err != nil {
			return nil, errors.Wrap(err, "failed to scan trouble code")
		}
		results = append(results, toDomainTroubleCode(&row))
	}
	return results, rows.Err()
}

func (r *TroubleCodeRepository) Create(ctx context.Context, dto *reference.TroubleCodeDTO) (*reference.TroubleCode, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.TroubleCode
	if err := tx.QueryRow(ctx, `
		INSERT INTO trouble_codes (code, label) VALUES ($1, $2)
		RETURNING id, code, label`,
		dto.Code, dto.Label,
	).Scan(&row.ID, &row.Code, &row.Label); err != nil {
		return nil, errors.Wrap(err, "failed to insert trouble code")
	}
	return toDomainTroubleCode(&row), nil
}

func (r *TroubleCodeRepository) Update(ctx context.Context, id int, dto *reference.TroubleCodeDTO) (*reference.TroubleCode, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.TroubleCode
	if err := tx.QueryRow(ctx, `
		UPDATE trouble_codes SET code = $2, label = $3 WHERE id = $1
		RETURNING id, code, label`,
		id, dto.Code, dto.Label,
	).Scan(&row.ID, &row.Code, &row.Label); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, reference.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to update trouble code")
	}
	return toDomainTroubleCode(&row), nil
}

func (r *TroubleCodeRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, "trouble_codes", id)
}

// Reference tables share the delete shape; table names here are constants,
// never user input.
func deleteByID(ctx context.Context, table string, id int) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return errors.Wrapf(err, "failed to delete from %s", table)
	}
	if tag.RowsAffected() == 0 {
		return reference.ErrNotFound
	}
	return nil
}
