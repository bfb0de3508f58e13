package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/meterdesk/meterdesk/modules/workorders/domain/entities/workorder"
	"github.com/meterdesk/meterdesk/modules/workorders/infrastructure/persistence/models"
	"github.com/meterdesk/meterdesk/pkg/composables"
)

const workOrderColumns = `
	id, number, project_id, status_id, service_type_id, meter_type, trouble_codes,
	address, city, state, zip, route, zone,
	old_meter_id, new_meter_id, old_meter_reading, latitude, longitude,
	assigned_user_id, assigned_group_id,
	created_by_id, created_by_name, updated_by_id, updated_by_name,
	created_at, updated_at, completed_at, notes`

type WorkOrderRepository struct{}

func NewWorkOrderRepository() workorder.Repository {
	return &WorkOrderRepository{}
}

func scanWorkOrder(row pgx.Row) (*models.WorkOrder, error) {
	var wo models.WorkOrder
	err := row.Scan(
		&wo.ID, &wo.Number, &wo.ProjectID, &wo.StatusID, &wo.ServiceTypeID, &wo.MeterType, &wo.TroubleCodes,
		&wo.Address, &wo.City, &wo.State, &wo.Zip, &wo.Route, &wo.Zone,
		&wo.OldMeterID, &wo.NewMeterID, &wo.OldMeterReading, &wo.Latitude, &wo.Longitude,
		&wo.AssignedUserID, &wo.AssignedGroupID,
		&wo.CreatedByID, &wo.CreatedByName, &wo.UpdatedByID, &wo.UpdatedByName,
		&wo.CreatedAt, &wo.UpdatedAt, &wo.CompletedAt, &wo.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &wo, nil
}

func buildWorkOrderFilters(params *workorder.FindParams) ([]string, []interface{}) {
	where := []string{"1 = 1"}
	args := []interface{}{}
	if params != nil && params.ProjectID != nil {
		where = append(where, fmt.Sprintf("project_id = $%d", len(args)+1))
		args = append(args, *params.ProjectID)
	}
	return where, args
}

func (r *WorkOrderRepository) GetAll(ctx context.Context, params *workorder.FindParams) ([]*workorder.WorkOrder, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildWorkOrderFilters(params)
	query := `SELECT ` + workOrderColumns + `
		FROM work_orders
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY id`
	if params != nil && params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", params.Limit, params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query work orders")
	}
	defer rows.Close()

	var results []*workorder.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan work order")
		}
		results = append(results, toDomainWorkOrder(wo))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *WorkOrderRepository) GetByID(ctx context.Context, id int) (*workorder.WorkOrder, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	wo, err := scanWorkOrder(tx.QueryRow(ctx, `SELECT `+workOrderColumns+` FROM work_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, workorder.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to query work order")
	}
	return toDomainWorkOrder(wo), nil
}

func (r *WorkOrderRepository) Count(ctx context.Context, params *workorder.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildWorkOrderFilters(params)

	var count int64
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM work_orders
		WHERE `+strings.Join(where, " AND "),
		args...,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count work orders")
	}
	return count, nil
}

func (r *WorkOrderRepository) Create(ctx context.Context, actorID int, dto *workorder.CreateDTO) (*workorder.WorkOrder, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	wo, err := scanWorkOrder(tx.QueryRow(ctx, `
		INSERT INTO work_orders (
			number, project_id, status_id, service_type_id, meter_type, trouble_codes,
			address, city, state, zip, route, zone,
			old_meter_id, new_meter_id, old_meter_reading, latitude, longitude,
			assigned_user_id, assigned_group_id,
			created_by_id, created_by_name,
			notes
		)
		VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17,
			$18, $19,
			NULLIF($20, 0), COALESCE((SELECT first_name || ' ' || last_name FROM users WHERE id = $20), ''),
			$21
		)
		RETURNING `+workOrderColumns,
		dto.Number, dto.ProjectID, dto.StatusID, dto.ServiceTypeID, dto.MeterType, dto.TroubleCodes,
		dto.Address, dto.City, dto.State, dto.Zip, dto.Route, dto.Zone,
		dto.OldMeterID, dto.NewMeterID, dto.OldMeterReading, dto.Latitude, dto.Longitude,
		dto.AssignedUserID, dto.AssignedGroupID,
		actorID,
		dto.Notes,
	))
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert work order")
	}
	return toDomainWorkOrder(wo), nil
}

func (r *WorkOrderRepository) Update(ctx context.Context, id, actorID int, dto *workorder.UpdateDTO) (*workorder.WorkOrder, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	wo, err := scanWorkOrder(tx.QueryRow(ctx, `
		UPDATE work_orders SET
			number = $2, project_id = $3, status_id = $4, service_type_id = $5,
			meter_type = $6, trouble_codes = $7,
			address = $8, city = $9, state = $10, zip = $11, route = $12, zone = $13,
			old_meter_id = $14, new_meter_id = $15, old_meter_reading = $16,
			latitude = $17, longitude = $18,
			assigned_user_id = $19, assigned_group_id = $20,
			completed_at = $21,
			updated_by_id = NULLIF($22, 0),
			updated_by_name = COALESCE((SELECT first_name || ' ' || last_name FROM users WHERE id = $22), ''),
			updated_at = now(),
			notes = $23
		WHERE id = $1
		RETURNING `+workOrderColumns,
		id,
		dto.Number, dto.ProjectID, dto.StatusID, dto.ServiceTypeID,
		dto.MeterType, dto.TroubleCodes,
		dto.Address, dto.City, dto.State, dto.Zip, dto.Route, dto.Zone,
		dto.OldMeterID, dto.NewMeterID, dto.OldMeterReading,
		dto.Latitude, dto.Longitude,
		dto.AssignedUserID, dto.AssignedGroupID,
		dto.CompletedAt,
		actorID,
		dto.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, workorder.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to update work order")
	}
	return toDomainWorkOrder(wo), nil
}

func (r *WorkOrderRepository) Delete(ctx context.Context, id int) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM work_orders WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete work order")
	}
	if tag.RowsAffected() == 0 {
		return workorder.ErrNotFound
	}
	return nil
}
