package persistence

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/meterdesk/meterdesk/modules/core/domain/entities/accesslevel"
	"github.com/meterdesk/meterdesk/modules/core/domain/entities/group"
	"github.com/meterdesk/meterdesk/modules/core/domain/entities/project"
	"github.com/meterdesk/meterdesk/modules/core/infrastructure/persistence/models"
	"github.com/meterdesk/meterdesk/pkg/composables"
)

type GroupRepository struct{}

func NewGroupRepository() group.Repository {
	return &GroupRepository{}
}

func (r *GroupRepository) List(ctx context.Context) ([]*group.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT id, name FROM groups ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query groups")
	}
	defer rows.Close()

	var results []*group.Group
	for rows.Next() {
		var row models.Group
		if err := rows.Scan(&row.ID, &row.Name); err != nil {
			return nil, errors.Wrap(err, "failed to scan group")
		}
		results = append(results, toDomainGroup(&row))
	}
	return results, rows.Err()
}

func (r *GroupRepository) Create(ctx context.Context, dto *group.GroupDTO) (*group.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.Group
	if err := tx.QueryRow(ctx,
		`INSERT INTO groups (name) VALUES ($1) RETURNING id, name`, dto.Name,
	).Scan(&row.ID, &row.Name); err != nil {
		return nil, errors.Wrap(err, "failed to insert group")
	}
	return toDomainGroup(&row), nil
}

func (r *GroupRepository) Update(ctx context.Context, id int, dto *group.GroupDTO) (*group.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.Group
	if err := tx.QueryRow(ctx,
		`UPDATE groups SET name = $2 WHERE id = $1 RETURNING id, name`, id, dto.Name,
	).Scan(&row.ID, &row.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, group.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to update group")
	}
	return toDomainGroup(&row), nil
}

func (r *GroupRepository) Delete(ctx context.Context, id int) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete group")
	}
	if tag.RowsAffected() == 0 {
		return group.ErrNotFound
	}
	return nil
}

type ProjectRepository struct{}

func NewProjectRepository() project.Repository {
	return &ProjectRepository{}
}

func (r *ProjectRepository) List(ctx context.Context) ([]*project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT id, name FROM projects ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query projects")
	}
	defer rows.Close()

	var results []*project.Project
	for rows.Next() {
		var row models.Project
		if err := rows.Scan(&row.ID, &row.Name); err != nil {
			return nil, errors.Wrap(err, "failed to scan project")
		}
		results = append(results, toDomainProject(&row))
	}
	return results, rows.Err()
}

func (r *ProjectRepository) Create(ctx context.Context, dto *project.ProjectDTO) (*project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.Project
	if err := tx.QueryRow(ctx,
		`INSERT INTO projects (name) VALUES ($1) RETURNING id, name`, dto.Name,
	).Scan(&row.ID, &row.Name); err != nil {
		return nil, errors.Wrap(err, "failed to insert project")
	}
	return toDomainProject(&row), nil
}

func (r *ProjectRepository) Update(ctx context.Context, id int, dto *project.ProjectDTO) (*project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.Project
	if err := tx.QueryRow(ctx,
		`UPDATE projects SET name = $2 WHERE id = $1 RETURNING id, name`, id, dto.Name,
	).Scan(&row.ID, &row.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, project.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to update project")
	}
	return toDomainProject(&row), nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete project")
	}
	if tag.RowsAffected() == 0 {
		return project.ErrNotFound
	}
	return nil
}

type AccessLevelRepository struct{}

func NewAccessLevelRepository() accesslevel.Repository {
	return &AccessLevelRepository{}
}

func (r *AccessLevelRepository) List(ctx context.Context) ([]*accesslevel.AccessLevel, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT id, name, level FROM access_levels ORDER BY level`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query access levels")
	}
	defer rows.Close()

	var results []*accesslevel.AccessLevel
	for rows.Next() {
		var row models.AccessLevel
		if err := rows.Scan(&row.ID, &row.Name, &row.Level); err != nil {
			return nil, errors.Wrap(err, "failed to scan access level")
		}
		results = append(results, toDomainAccessLevel(&row))
	}
	return results, rows.Err()
}

func (r *AccessLevelRepository) Create(ctx context.Context, dto *accesslevel.AccessLevelDTO) (*accesslevel.AccessLevel, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.AccessLevel
	if err := tx.QueryRow(ctx,
		`INSERT INTO access_levels (name, level) VALUES ($1, $2) RETURNING id, name, level`,
		dto.Name, dto.Level,
	).Scan(&row.ID, &row.Name, &row.Level); err != nil {
		return nil, errors.Wrap(err, "failed to insert access level")
	}
	return toDomainAccessLevel(&row), nil
}

func (r *AccessLevelRepository) Update(ctx context.Context, id int, dto *accesslevel.AccessLevelDTO) (*accesslevel.AccessLevel, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.AccessLevel
	if err := tx.QueryRow(ctx,
		`UPDATE access_levels SET name = $2, level = $3 WHERE id = $1 RETURNING id, name, level`,
		id, dto.Name, dto.Level,
	).Scan(&row.ID, &row.Name, &row.Level); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, accesslevel.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to update access level")
	}
	return toDomainAccessLevel(&row), nil
}

func (r *AccessLevelRepository) Delete(ctx context.Context, id int) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM access_levels WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete access level")
	}
	if tag.RowsAffected() == 0 {
		return accesslevel.ErrNotFound
	}
	return nil
}
