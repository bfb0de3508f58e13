package persistence

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/meterdesk/meterdesk/modules/core/domain/entities/user"
	"github.com/meterdesk/meterdesk/modules/core/infrastructure/persistence/models"
	"github.com/meterdesk/meterdesk/pkg/composables"
)

const userColumns = `id, first_name, last_name, email, phone, access_level_id, created_at, updated_at`

type UserRepository struct{}

func NewUserRepository() user.Repository {
	return &UserRepository{}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.AccessLevelID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// membershipMap loads one join table in a single query: user id to the ids
// it is linked to. The list screen renders hundreds of users, so membership
// is never fetched per row.
func membershipMap(ctx context.Context, tx composables.Tx, query string) (map[int][]int, error) {
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int][]int{}
	for rows.Next() {
		var userID, linkedID int
		if err := rows.Scan(&userID, &linkedID); err != nil {
			return nil, err
		}
		out[userID] = append(out[userID], linkedID)
	}
	return out, rows.Err()
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query users")
	}
	defer rows.Close()

	var raw []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan user")
		}
		raw = append(raw, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	groups, err := membershipMap(ctx, tx, `SELECT user_id, group_id FROM user_groups`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query group membership")
	}
	projects, err := membershipMap(ctx, tx, `SELECT user_id, project_id FROM user_projects`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query project membership")
	}

	results := make([]*user.User, 0, len(raw))
	for _, u := range raw {
		results = append(results, toDomainUser(u, groups[u.ID], projects[u.ID]))
	}
	return results, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	u, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to query user")
	}

	groupIDs, err := linkedIDs(ctx, tx, `SELECT group_id FROM user_groups WHERE user_id = $1`, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query group membership")
	}
	projectIDs, err := linkedIDs(ctx, tx, `SELECT project_id FROM user_projects WHERE user_id = $1`, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query project membership")
	}
	return toDomainUser(u, groupIDs, projectIDs), nil
}

func linkedIDs(ctx context.Context, tx composables.Tx, query string, userID int) ([]int, error) {
	rows, err := tx.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *UserRepository) Create(ctx context.Context, dto *user.CreateDTO) (*user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	u, err := scanUser(tx.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, phone, access_level_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		dto.FirstName, dto.LastName, dto.Email, dto.Phone, dto.AccessLevelID,
	))
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert user")
	}
	if err := replaceMembership(ctx, tx, "user_groups", "group_id", u.ID, dto.GroupIDs); err != nil {
		return nil, err
	}
	if err := replaceMembership(ctx, tx, "user_projects", "project_id", u.ID, dto.ProjectIDs); err != nil {
		return nil, err
	}
	return toDomainUser(u, dto.GroupIDs, dto.ProjectIDs), nil
}

func (r *UserRepository) Update(ctx context.Context, id int, dto *user.UpdateDTO) (*user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	u, err := scanUser(tx.QueryRow(ctx, `
		UPDATE users SET
			first_name = $2, last_name = $3, email = $4, phone = $5,
			access_level_id = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, dto.FirstName, dto.LastName, dto.Email, dto.Phone, dto.AccessLevelID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to update user")
	}
	if err := replaceMembership(ctx, tx, "user_groups", "group_id", id, dto.GroupIDs); err != nil {
		return nil, err
	}
	if err := replaceMembership(ctx, tx, "user_projects", "project_id", id, dto.ProjectIDs); err != nil {
		return nil, err
	}
	return toDomainUser(u, dto.GroupIDs, dto.ProjectIDs), nil
}

// replaceMembership rewrites one join table for a user. Table and column
// names are constants, never user input.
func replaceMembership(ctx context.Context, tx composables.Tx, table, column string, userID int, ids []int) error {
	if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, userID); err != nil {
		return errors.Wrapf(err, "failed to clear %s", table)
	}
	for _, id := range ids {
		if _, err := tx.Exec(ctx,
			`INSERT INTO `+table+` (user_id, `+column+`) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, id,
		); err != nil {
			return errors.Wrapf(err, "failed to insert into %s", table)
		}
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}
