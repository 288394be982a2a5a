package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
)

type userRepo struct {
	pool *pgxpool.Pool
}

const userColumns = `id, email, password_hash, name, role, active, created_at, updated_at`

func scanUser(row pgx.Row) (*repository.User, error) {
	var u repository.User
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &role, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = repository.Role(role)
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	if !in.Role.Valid() {
		return nil, repository.ErrInvalidInput
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	row := r.pool.QueryRow(ctx, `
		INSERT INTO app_user (email, password_hash, name, role, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		email, in.PasswordHash, in.Name, string(in.Role), in.Active,
	)
	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM app_user WHERE id = $1`, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM app_user WHERE email = $1`, email))
}

func (r *userRepo) Update(ctx context.Context, id string, in repository.UpdateUserInput) (*repository.User, error) {
	if in.Role != nil && !in.Role.Valid() {
		return nil, repository.ErrInvalidInput
	}
	// COALESCE keeps unchanged columns; role is cast through text for the enum check.
	row := r.pool.QueryRow(ctx, `
		UPDATE app_user
		   SET name          = COALESCE($2, name),
		       role          = COALESCE($3, role),
		       active        = COALESCE($4, active),
		       password_hash = COALESCE($5, password_hash),
		       updated_at    = now()
		 WHERE id = $1
		RETURNING `+userColumns,
		id, in.Name, roleArg(in.Role), in.Active, in.PasswordHash,
	)
	return scanUser(row)
}

func roleArg(r *repository.Role) *string {
	if r == nil {
		return nil
	}
	s := string(*r)
	return &s
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM app_user WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepo) List(ctx context.Context, f repository.ListUsersFilter) ([]repository.User, int, error) {
	where := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Role != nil {
		where = append(where, "role = "+arg(string(*f.Role)))
	}
	if f.Active != nil {
		where = append(where, "active = "+arg(*f.Active))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		p := arg("%" + strings.ToLower(q) + "%")
		where = append(where, "(email LIKE "+p+" OR lower(name) LIKE "+p+")")
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM app_user WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + userColumns + ` FROM app_user WHERE ` + cond +
		` ORDER BY created_at DESC, id LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []repository.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *userRepo) CountByRoles(ctx context.Context, roles ...repository.Role) (int, error) {
	names := make([]string, 0, len(roles))
	for _, ro := range roles {
		names = append(names, string(ro))
	}
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM app_user WHERE role = ANY($1)`, names).Scan(&n)
	return n, err
}
