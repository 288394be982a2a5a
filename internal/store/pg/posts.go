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

type postRepo struct {
	pool *pgxpool.Pool
}

const postColumns = `id, title, content, status, author_id, created_by, created_at, updated_at`

func scanPost(row pgx.Row) (*repository.Post, error) {
	var p repository.Post
	var status string
	err := row.Scan(&p.ID, &p.Title, &p.Content, &status, &p.AuthorID, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Status = repository.PostStatus(status)
	return &p, nil
}

func (r *postRepo) Create(ctx context.Context, in repository.CreatePostInput) (*repository.Post, error) {
	if !in.Status.Valid() {
		return nil, repository.ErrInvalidInput
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO post (title, content, status, author_id, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+postColumns,
		in.Title, in.Content, string(in.Status), in.AuthorID, in.CreatedBy,
	)
	return scanPost(row)
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*repository.Post, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM post WHERE id = $1`, id))
}

func (r *postRepo) Update(ctx context.Context, id string, in repository.UpdatePostInput) (*repository.Post, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, repository.ErrInvalidInput
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE post
		   SET title      = COALESCE($2, title),
		       content    = COALESCE($3, content),
		       status     = COALESCE($4, status),
		       updated_at = now()
		 WHERE id = $1
		RETURNING `+postColumns,
		id, in.Title, in.Content, statusArg(in.Status),
	)
	return scanPost(row)
}

func statusArg(s *repository.PostStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM post WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *postRepo) List(ctx context.Context, f repository.ListPostsFilter) ([]repository.Post, int, error) {
	where := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != nil {
		where = append(where, "status = "+arg(string(*f.Status)))
	}
	if f.AuthorID != "" {
		where = append(where, "author_id = "+arg(f.AuthorID))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM post WHERE `+cond, args...).Scan(&total); err != nil {
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

	query := `SELECT ` + postColumns + ` FROM post WHERE ` + cond +
		` ORDER BY created_at DESC, id LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts := []repository.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *p)
	}
	return posts, total, rows.Err()
}
