package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"member-auth/internal/model"
)

const uniqueViolation = "23505"

// MemberRepository owns the members table. The unique index on
// lower(email) is the sole arbiter for duplicate signups; the
// orchestrator's existence pre-check is advisory only.
type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

func (r *MemberRepository) FindByID(ctx context.Context, id int64) (model.Member, error) {
	var m model.Member
	err := r.pool.QueryRow(ctx,
		`SELECT id, role, name, email, password_hash, refresh_token, created_at, updated_at
		 FROM members WHERE id = $1`, id).
		Scan(&m.ID, &m.Role, &m.Name, &m.Email, &m.PasswordHash, &m.RefreshToken, &m.CreatedAt, &m.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Member{}, model.ErrMemberNotFound
	}
	if err != nil {
		return model.Member{}, fmt.Errorf("find member by id: %w", err)
	}
	return m, nil
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (model.Member, error) {
	var m model.Member
	err := r.pool.QueryRow(ctx,
		`SELECT id, role, name, email, password_hash, refresh_token, created_at, updated_at
		 FROM members WHERE lower(email) = lower($1)`, strings.TrimSpace(email)).
		Scan(&m.ID, &m.Role, &m.Name, &m.Email, &m.PasswordHash, &m.RefreshToken, &m.CreatedAt, &m.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Member{}, model.ErrMemberNotFound
	}
	if err != nil {
		return model.Member{}, fmt.Errorf("find member by email: %w", err)
	}
	return m, nil
}

func (r *MemberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM members WHERE lower(email) = lower($1))`,
		strings.TrimSpace(email)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// Create inserts the member and returns it with the store-assigned id.
// A duplicate email surfaces as model.ErrEmailTaken regardless of
// whether the pre-check raced.
func (r *MemberRepository) Create(ctx context.Context, m model.Member) (model.Member, error) {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	err := r.pool.QueryRow(ctx,
		`INSERT INTO members (role, name, email, password_hash, refresh_token, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, '', $5, $6)
		 RETURNING id`,
		m.Role, m.Name, m.Email, m.PasswordHash, m.CreatedAt, m.UpdatedAt).Scan(&m.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return model.Member{}, model.ErrEmailTaken
	}
	if err != nil {
		return model.Member{}, fmt.Errorf("create member: %w", err)
	}

	m.RefreshToken = ""
	return m, nil
}

func (r *MemberRepository) UpdateRefreshToken(ctx context.Context, id int64, refreshToken string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE members SET refresh_token = $2, updated_at = $3 WHERE id = $1`,
		id, refreshToken, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepository) ClearRefreshToken(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE members SET refresh_token = '', updated_at = $2 WHERE id = $1`,
		id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM members`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return count, nil
}
