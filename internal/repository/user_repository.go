package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/campus-auth/internal/domain"
	"github.com/campuskit/campus-auth/internal/listing"
)

// Sentinel store errors.
var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already taken")
)

const uniqueViolationCode = "23505"

// UserRepository defines persistence access for subjects. It performs no
// authorization; that is the caller's responsibility.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, query listing.Query) ([]domain.User, int, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// Create inserts a new user. The unique index on username is the only
// uniqueness enforcement point; a violation surfaces as ErrDuplicateUsername.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, username, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, username, password_hash, role, created_at, updated_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT id, username, password_hash, role, created_at, updated_at
        FROM users WHERE username=$1`
	return r.fetchSingle(ctx, query, username)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List executes a validated listing query and returns the page plus the
// total matching count before pagination. Sort columns and filter fields
// come from the listing allow-lists, never raw request input.
func (r *userRepository) List(ctx context.Context, query listing.Query) ([]domain.User, int, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if role, ok := query.Filters[listing.FilterFieldRole]; ok {
		args = append(args, role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if username, ok := query.Filters[listing.FilterFieldUsername]; ok {
		args = append(args, username)
		clauses = append(clauses, fmt.Sprintf("username=$%d", len(args)))
	}
	if query.Search != "" {
		args = append(args, "%"+escapeLikeTerm(strings.ToLower(query.Search))+"%")
		clauses = append(clauses, fmt.Sprintf(`LOWER(username) LIKE $%d ESCAPE '\'`, len(args)))
	}
	where := strings.Join(clauses, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM users WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	direction := "ASC"
	if query.SortDesc {
		direction = "DESC"
	}
	args = append(args, query.PageSize, query.Offset())
	pageQuery := fmt.Sprintf(`
        SELECT id, username, password_hash, role, created_at, updated_at
        FROM users WHERE %s
        ORDER BY %s %s, id ASC
        LIMIT $%d OFFSET $%d`,
		where, query.SortColumn(), direction, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// escapeLikeTerm neutralizes LIKE metacharacters in a search term so the
// term only ever matches literally.
func escapeLikeTerm(term string) string {
	return likeEscaper.Replace(term)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
