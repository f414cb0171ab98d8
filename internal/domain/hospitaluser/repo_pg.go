package hospitaluser

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caredesk/hospital-admin/internal/domain/hospital"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

// Reads join the hospital row so responses carry hospital_details. A LEFT
// JOIN keeps users visible even if the referenced hospital disappears.
const selectUser = `
	SELECT u.id, u.first_name, u.last_name, u.email, u.phone,
		u.hospital_id, u.designation, u.staff_status,
		u.is_doctor, u.is_admin, u.set_availability, u.color,
		u.password_hash, u.invite_accepted_at, u.created_at, u.updated_at,
		h.id, h.name, h.city
	FROM hospital_user u
	LEFT JOIN hospital h ON h.id = u.hospital_id`

func (r *repoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO hospital_user (
			id, first_name, last_name, email, phone,
			hospital_id, designation, staff_status,
			is_doctor, is_admin, set_availability, color, password_hash
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		u.ID, u.FirstName, u.LastName, u.Email, u.Phone,
		u.HospitalID, u.Designation, u.StaffStatus,
		u.IsDoctor, u.IsAdmin, u.SetAvailability, u.Color, u.PasswordHash,
	)
	return mapPgError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := scan(r.pool.QueryRow(ctx, selectUser+` WHERE u.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scan(r.pool.QueryRow(ctx, selectUser+` WHERE lower(u.email) = lower($1)`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (r *repoPG) Update(ctx context.Context, u *User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE hospital_user SET
			first_name = $2, last_name = $3, email = $4, phone = $5,
			hospital_id = $6, designation = $7, staff_status = $8,
			is_doctor = $9, is_admin = $10, set_availability = $11, color = $12,
			updated_at = NOW()
		WHERE id = $1`,
		u.ID, u.FirstName, u.LastName, u.Email, u.Phone,
		u.HospitalID, u.Designation, u.StaffStatus,
		u.IsDoctor, u.IsAdmin, u.SetAvailability, u.Color,
	)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM hospital_user WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, q ListQuery) ([]*User, int, error) {
	where := ``
	args := []interface{}{}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		where = fmt.Sprintf(
			` WHERE (u.first_name ILIKE $%d OR u.last_name ILIKE $%d OR u.email ILIKE $%d)`,
			len(args), len(args), len(args))
	}
	if q.HospitalID != uuid.Nil {
		args = append(args, q.HospitalID)
		clause := fmt.Sprintf(`u.hospital_id = $%d`, len(args))
		if where == "" {
			where = ` WHERE ` + clause
		} else {
			where += ` AND ` + clause
		}
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM hospital_user u` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`%s%s ORDER BY u.first_name, u.last_name LIMIT $%d OFFSET $%d`,
		selectUser, where, len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *repoPG) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE hospital_user SET
			password_hash = $2, invite_accepted_at = NOW(), updated_at = NOW()
		WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scan(row pgx.Row) (*User, error) {
	var u User
	var hID *uuid.UUID
	var hName, hCity *string
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
		&u.HospitalID, &u.Designation, &u.StaffStatus,
		&u.IsDoctor, &u.IsAdmin, &u.SetAvailability, &u.Color,
		&u.PasswordHash, &u.InviteAcceptedAt, &u.CreatedAt, &u.UpdatedAt,
		&hID, &hName, &hCity,
	)
	if err != nil {
		return nil, err
	}
	if hID != nil {
		u.HospitalDetails = &hospital.Summary{ID: *hID, Name: *hName, City: *hCity}
	}
	return &u, nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return err
}
