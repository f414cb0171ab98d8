package hospital

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const columns = `id, registration_id, name, speciality,
	address_line1, address_line2, city, state, pin_code,
	phone, mobile, email,
	working_hours_from, working_hours_to,
	registration_date, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, h *Hospital) error {
	h.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO hospital (
			id, registration_id, name, speciality,
			address_line1, address_line2, city, state, pin_code,
			phone, mobile, email,
			working_hours_from, working_hours_to, registration_date
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		h.ID, h.RegistrationID, h.Name, h.Speciality,
		h.AddressLine1, h.AddressLine2, h.City, h.State, h.PinCode,
		h.Phone, h.Mobile, h.Email,
		h.WorkingHoursFrom, h.WorkingHoursTo, h.RegistrationDate,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	h, err := scan(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM hospital WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return h, err
}

func (r *repoPG) Update(ctx context.Context, h *Hospital) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE hospital SET
			registration_id = $2, name = $3, speciality = $4,
			address_line1 = $5, address_line2 = $6, city = $7, state = $8, pin_code = $9,
			phone = $10, mobile = $11, email = $12,
			working_hours_from = $13, working_hours_to = $14,
			registration_date = $15, updated_at = NOW()
		WHERE id = $1`,
		h.ID, h.RegistrationID, h.Name, h.Speciality,
		h.AddressLine1, h.AddressLine2, h.City, h.State, h.PinCode,
		h.Phone, h.Mobile, h.Email,
		h.WorkingHoursFrom, h.WorkingHoursTo, h.RegistrationDate,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM hospital WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, q ListQuery) ([]*Hospital, int, error) {
	where := ``
	args := []interface{}{}
	if q.Search != "" {
		where = ` WHERE name ILIKE $1 OR speciality ILIKE $1 OR city ILIKE $1`
		args = append(args, "%"+q.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM hospital`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM hospital%s ORDER BY name LIMIT $%d OFFSET $%d`,
		columns, where, len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var hospitals []*Hospital
	for rows.Next() {
		h, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		hospitals = append(hospitals, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return hospitals, total, nil
}

func (r *repoPG) ReferencingUsers(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM hospital_user WHERE hospital_id = $1`, id).Scan(&count)
	return count, err
}

func scan(row pgx.Row) (*Hospital, error) {
	var h Hospital
	err := row.Scan(
		&h.ID, &h.RegistrationID, &h.Name, &h.Speciality,
		&h.AddressLine1, &h.AddressLine2, &h.City, &h.State, &h.PinCode,
		&h.Phone, &h.Mobile, &h.Email,
		&h.WorkingHoursFrom, &h.WorkingHoursTo,
		&h.RegistrationDate, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}
