package mysql

import (
	"context"
	"database/sql"
	"strings"

	"hotelbook/internal/domain"
)

type HotelRepo struct{ db *sql.DB }

func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

func (r *HotelRepo) Create(ctx context.Context, h domain.Hotel) error {
	_, err := r.db.ExecContext(ctx, insertHotelSQL, h.ID, h.Name, h.Location, h.Description)
	return err
}

func (r *HotelRepo) GetByID(ctx context.Context, id string) (domain.Hotel, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, getHotelByIDSQL, id))
}

func (r *HotelRepo) GetByName(ctx context.Context, name string) (domain.Hotel, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, getHotelByNameSQL, name))
}

func (r *HotelRepo) Update(ctx context.Context, h domain.Hotel) error {
	res, err := r.db.ExecContext(ctx, updateHotelSQL, h.Name, h.Location, h.Description, h.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// zero rows can also mean "no change"; verify existence
		if _, err := r.GetByID(ctx, h.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *HotelRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteHotelSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns one page of hotels. With both bounds set, hotels having
// any booking that intersects [start,end] (inclusive boundaries) are
// excluded via a NOT IN subquery; when no booking intersects, the
// subquery is empty and NOT IN excludes nothing.
func (r *HotelRepo) List(ctx context.Context, q domain.HotelsQuery) ([]domain.Hotel, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT h.id, h.name, h.location, h.description FROM hotels h`)

	var where []string
	var args []any
	if q.Location != nil && *q.Location != "" {
		where = append(where, `h.location = ?`)
		args = append(args, *q.Location)
	}
	if q.Start != nil && q.End != nil {
		where = append(where, `h.id NOT IN (
  SELECT DISTINCT hotel_id FROM bookings
  WHERE start_date <= ? AND end_date >= ?
)`)
		args = append(args, *q.End, *q.Start)
	}
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(` ORDER BY h.created_at ASC, h.id ASC LIMIT ? OFFSET ?`)
	args = append(args, q.Limit, q.Limit*q.Page)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		var desc sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &desc); err != nil {
			return nil, err
		}
		h.Description = desc.String
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *HotelRepo) scanOne(row *sql.Row) (domain.Hotel, error) {
	var h domain.Hotel
	var desc sql.NullString
	if err := row.Scan(&h.ID, &h.Name, &h.Location, &desc); err != nil {
		if err == sql.ErrNoRows {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, err
	}
	h.Description = desc.String
	return h, nil
}
