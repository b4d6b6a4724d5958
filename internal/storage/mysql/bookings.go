package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hotelbook/internal/domain"
)

type BookingRepo struct{ db *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create admits the booking only if no existing booking on the hotel
// intersects its interval. The hotel row lock taken first serializes
// concurrent writers for the same hotel, so the check and the insert
// act as one unit: among concurrent overlapping requests at most one
// commits, the rest see the conflict.
func (r *BookingRepo) Create(ctx context.Context, b domain.Booking) (domain.BookingView, error) {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := lockHotel(ctx, tx, b.HotelID); err != nil {
			return err
		}
		taken, err := overlapExists(ctx, tx, b.HotelID, b.StartDate, b.EndDate, "")
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: dates overlap an existing booking", domain.ErrConflict)
		}
		_, err = tx.ExecContext(ctx, insertBookingSQL,
			b.ID, b.HotelID, b.UserID, b.StartDate, b.EndDate, b.NbPerson)
		return err
	})
	if err != nil {
		return domain.BookingView{}, err
	}
	return r.GetByID(ctx, b.ID)
}

// Update re-runs the overlap check for the new interval under the same
// per-hotel serialization, excluding the booking's own row so it never
// appears to overlap itself.
func (r *BookingRepo) Update(ctx context.Context, b domain.Booking) (domain.BookingView, error) {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		// the hotel may have been deleted after the booking was made;
		// its remaining bookings are still serialized by the exclusive
		// lock on the booking row itself
		if err := lockHotel(ctx, tx, b.HotelID); err != nil && err != domain.ErrNotFound {
			return err
		}
		var id string
		if err := tx.QueryRowContext(ctx,
			`SELECT id FROM bookings WHERE id = ? FOR UPDATE`, b.ID).Scan(&id); err != nil {
			if err == sql.ErrNoRows {
				return domain.ErrNotFound
			}
			return err
		}
		taken, err := overlapExists(ctx, tx, b.HotelID, b.StartDate, b.EndDate, b.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: dates overlap an existing booking", domain.ErrConflict)
		}
		_, err = tx.ExecContext(ctx, updateBookingSQL, b.StartDate, b.EndDate, b.NbPerson, b.ID)
		return err
	})
	if err != nil {
		return domain.BookingView{}, err
	}
	return r.GetByID(ctx, b.ID)
}

func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteBookingSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id string) (domain.BookingView, error) {
	rows, err := r.db.QueryContext(ctx, getBookingSQL, id)
	if err != nil {
		return domain.BookingView{}, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.BookingView{}, err
		}
		return domain.BookingView{}, domain.ErrNotFound
	}
	return scanBookingView(rows)
}

func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.BookingView, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsByUserSQL, userID)
	if err != nil {
		return nil, err
	}
	return collectBookingViews(rows)
}

// List is the admin search: one joined statement, AND-combined filters,
// offset pagination, deterministic (created_at, id) order.
func (r *BookingRepo) List(ctx context.Context, q domain.BookingsQuery) ([]domain.BookingView, error) {
	var sb strings.Builder
	sb.WriteString(bookingViewSelect)

	var where []string
	var args []any
	if q.MinDate != nil {
		where = append(where, `b.start_date >= ?`)
		args = append(args, *q.MinDate)
	}
	if q.UserName != nil && *q.UserName != "" {
		where = append(where, `u.pseudo = ?`)
		args = append(args, *q.UserName)
	}
	if q.UserEmail != nil && *q.UserEmail != "" {
		where = append(where, `u.email = ?`)
		args = append(args, *q.UserEmail)
	}
	if q.HotelName != nil && *q.HotelName != "" {
		where = append(where, `LOWER(h.name) LIKE CONCAT('%', LOWER(?), '%')`)
		args = append(args, *q.HotelName)
	}
	if len(where) > 0 {
		sb.WriteString("WHERE " + strings.Join(where, " AND ") + "\n")
	}
	sb.WriteString(`ORDER BY b.created_at ASC, b.id ASC LIMIT ? OFFSET ?`)
	args = append(args, q.Limit, q.Limit*q.Page)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	return collectBookingViews(rows)
}

// HasOverlap is the existence-only probe used outside the write path
// (availability checks, tests). The write path runs the same statement
// inside its transaction.
func (r *BookingRepo) HasOverlap(ctx context.Context, hotelID string, start, end time.Time, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, overlapExistsSQL, hotelID, end, start, excludeID).Scan(&exists)
	return exists, err
}

// ---- internals ----

func (r *BookingRepo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func lockHotel(ctx context.Context, tx *sql.Tx, hotelID string) error {
	var id string
	if err := tx.QueryRowContext(ctx, lockHotelSQL, hotelID).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func overlapExists(ctx context.Context, tx *sql.Tx, hotelID string, start, end time.Time, excludeID string) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx, overlapExistsSQL, hotelID, end, start, excludeID).Scan(&exists)
	return exists, err
}

func scanBookingView(rows *sql.Rows) (domain.BookingView, error) {
	var v domain.BookingView
	var hID, uID string
	var hName, hLoc, uPseudo, uEmail sql.NullString
	if err := rows.Scan(
		&v.ID, &v.StartDate, &v.EndDate, &v.NbPerson, &v.CreatedAt, &v.UpdatedAt,
		&hID, &hName, &hLoc,
		&uID, &uPseudo, &uEmail,
	); err != nil {
		return domain.BookingView{}, err
	}
	v.Hotel = domain.HotelSummary{ID: hID, Name: hName.String, Location: hLoc.String}
	v.User = domain.UserSummary{ID: uID, Pseudo: uPseudo.String, Email: uEmail.String}
	return v, nil
}

func collectBookingViews(rows *sql.Rows) ([]domain.BookingView, error) {
	defer rows.Close()
	var out []domain.BookingView
	for rows.Next() {
		v, err := scanBookingView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
