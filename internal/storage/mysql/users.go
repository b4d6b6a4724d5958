package mysql

import (
	"context"
	"database/sql"

	"hotelbook/internal/domain"
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL, u.ID, u.Email, u.Pseudo, u.PasswordHash, int(u.Role))
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByIDSQL, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByEmailSQL, email))
}

func (r *UserRepo) Update(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, updateUserSQL, u.Email, u.Pseudo, u.PasswordHash, int(u.Role), u.ID)
	return err
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteUserSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context, limit, page int) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersSQL, limit, limit*page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		var role int
		if err := rows.Scan(&u.ID, &u.Email, &u.Pseudo, &u.PasswordHash, &role); err != nil {
			return nil, err
		}
		u.Role = domain.Role(role)
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var role int
	if err := row.Scan(&u.ID, &u.Email, &u.Pseudo, &u.PasswordHash, &role); err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	return u, nil
}
