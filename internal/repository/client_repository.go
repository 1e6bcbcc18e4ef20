// Package repository contains the data access layer. This file
// implements persistence for clients. All queries run through
// database/sql with contexts supplied by the caller.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// duplicateEntry is the MySQL error number for unique key violations.
const duplicateEntry = 1062

// isDuplicate reports whether err is a unique constraint violation.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == duplicateEntry
}

// ClientRepo manages persistence for hotel clients.
type ClientRepo struct {
	db *sql.DB
}

// NewClientRepo constructs a ClientRepo with the given DB handle.
func NewClientRepo(db *sql.DB) *ClientRepo {
	return &ClientRepo{db: db}
}

// DB exposes the underlying sql.DB. It allows callers to begin
// transactions spanning multiple repositories.
func (r *ClientRepo) DB() *sql.DB {
	return r.db
}

const clientColumns = `id, first_name, last_name, email, phone, created_at, updated_at`

// scanClient reads one client row from any row scanner.
func scanClient(row interface{ Scan(...any) error }) (*model.Client, error) {
	var c model.Client
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new client and populates the generated ID together
// with the DB-default timestamps on the given struct. A duplicate
// email fails with ErrDuplicate.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	const q = `INSERT INTO clients (first_name, last_name, email, phone) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.FirstName, c.LastName, c.Email, c.Phone)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	const sel = `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
	got, err := scanClient(r.db.QueryRowContext(ctx, sel, c.ID))
	if err != nil {
		return err
	}
	*c = *got
	return nil
}

// GetByID returns the client with the given ID or ErrClientNotFound.
func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (*model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
	c, err := scanClient(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	return c, err
}

// GetByEmail returns the client with the given unique email or
// ErrClientNotFound.
func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE email = ?`
	c, err := scanClient(r.db.QueryRowContext(ctx, q, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	return c, err
}

// List returns all clients ordered by last then first name.
func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients ORDER BY last_name, first_name`
	return r.queryClients(ctx, q)
}

// SearchByName returns clients whose first or last name contains the
// given fragment, case-insensitively. An empty fragment matches all.
func (r *ClientRepo) SearchByName(ctx context.Context, name string) ([]model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients
	           WHERE last_name LIKE CONCAT('%', ?, '%') OR first_name LIKE CONCAT('%', ?, '%')
	           ORDER BY last_name, first_name`
	return r.queryClients(ctx, q, name, name)
}

func (r *ClientRepo) queryClients(ctx context.Context, q string, args ...any) ([]model.Client, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Update replaces the mutable contact fields of a client. Identity
// (the ID) never changes. Returns ErrClientNotFound when no row
// matches and ErrDuplicate when the new email is taken.
func (r *ClientRepo) Update(ctx context.Context, c *model.Client) error {
	const q = `UPDATE clients SET first_name = ?, last_name = ?, email = ?, phone = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, c.FirstName, c.LastName, c.Email, c.Phone, c.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	if _, err := res.RowsAffected(); err != nil {
		return err
	}
	// RowsAffected is 0 both for a missing row and for a no-op update,
	// so existence is verified by reading the row back.
	const sel = `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
	got, err := scanClient(r.db.QueryRowContext(ctx, sel, c.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrClientNotFound
	}
	if err != nil {
		return err
	}
	*c = *got
	return nil
}

// Delete removes a client. The delete is rejected with ErrConflict
// while any reservation still references the client: reservations are
// never cascaded away implicitly. Returns ErrClientNotFound when the
// client does not exist.
func (r *ClientRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var owned int
	const cnt = `SELECT COUNT(*) FROM reservations WHERE client_id = ?`
	if err := tx.QueryRowContext(ctx, cnt, id).Scan(&owned); err != nil {
		return err
	}
	if owned > 0 {
		return ErrConflict
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrClientNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
