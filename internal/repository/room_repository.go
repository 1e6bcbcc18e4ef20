// This file implements persistence for rooms. Nightly rates are
// stored as integer cents; the administrative availability flag lives
// in the is_available column and is entirely separate from the
// date-scoped availability computed from reservations.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RoomRepo manages persistence for rooms.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// DB exposes the underlying sql.DB for callers that need to begin
// transactions spanning multiple repositories.
func (r *RoomRepo) DB() *sql.DB {
	return r.db
}

const roomColumns = `id, room_number, room_type, nightly_rate_cents, is_available, description, max_occupancy, created_at, updated_at`

// scanRoom reads one room row from any row scanner, converting the
// nullable columns into pointers.
func scanRoom(row interface{ Scan(...any) error }) (*model.Room, error) {
	var (
		rm   model.Room
		desc sql.NullString
		occ  sql.NullInt64
	)
	err := row.Scan(&rm.ID, &rm.Number, &rm.Type, &rm.NightlyRateCents, &rm.IsAvailable,
		&desc, &occ, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		rm.Description = &desc.String
	}
	if occ.Valid {
		n := int(occ.Int64)
		rm.MaxOccupancy = &n
	}
	return &rm, nil
}

// Create inserts a new room and populates the generated ID and the
// DB-default timestamps. A duplicate room number fails with
// ErrDuplicate.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const q = `INSERT INTO rooms (room_number, room_type, nightly_rate_cents, is_available, description, max_occupancy)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rm.Number, rm.Type, rm.NightlyRateCents, rm.IsAvailable,
		nullString(rm.Description), nullInt(rm.MaxOccupancy))
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
	rm.ID = uint64(id)
	const sel = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	got, err := scanRoom(r.db.QueryRowContext(ctx, sel, rm.ID))
	if err != nil {
		return err
	}
	*rm = *got
	return nil
}

// GetByID returns the room with the given ID or ErrRoomNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	rm, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	return rm, err
}

// GetByIDForUpdateTx loads a room inside tx while taking a row lock on
// it. The booking engine uses this lock so that concurrent engines
// sharing the database serialize their check-and-insert on the same
// room.
func (r *RoomRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ? FOR UPDATE`
	rm, err := scanRoom(tx.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	return rm, err
}

// GetByNumber returns the room with the given unique room number or
// ErrRoomNotFound.
func (r *RoomRepo) GetByNumber(ctx context.Context, number string) (*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE room_number = ?`
	rm, err := scanRoom(r.db.QueryRowContext(ctx, q, number))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	return rm, err
}

// List returns all rooms ordered by room number.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms ORDER BY room_number`
	return r.queryRooms(ctx, q)
}

// ListByType returns all rooms of one room class.
func (r *RoomRepo) ListByType(ctx context.Context, t model.RoomType) ([]model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE room_type = ? ORDER BY room_number`
	return r.queryRooms(ctx, q, string(t))
}

// ListAvailable returns the rooms whose administrative flag is on.
// Date-scoped filtering against reservations is the booking engine's
// job, not the repository's.
func (r *RoomRepo) ListAvailable(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE is_available = TRUE ORDER BY room_number`
	return r.queryRooms(ctx, q)
}

func (r *RoomRepo) queryRooms(ctx context.Context, q string, args ...any) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rm)
	}
	return out, rows.Err()
}

// Update replaces all mutable fields of a room. Returns
// ErrRoomNotFound when no row matches and ErrDuplicate when the new
// room number is taken.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	const q = `UPDATE rooms SET room_number = ?, room_type = ?, nightly_rate_cents = ?, is_available = ?,
	           description = ?, max_occupancy = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, rm.Number, rm.Type, rm.NightlyRateCents, rm.IsAvailable,
		nullString(rm.Description), nullInt(rm.MaxOccupancy), rm.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	const sel = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	got, err := scanRoom(r.db.QueryRowContext(ctx, sel, rm.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoomNotFound
	}
	if err != nil {
		return err
	}
	*rm = *got
	return nil
}

// SetAvailability flips the administrative availability flag, the
// manual out-of-service switch. Existing reservations are untouched.
func (r *RoomRepo) SetAvailability(ctx context.Context, id uint64, available bool) (*model.Room, error) {
	const q = `UPDATE rooms SET is_available = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, available, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a room. The delete is rejected with ErrConflict
// while any reservation still references the room. Returns
// ErrRoomNotFound when the room does not exist.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
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
	var referenced int
	const cnt = `SELECT COUNT(*) FROM reservations WHERE room_id = ?`
	if err := tx.QueryRowContext(ctx, cnt, id).Scan(&referenced); err != nil {
		return err
	}
	if referenced > 0 {
		return ErrConflict
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// nullString converts an optional string into its sql.NullString form.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// nullInt converts an optional int into its sql.NullInt64 form.
func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
