// This file implements persistence for reservations. Date columns are
// DATE (no time component) and are read back as UTC midnight thanks to
// parseTime/loc settings on the DSN. Methods with a Tx suffix run
// inside a caller-owned transaction and never commit; the booking
// engine composes them with the room row lock so that the conflict
// check and the insert form one atomic unit.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ReservationRepo manages persistence for reservations.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo constructs a ReservationRepo with the given DB handle.
func NewReservationRepo(db *sql.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

// DB exposes the underlying sql.DB for transaction control.
func (r *ReservationRepo) DB() *sql.DB {
	return r.db
}

const reservationColumns = `id, client_id, room_id, start_date, end_date, status, preferences, party_size, total_price_cents, comment, created_at, updated_at`

// scanReservation reads one reservation row from any row scanner.
func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var (
		res   model.Reservation
		prefs sql.NullString
		party sql.NullInt64
		comm  sql.NullString
	)
	err := row.Scan(&res.ID, &res.ClientID, &res.RoomID, &res.StartDate, &res.EndDate, &res.Status,
		&prefs, &party, &res.TotalPriceCents, &comm, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if prefs.Valid {
		res.Preferences = &prefs.String
	}
	if party.Valid {
		n := int(party.Int64)
		res.PartySize = &n
	}
	if comm.Valid {
		res.Comment = &comm.String
	}
	return &res, nil
}

// CreateTx inserts a new reservation within the caller's transaction
// and populates the generated ID and DB-default timestamps. The
// caller must commit or roll back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (client_id, room_id, start_date, end_date, status, preferences, party_size, total_price_cents, comment)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.ClientID, res.RoomID, res.StartDate, res.EndDate, res.Status,
		nullString(res.Preferences), nullInt(res.PartySize), res.TotalPriceCents, nullString(res.Comment))
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	got, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID))
	if err != nil {
		return err
	}
	*res = *got
	return nil
}

// UpdateTx replaces the patchable fields of a reservation within the
// caller's transaction. The status column is deliberately not in the
// SET list: only UpdateStatusTx writes it, so a field update can never
// carry a stale status back into the row.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `UPDATE reservations SET client_id = ?, room_id = ?, start_date = ?, end_date = ?,
	           preferences = ?, party_size = ?, total_price_cents = ?, comment = ? WHERE id = ?`
	result, err := tx.ExecContext(ctx, q, res.ClientID, res.RoomID, res.StartDate, res.EndDate,
		nullString(res.Preferences), nullInt(res.PartySize), res.TotalPriceCents, nullString(res.Comment), res.ID)
	if err != nil {
		return err
	}
	if _, err := result.RowsAffected(); err != nil {
		return err
	}
	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	got, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReservationNotFound
	}
	if err != nil {
		return err
	}
	*res = *got
	return nil
}

// UpdateStatusTx writes only the status column within the caller's
// transaction. Returns ErrReservationNotFound when no row matches.
// MySQL reports zero affected rows for a same-value write too, so the
// status passed in must differ from the stored one; the engine's state
// machine has no self-transitions, which guarantees that.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.ReservationStatus) error {
	const q = `UPDATE reservations SET status = ? WHERE id = ?`
	result, err := tx.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// GetByID returns the reservation with the given ID or
// ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// GetByIDTx is GetByID inside the caller's transaction.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(tx.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// overlapClause is the half-open interval test shared by every
// conflict query: [start_date, end_date) overlaps [?, ?) iff
// start_date < qEnd AND end_date > qStart. Cancelled reservations
// never conflict.
const overlapClause = `room_id = ? AND status <> 'ANNULEE' AND start_date < ? AND end_date > ?`

// OverlappingTx returns, inside the caller's transaction, every
// non-cancelled reservation on the room whose interval overlaps the
// half-open window [qStart, qEnd), excluding the reservation with
// excludeID (0 excludes nothing). The engine calls this while holding
// the room row lock, which makes check-then-insert atomic.
func (r *ReservationRepo) OverlappingTx(ctx context.Context, tx *sql.Tx, roomID uint64, qStart, qEnd time.Time, excludeID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE ` + overlapClause + ` AND id <> ? ORDER BY start_date`
	rows, err := tx.QueryContext(ctx, q, roomID, qEnd, qStart, excludeID)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// Overlapping is the read-path variant of OverlappingTx, used for
// availability queries which only need a consistent snapshot.
func (r *ReservationRepo) Overlapping(ctx context.Context, roomID uint64, qStart, qEnd time.Time) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE ` + overlapClause + ` ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, q, roomID, qEnd, qStart)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// BusyRoomIDs returns the distinct IDs of rooms referenced by any
// non-cancelled reservation overlapping [qStart, qEnd). The booking
// engine subtracts this set from the administratively available rooms.
func (r *ReservationRepo) BusyRoomIDs(ctx context.Context, qStart, qEnd time.Time) ([]uint64, error) {
	const q = `SELECT DISTINCT room_id FROM reservations
	           WHERE status <> 'ANNULEE' AND start_date < ? AND end_date > ?`
	rows, err := r.db.QueryContext(ctx, q, qEnd, qStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// List returns all reservations ordered by start date.
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY start_date`
	return r.query(ctx, q)
}

// ListByClient returns a client's reservations, newest stay first.
func (r *ReservationRepo) ListByClient(ctx context.Context, clientID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE client_id = ? ORDER BY start_date DESC`
	return r.query(ctx, q, clientID)
}

// ListByRoom returns a room's reservations ordered by start date.
func (r *ReservationRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE room_id = ? ORDER BY start_date`
	return r.query(ctx, q, roomID)
}

// ListByStatus returns every reservation in the given lifecycle state.
func (r *ReservationRepo) ListByStatus(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE status = ? ORDER BY start_date`
	return r.query(ctx, q, status)
}

// ListCurrent returns the non-cancelled reservations that have not
// checked out yet as of the given date, soonest first.
func (r *ReservationRepo) ListCurrent(ctx context.Context, today time.Time) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE end_date >= ? AND status <> 'ANNULEE' ORDER BY start_date`
	return r.query(ctx, q, today)
}

// ExpiredConfirmedIDs returns the IDs of confirmed reservations whose
// checkout date has passed. The completion scheduler feeds these back
// through the lifecycle state machine.
func (r *ReservationRepo) ExpiredConfirmedIDs(ctx context.Context, today time.Time) ([]uint64, error) {
	const q = `SELECT id FROM reservations WHERE status = 'CONFIRMEE' AND end_date <= ?`
	rows, err := r.db.QueryContext(ctx, q, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete hard-deletes a reservation regardless of status. Returns
// ErrReservationNotFound when no row matches.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepo) query(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}
