package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// DefaultLockWait bounds how long a booking waits for its room lock
// before failing with a retryable TimeoutError.
const DefaultLockWait = 3 * time.Second

// Engine is the booking orchestrator. It owns the concurrency
// protocol around reservations: every write that could violate the
// no-overlap invariant runs with the per-room lock held and inside a
// single database transaction, with the room row locked FOR UPDATE so
// that engines sharing the database serialize as well. The guarantee
// is that for any room, the set of committed non-cancelled
// reservations is always pairwise non-overlapping.
//
// Events are published to the broker only after a successful commit,
// and publish failures never fail the operation.
type Engine struct {
	clients      *repository.ClientRepo
	rooms        *repository.RoomRepo
	reservations *repository.ReservationRepo
	locks        *roomLocks
	lockWait     time.Duration
	publisher    *queue.Publisher // nil disables event publishing
}

// NewEngine constructs an Engine over the given repositories.
// publisher may be nil; lockWait <= 0 falls back to DefaultLockWait.
func NewEngine(clients *repository.ClientRepo, rooms *repository.RoomRepo, reservations *repository.ReservationRepo, publisher *queue.Publisher, lockWait time.Duration) *Engine {
	if clients == nil || rooms == nil || reservations == nil {
		panic("nil repository passed to NewEngine")
	}
	if lockWait <= 0 {
		lockWait = DefaultLockWait
	}
	return &Engine{
		clients:      clients,
		rooms:        rooms,
		reservations: reservations,
		locks:        newRoomLocks(),
		lockWait:     lockWait,
		publisher:    publisher,
	}
}

// CreateReservationInput carries the booking request. Dates may have
// a time component; the engine normalizes them to calendar dates.
type CreateReservationInput struct {
	ClientID    uint64
	RoomID      uint64
	StartDate   time.Time
	EndDate     time.Time
	Preferences *string
	PartySize   *int
	Comment     *string
}

// CreateReservation books a room for a client over [start, end).
// Steps: validate the range, resolve client and room, then under the
// room lock and a single transaction re-check availability and insert
// the reservation with status EN_ATTENTE and the frozen total price.
// Two concurrent requests for overlapping windows on one room cannot
// both succeed: the loser gets a *ConflictError naming the winner. A
// failed booking leaves no reservation row behind.
func (e *Engine) CreateReservation(ctx context.Context, in CreateReservationInput) (*model.Reservation, error) {
	start, end := DateOf(in.StartDate), DateOf(in.EndDate)
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}
	client, err := e.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	room, err := e.rooms.GetByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if err := roomBookable(room); err != nil {
		return nil, err
	}
	total, err := TotalPriceCents(room.NightlyRateCents, start, end)
	if err != nil {
		return nil, err
	}

	if err := e.locks.Acquire(ctx, room.ID, e.lockWait); err != nil {
		return nil, err
	}
	defer e.locks.Release(room.ID)

	tx, err := e.reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin booking transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := e.rooms.GetByIDForUpdateTx(ctx, tx, room.ID); err != nil {
		return nil, err
	}
	conflicts, err := e.reservations.OverlappingTx(ctx, tx, room.ID, start, end, 0)
	if err != nil {
		return nil, fmt.Errorf("conflict check: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, conflictErr(room.ID, conflicts)
	}
	res := &model.Reservation{
		ClientID:        client.ID,
		RoomID:          room.ID,
		StartDate:       start,
		EndDate:         end,
		Status:          model.StatusPending,
		Preferences:     in.Preferences,
		PartySize:       in.PartySize,
		TotalPriceCents: total,
		Comment:         in.Comment,
	}
	if err := e.reservations.CreateTx(ctx, tx, res); err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit booking: %w", err)
	}
	committed = true

	e.publish(ctx, EventFor(queue.EventReservationCreated, res))
	return res, nil
}

// UpdateReservation applies a partial update. Unset patch fields
// retain their prior values. When the patch moves the reservation to
// another room or other dates, the full conflict check is re-run
// against the new (room, window) pair under the same locking protocol
// as creation, and the total price is recomputed from the target
// room's current rate. The status column is never written by this
// path; lifecycle changes go through UpdateReservationStatus only.
func (e *Engine) UpdateReservation(ctx context.Context, id uint64, patch ReservationPatch) (*model.Reservation, error) {
	current, err := e.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.ClientID != nil {
		if _, err := e.clients.GetByID(ctx, *patch.ClientID); err != nil {
			return nil, err
		}
	}
	// Resolve the room the lock must cover: the patched room when the
	// patch moves the stay, the current room otherwise.
	targetRoomID := current.RoomID
	if patch.RoomID != nil {
		targetRoomID = *patch.RoomID
	}
	if _, err := e.rooms.GetByID(ctx, targetRoomID); err != nil {
		return nil, err
	}

	// Lock whenever the patch touches the room or the window. Whether
	// the placement actually changed is decided against the in-tx row,
	// so the lock may occasionally cover a no-op move; that is cheap.
	touchesPlacement := patch.RoomID != nil || patch.StartDate != nil || patch.EndDate != nil
	if touchesPlacement {
		if err := e.locks.Acquire(ctx, targetRoomID, e.lockWait); err != nil {
			return nil, err
		}
		defer e.locks.Release(targetRoomID)
	}

	tx, err := e.reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	// Merge against the row as it exists inside the transaction, not
	// the snapshot read above: a status change committed between the
	// two reads must survive this update.
	current, err = e.reservations.GetByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	merged, placementChanged := patch.Apply(*current)
	if !merged.StartDate.Before(merged.EndDate) {
		return nil, ErrInvalidRange
	}
	if placementChanged {
		room, err := e.rooms.GetByIDForUpdateTx(ctx, tx, merged.RoomID)
		if err != nil {
			return nil, err
		}
		if merged.RoomID != current.RoomID {
			if err := roomBookable(room); err != nil {
				return nil, err
			}
		}
		// Moving the stay re-prices it at the target room's current
		// rate; a plain field edit leaves the frozen price alone.
		total, err := TotalPriceCents(room.NightlyRateCents, merged.StartDate, merged.EndDate)
		if err != nil {
			return nil, err
		}
		merged.TotalPriceCents = total
		if merged.Status != model.StatusCancelled {
			conflicts, err := e.reservations.OverlappingTx(ctx, tx, merged.RoomID, merged.StartDate, merged.EndDate, merged.ID)
			if err != nil {
				return nil, fmt.Errorf("conflict check: %w", err)
			}
			if len(conflicts) > 0 {
				return nil, conflictErr(merged.RoomID, conflicts)
			}
		}
	}
	if err := e.reservations.UpdateTx(ctx, tx, &merged); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	committed = true

	e.publish(ctx, EventFor(queue.EventReservationUpdated, &merged))
	return &merged, nil
}

// UpdateReservationStatus moves a reservation through the lifecycle
// state machine. Illegal transitions fail with an
// *InvalidTransitionError. Confirming a pending reservation
// re-validates availability for its stored date range inside the same
// transaction as the status write, since another reservation may have
// been confirmed in the interim; a discovered overlap fails with a
// *ConflictError and the status is left untouched.
func (e *Engine) UpdateReservationStatus(ctx context.Context, id uint64, to model.ReservationStatus) (*model.Reservation, error) {
	current, err := e.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(current.Status, to); err != nil {
		return nil, err
	}

	revalidate := to == model.StatusConfirmed
	if revalidate {
		if err := e.locks.Acquire(ctx, current.RoomID, e.lockWait); err != nil {
			return nil, err
		}
		defer e.locks.Release(current.RoomID)
	}

	tx, err := e.reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin status transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	// Re-read inside the transaction so a concurrent transition is
	// observed before we act on a stale status.
	current, err = e.reservations.GetByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(current.Status, to); err != nil {
		return nil, err
	}
	if revalidate {
		if _, err := e.rooms.GetByIDForUpdateTx(ctx, tx, current.RoomID); err != nil {
			return nil, err
		}
		conflicts, err := e.reservations.OverlappingTx(ctx, tx, current.RoomID, current.StartDate, current.EndDate, current.ID)
		if err != nil {
			return nil, fmt.Errorf("conflict check: %w", err)
		}
		if len(conflicts) > 0 {
			return nil, conflictErr(current.RoomID, conflicts)
		}
	}
	if err := e.reservations.UpdateStatusTx(ctx, tx, id, to); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit status change: %w", err)
	}
	committed = true

	current.Status = to
	e.publish(ctx, EventFor(queue.EventReservationStatusChanged, current))
	return current, nil
}

// DeleteReservation hard-deletes a reservation in any lifecycle
// state. No state-machine constraint applies; cancellation is the
// reversible path, deletion is the administrative one.
func (e *Engine) DeleteReservation(ctx context.Context, id uint64) error {
	current, err := e.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := e.reservations.Delete(ctx, id); err != nil {
		return err
	}
	e.publish(ctx, EventFor(queue.EventReservationDeleted, current))
	return nil
}

// RoomAvailable reports whether a room is free for the half-open
// window [start, end). The boolean accounts for both the
// administrative flag and date conflicts; the returned reservations
// are the conflicting ones, for diagnostics only.
func (e *Engine) RoomAvailable(ctx context.Context, roomID uint64, start, end time.Time) (bool, []model.Reservation, error) {
	start, end = DateOf(start), DateOf(end)
	if !start.Before(end) {
		return false, nil, ErrInvalidRange
	}
	room, err := e.rooms.GetByID(ctx, roomID)
	if err != nil {
		return false, nil, err
	}
	conflicts, err := e.reservations.Overlapping(ctx, roomID, start, end)
	if err != nil {
		return false, nil, err
	}
	return room.IsAvailable && len(conflicts) == 0, conflicts, nil
}

// AvailableRooms lists every room bookable for the window [start,
// end): administratively available and not referenced by any
// non-cancelled overlapping reservation. The empty busy set is
// handled explicitly by FilterBookable.
func (e *Engine) AvailableRooms(ctx context.Context, start, end time.Time) ([]model.Room, error) {
	start, end = DateOf(start), DateOf(end)
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}
	busy, err := e.reservations.BusyRoomIDs(ctx, start, end)
	if err != nil {
		return nil, err
	}
	rooms, err := e.rooms.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return FilterBookable(rooms, busy), nil
}

// EventFor builds the broker payload for a committed reservation change.
func EventFor(eventType string, res *model.Reservation) queue.ReservationEvent {
	return queue.ReservationEvent{
		Type:            eventType,
		ReservationID:   res.ID,
		ClientID:        res.ClientID,
		RoomID:          res.RoomID,
		StartDate:       FormatDate(res.StartDate),
		EndDate:         FormatDate(res.EndDate),
		Status:          string(res.Status),
		TotalPriceCents: res.TotalPriceCents,
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	}
}

func (e *Engine) publish(ctx context.Context, ev queue.ReservationEvent) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, ev); err != nil {
		log.Printf("booking: publish %s for reservation %d failed: %v", ev.Type, ev.ReservationID, err)
	}
}

// roomBookable rejects administratively out-of-service rooms. The
// ConflictError carries no reservation IDs: nothing blocks the window,
// the room itself is closed.
func roomBookable(room *model.Room) error {
	if !room.IsAvailable {
		return &ConflictError{RoomID: room.ID}
	}
	return nil
}

func conflictErr(roomID uint64, conflicts []model.Reservation) *ConflictError {
	ids := make([]uint64, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}
	return &ConflictError{RoomID: roomID, ReservationIDs: ids}
}
