package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	floorplan "github.com/SabinGhost19/SpaceFlow-sub000"
)

// ErrNotFound is returned when a room or booking does not exist.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
    key         TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    capacity    INTEGER NOT NULL DEFAULT 0,
    description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS bookings (
    id         TEXT PRIMARY KEY,
    room_key   TEXT NOT NULL REFERENCES rooms(key),
    date       TEXT NOT NULL,
    start_time TEXT NOT NULL,
    end_time   TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT 'confirmed',
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_bookings_room_date ON bookings(room_key, date);
`

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init applies the schema and seeds demo rooms when the table is empty.
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return r.seedRooms(ctx)
}

func (r *Repository) ListRooms(ctx context.Context) ([]floorplan.Room, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT key, name, capacity
        FROM rooms
        ORDER BY key
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []floorplan.Room
	for rows.Next() {
		var room floorplan.Room
		if err := rows.Scan(&room.Key, &room.Name, &room.Capacity); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *Repository) GetRoom(ctx context.Context, key string) (*floorplan.RoomDetail, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT key, name, capacity, description
        FROM rooms
        WHERE key = ?
    `, key)

	var detail floorplan.RoomDetail
	if err := row.Scan(&detail.Key, &detail.Name, &detail.Capacity, &detail.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	available, err := r.CheckAvailability(ctx, key, now.Format("2006-01-02"), now.Format("15:04"), now.Format("15:04"))
	if err != nil {
		return nil, err
	}
	detail.Available = available
	return &detail, nil
}

func (r *Repository) BookingsForRoom(ctx context.Context, key string, from, to time.Time, status string) ([]floorplan.Booking, error) {
	query := `
        SELECT id, room_key, date, start_time, end_time, status
        FROM bookings
        WHERE room_key = ? AND date >= ? AND date <= ?
    `
	args := []interface{}{key, from.Format("2006-01-02"), to.Format("2006-01-02")}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY date, start_time`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []floorplan.Booking
	for rows.Next() {
		var b floorplan.Booking
		if err := rows.Scan(&b.ID, &b.RoomKey, &b.Date, &b.StartTime, &b.EndTime, &b.Status); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// CheckAvailability reports whether the room has no confirmed booking
// overlapping [startTime, endTime) on the given date.
func (r *Repository) CheckAvailability(ctx context.Context, key, date, startTime, endTime string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT COUNT(*)
        FROM bookings
        WHERE room_key = ? AND date = ? AND status = 'confirmed'
          AND start_time < ? AND end_time > ?
    `, key, date, endTime, startTime)

	var n int
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

func (r *Repository) CreateBooking(ctx context.Context, b *floorplan.Booking) error {
	if _, err := r.GetRoom(ctx, b.RoomKey); err != nil {
		return err
	}
	free, err := r.CheckAvailability(ctx, b.RoomKey, b.Date, b.StartTime, b.EndTime)
	if err != nil {
		return err
	}
	if !free {
		return fmt.Errorf("room %s already booked on %s %s-%s", b.RoomKey, b.Date, b.StartTime, b.EndTime)
	}

	b.ID = uuid.NewString()
	if b.Status == "" {
		b.Status = "confirmed"
	}
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO bookings (id, room_key, date, start_time, end_time, status)
        VALUES (?, ?, ?, ?, ?, ?)
    `, b.ID, b.RoomKey, b.Date, b.StartTime, b.EndTime, b.Status)
	return err
}

func (r *Repository) seedRooms(ctx context.Context) error {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	seed := []floorplan.RoomDetail{
		{Room: floorplan.Room{Key: "room-101", Name: "Conference A", Capacity: 12}, Description: "Large conference room, projector and whiteboard"},
		{Room: floorplan.Room{Key: "room-102", Name: "Conference B", Capacity: 8}, Description: "Mid-size meeting room"},
		{Room: floorplan.Room{Key: "room-103", Name: "Focus Pod", Capacity: 2}, Description: "Quiet room for calls"},
		{Room: floorplan.Room{Key: "room-104", Name: "Open Space", Capacity: 30}, Description: "Shared working area"},
	}
	for _, room := range seed {
		_, err := r.db.ExecContext(ctx, `
            INSERT INTO rooms (key, name, capacity, description)
            VALUES (?, ?, ?, ?)
        `, room.Key, room.Name, room.Capacity, room.Description)
		if err != nil {
			return fmt.Errorf("seed rooms: %w", err)
		}
	}
	return nil
}

// OpenSQLite opens the database at the given path, creating its directory.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
