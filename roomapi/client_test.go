package roomapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tdewolff/test"
)

func testServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/rooms", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"key":"room-101","name":"Conference A","capacity":12}]`))
	})
	mux.HandleFunc("GET /api/rooms/room-101", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"key":"room-101","name":"Conference A","capacity":12,"description":"Projector","available":true}`))
	})
	mux.HandleFunc("GET /api/rooms/room-404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"room not found"}`))
	})
	mux.HandleFunc("GET /api/rooms/room-101/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("status") != "confirmed" {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[{"id":"b1","roomKey":"room-101","date":"2026-09-01","startTime":"09:00","endTime":"10:00","status":"confirmed"}]`))
	})
	mux.HandleFunc("GET /api/rooms/room-101/availability", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		free := q.Get("start") != "09:00"
		if free {
			w.Write([]byte(`{"available":true}`))
		} else {
			w.Write([]byte(`{"available":false}`))
		}
	})
	return httptest.NewServer(mux)
}

func TestClientListRooms(t *testing.T) {
	srv := testServer()
	defer srv.Close()
	c := New(srv.URL)

	rooms, err := c.ListRooms(context.Background())
	test.Error(t, err)
	test.T(t, len(rooms), 1)
	test.String(t, rooms[0].Key, "room-101")
	test.T(t, rooms[0].Capacity, 12)
}

func TestClientGetRoom(t *testing.T) {
	srv := testServer()
	defer srv.Close()
	c := New(srv.URL)

	detail, err := c.GetRoom(context.Background(), "room-101")
	test.Error(t, err)
	test.String(t, detail.Name, "Conference A")
	test.T(t, detail.Available, true)

	_, err = c.GetRoom(context.Background(), "room-404")
	test.That(t, err != nil, "missing room yields an error")
	test.String(t, err.Error(), "404 Not Found: room not found")
}

func TestClientBookings(t *testing.T) {
	srv := testServer()
	defer srv.Close()
	c := New(srv.URL)

	from, _ := time.Parse("2006-01-02", "2026-09-01")
	bookings, err := c.BookingsForRoom(context.Background(), "room-101", from, from.AddDate(0, 0, 7), "confirmed")
	test.Error(t, err)
	test.T(t, len(bookings), 1)
	test.String(t, bookings[0].ID, "b1")

	bookings, err = c.BookingsForRoom(context.Background(), "room-101", from, from, "")
	test.Error(t, err)
	test.T(t, len(bookings), 0)
}

func TestClientAvailability(t *testing.T) {
	srv := testServer()
	defer srv.Close()
	c := New(srv.URL)

	free, err := c.CheckAvailability(context.Background(), "room-101", "2026-09-01", "09:00", "10:00")
	test.Error(t, err)
	test.T(t, free, false)

	free, err = c.CheckAvailability(context.Background(), "room-101", "2026-09-01", "11:00", "12:00")
	test.Error(t, err)
	test.T(t, free, true)
}
