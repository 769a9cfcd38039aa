package floorplan

import (
	"context"
	"image/color"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Room is the external room record a shape binds to. Key equals the shape
// id of its floor-plan region.
type Room struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// RoomDetail is the on-demand detail/availability record loaded on hover.
type RoomDetail struct {
	Room
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// Booking is a reservation of a room, as reported by the data source.
type Booking struct {
	ID        string `json:"id"`
	RoomKey   string `json:"roomKey"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// RoomSource is the data-access interface the surrounding application
// provides. Calls are opaque I/O; their failures surface as missing data,
// never as geometry errors.
type RoomSource interface {
	ListRooms(ctx context.Context) ([]Room, error)
	GetRoom(ctx context.Context, key string) (*RoomDetail, error)
	BookingsForRoom(ctx context.Context, key string, from, to time.Time, status string) ([]Booking, error)
	CheckAvailability(ctx context.Context, key, date, startTime, endTime string) (bool, error)
}

// DetailStatus tracks the hover-driven detail load of one shape.
type DetailStatus int

const (
	DetailNone DetailStatus = iota
	DetailLoading
	DetailLoaded
	// DetailFailed means the load failed; any last-known detail is kept as
	// basic info.
	DetailFailed
)

// RenderState is the render contract for one visible shape: the host UI
// draws it, this core never does.
type RenderState struct {
	ShapeID  string       `json:"shapeId"`
	Label    string       `json:"label,omitempty"`
	Rect     RenderRect   `json:"rect"`
	Color    string       `json:"color"`
	Disabled bool         `json:"disabled"`
	RoomKey  string       `json:"roomKey,omitempty"`
	Detail   DetailStatus `json:"detail"`
}

// BinderOptions configures a Binder; the zero value gets sensible defaults.
type BinderOptions struct {
	// Freshness is how long a loaded detail stays valid before a hover
	// refetches it. Defaults to 30 seconds.
	Freshness time.Duration

	// BlockedFills are reserved fill colors marking structural, never
	// interactive shapes.
	BlockedFills []string

	// DisabledPrefixes are id prefixes of structural elements such as
	// walls.
	DisabledPrefixes []string

	Logger *slog.Logger

	// Now is the clock, replaceable in tests.
	Now func() time.Time
}

type detailEntry struct {
	status    DetailStatus
	detail    *RoomDetail
	fetchedAt time.Time
	inflight  bool
	gen       int
}

// Binder associates shapes with room records by stable identifier and
// drives hover and detail-load state. Detail fetches are asynchronous,
// de-duplicated per shape id, and keyed writes so a stale response for one
// shape can never corrupt another shape's cache entry.
type Binder struct {
	src              RoomSource
	log              *slog.Logger
	freshness        time.Duration
	blockedFills     map[string]bool
	disabledPrefixes []string
	now              func() time.Time

	mu      sync.Mutex
	rooms   map[string]Room
	details map[string]*detailEntry
	hovered string
	wg      sync.WaitGroup
}

// NewBinder creates a binder over the given data source.
func NewBinder(src RoomSource, opts BinderOptions) *Binder {
	if opts.Freshness <= 0 {
		opts.Freshness = 30 * time.Second
	}
	if opts.BlockedFills == nil {
		opts.BlockedFills = []string{"#000000", "black"}
	}
	if opts.DisabledPrefixes == nil {
		opts.DisabledPrefixes = []string{"Wall_", "Door_", "Window_"}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	blocked := map[string]bool{}
	for _, fill := range opts.BlockedFills {
		blocked[strings.ToLower(fill)] = true
	}
	return &Binder{
		src:              src,
		log:              opts.Logger,
		freshness:        opts.Freshness,
		blockedFills:     blocked,
		disabledPrefixes: opts.DisabledPrefixes,
		now:              opts.Now,
		rooms:            map[string]Room{},
		details:          map[string]*detailEntry{},
	}
}

// BindRooms loads the room list and binds each room to the shape whose id
// equals its key.
func (b *Binder) BindRooms(ctx context.Context) error {
	rooms, err := b.src.ListRooms(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rooms = make(map[string]Room, len(rooms))
	for _, room := range rooms {
		b.rooms[room.Key] = room
	}
	return nil
}

// RoomFor returns the room bound to a shape id.
func (b *Binder) RoomFor(id string) (Room, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	room, ok := b.rooms[id]
	return room, ok
}

// Disabled reports whether a shape never binds to rooms nor receives
// pointer events: structural elements by id prefix, and shapes with a
// reserved blocked fill.
func (b *Binder) Disabled(s *Shape) bool {
	return b.disabled(s)
}

// HoverEnter marks the shape as hovered and requests its detail record if
// it is bindable, not disabled, not already fresh, and not already in
// flight. At most one fetch per shape id runs at a time.
func (b *Binder) HoverEnter(ctx context.Context, s *Shape) {
	if b.Disabled(s) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.hovered = s.ID
	if _, bound := b.rooms[s.ID]; !bound {
		return
	}

	entry, ok := b.details[s.ID]
	if !ok {
		entry = &detailEntry{}
		b.details[s.ID] = entry
	}
	if entry.inflight {
		return
	}
	if entry.status == DetailLoaded && b.now().Sub(entry.fetchedAt) < b.freshness {
		return
	}

	entry.inflight = true
	entry.gen++
	if entry.status == DetailNone {
		entry.status = DetailLoading
	}
	gen := entry.gen
	id := s.ID

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		detail, err := b.src.GetRoom(ctx, id)

		b.mu.Lock()
		defer b.mu.Unlock()
		entry := b.details[id]
		if entry == nil || entry.gen != gen {
			// a newer fetch superseded this response
			return
		}
		entry.inflight = false
		if err != nil {
			// fall back to basic info; never a geometry error
			entry.status = DetailFailed
			b.log.Warn("room detail load failed", "shape", id, "error", err)
			return
		}
		entry.status = DetailLoaded
		entry.detail = detail
		entry.fetchedAt = b.now()
	}()
}

// HoverLeave clears the hovered shape.
func (b *Binder) HoverLeave(s *Shape) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.hovered == s.ID {
		b.hovered = ""
	}
}

// Hovered returns the currently hovered shape id, if any.
func (b *Binder) Hovered() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hovered
}

// Detail returns the last-known detail record and load status for a shape.
func (b *Binder) Detail(id string) (*RoomDetail, DetailStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.details[id]
	if !ok {
		return nil, DetailNone
	}
	return entry.detail, entry.status
}

// RenderStates assembles the render contract for the given (already culled)
// shapes: a percent rectangle on the current surface, a CSS fill from the
// signature color map (falling back to the authored fill), the disabled
// flag, and the bound room key.
func (b *Binder) RenderStates(shapes []*Shape, colors map[string]color.RGBA, viewBox Rect, canonical, current Size) []RenderState {
	b.mu.Lock()
	defer b.mu.Unlock()

	states := make([]RenderState, 0, len(shapes))
	for _, s := range shapes {
		if s.Degenerate {
			continue
		}
		fill := s.Fill
		if col, ok := colors[s.Signature()]; ok {
			fill = CSSColor(col)
		}
		state := RenderState{
			ShapeID:  s.ID,
			Label:    s.Label,
			Rect:     ToRenderRect(s.Bounds, viewBox, canonical, current),
			Color:    fill,
			Disabled: b.disabled(s),
		}
		if room, ok := b.rooms[s.ID]; ok && !state.Disabled {
			state.RoomKey = room.Key
			if entry, ok := b.details[s.ID]; ok {
				state.Detail = entry.status
			}
		}
		states = append(states, state)
	}
	return states
}

func (b *Binder) disabled(s *Shape) bool {
	for _, prefix := range b.disabledPrefixes {
		if strings.HasPrefix(s.ID, prefix) {
			return true
		}
	}
	return b.blockedFills[strings.ToLower(s.Fill)]
}

// wait blocks until all in-flight fetches complete; used by tests.
func (b *Binder) wait() {
	b.wg.Wait()
}
