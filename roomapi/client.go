// Package roomapi is an HTTP client for the room service, usable directly
// as the binder's room data source.
package roomapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	floorplan "github.com/SabinGhost19/SpaceFlow-sub000"
)

type Client struct {
	base string
	http *http.Client
}

// New creates a client for the room service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s %s: %s", http.MethodGet, path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) ListRooms(ctx context.Context) ([]floorplan.Room, error) {
	var rooms []floorplan.Room
	if err := c.get(ctx, "/api/rooms", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *Client) GetRoom(ctx context.Context, key string) (*floorplan.RoomDetail, error) {
	var detail floorplan.RoomDetail
	if err := c.get(ctx, "/api/rooms/"+url.PathEscape(key), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) BookingsForRoom(ctx context.Context, key string, from, to time.Time, status string) ([]floorplan.Booking, error) {
	query := url.Values{}
	query.Set("from", from.Format("2006-01-02"))
	query.Set("to", to.Format("2006-01-02"))
	if status != "" {
		query.Set("status", status)
	}
	var bookings []floorplan.Booking
	if err := c.get(ctx, "/api/rooms/"+url.PathEscape(key)+"/bookings", query, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) CheckAvailability(ctx context.Context, key, date, startTime, endTime string) (bool, error) {
	query := url.Values{}
	query.Set("date", date)
	query.Set("start", startTime)
	query.Set("end", endTime)
	var result struct {
		Available bool `json:"available"`
	}
	if err := c.get(ctx, "/api/rooms/"+url.PathEscape(key)+"/availability", query, &result); err != nil {
		return false, err
	}
	return result.Available, nil
}

var _ floorplan.RoomSource = (*Client)(nil)
