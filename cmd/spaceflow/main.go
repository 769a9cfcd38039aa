package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tdewolff/argp"

	floorplan "github.com/SabinGhost19/SpaceFlow-sub000"
)

type Inspect struct {
	Verbose bool   `short:"v" desc:"Print every shape"`
	Seed    int64  `default:"1" desc:"Color seed"`
	Input   string `index:"0" desc:"Input SVG file"`
}

type Overlay struct {
	JSON    bool    `short:"j" desc:"Emit the render states as JSON instead of SVG"`
	Minify  bool    `short:"m" desc:"Minify the output SVG"`
	Seed    int64   `default:"1" desc:"Color seed"`
	Width   float64 `short:"w" default:"1280" desc:"Surface width in pixels"`
	Height  float64 `default:"720" desc:"Surface height in pixels"`
	Output  string  `short:"o" desc:"Output file (default stdout)"`
	Input   string  `index:"0" desc:"Input SVG file"`
}

func main() {
	root := argp.NewCmd(&Inspect{}, "SpaceFlow floor-plan inspection toolkit")
	root.AddCmd(&Overlay{}, "overlay", "Render the color overlay SVG")
	root.Parse()
	root.PrintHelp()
}

func parseFile(name string, verbose bool) (*floorplan.Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts := floorplan.Options{}
	if verbose {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return floorplan.ParseFloorPlan(context.Background(), f, &opts)
}

func (cmd *Inspect) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	doc, err := parseFile(cmd.Input, cmd.Verbose)
	if err != nil {
		return err
	}

	fmt.Println("File name:", filepath.Base(cmd.Input))
	fmt.Println("ViewBox:", doc.ViewBox)
	fmt.Println("Content bounds:", doc.Bounds())
	fmt.Println("Shapes:", doc.Stats.Total)
	fmt.Println("Degenerate:", doc.Stats.Degenerate)
	for kind, n := range doc.Stats.ByKind {
		fmt.Printf("  %s: %d\n", kind, n)
	}

	groups := floorplan.GroupBySignature(doc.Shapes)
	colors := floorplan.AssignColors(groups, cmd.Seed)
	fmt.Println("Groups:", len(groups))
	for _, g := range groups {
		fmt.Printf("  %-32s %3d shapes  %s\n", g.Signature, len(g.IDs), floorplan.CSSColor(colors[g.Signature]))
		if cmd.Verbose {
			for _, id := range g.IDs {
				fmt.Println("    ", id)
			}
		}
	}

	for _, warning := range doc.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", warning.ShapeID, warning.Message)
	}
	return nil
}

func (cmd *Overlay) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	doc, err := parseFile(cmd.Input, false)
	if err != nil {
		return err
	}

	shapes := doc.Renderable()
	colors := floorplan.AssignColors(floorplan.GroupBySignature(doc.Shapes), cmd.Seed)

	surface := floorplan.Size{W: cmd.Width, H: cmd.Height}
	binder := floorplan.NewBinder(noRooms{}, floorplan.BinderOptions{})
	states := binder.RenderStates(shapes, colors, doc.ViewBox, surface, surface)

	w := os.Stdout
	if cmd.Output != "" {
		if w, err = os.Create(cmd.Output); err != nil {
			return err
		}
		defer w.Close()
	}
	if cmd.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(states)
	}
	return floorplan.WriteOverlay(w, states, cmd.Minify)
}

// noRooms is an empty data source; the overlay needs only geometry.
type noRooms struct{}

func (noRooms) ListRooms(ctx context.Context) ([]floorplan.Room, error) { return nil, nil }
func (noRooms) GetRoom(ctx context.Context, key string) (*floorplan.RoomDetail, error) {
	return nil, fmt.Errorf("no such room %s", key)
}
func (noRooms) BookingsForRoom(ctx context.Context, key string, from, to time.Time, status string) ([]floorplan.Booking, error) {
	return nil, nil
}
func (noRooms) CheckAvailability(ctx context.Context, key, date, startTime, endTime string) (bool, error) {
	return false, nil
}
