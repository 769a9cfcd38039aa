package floorplan

import (
	"github.com/tdewolff/parse/v2/strconv"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

func parseNum(path []byte) (float64, int, bool) {
	i := skipCommaWhitespace(path)
	f, n := strconv.ParseFloat(path[i:])
	if n == 0 {
		return 0.0, i, false
	}
	return f, i + n, true
}

func isCmdLetter(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z'
}

// resyncPath advances to the next command letter, skipping the arguments of
// a malformed or unsupported command.
func resyncPath(path []byte) int {
	i := 0
	for i < len(path) && !isCmdLetter(path[i]) {
		i++
	}
	return i
}

// ParsePathData interprets an SVG path data string and returns the absolute
// points it touches, in order. Curve control points are included so that the
// bounding box over the result conservatively contains the drawn geometry;
// arc commands contribute their endpoint only. Malformed or unsupported
// commands are skipped without failing the rest of the path, and an empty
// string yields no points.
func ParsePathData(d string) []Point {
	path := []byte(d)
	points := []Point{}

	var x, y float64   // current point
	var x0, y0 float64 // start of current subpath
	var prevCmd byte

	i := 0
	for i < len(path) {
		i += skipCommaWhitespace(path[i:])
		if len(path) <= i {
			break
		}

		cmd := prevCmd
		if isCmdLetter(path[i]) {
			cmd = path[i]
			i++
		} else if cmd == 0 {
			// numbers before any command
			i += resyncPath(path[i:])
			continue
		}

		// read the arguments this command needs; any failure skips to the
		// next command letter
		var nums [7]float64
		argc := 0
		switch cmd {
		case 'Z', 'z':
		case 'H', 'h', 'V', 'v':
			argc = 1
		case 'M', 'm', 'L', 'l', 'T', 't':
			argc = 2
		case 'S', 's', 'Q', 'q':
			argc = 4
		case 'C', 'c':
			argc = 6
		case 'A', 'a':
			argc = 7
		default:
			i += resyncPath(path[i:])
			prevCmd = 0
			continue
		}
		ok := true
		for j := 0; j < argc; j++ {
			var n int
			nums[j], n, ok = parseNum(path[i:])
			if !ok {
				break
			}
			i += n
		}
		if !ok {
			i += resyncPath(path[i:])
			prevCmd = 0
			continue
		}

		switch cmd {
		case 'M', 'm':
			if cmd == 'm' {
				nums[0] += x
				nums[1] += y
			}
			x, y = nums[0], nums[1]
			x0, y0 = x, y
			points = append(points, Point{x, y})
			// subsequent implicit arguments are lines
			if cmd == 'm' {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'Z', 'z':
			x, y = x0, y0
			points = append(points, Point{x, y})
			cmd = 0
		case 'L', 'l':
			if cmd == 'l' {
				nums[0] += x
				nums[1] += y
			}
			x, y = nums[0], nums[1]
			points = append(points, Point{x, y})
		case 'H', 'h':
			if cmd == 'h' {
				nums[0] += x
			}
			x = nums[0]
			points = append(points, Point{x, y})
		case 'V', 'v':
			if cmd == 'v' {
				nums[0] += y
			}
			y = nums[0]
			points = append(points, Point{x, y})
		case 'C', 'c':
			if cmd == 'c' {
				nums[0] += x
				nums[1] += y
				nums[2] += x
				nums[3] += y
				nums[4] += x
				nums[5] += y
			}
			points = append(points, Point{nums[0], nums[1]}, Point{nums[2], nums[3]}, Point{nums[4], nums[5]})
			x, y = nums[4], nums[5]
		case 'S', 's', 'Q', 'q':
			if cmd == 's' || cmd == 'q' {
				nums[0] += x
				nums[1] += y
				nums[2] += x
				nums[3] += y
			}
			points = append(points, Point{nums[0], nums[1]}, Point{nums[2], nums[3]})
			x, y = nums[2], nums[3]
		case 'T', 't':
			if cmd == 't' {
				nums[0] += x
				nums[1] += y
			}
			x, y = nums[0], nums[1]
			points = append(points, Point{x, y})
		case 'A', 'a':
			// endpoint only, the arc's extrema are not computed
			if cmd == 'a' {
				nums[5] += x
				nums[6] += y
			}
			x, y = nums[5], nums[6]
			points = append(points, Point{x, y})
		}
		prevCmd = cmd
	}
	return points
}
