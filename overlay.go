package floorplan

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/minify/v2"
	minifysvg "github.com/tdewolff/minify/v2/svg"
)

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// WriteOverlay writes the render states as a standalone SVG overlay of
// percent-positioned rectangles, making the render contract inspectable
// without a browser host. With minified set, the output runs through the
// SVG minifier.
func WriteOverlay(w io.Writer, states []RenderState, minified bool) error {
	var buf bytes.Buffer
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="100%">` + "\n")
	for _, state := range states {
		fill := state.Color
		if fill == "" {
			fill = "none"
		}
		fmt.Fprintf(&buf, `  <rect id="%s" x="%g%%" y="%g%%" width="%g%%" height="%g%%" fill="%s"`,
			xmlEscaper.Replace(state.ShapeID), state.Rect.X, state.Rect.Y, state.Rect.W, state.Rect.H, xmlEscaper.Replace(fill))
		if state.Disabled {
			buf.WriteString(` pointer-events="none"`)
		}
		if state.Label != "" {
			fmt.Fprintf(&buf, `><title>%s</title></rect>`, xmlEscaper.Replace(state.Label))
			buf.WriteByte('\n')
		} else {
			buf.WriteString("/>\n")
		}
	}
	buf.WriteString("</svg>\n")

	if !minified {
		_, err := w.Write(buf.Bytes())
		return err
	}
	m := minify.New()
	m.AddFunc("image/svg+xml", minifysvg.Minify)
	return m.Minify("image/svg+xml", w, &buf)
}
