// Package bigchar renders a single character as large half-block art for the
// detail view.
package bigchar

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// glyphSize is the point size glyphs are rasterized at before scaling down.
const glyphSize = 64

// threshold is the gray level above which a half cell counts as inked.
const threshold = 40

// SystemFonts are CJK fonts tried when no font is configured.
var SystemFonts = []string{
	// macOS
	"/System/Library/Fonts/STHeiti Light.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/Hiragino Sans GB.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	// Windows
	"C:\\Windows\\Fonts\\msyh.ttc",
	"C:\\Windows\\Fonts\\simsun.ttc",
}

// Renderer draws glyphs from one font face and caches the results. Safe
// for concurrent use.
type Renderer struct {
	mu    sync.Mutex
	face  font.Face
	cache map[cacheKey]string
}

type cacheKey struct {
	char       string
	cols, rows int
}

// New loads the font at path, or the first usable system font when path is
// empty or unreadable. The renderer is still usable without a font; it
// just renders nothing.
func New(path string) *Renderer {
	paths := SystemFonts
	if path != "" {
		paths = append([]string{path}, SystemFonts...)
	}

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if face, err := ParseFace(data); err == nil {
			return NewWithFace(face)
		}
	}
	return NewWithFace(nil)
}

// NewWithFace creates a renderer over face.
func NewWithFace(face font.Face) *Renderer {
	return &Renderer{face: face, cache: make(map[cacheKey]string)}
}

// ParseFace parses font data. Collections (.ttc) and OpenType fonts go
// through opentype; plain TrueType files it rejects fall back to freetype.
func ParseFace(data []byte) (font.Face, error) {
	opts := &opentype.FaceOptions{Size: glyphSize, DPI: 72}

	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			if face, err := opentype.NewFace(fnt, opts); err == nil {
				return face, nil
			}
		}
	}

	if fnt, err := opentype.Parse(data); err == nil {
		if face, err := opentype.NewFace(fnt, opts); err == nil {
			return face, nil
		}
	}

	fnt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return truetype.NewFace(fnt, &truetype.Options{Size: glyphSize, DPI: 72}), nil
}

// Available reports whether a font was loaded.
func (r *Renderer) Available() bool {
	return r != nil && r.face != nil
}

// Render returns char as cols×rows cells of half-block art, or "" when no
// font is loaded or the font lacks the glyph.
func (r *Renderer) Render(char string, cols, rows int) string {
	if !r.Available() || char == "" || cols <= 0 || rows <= 0 {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := cacheKey{char: char, cols: cols, rows: rows}
	if out, ok := r.cache[key]; ok {
		return out
	}
	out, err := r.render(char, cols, rows)
	if err != nil {
		out = ""
	}
	r.cache[key] = out
	return out
}

var errNoGlyph = errors.New("glyph not in font")

func (r *Renderer) render(char string, cols, rows int) (string, error) {
	ch := []rune(char)[0]
	bounds, _, ok := r.face.GlyphBounds(ch)
	if !ok {
		return "", errNoGlyph
	}
	glyphWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	padding := 4
	srcWidth := max(glyphWidth+padding*2, glyphSize)
	srcHeight := max(glyphHeight+padding*2, glyphSize)

	src := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	x := (srcWidth-glyphWidth)/2 - bounds.Min.X.Floor()
	y := srcHeight - padding - bounds.Max.Y.Ceil()

	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(string(ch))

	// Two vertical pixels per cell.
	scaled := scaleDown(src, cols, rows*2)
	return halfBlocks(scaled, cols, rows), nil
}

// scaleDown shrinks src by area averaging.
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth := src.Bounds().Max.X
	srcHeight := src.Bounds().Max.Y
	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1 := int(float64(dx) * xRatio)
			sy1 := int(float64(dy) * yRatio)
			sx2 := min(int(float64(dx+1)*xRatio), srcWidth)
			sy2 := min(int(float64(dy+1)*yRatio), srcHeight)

			var sum, count int
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}
	return dst
}

func halfBlocks(img *image.Gray, cols, rows int) string {
	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := brightness(img, col, row*2) > threshold
			bottom := brightness(img, col, row*2+1) > threshold

			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return 0
	}
	return img.GrayAt(x, y).Y
}
