package report

import (
	"image"
	"os"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// fontPaths are the usual homes of a CJK font.
var fontPaths = []string{
	// macOS
	"/System/Library/Fonts/STHeiti Light.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/AppleSDGothicNeo.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	// Windows
	"C:\\Windows\\Fonts\\malgun.ttf",
	"C:\\Windows\\Fonts\\msyh.ttc",
}

var (
	faceOnce sync.Once
	face     font.Face

	bannerMu    sync.Mutex
	bannerCache = make(map[bannerKey]string)
)

type bannerKey struct {
	r          rune
	cols, rows int
}

func loadFace() font.Face {
	faceOnce.Do(func() {
		for _, path := range fontPaths {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if f := parseFace(data); f != nil {
				face = f
				return
			}
		}
	})
	return face
}

func parseFace(data []byte) font.Face {
	opts := &opentype.FaceOptions{Size: 64, DPI: 72}

	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			if f, err := opentype.NewFace(fnt, opts); err == nil {
				return f
			}
		}
	}
	if fnt, err := opentype.Parse(data); err == nil {
		if f, err := opentype.NewFace(fnt, opts); err == nil {
			return f
		}
	}
	return nil
}

// BannerAvailable reports whether a CJK font was found.
func BannerAvailable() bool { return loadFace() != nil }

// Banner draws the first rune of s as half-block art of cols x rows cells.
// It returns "" when no CJK font is installed.
func Banner(s string, cols, rows int) string {
	f := loadFace()
	if s == "" || f == nil || cols < 1 || rows < 1 {
		return ""
	}
	key := bannerKey{[]rune(s)[0], cols, rows}

	bannerMu.Lock()
	defer bannerMu.Unlock()
	if out, ok := bannerCache[key]; ok {
		return out
	}
	out := renderBlock(f, key.r, cols, rows)
	bannerCache[key] = out
	return out
}

func renderBlock(f font.Face, r rune, cols, rows int) string {
	bounds, _, ok := f.GlyphBounds(r)
	if !ok {
		return ""
	}
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()

	// A square canvas keeps the glyph's proportions after scaling.
	const margin = 4
	side := max(w, h, 64) + 2*margin
	canvas := image.NewGray(image.Rect(0, 0, side, side))

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.White,
		Face: f,
		Dot: fixed.Point26_6{
			X: fixed.I((side-w)/2) - bounds.Min.X,
			Y: fixed.I((side-h)/2) - bounds.Min.Y,
		},
	}
	d.DrawString(string(r))

	return halfBlocks(shrink(canvas, cols, rows*2), cols, rows)
}

// shrink resamples src to w x h pixels.
func shrink(src *image.Gray, w, h int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

const brightness = 40

// halfBlocks turns every two vertical pixels into one cell.
func halfBlocks(img *image.Gray, cols, rows int) string {
	on := func(x, y int) bool {
		b := img.Bounds().Max
		return x >= 0 && y >= 0 && x < b.X && y < b.Y && img.GrayAt(x, y).Y > brightness
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top, bottom := on(col, row*2), on(col, row*2+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		if row < rows-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
