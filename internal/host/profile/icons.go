package profile

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
)

// iconsDir holds icons named after their package
const iconsDir = "icons"

// ColorDrawable is a solid color icon of fixed intrinsic size
type ColorDrawable struct {
	Width  int
	Height int
	Color  string // #rrggbb or #rrggbbaa
}

func (d ColorDrawable) IntrinsicWidth() int  { return d.Width }
func (d ColorDrawable) IntrinsicHeight() int { return d.Height }

// Draw fills dst with the drawable's color
func (d ColorDrawable) Draw(dst draw.Image) error {
	c, err := parseHexColor(d.Color)
	if err != nil {
		return err
	}
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return nil
}

// RawIcon is an icon file that cannot be rasterized here, such as SVG
type RawIcon struct {
	MIME string
	Data []byte
}

func parseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// indexIcons maps package names to files under root/icons.
// When two files share a package name the lexically smaller path wins.
func indexIcons(root string) (map[string]string, error) {
	dir := filepath.Join(root, iconsDir)
	index := make(map[string]string)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return index, nil
	}

	var mu sync.Mutex
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		pkg := strings.TrimSuffix(name, filepath.Ext(name))

		mu.Lock()
		defer mu.Unlock()
		if prev, ok := index[pkg]; !ok || path < prev {
			index[pkg] = path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index icons: %w", err)
	}
	return index, nil
}

// loadIcon decodes raster formats into bitmaps; anything else is returned raw
func loadIcon(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read icon: %w", err)
	}

	mtype := mimetype.Detect(data)

	var decode func([]byte) (image.Image, error)
	switch {
	case mtype.Is("image/png"):
		decode = decodeWith(png.Decode)
	case mtype.Is("image/jpeg"):
		decode = decodeWith(jpeg.Decode)
	case mtype.Is("image/gif"):
		decode = decodeWith(gif.Decode)
	default:
		return RawIcon{MIME: mtype.String(), Data: data}, nil
	}

	img, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s icon %s: %w", mtype.String(), path, err)
	}
	return img, nil
}

func decodeWith(fn func(io.Reader) (image.Image, error)) func([]byte) (image.Image, error) {
	return func(data []byte) (image.Image, error) {
		return fn(bytes.NewReader(data))
	}
}
