// Package icon converts host icon resources into base64 PNG strings.
package icon

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"

	"github.com/GriffinCanCode/hostbridge/internal/host"
	"github.com/GriffinCanCode/hostbridge/internal/shared/types"
)

// Encode rasterizes resource and returns it as single-line base64 PNG
func Encode(resource interface{}) (string, error) {
	img, err := Rasterize(resource)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", types.WrapError(types.KindEncoding, err, "png encoding failed")
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Rasterize normalizes resource into a bitmap.
// Bitmaps are returned as-is; drawables are rendered at their intrinsic size.
func Rasterize(resource interface{}) (image.Image, error) {
	switch r := resource.(type) {
	case nil:
		return nil, types.NewError(types.KindEncoding, "no icon resource")
	case image.Image:
		if r.Bounds().Empty() {
			return nil, types.NewError(types.KindEncoding, "icon bitmap is empty")
		}
		return r, nil
	case host.Drawable:
		w, h := r.IntrinsicWidth(), r.IntrinsicHeight()
		if w <= 0 || h <= 0 {
			return nil, types.NewError(types.KindEncoding, "drawable has no intrinsic size (%dx%d)", w, h)
		}
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		if err := r.Draw(dst); err != nil {
			return nil, types.WrapError(types.KindEncoding, err, "drawable could not be rendered")
		}
		return dst, nil
	default:
		return nil, types.NewError(types.KindEncoding, "unsupported icon resource %T", resource)
	}
}
