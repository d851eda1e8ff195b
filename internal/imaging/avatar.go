package imaging

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	MaxAvatarSide = 512
	AvatarQuality = 80
	ContentType   = "image/webp"

	// MaxSourcePixels bounds the decoded size of an upload, whatever its
	// byte size on the wire.
	MaxSourcePixels = 40_000_000
)

var ErrUnsupportedImage = errors.New("unsupported image")

// Avatar decodes any supported image, fits it inside a MaxAvatarSide square
// keeping the aspect ratio, and re-encodes it as lossy webp.
func Avatar(r io.Reader) ([]byte, error) {
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, ErrUnsupportedImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 ||
		int64(cfg.Width)*int64(cfg.Height) > MaxSourcePixels {
		return nil, ErrUnsupportedImage
	}

	src, _, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	dst := fit(src, MaxAvatarSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: AvatarQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fit(src image.Image, max int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return src
	}

	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
