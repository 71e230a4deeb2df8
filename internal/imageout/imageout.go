// Package imageout writes rendered figures in the formats the tool supports.
package imageout

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
)

// Format is an output image encoding.
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
	TGA  Format = "tga"
)

var ErrUnknownFormat = errors.New("imageout: unknown image format")

// FormatFromPath picks the encoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch Format(ext) {
	case PNG, WebP, TGA:
		return Format(ext), nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", path)
}

// Encode writes img to w. WebP output is lossless.
func Encode(w io.Writer, f Format, img image.Image) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case TGA:
		err = tga.Encode(w, img)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", f)
	}
	return errors.Wrapf(err, "imageout: encode %s", f)
}

// Save creates parent directories and writes img to path.
func Save(path string, img image.Image) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "imageout")
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "imageout")
	}
	if err := Encode(out, f, img); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return errors.Wrap(out.Close(), "imageout")
}
