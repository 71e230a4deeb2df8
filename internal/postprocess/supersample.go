package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales a premultiplied RGBA render to size×size with
// CatmullRom filtering and returns it unpremultiplied. Filtering in
// premultiplied space keeps transparent edges free of dark halos.
func Downsample(img *image.RGBA, size int) *image.NRGBA {
	b := img.Bounds()
	src := img
	if b.Dx() > size || b.Dy() > size {
		src = image.NewRGBA(image.Rect(0, 0, size, size))
		draw.CatmullRom.Scale(src, src.Bounds(), img, b, draw.Src, nil)
	}
	return Unpremultiply(src)
}

// Unpremultiply converts premultiplied RGBA to straight-alpha NRGBA.
func Unpremultiply(src *image.RGBA) *image.NRGBA {
	b := src.Bounds()
	result := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := src.PixOffset(x, y)
			di := result.PixOffset(x, y)
			a := float64(src.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				result.Pix[di] = clamp8(float64(src.Pix[si]) * inv)
				result.Pix[di+1] = clamp8(float64(src.Pix[si+1]) * inv)
				result.Pix[di+2] = clamp8(float64(src.Pix[si+2]) * inv)
			}
			result.Pix[di+3] = src.Pix[si+3]
		}
	}
	return result
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
