package atlas

import (
	"image"
	"image/color"
	"io"

	"golang.org/x/image/bmp"
)

// WritePreviewBMP tone-maps a page's linear float accumulator down to an
// 8-bit-per-channel BMP for quick visual inspection, the same BMP path
// the teacher's asset tools use for texture preview (golang.org/x/image/bmp),
// just run in the encode direction instead of decode.
func WritePreviewBMP(pg *Page, w io.Writer) error {
	img := image.NewNRGBA(image.Rect(0, 0, pg.Width, pg.Height))
	for y := 0; y < pg.Height; y++ {
		for x := 0; x < pg.Width; x++ {
			idx := (y*pg.Width + x) * 3
			img.SetNRGBA(x, y, color.NRGBA{
				R: tonemap(pg.Pixels[idx+0]),
				G: tonemap(pg.Pixels[idx+1]),
				B: tonemap(pg.Pixels[idx+2]),
				A: 255,
			})
		}
	}
	return bmp.Encode(w, img)
}

// tonemap applies a simple Reinhard operator before quantizing to 8 bits,
// since the accumulated values are unbounded HDR.
func tonemap(v float32) uint8 {
	if v < 0 {
		v = 0
	}
	mapped := v / (1 + v)
	q := int(mapped*255 + 0.5)
	if q > 255 {
		q = 255
	}
	return uint8(q)
}
