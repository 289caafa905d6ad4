package fetcher

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// toRGB flattens any decoded image (palette, grayscale, alpha) to
// non-premultiplied RGBA with the alpha channel forced opaque. NRGBA
// stores color unpremultiplied, so this is exactly "drop the alpha".
func toRGB(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

// scaledSize returns the dimensions after scaling so the shorter edge
// equals size. Rounding is half away from zero (math.Round).
func scaledSize(w, h, size int) (int, int) {
	scale := float64(size) / float64(min(w, h))
	return int(math.Round(float64(w) * scale)), int(math.Round(float64(h) * scale))
}

// cropRect returns the centered size×size crop box inside a w×h image.
// Landscape and square images are cropped horizontally, portrait ones
// vertically; the other axis keeps offset 0.
func cropRect(w, h, size int) image.Rectangle {
	if w >= h {
		left := (w - size) / 2
		return image.Rect(left, 0, left+size, size)
	}
	top := (h - size) / 2
	return image.Rect(0, top, size, top+size)
}

// squareCrop resizes img so its shorter edge equals size, then crops the
// centered size×size square.
func squareCrop(img image.Image, size int) *image.NRGBA {
	b := img.Bounds()
	newW, newH := scaledSize(b.Dx(), b.Dy(), size)
	resized := imaging.Resize(img, newW, newH, imaging.Lanczos)
	return imaging.Crop(resized, cropRect(newW, newH, size))
}
