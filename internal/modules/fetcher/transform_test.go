package fetcher

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func TestScaledSize(t *testing.T) {
	// landscape: shorter edge 600 scaled to 512
	w, h := scaledSize(800, 600, 512)
	require.Equal(t, 683, w)
	require.Equal(t, 512, h)

	// portrait: shorter edge 400 scaled to 512
	w, h = scaledSize(400, 600, 512)
	require.Equal(t, 512, w)
	require.Equal(t, 768, h)

	// square, upscaled
	w, h = scaledSize(300, 300, 512)
	require.Equal(t, 512, w)
	require.Equal(t, 512, h)
}

func TestCropRect(t *testing.T) {
	// landscape: horizontal crop only
	require.Equal(t, image.Rect(85, 0, 597, 512), cropRect(683, 512, 512))
	// portrait: vertical crop only
	require.Equal(t, image.Rect(0, 128, 512, 640), cropRect(512, 768, 512))
	// square: landscape branch, no-op crop
	require.Equal(t, image.Rect(0, 0, 512, 512), cropRect(512, 512, 512))
	// exact width: portrait branch, horizontal axis untouched
	require.Equal(t, image.Rect(0, 44, 512, 556), cropRect(512, 600, 512))
	// exact height: landscape branch, vertical axis untouched
	require.Equal(t, image.Rect(44, 0, 556, 512), cropRect(600, 512, 512))
}

func TestSquareCrop(t *testing.T) {
	cases := []struct {
		name string
		w, h int
		size int
	}{
		{"landscape", 800, 600, 512},
		{"portrait", 400, 600, 512},
		{"square", 512, 512, 512},
		{"upscale", 100, 50, 64},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := imaging.New(c.w, c.h, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
			out := squareCrop(src, c.size)
			require.Equal(t, c.size, out.Bounds().Dx())
			require.Equal(t, c.size, out.Bounds().Dy())
		})
	}
}

func TestToRGB(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 40})
	src.SetNRGBA(1, 0, color.NRGBA{R: 50, G: 60, B: 70, A: 0})

	out := toRGB(src)
	require.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, out.NRGBAAt(0, 0))
	require.Equal(t, color.NRGBA{R: 50, G: 60, B: 70, A: 255}, out.NRGBAAt(1, 0))
}
