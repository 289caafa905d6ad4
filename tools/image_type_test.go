package tools

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectImageType(t *testing.T) {
	require.Equal(t, ImageTypeJPEG, DetectImageType([]byte{0xFF, 0xD8, 0xFF, 0xE0}))
	require.Equal(t, ImageTypePNG, DetectImageType([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00}))
	require.Equal(t, ImageTypeGIF, DetectImageType([]byte("GIF89a........")))
	require.Equal(t, ImageTypeWEBP, DetectImageType([]byte("RIFF\x00\x00\x00\x00WEBPVP8 ")))
	require.Equal(t, ImageTypeBMP, DetectImageType([]byte("BM\x00\x00")))
	require.Equal(t, ImageTypeUnknown, DetectImageType([]byte("not an image")))
	require.Equal(t, ImageTypeUnknown, DetectImageType(nil))
}
