package tools

import "bytes"

type ImageType string

const (
	ImageTypeJPEG    ImageType = "jpeg"
	ImageTypePNG     ImageType = "png"
	ImageTypeGIF     ImageType = "gif"
	ImageTypeWEBP    ImageType = "webp"
	ImageTypeBMP     ImageType = "bmp"
	ImageTypeUnknown ImageType = "unknown"
)

func (t ImageType) String() string {
	return string(t)
}

// DetectImageType sniffs the image format from magic bytes.
func DetectImageType(b []byte) ImageType {
	switch {
	case bytes.HasPrefix(b, []byte{0xFF, 0xD8, 0xFF}):
		return ImageTypeJPEG
	case bytes.HasPrefix(b, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return ImageTypePNG
	case bytes.HasPrefix(b, []byte("GIF87a")) || bytes.HasPrefix(b, []byte("GIF89a")):
		return ImageTypeGIF
	case len(b) >= 12 && bytes.Equal(b[0:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP")):
		return ImageTypeWEBP
	case bytes.HasPrefix(b, []byte("BM")):
		return ImageTypeBMP
	default:
		return ImageTypeUnknown
	}
}
