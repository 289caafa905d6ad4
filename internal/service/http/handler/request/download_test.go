package request

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDownloadValid(t *testing.T) {
	d := Download{}
	require.Error(t, d.Valid())

	d.URL = "ftp://example.com/a.png"
	require.Error(t, d.Valid())

	d.URL = "not a url"
	require.Error(t, d.Valid())

	d.URL = "https://example.com/a.png"
	require.NoError(t, d.Valid())
}

func TestDownloadFullWithDefault(t *testing.T) {
	d := Download{URL: "https://example.com/a.png"}
	d.FullWithDefault("/tmp/images", 512)

	require.True(t, strings.HasPrefix(d.Path, filepath.Join("/tmp/images")+string(filepath.Separator)))
	require.Equal(t, ".jpg", filepath.Ext(d.Path))
	require.NotNil(t, d.TargetSize)
	require.Equal(t, 512, *d.TargetSize)
}

func TestDownloadFullWithDefaultKeepsExplicit(t *testing.T) {
	size := -1
	d := Download{URL: "https://example.com/a.png", Path: "/data/out.png", TargetSize: &size}
	d.FullWithDefault("/tmp/images", 512)

	require.Equal(t, "/data/out.png", d.Path)
	require.Equal(t, -1, *d.TargetSize)
}
