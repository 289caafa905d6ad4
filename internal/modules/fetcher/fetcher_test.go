package fetcher

import (
	"bytes"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func serveImage(t *testing.T, w, h int) *httptest.Server {
	t.Helper()
	body := pngBytes(t, w, h)
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func savedDims(t *testing.T, path string) (int, int) {
	t.Helper()
	img, err := imaging.Open(path)
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestDownloadLandscape(t *testing.T) {
	srv := serveImage(t, 800, 600)
	dst := filepath.Join(t.TempDir(), "a", "b", "out.jpg")

	require.True(t, New(512).Download(srv.URL+"/img.png", dst))
	w, h := savedDims(t, dst)
	require.Equal(t, 512, w)
	require.Equal(t, 512, h)
}

func TestDownloadPortrait(t *testing.T) {
	srv := serveImage(t, 400, 600)
	dst := filepath.Join(t.TempDir(), "out.png")

	require.True(t, New(512).Download(srv.URL+"/img.png", dst))
	w, h := savedDims(t, dst)
	require.Equal(t, 512, w)
	require.Equal(t, 512, h)
}

func TestDownloadResizeDisabled(t *testing.T) {
	srv := serveImage(t, 800, 600)
	dst := filepath.Join(t.TempDir(), "out.jpg")

	require.True(t, New(-1).Download(srv.URL+"/img.png", dst))
	w, h := savedDims(t, dst)
	require.Equal(t, 800, w)
	require.Equal(t, 600, h)
}

func TestDownloadIdempotent(t *testing.T) {
	srv := serveImage(t, 640, 480)
	dst := filepath.Join(t.TempDir(), "out.jpg")
	f := New(256)

	require.True(t, f.Download(srv.URL+"/img.png", dst))
	first, err := os.ReadFile(dst)
	require.NoError(t, err)

	require.True(t, f.Download(srv.URL+"/img.png", dst))
	second, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDownloadStatusNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		http.NotFound(rw, r)
	}))
	t.Cleanup(srv.Close)
	dst := filepath.Join(t.TempDir(), "out.jpg")

	require.False(t, New(512).Download(srv.URL+"/img.png", dst))
	_, err := os.Stat(dst)
	require.True(t, os.IsNotExist(err))
}

func TestDownloadDeadLinkSentinel(t *testing.T) {
	body := pngBytes(t, 100, 100)
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/removed.png" {
			rw.Write(body)
			return
		}
		// the host answers 200 for deleted images, via a redirect to
		// the placeholder
		http.Redirect(rw, r, "/removed.png", http.StatusFound)
	}))
	t.Cleanup(srv.Close)
	dst := filepath.Join(t.TempDir(), "out.jpg")

	require.False(t, New(512).Download(srv.URL+"/deleted.jpg", dst))
	_, err := os.Stat(dst)
	require.True(t, os.IsNotExist(err))
}

func TestDownloadCorruptBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.Write([]byte("this is not an image"))
	}))
	t.Cleanup(srv.Close)
	dst := filepath.Join(t.TempDir(), "out.jpg")

	require.False(t, New(512).Download(srv.URL+"/img.png", dst))
	_, err := os.Stat(dst)
	require.True(t, os.IsNotExist(err))
}

func TestDownloadUnknownExtension(t *testing.T) {
	srv := serveImage(t, 100, 100)
	dst := filepath.Join(t.TempDir(), "out.xyz")

	require.False(t, New(512).Download(srv.URL+"/img.png", dst))
	_, err := os.Stat(dst)
	require.True(t, os.IsNotExist(err))
}

func TestDownloadTransportError(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.jpg")
	require.False(t, New(512).Download("http://127.0.0.1:1/img.png", dst))
}

func TestFetchUserAgent(t *testing.T) {
	var gotUA string
	body := pngBytes(t, 100, 100)
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		rw.Write(body)
	}))
	t.Cleanup(srv.Close)
	dst := filepath.Join(t.TempDir(), "out.jpg")

	f := New(-1, WithUserAgent("fetch-hub/1.0"))
	require.NoError(t, f.Fetch(srv.URL+"/img.png", dst))
	require.Equal(t, "fetch-hub/1.0", gotUA)
}
