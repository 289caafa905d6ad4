package fetcher

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/reusedev/fetch-hub/internal/consts"
	"github.com/reusedev/fetch-hub/internal/modules/http_client"
	"github.com/reusedev/fetch-hub/internal/modules/logs"
	"github.com/reusedev/fetch-hub/internal/modules/storage/local"

	_ "golang.org/x/image/webp" // decode support for webp sources
)

// Fetcher downloads an image from a URL and saves it on disk, optionally
// resizing the shorter edge to targetSize and center-cropping the longer
// edge to the same size. It holds no mutable state, so one instance may
// be shared by concurrent callers writing to different paths.
type Fetcher struct {
	targetSize int
	userAgent  string
	client     *http_client.HttpClient
}

type Option func(f *Fetcher)

func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client = http_client.New(http_client.WithTimeout(d))
	}
}

func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// New creates a Fetcher. targetSize <= 0 disables all resizing and is a
// legitimate setting, not an error.
func New(targetSize int, option ...Option) *Fetcher {
	f := &Fetcher{
		targetSize: targetSize,
		client:     http_client.New(),
	}
	for _, opt := range option {
		opt(f)
	}
	return f
}

// Download fetches the image at url and writes it to saveTo. Every
// failure mode collapses to false so one bad URL never aborts a batch;
// the step that failed is logged.
func (f *Fetcher) Download(url, saveTo string) bool {
	if err := f.Fetch(url, saveTo); err != nil {
		logs.Logger.Warn().Err(err).Str("url", url).Str("save_to", saveTo).Msg("image download failed")
		return false
	}
	return true
}

// Fetch is Download with the failing step reported. The encoded format
// is chosen from saveTo's extension.
func (f *Fetcher) Fetch(url, saveTo string) error {
	var reqOptions []http_client.RequestOption
	if f.userAgent != "" {
		reqOptions = append(reqOptions, http_client.WithHeader("User-Agent", f.userAgent))
	}
	req, err := f.client.NewRequest(http.MethodGet, url, reqOptions...)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status code: %d", resp.StatusCode)
	}
	// The client has followed redirects by now, so resp.Request.URL is
	// the resolved URL. Hosts serving a removal placeholder answer 200
	// there and only the URL exposes it.
	if strings.Contains(resp.Request.URL.String(), consts.DeadLinkSentinel) {
		return fmt.Errorf("dead link: resolved to %s", resp.Request.URL)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	rgb := toRGB(img)
	if f.targetSize > 0 {
		rgb = squareCrop(rgb, f.targetSize)
	}

	format, err := imaging.FormatFromFilename(saveTo)
	if err != nil {
		return fmt.Errorf("target format: %w", err)
	}
	// Encode fully in memory before touching the filesystem so a codec
	// error never leaves a partial file at saveTo.
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, rgb, format); err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	if err := local.SaveFile(&buf, saveTo); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}
