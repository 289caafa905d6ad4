package request

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"
)

type Download struct {
	URL string `form:"url" json:"url"` // 图片 URL
	// Path is the local destination. Empty means a uuid-named jpg under
	// the configured save_dir.
	Path string `form:"path" json:"path"`
	// TargetSize overrides the configured crop size for this request.
	// Absent means the configured default; zero or negative disables
	// resizing.
	TargetSize *int `form:"target_size" json:"target_size"`
}

func (d *Download) Valid() error {
	if d.URL == "" {
		return fmt.Errorf("must fill url")
	}
	u, err := url.Parse(d.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid url: %s", d.URL)
	}
	return nil
}

func (d *Download) FullWithDefault(saveDir string, targetSize int) {
	if d.Path == "" {
		d.Path = filepath.Join(saveDir, uuid.New().String()+".jpg")
	}
	if d.TargetSize == nil {
		d.TargetSize = &targetSize
	}
}

type GetDownload struct {
	ID int `form:"id"` // 下载记录 ID
}

func (g *GetDownload) Valid() error {
	if g.ID <= 0 {
		return fmt.Errorf("invalid ID: %d, must be greater than 0", g.ID)
	}
	return nil
}

type DeleteDownload struct {
	ID int `form:"id"` // 下载记录 ID
}

func (d *DeleteDownload) Valid() error {
	if d.ID <= 0 {
		return fmt.Errorf("invalid ID: %d, must be greater than 0", d.ID)
	}
	return nil
}
