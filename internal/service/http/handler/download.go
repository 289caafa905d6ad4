package handler

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/fetch-hub/config"
	"github.com/reusedev/fetch-hub/internal/consts"
	"github.com/reusedev/fetch-hub/internal/modules/cache"
	"github.com/reusedev/fetch-hub/internal/modules/dao"
	"github.com/reusedev/fetch-hub/internal/modules/fetcher"
	"github.com/reusedev/fetch-hub/internal/modules/logs"
	"github.com/reusedev/fetch-hub/internal/modules/model"
	"github.com/reusedev/fetch-hub/internal/modules/queue"
	"github.com/reusedev/fetch-hub/internal/modules/storage/ali"
	"github.com/reusedev/fetch-hub/internal/modules/storage/local"
	"github.com/reusedev/fetch-hub/internal/service/http/handler/request"
	"github.com/reusedev/fetch-hub/internal/service/http/response"
	"github.com/reusedev/fetch-hub/tools"
	"gorm.io/gorm"
)

const deadURLExpire = 30 * time.Minute

var fetcherOptions []fetcher.Option

// Init builds the fetcher options shared by every download from the
// global config. Call after config.Init.
func Init() {
	cfg := config.GConfig
	fetcherOptions = nil
	if d := cfg.Fetcher.FetchTimeout(); d > 0 {
		fetcherOptions = append(fetcherOptions, fetcher.WithTimeout(d))
	}
	if cfg.Fetcher.UserAgent != "" {
		fetcherOptions = append(fetcherOptions, fetcher.WithUserAgent(cfg.Fetcher.UserAgent))
	}
}

func fetcherFor(targetSize int) *fetcher.Fetcher {
	return fetcher.New(targetSize, fetcherOptions...)
}

func SyncDownload(c *gin.Context) {
	form := request.Download{}
	err := c.ShouldBind(&form)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}
	form.FullWithDefault(config.GConfig.Fetcher.SaveDir, config.GConfig.Fetcher.TargetSize)

	if reason, _ := cache.DeadURLCacheManager().GetValue(form.URL); reason != "" {
		c.JSON(http.StatusOK, response.SuccessWithData(gin.H{"success": false, "path": ""}))
		return
	}

	fetchErr := fetcherFor(*form.TargetSize).Fetch(form.URL, form.Path)
	if fetchErr != nil {
		logs.Logger.Warn().Err(fetchErr).Str("url", form.URL).Msg("sync download failed")
		cache.DeadURLCacheManager().SetWithExpiration(form.URL, fetchErr.Error(), deadURLExpire)
	}
	record := model.Download{
		URL:          form.URL,
		Path:         form.Path,
		TargetSize:   *form.TargetSize,
		Status:       model.DownloadStatusSucceed.String(),
		FailedReason: "",
	}
	if fetchErr != nil {
		record.Status = model.DownloadStatusFailed.String()
		record.FailedReason = fetchErr.Error()
	}
	if err := dao.CreateDownload(&record); err != nil {
		logs.Logger.Err(err).Msg("create download record failed")
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithData(gin.H{
		"id":      record.Id,
		"success": fetchErr == nil,
		"path":    record.Path,
	}))
}

func AsyncDownload(c *gin.Context) {
	form := request.Download{}
	err := c.ShouldBind(&form)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}
	form.FullWithDefault(config.GConfig.Fetcher.SaveDir, config.GConfig.Fetcher.TargetSize)

	record := model.Download{
		URL:        form.URL,
		Path:       form.Path,
		TargetSize: *form.TargetSize,
		Status:     model.DownloadStatusPending.String(),
	}
	if reason, _ := cache.DeadURLCacheManager().GetValue(form.URL); reason != "" {
		record.Status = model.DownloadStatusFailed.String()
		record.FailedReason = reason
	}
	if err := dao.CreateDownload(&record); err != nil {
		logs.Logger.Err(err).Msg("create download record failed")
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	if record.Status == model.DownloadStatusPending.String() {
		queue.FetchTaskQueue <- &fetchTask{record: record}
	}
	c.JSON(http.StatusOK, response.SuccessWithData(record))
}

func DownloadQuery(c *gin.Context) {
	form := request.GetDownload{}
	err := c.ShouldBind(&form)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}
	record, err := dao.DownloadById(form.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.ParamErrorWithMessage("download not found"))
			return
		}
		logs.Logger.Err(err).Msg("query download record failed")
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithData(record))
}

// DownloadDelete purges a record and its local file. A missing file is
// tolerated so failed downloads can be purged too.
func DownloadDelete(c *gin.Context) {
	form := request.DeleteDownload{}
	err := c.ShouldBind(&form)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}
	record, err := dao.DownloadById(form.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.ParamErrorWithMessage("download not found"))
			return
		}
		logs.Logger.Err(err).Msg("query download record failed")
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	if err := local.DeleteFile(record.Path); err != nil && !os.IsNotExist(err) {
		logs.Logger.Warn().Err(err).Str("path", record.Path).Msg("delete local file failed")
	}
	if err := dao.DeleteDownload(form.ID); err != nil {
		logs.Logger.Err(err).Msg("delete download record failed")
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithData(gin.H{"id": form.ID}))
}

// EnqueueUnfinishedDownloads re-enqueues records left pending or running
// by an unclean shutdown.
func EnqueueUnfinishedDownloads() {
	downloads, err := dao.UnfinishedDownloads()
	if err != nil {
		logs.Logger.Err(err).Msg("query unfinished downloads failed")
		return
	}
	for _, d := range downloads {
		queue.FetchTaskQueue <- &fetchTask{record: d}
	}
	if len(downloads) > 0 {
		logs.Logger.Info().Int("count", len(downloads)).Msg("re-enqueued unfinished downloads")
	}
}

type fetchTask struct {
	record model.Download
}

func (t *fetchTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		// shutting down, leave the record for the next start
		return nil
	default:
	}
	_ = dao.UpdateDownload(t.record.Id, map[string]interface{}{
		"status": model.DownloadStatusRunning.String(),
	})
	err := fetcherFor(t.record.TargetSize).Fetch(t.record.URL, t.record.Path)
	if err != nil {
		cache.DeadURLCacheManager().SetWithExpiration(t.record.URL, err.Error(), deadURLExpire)
		return dao.UpdateDownload(t.record.Id, map[string]interface{}{
			"status":        model.DownloadStatusFailed.String(),
			"failed_reason": err.Error(),
		})
	}
	fields := map[string]interface{}{
		"status": model.DownloadStatusSucceed.String(),
	}
	if config.GConfig.StorageEnabled && config.GConfig.StorageSupplier == consts.AliOss.String() {
		if key, url, mirrorErr := mirrorToOSS(t.record.Path); mirrorErr != nil {
			logs.Logger.Warn().Err(mirrorErr).Str("path", t.record.Path).Msg("oss mirror failed")
		} else {
			fields["storage_supplier_name"] = consts.AliOss.String()
			fields["key"] = key
			fields["remote_url"] = url
		}
	}
	return dao.UpdateDownload(t.record.Id, fields)
}

func mirrorToOSS(path string) (key, url string, err error) {
	b, err := tools.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	key, err = ali.OssClient.UploadImage(b)
	if err != nil {
		return "", "", err
	}
	expire := 168 * time.Hour
	if config.GConfig.URLExpires != "" {
		if d, parseErr := time.ParseDuration(config.GConfig.URLExpires); parseErr == nil {
			expire = d
		}
	}
	url, err = ali.OssClient.URL(key, expire)
	if err != nil {
		return key, "", err
	}
	return key, url, nil
}
