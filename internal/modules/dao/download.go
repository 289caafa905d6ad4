package dao

import (
	"github.com/reusedev/fetch-hub/internal/components/mysql"
	"github.com/reusedev/fetch-hub/internal/modules/model"
)

func DownloadById(id int) (model.Download, error) {
	var download model.Download
	err := mysql.DB.Model(&model.Download{}).Where("id = ?", id).First(&download).Error
	if err != nil {
		return model.Download{}, err
	}
	return download, nil
}

func CreateDownload(d *model.Download) error {
	return mysql.DB.Model(&model.Download{}).Create(d).Error
}

func DeleteDownload(id int) error {
	return mysql.DB.Where("id = ?", id).Delete(&model.Download{}).Error
}

func UpdateDownload(id int, fields map[string]interface{}) error {
	return mysql.DB.Model(&model.Download{}).Where("id = ?", id).Updates(fields).Error
}

// UnfinishedDownloads returns records left pending or running, e.g. after
// an unclean shutdown, so they can be re-enqueued.
func UnfinishedDownloads() ([]model.Download, error) {
	var downloads []model.Download
	err := mysql.DB.Model(&model.Download{}).
		Where("status IN ?", []string{model.DownloadStatusPending.String(), model.DownloadStatusRunning.String()}).
		Find(&downloads).Error
	if err != nil {
		return nil, err
	}
	return downloads, nil
}
