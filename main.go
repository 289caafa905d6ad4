package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/reusedev/fetch-hub/config"
	"github.com/reusedev/fetch-hub/internal/components/mysql"
	"github.com/reusedev/fetch-hub/internal/consts"
	"github.com/reusedev/fetch-hub/internal/modules/logs"
	"github.com/reusedev/fetch-hub/internal/modules/model"
	"github.com/reusedev/fetch-hub/internal/modules/queue"
	"github.com/reusedev/fetch-hub/internal/modules/storage/ali"
	"github.com/reusedev/fetch-hub/internal/service/http"
	"github.com/reusedev/fetch-hub/internal/service/http/handler"
)

var (
	httpPort   string
	configPath string
)

func init() {
	flag.StringVar(&httpPort, "http-port", ":80", "listen http port")
	flag.StringVar(&configPath, "config", "config.yml", "config file path")
}

func main() {
	flag.Parse()
	config.Init(configPath)
	logs.InitLogger()
	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	queue.InitFetchTaskQueue(ctx, wg)
	mysql.CreateDataBase(config.GConfig.MySQL)
	mysql.InitMySQL(config.GConfig.MySQL)
	mysql.DB.AutoMigrate(&model.Download{})
	if config.GConfig.StorageEnabled && config.GConfig.StorageSupplier == consts.AliOss.String() {
		ali.InitOSS(config.GConfig.AliOss)
	}
	handler.Init()
	handler.EnqueueUnfinishedDownloads()
	osSignal := make(chan os.Signal, 1)
	signal.Notify(osSignal, syscall.SIGINT, syscall.SIGTERM)
	go func(ch chan os.Signal) {
		<-ch
		cancel()
		wg.Wait()
		os.Exit(0)
	}(osSignal)
	http.Serve(httpPort)
}
