package http

import (
	"github.com/gin-gonic/gin"
	"github.com/reusedev/fetch-hub/internal/service/http/handler"
	"github.com/reusedev/fetch-hub/internal/service/http/middleware"
)

func Serve(port string) {
	e := gin.New()
	initRouter(e)
	if err := e.Run(port); err != nil {
		panic(err)
	}
}

func initRouter(e *gin.Engine) {
	e.Use(gin.Recovery())
	e.Use(middleware.RequestLogger())
	v1 := e.Group("/v1")
	downloads := v1.Group("/downloads")
	{
		downloads.POST("/sync", handler.SyncDownload)
		downloads.POST("", handler.AsyncDownload)
		downloads.GET("", handler.DownloadQuery)
		downloads.DELETE("", handler.DownloadDelete)
	}
}
