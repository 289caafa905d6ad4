package queue

import (
	"context"
	"sync"

	"github.com/reusedev/fetch-hub/internal/modules/logs"
)

var FetchTaskQueue = NewTaskQueue(100)
var closeOnce sync.Once

func exeFetchTask(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	for {
		select {
		case task, ok := <-FetchTaskQueue:
			if ok {
				wg.Add(1)
				go func() {
					if err := task.Execute(ctx); err != nil {
						logs.Logger.Error().Err(err).Msg("fetch task failed")
					}
					wg.Done()
				}()
			} else {
				// channel close
				wg.Done()
				return
			}
		case <-ctx.Done():
			closeOnce.Do(func() {
				close(FetchTaskQueue)
				logs.Logger.Info().Msg("Fetch task queue closed")
			})
		}
	}
}

func InitFetchTaskQueue(ctx context.Context, wg *sync.WaitGroup) {
	go exeFetchTask(ctx, wg)
}
