package canvas

import (
	"context"

	"github.com/lysyi3m/tumblr-postmap/app/loop"
)

func loopForTest(ctx context.Context) *loop.Loop {
	l := loop.New(loop.DefaultQueueSize)
	go l.Run(ctx)
	return l
}
