package main

import (
	"context"
	"time"

	"github.com/zhenzou/futures"
)

func main() {

	queue := futures.NewConcurrentQueue(futures.WithMaxConcurrent(10))

	_, err := queue.Schedule(func() {
		println("tick:", time.Now().Format(time.RFC3339))
	}, 1*time.Second)
	if err != nil {
		panic(err)
	}

	f, err := futures.SubmitAfter(queue, 2*time.Second, func() string {
		return time.Now().Format(time.RFC3339)
	})
	if err != nil {
		panic(err)
	}
	println("done:", f.Wait())

	_ = queue.Shutdown(context.Background())
}
