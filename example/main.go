package main

import (
	"context"
	"time"

	"github.com/zhenzou/futures"
)

type Person struct {
	Name string
}

func main() {

	queue := futures.NewConcurrentQueue(futures.WithMaxConcurrent(10))

	f1, err := futures.Submit(queue, func() Person {
		time.Sleep(1 * time.Second)
		return Person{
			Name: "future",
		}
	})
	if err != nil {
		panic(err)
	}
	// wait, block until the value is delivered
	got := f1.Wait()
	println(got.Name)

	f2, _ := futures.Submit(queue, func() int {
		return 41
	})
	// map, derive a future from the eventual value
	futures.Map(f2, func(val int) int {
		return val + 1
	}).OnComplete(func(val int) {
		println(val)
	})

	group := futures.NewGroup()
	for i := 0; i < 3; i++ {
		_ = group.Submit(queue, func() {
			time.Sleep(100 * time.Millisecond)
		})
	}
	// notify, runs once all tracked work joined
	f3 := futures.SubmitNotify(group, queue, func() string {
		return "joined"
	})
	println(f3.Wait())

	_ = queue.Shutdown(context.Background())
}
