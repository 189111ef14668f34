package queue_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/huynhanx03/go-concurrentqueue/pkg/datastructs/queue"
)

type job struct {
	ID   int
	Body string
}

func ExampleBlocking() {
	q := queue.New[job]()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			j, err := q.Pop(context.Background())
			if err != nil {
				fmt.Println("consumer done")
				return
			}
			fmt.Println(j.ID, j.Body)
		}
	}()

	_ = q.Push(job{ID: 1, Body: "first"})
	_ = q.PushMany([]job{{ID: 2, Body: "second"}, {ID: 3, Body: "third"}})
	q.Close()
	wg.Wait()

	// Output:
	// 1 first
	// 2 second
	// 3 third
	// consumer done
}

func ExampleBlocking_TryPop() {
	q := queue.New[string]()

	_, ok := q.TryPop()
	fmt.Println(ok)

	_ = q.Push("ready")
	v, ok := q.TryPop()
	fmt.Println(v, ok)

	// Output:
	// false
	// ready true
}

func ExampleBlocking_WaitFor() {
	q := queue.New[int]()
	fmt.Println(q.WaitFor(10 * time.Millisecond))

	_ = q.Push(1)
	fmt.Println(q.WaitFor(10 * time.Millisecond))

	// Output:
	// false
	// true
}

func ExampleShared() {
	owner := queue.NewShared[int]()
	worker := owner.Acquire()

	_ = worker.Queue().Push(42)
	worker.Release()

	v, _ := owner.Queue().TryPop()
	fmt.Println(v, owner.Refs())

	owner.Release()
	fmt.Println(owner.Queue().Closed())

	// Output:
	// 42 1
	// true
}
