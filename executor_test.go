package asyncloop_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	asyncloop "github.com/lexmihaylov/AsyncLoop"
)

func TestExecutorRunsInFIFOOrder(t *testing.T) {
	t.Parallel()

	var myExecutor asyncloop.Executor

	var order []int
	myExecutor.Spawn(func() { order = append(order, 1) })
	myExecutor.Spawn(func() { order = append(order, 2) })
	myExecutor.Spawn(func() { order = append(order, 3) })

	require.Empty(t, order, "callbacks must wait for Run")

	myExecutor.Run()

	require.Equal(t, []int{1, 2, 3}, order)
}

func TestExecutorNestedSpawnRunsInSameDrain(t *testing.T) {
	t.Parallel()

	var myExecutor asyncloop.Executor

	var order []string
	myExecutor.Spawn(func() {
		order = append(order, "outer")
		myExecutor.Spawn(func() { order = append(order, "inner") })
	})
	myExecutor.Run()

	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestExecutorAutorun(t *testing.T) {
	t.Parallel()

	var myExecutor asyncloop.Executor
	myExecutor.Autorun(myExecutor.Run)

	ran := false
	myExecutor.Spawn(func() { ran = true })

	require.True(t, ran, "autorun must pump the queue without an explicit Run")
}

func TestExecutorSpawnNilPanics(t *testing.T) {
	t.Parallel()

	var myExecutor asyncloop.Executor
	require.Panics(t, func() { myExecutor.Spawn(nil) })
}

func TestExecutorConcurrentSpawn(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	var myExecutor asyncloop.Executor
	myExecutor.Autorun(func() { wgGo(&wg, myExecutor.Run) })

	const n = 100

	var mu sync.Mutex
	count := 0

	var spawners sync.WaitGroup
	for i := 0; i < n; i++ {
		wgGo(&spawners, func() {
			myExecutor.Spawn(func() {
				mu.Lock()
				count++
				mu.Unlock()
			})
		})
	}

	spawners.Wait()
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, n, count)
}
