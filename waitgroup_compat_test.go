package asyncloop_test

import "sync"

// wgGo is sync.WaitGroup.Go from Go 1.25, provided here so the tests
// build with older toolchains.
func wgGo(wg *sync.WaitGroup, f func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		f()
	}()
}
