package utils

import (
	"runtime"
	"sync"
)

// MultiThread runs an operation on a range of integers, splitting the work across goroutines.
//
// It should be run sequentially, not in a separate thread; it is designed for use by the model's
// per-unit calculations.
//
// The range includes 'start' and excludes 'end' -- MultiThread assumes that end >= start. 'f' is
// the function run for each value in the range. 'opsPerThread' is the number of operations each
// goroutine claims at a time; 'threadsPerCPU' is the number of goroutines created per CPU.
func MultiThread(start, end int, f func(int), opsPerThread, threadsPerCPU int) {
	numThreads := runtime.NumCPU() * threadsPerCPU
	index := start
	var indexMux sync.Mutex

	var wg sync.WaitGroup
	wg.Add(numThreads)

	for thread := 0; thread < numThreads; thread++ {
		go func() {
			defer wg.Done()

			for {
				indexMux.Lock()
				if index >= end {
					indexMux.Unlock()
					return
				}

				i := index
				index += opsPerThread
				indexMux.Unlock()

				e := i + opsPerThread
				if e > end {
					e = end
				}

				for ; i < e; i++ {
					f(i)
				}
			}
		}()
	}

	wg.Wait()
}
