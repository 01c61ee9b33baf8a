//go:build wasm

package internal

import "sync"

// wasm programs run everything on the event loop goroutine, so a single runtime is enough
var (
	mu            sync.Mutex
	globalRuntime *Runtime
)

func GetRuntime() *Runtime {
	mu.Lock()
	defer mu.Unlock()

	if globalRuntime == nil {
		globalRuntime = NewRuntime()
	}

	return globalRuntime
}

func ReleaseRuntime() {
	mu.Lock()
	globalRuntime = nil
	mu.Unlock()
}
