package log

import (
	"sync"
	"testing"
)

func TestSetDefaultLogger(t *testing.T) {
	originalLogger := defaultLogger
	defer func() {
		defaultLogger = originalLogger
	}()

	customLogger := Discard()
	SetDefaultLogger(customLogger)

	if DefaultLogger() != customLogger {
		t.Error("DefaultLogger did not return the custom logger")
	}
}

func TestDefaultLoggerConcurrency(t *testing.T) {
	originalLogger := defaultLogger
	defer func() {
		defaultLogger = originalLogger
	}()

	defaultLogger = nil

	const goroutines = 50
	loggers := make([]*Logger, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			loggers[index] = DefaultLogger()
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if loggers[i] != loggers[0] {
			t.Fatalf("logger at index %d differs from the first logger", i)
		}
	}
}
