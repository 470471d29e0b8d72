package search

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Progress describes how far a query's filler has got.
type Progress struct {
	Query        string
	Generation   Generation
	FilesIndexed int
	RootsDone    int
	RootsTotal   int
	Steps        int
	Done         bool
	StartedAt    time.Time
	UpdatedAt    time.Time
	Duration     time.Duration
}

const (
	envDebug     = "QOPEN_DEBUG"
	envDebugFile = "QOPEN_DEBUG_FILE"
)

var (
	debugEnabled = os.Getenv(envDebug) == "1"
	debugMu      sync.Mutex
)

func debugf(format string, args ...interface{}) {
	if !debugEnabled {
		return
	}
	debugMu.Lock()
	defer debugMu.Unlock()

	target := os.Getenv(envDebugFile)
	if target == "" {
		target = "qopen-debug.log"
	}
	f, err := os.OpenFile(target, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	timestamp := time.Now().Format(time.RFC3339Nano)
	_, _ = fmt.Fprintf(f, "%s "+format+"\n", append([]interface{}{timestamp}, args...)...)
	_ = f.Close()
}
