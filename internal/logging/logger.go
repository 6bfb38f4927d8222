// Package logging provides categorized file-based logging for sceneforge.
// Logs go to .sceneforge/logs/ with one file per category. Nothing is
// written unless debug mode is enabled, so production invocations leave no
// log artifacts next to the project.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Category represents a log category/system.
type Category string

const (
	CategoryScan     Category = "scan"     // Document loading and inspection
	CategoryMutate   Category = "mutate"   // Field and structural edits
	CategoryGUID     Category = "guid"     // GUID cache build and resolution
	CategorySearch   Category = "search"   // Documentation index and queries
	CategorySettings Category = "settings" // Project settings edits
	CategoryStore    Category = "store"    // Index storage operations
)

// Options mirrors the logging section of the config package to avoid a
// circular import.
type Options struct {
	DebugMode  bool
	Categories map[string]bool
}

// Logger wraps a standard logger with category and file output.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	mu        sync.RWMutex
	loggers   = make(map[Category]*Logger)
	logsDir   string
	opts      Options
	activated bool
)

// Initialize points the logging system at a workspace. Without it (or with
// debug mode off) every logging call is a no-op.
func Initialize(workspace string, o Options) error {
	mu.Lock()
	defer mu.Unlock()

	opts = o
	activated = o.DebugMode
	if !activated {
		return nil
	}

	logsDir = filepath.Join(workspace, ".sceneforge", "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		activated = false
		return fmt.Errorf("create log dir: %w", err)
	}
	return nil
}

// Close flushes and closes every open category file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		if l.file != nil {
			_ = l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// enabled reports whether a category should be written at all.
func enabled(c Category) bool {
	if !activated {
		return false
	}
	if opts.Categories == nil {
		return true
	}
	on, ok := opts.Categories[string(c)]
	if !ok {
		return true
	}
	return on
}

// Get returns the logger for a category, creating its file on first use.
func Get(c Category) *Logger {
	mu.RLock()
	if l, ok := loggers[c]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[c]; ok {
		return l
	}

	l := &Logger{category: c}
	if activated {
		path := filepath.Join(logsDir, string(c)+".log")
		if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			l.file = f
			l.logger = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
		}
	}
	loggers[c] = l
	return l
}

// Printf writes a formatted line to the category file when enabled.
func (l *Logger) Printf(format string, args ...interface{}) {
	if l == nil || l.logger == nil || !enabled(l.category) {
		return
	}
	l.logger.Printf(format, args...)
}

// Error writes an error-tagged line.
func (l *Logger) Error(format string, args ...interface{}) {
	l.Printf("ERROR "+format, args...)
}

// Category helpers, one per system.

func Scan(format string, args ...interface{})     { Get(CategoryScan).Printf(format, args...) }
func Mutate(format string, args ...interface{})   { Get(CategoryMutate).Printf(format, args...) }
func GUID(format string, args ...interface{})     { Get(CategoryGUID).Printf(format, args...) }
func Search(format string, args ...interface{})   { Get(CategorySearch).Printf(format, args...) }
func Settings(format string, args ...interface{}) { Get(CategorySettings).Printf(format, args...) }
func Store(format string, args ...interface{})    { Get(CategoryStore).Printf(format, args...) }
