// Package log provides file logging plus a debug channel with event
// profiling. Enable debug mode by setting GRIDSNAP_DEBUG=1.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Debug mode configuration
var (
	DebugEnabled bool
	DebugLog     = log.New(io.Discard, "", 0)
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "gridsnap-debug.log")

// InitDebug initializes debug logging if GRIDSNAP_DEBUG=1 is set.
// Call this after Initialize() in main.
func InitDebug() {
	if os.Getenv("GRIDSNAP_DEBUG") != "1" {
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugEnabled = true

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		if ErrorLog != nil {
			ErrorLog.Printf("could not open debug log file: %s", err)
		}
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugLog = log.New(f, "DEBUG:", log.Ldate|log.Ltime|log.Lmicroseconds)
	debugLogFile = f

	DebugLog.Println("Debug mode enabled")
	DebugLog.Printf("Debug log: %s", debugLogFileName)
}

// CloseDebug closes the debug log file.
func CloseDebug() {
	if debugLogFile != nil {
		_ = debugLogFile.Close()
		debugLogFile = nil
		fmt.Fprintln(os.Stderr, "wrote debug logs to "+debugLogFileName)
	}
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf(format, v...)
	}
}

// SlowEvent is the handling time above which an event is reported.
const SlowEvent = 5 * time.Millisecond

// EventProfiler tracks how long the session loop spends per event kind.
type EventProfiler struct {
	mu       sync.RWMutex
	kinds    map[string]*EventMetrics
	sessions int64
	total    time.Duration
	recent   []time.Duration // rolling window of session durations
}

// EventMetrics tracks metrics for a single event kind.
type EventMetrics struct {
	Kind      string
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
	LastAt    time.Time
}

var profiler = &EventProfiler{
	kinds:  make(map[string]*EventMetrics),
	recent: make([]time.Duration, 0, 100),
}

// GetProfiler returns the global event profiler.
func GetProfiler() *EventProfiler {
	return profiler
}

// StartEvent begins timing an event.
// Returns a function to call when handling completes.
func (p *EventProfiler) StartEvent(kind string) func() {
	if !DebugEnabled {
		return func() {}
	}

	start := time.Now()
	return func() {
		p.recordEvent(kind, time.Since(start))
	}
}

func (p *EventProfiler) recordEvent(kind string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	metrics, ok := p.kinds[kind]
	if !ok {
		metrics = &EventMetrics{
			Kind:    kind,
			MinTime: elapsed,
			MaxTime: elapsed,
		}
		p.kinds[kind] = metrics
	}

	metrics.Count++
	metrics.TotalTime += elapsed
	metrics.LastAt = time.Now()

	if elapsed < metrics.MinTime {
		metrics.MinTime = elapsed
	}
	if elapsed > metrics.MaxTime {
		metrics.MaxTime = elapsed
	}

	if elapsed > SlowEvent && DebugLog != nil {
		DebugLog.Printf("SLOW EVENT: %s took %v", kind, elapsed)
	}
}

// RecordSession records the wall time of one finished or cancelled session.
func (p *EventProfiler) RecordSession(elapsed time.Duration) {
	if !DebugEnabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.sessions++
	p.total += elapsed

	if len(p.recent) >= 100 {
		p.recent = p.recent[1:]
	}
	p.recent = append(p.recent, elapsed)
}

// GetStats returns a summary of event statistics.
func (p *EventProfiler) GetStats() string {
	if !DebugEnabled {
		return ""
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("\n=== Event Profile ===\n")
	sb.WriteString(fmt.Sprintf("Sessions: %d\n", p.sessions))

	if p.sessions > 0 {
		sb.WriteString(fmt.Sprintf("Avg session: %v\n", p.total/time.Duration(p.sessions)))
	}

	if len(p.recent) > 0 {
		var sum time.Duration
		lo, hi := p.recent[0], p.recent[0]
		for _, t := range p.recent {
			sum += t
			lo = min(lo, t)
			hi = max(hi, t)
		}
		sb.WriteString(fmt.Sprintf("Recent %d sessions: avg=%v min=%v max=%v\n",
			len(p.recent), sum/time.Duration(len(p.recent)), lo, hi))
	}

	sb.WriteString("\n--- Events ---\n")

	var sorted []*EventMetrics
	for _, m := range p.kinds {
		sorted = append(sorted, m)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TotalTime > sorted[j].TotalTime
	})

	for _, m := range sorted {
		avg := time.Duration(0)
		if m.Count > 0 {
			avg = m.TotalTime / time.Duration(m.Count)
		}
		sb.WriteString(fmt.Sprintf("  %s: count=%d total=%v avg=%v min=%v max=%v\n",
			m.Kind, m.Count, m.TotalTime, avg, m.MinTime, m.MaxTime))
	}

	return sb.String()
}

// LogStats logs the current event statistics.
func (p *EventProfiler) LogStats() {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Print(p.GetStats())
	}
}

// Reset clears all profiling data.
func (p *EventProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.kinds = make(map[string]*EventMetrics)
	p.sessions = 0
	p.total = 0
	p.recent = make([]time.Duration, 0, 100)
}

// SessionTrace logs session lifecycle events.
func SessionTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[SESSION] "+format, v...)
	}
}

// LayoutTrace logs monitor layout and grid computation events.
func LayoutTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[LAYOUT] "+format, v...)
	}
}

// InputTrace logs input handling events.
func InputTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[INPUT] "+format, v...)
	}
}

// RenderTrace logs overlay render events.
func RenderTrace(component, format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		msg := fmt.Sprintf(format, v...)
		DebugLog.Printf("[RENDER:%s] %s", component, msg)
	}
}
