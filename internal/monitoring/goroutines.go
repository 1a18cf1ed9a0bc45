package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultCheckInterval is how often a started monitor samples the goroutine count.
const DefaultCheckInterval = 500 * time.Millisecond

// GoroutineMonitor tracks goroutine counts while concurrent work such as parallel
// tuning is in flight.
type GoroutineMonitor struct {
	mu              sync.RWMutex
	logger          zerolog.Logger
	baseline        int
	current         int
	peak            int
	samples         int
	checkInterval   time.Duration
	alertThreshold  int
	stopChan        chan struct{}
	stopOnce        sync.Once
	done            chan struct{}
	componentCounts map[string]int
}

// NewGoroutineMonitor creates a monitor whose baseline is the current goroutine count.
// alertThreshold is the growth over baseline that triggers a warning; 0 disables it.
func NewGoroutineMonitor(logger zerolog.Logger, checkInterval time.Duration, alertThreshold int) *GoroutineMonitor {
	if checkInterval <= 0 {
		checkInterval = DefaultCheckInterval
	}
	baseline := runtime.NumGoroutine()
	return &GoroutineMonitor{
		logger:          logger.With().Str("component", "goroutine_monitor").Logger(),
		baseline:        baseline,
		current:         baseline,
		peak:            baseline,
		checkInterval:   checkInterval,
		alertThreshold:  alertThreshold,
		stopChan:        make(chan struct{}),
		done:            make(chan struct{}),
		componentCounts: make(map[string]int),
	}
}

// Start begins sampling in the background until Stop is called.
func (gm *GoroutineMonitor) Start() {
	go gm.monitor()
	gm.logger.Debug().
		Int("baseline", gm.baseline).
		Dur("interval", gm.checkInterval).
		Msg("Started goroutine monitoring")
}

// Stop ends sampling, takes a final sample and returns the metrics. Safe to call twice.
func (gm *GoroutineMonitor) Stop() GoroutineMetrics {
	gm.stopOnce.Do(func() {
		close(gm.stopChan)
		<-gm.done
	})
	gm.Sample()
	return gm.GetMetrics()
}

func (gm *GoroutineMonitor) monitor() {
	defer close(gm.done)

	ticker := time.NewTicker(gm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.Sample()
		case <-gm.stopChan:
			return
		}
	}
}

// Sample records the current goroutine count and warns when growth passes the threshold.
func (gm *GoroutineMonitor) Sample() {
	current := runtime.NumGoroutine()

	gm.mu.Lock()
	gm.current = current
	gm.samples++
	if current > gm.peak {
		gm.peak = current
	}
	growth := current - gm.baseline
	peak := gm.peak
	gm.mu.Unlock()

	gm.logger.Trace().
		Int("current", current).
		Int("baseline", gm.baseline).
		Int("peak", peak).
		Msg("Goroutine metrics")

	if gm.alertThreshold > 0 && growth > gm.alertThreshold {
		gm.logger.Warn().
			Int("current", current).
			Int("growth", growth).
			Int("threshold", gm.alertThreshold).
			Msg("High goroutine count detected - possible leak")
	}
}

// RegisterComponent records how many goroutines a component is expected to run.
func (gm *GoroutineMonitor) RegisterComponent(name string, count int) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.componentCounts[name] = count
}

// GetMetrics returns current goroutine metrics
func (gm *GoroutineMonitor) GetMetrics() GoroutineMetrics {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return GoroutineMetrics{
		Current:         gm.current,
		Baseline:        gm.baseline,
		Peak:            gm.peak,
		Growth:          gm.current - gm.baseline,
		Samples:         gm.samples,
		ComponentCounts: copyMap(gm.componentCounts),
	}
}

// GoroutineMetrics contains goroutine statistics
type GoroutineMetrics struct {
	Current         int            `json:"current"`
	Baseline        int            `json:"baseline"`
	Peak            int            `json:"peak"`
	Growth          int            `json:"growth"`
	Samples         int            `json:"samples"`
	ComponentCounts map[string]int `json:"component_counts"`
}

func copyMap(m map[string]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
