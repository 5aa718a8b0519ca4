// Package stats aggregates latencies of repeated sends.
package stats

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram bounds in microseconds: 1µs to 1 hour, 3 significant figures.
const (
	histogramMin     int64 = 1
	histogramMax     int64 = 3600000000
	histogramSigFigs       = 3
)

// Recorder collects send outcomes. It is safe for concurrent use; the
// histogram is mutex protected and counters are atomic.
type Recorder struct {
	hist   *hdrhistogram.Histogram
	histMu sync.Mutex

	total    atomic.Int64
	failed   atomic.Int64
	bytes    atomic.Int64
	statuses [6]atomic.Int64

	startTime time.Time
}

// Summary is a point-in-time view of a Recorder.
type Summary struct {
	Count   int64
	Failed  int64
	Bytes   int64
	Elapsed time.Duration

	// StatusClasses counts responses by class: index 2 holds 2xx and so on.
	// Index 0 counts status codes outside 100-599.
	StatusClasses [6]int64

	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
	P50  time.Duration
	P90  time.Duration
	P95  time.Duration
	P99  time.Duration
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist:      hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
		startTime: time.Now(),
	}
}

// Record adds one completed exchange.
func (r *Recorder) Record(latency time.Duration, statusCode int, bytes int64) {
	micros := latency.Microseconds()
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}

	r.histMu.Lock()
	_ = r.hist.RecordValue(micros)
	r.histMu.Unlock()

	r.total.Add(1)
	r.bytes.Add(bytes)

	class := statusCode / 100
	if class < 1 || class > 5 {
		class = 0
	}
	r.statuses[class].Add(1)
}

// RecordFailure adds one send that produced no response.
func (r *Recorder) RecordFailure() {
	r.total.Add(1)
	r.failed.Add(1)
}

// Summary returns the current aggregates. Latency fields are zero until a
// response has been recorded.
func (r *Recorder) Summary() Summary {
	s := Summary{
		Count:   r.total.Load(),
		Failed:  r.failed.Load(),
		Bytes:   r.bytes.Load(),
		Elapsed: time.Since(r.startTime),
	}
	for i := range r.statuses {
		s.StatusClasses[i] = r.statuses[i].Load()
	}

	r.histMu.Lock()
	defer r.histMu.Unlock()

	if r.hist.TotalCount() == 0 {
		return s
	}
	s.Min = time.Duration(r.hist.Min()) * time.Microsecond
	s.Max = time.Duration(r.hist.Max()) * time.Microsecond
	s.Mean = time.Duration(r.hist.Mean()) * time.Microsecond
	s.P50 = time.Duration(r.hist.ValueAtQuantile(50)) * time.Microsecond
	s.P90 = time.Duration(r.hist.ValueAtQuantile(90)) * time.Microsecond
	s.P95 = time.Duration(r.hist.ValueAtQuantile(95)) * time.Microsecond
	s.P99 = time.Duration(r.hist.ValueAtQuantile(99)) * time.Microsecond
	return s
}

// Reset clears all recorded values and restarts the elapsed clock.
func (r *Recorder) Reset() {
	r.histMu.Lock()
	r.hist.Reset()
	r.histMu.Unlock()

	r.total.Store(0)
	r.failed.Store(0)
	r.bytes.Store(0)
	for i := range r.statuses {
		r.statuses[i].Store(0)
	}
	r.startTime = time.Now()
}
