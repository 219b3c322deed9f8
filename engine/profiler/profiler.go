// Package profiler records nested timing scopes into a ring buffer and dumps
// them as a speedscope evented profile.
//
//	defer profiler.Start("Application.frame")()
//
// Until Enable is called, Start costs one atomic load.
package profiler

import (
	"encoding/json"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// ErrNoSamples is returned by the writers when nothing was recorded.
var ErrNoSamples = errors.New("profiler: no samples")

type sample struct {
	at    int64 // unix nanoseconds
	scope int
	open  bool
}

// Recorder is a fixed-size ring of scope open/close samples. When it wraps,
// the oldest samples are overwritten.
type Recorder struct {
	enabled atomic.Bool
	write   atomic.Uint64
	ring    []sample

	mu     sync.Mutex
	names  []string
	lookup map[string]int

	now func() int64
}

// NewRecorder allocates room for capacity samples (two per scope).
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	r := &Recorder{
		ring:   make([]sample, capacity),
		lookup: map[string]int{},
		now:    func() int64 { return time.Now().UnixNano() },
	}
	r.enabled.Store(true)
	return r
}

var std atomic.Pointer[Recorder]

// Enable installs the process-wide recorder used by Start.
func Enable(capacity int) { std.Store(NewRecorder(capacity)) }

// Disable drops the process-wide recorder and its samples.
func Disable() { std.Store(nil) }

// Default returns the process-wide recorder, or nil when disabled.
func Default() *Recorder { return std.Load() }

// Start opens a scope on the process-wide recorder; call the result to close it.
func Start(name string) func() {
	r := std.Load()
	if r == nil {
		return func() {}
	}
	return r.Start(name)
}

func (r *Recorder) Start(name string) func() {
	if !r.enabled.Load() {
		return func() {}
	}
	id := r.intern(name)
	began := r.now()
	r.push(sample{at: began, scope: id, open: true})
	return func() {
		end := r.now()
		if end < began {
			end = began
		}
		r.push(sample{at: end, scope: id})
	}
}

// SetEnabled pauses or resumes recording. Scopes already open still close.
func (r *Recorder) SetEnabled(on bool) { r.enabled.Store(on) }

func (r *Recorder) push(s sample) {
	i := r.write.Add(1) - 1
	r.ring[i%uint64(len(r.ring))] = s
}

func (r *Recorder) intern(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.lookup[name]; ok {
		return id
	}
	id := len(r.names)
	r.lookup[name] = id
	r.names = append(r.names, name)
	return id
}

// snapshot returns the retained samples in write order.
func (r *Recorder) snapshot() []sample {
	n := r.write.Load()
	size := uint64(len(r.ring))
	start := uint64(0)
	if n > size {
		start = n - size
	}
	out := make([]sample, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.ring[k%size])
	}
	return out
}

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // microseconds since the first sample
	Frame int    `json:"frame"`
}

// events turns the samples into balanced speedscope events. Closes whose open
// was overwritten are dropped; scopes still open are closed at the last
// timestamp.
func (r *Recorder) events() ([]ssEvent, int64) {
	samples := r.snapshot()
	if len(samples) == 0 {
		return nil, 0
	}
	base := samples[0].at
	out := make([]ssEvent, 0, len(samples))
	var stack []int
	last := int64(0)
	for _, s := range samples {
		at := max((s.at-base)/1000, last)
		if s.open {
			stack = append(stack, s.scope)
			out = append(out, ssEvent{Type: "O", At: at, Frame: s.scope})
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != s.scope {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: s.scope})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	return out, last
}

// WriteSpeedscope encodes the retained samples as a speedscope document.
func (r *Recorder) WriteSpeedscope(w io.Writer) error {
	evs, end := r.events()
	if len(evs) == 0 {
		return ErrNoSamples
	}
	r.mu.Lock()
	frames := make([]ssFrame, len(r.names))
	for i, n := range r.names {
		frames[i] = ssFrame{Name: n}
	}
	r.mu.Unlock()

	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "frames",
			Unit:     "microseconds",
			EndValue: end,
			Events:   evs,
		}},
		Exporter: "gamelamp-profiler",
		Name:     "gamelamp capture",
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(&doc), "encode speedscope")
}

// WriteFile dumps to path through a temporary file, so a reader never sees a
// partial profile.
func (r *Recorder) WriteFile(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrap(err, "create profile")
	}
	if err := r.WriteSpeedscope(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close profile")
	}
	return errors.Wrap(os.Rename(tmp, path), "rename profile")
}

// MemStats is the subset of runtime statistics the stats panel shows.
type MemStats struct {
	HeapAlloc  uint64
	Mallocs    uint64
	Goroutines int
	CPUs       int
}

func ReadMemStats() MemStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemStats{
		HeapAlloc:  m.HeapAlloc,
		Mallocs:    m.Mallocs,
		Goroutines: runtime.NumGoroutine(),
		CPUs:       runtime.NumCPU(),
	}
}
