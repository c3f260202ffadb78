package effecthelper

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// Failure is one assertion failure recorded by a Recorder.
type Failure struct {
	Message string
	Fatal   bool
}

// Recorder collects assertion failures so the suite can run outside go test.
// FailNow ends the calling goroutine with runtime.Goexit, so deferred
// teardown still runs; use Run to give each case its own goroutine.
type Recorder struct {
	mu       sync.Mutex
	name     string
	failures []Failure
	failed   bool
}

// NewRecorder creates a recorder for the named case.
func NewRecorder(name string) *Recorder {
	return &Recorder{name: name}
}

// Name returns the case name.
func (r *Recorder) Name() string {
	return r.name
}

// Helper is a no-op; it lets testify treat the recorder like *testing.T.
func (r *Recorder) Helper() {}

// Errorf records a non-fatal failure.
func (r *Recorder) Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	r.mu.Lock()
	r.failures = append(r.failures, Failure{Message: msg})
	r.failed = true
	r.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "Recorder.Errorf",
		"case":     r.name,
	}).Debug(msg)
}

// FailNow marks the last failure fatal and stops the calling goroutine.
func (r *Recorder) FailNow() {
	r.mu.Lock()
	r.failed = true
	if n := len(r.failures); n > 0 {
		r.failures[n-1].Fatal = true
	} else {
		r.failures = append(r.failures, Failure{Message: "FailNow called", Fatal: true})
	}
	r.mu.Unlock()

	runtime.Goexit()
}

// Failed reports whether any failure was recorded.
func (r *Recorder) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// Failures returns a copy of the recorded failures.
func (r *Recorder) Failures() []Failure {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Failure, len(r.failures))
	copy(out, r.failures)
	return out
}

// Run executes fn on a new goroutine and waits for it, so a FailNow inside fn
// only ends fn. A panic in fn is recorded as a fatal failure.
func (r *Recorder) Run(fn func(t TestingT)) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if p := recover(); p != nil {
				r.mu.Lock()
				r.failures = append(r.failures, Failure{Message: fmt.Sprintf("panic: %v", p), Fatal: true})
				r.failed = true
				r.mu.Unlock()
			}
		}()
		fn(r)
	}()
	<-done
}
