package bassboost

import (
	"sync"
	"testing"
	"time"

	"github.com/opd-ai/effectvts/effecthelper"
	"github.com/opd-ai/effectvts/factory"
	"github.com/opd-ai/effectvts/interfaces"
	"github.com/sirupsen/logrus"
)

// Result is the outcome of one case.
type Result struct {
	Case     Case
	Passed   bool
	Failures []effecthelper.Failure
	Duration time.Duration
}

// Report holds the results of a run in case order.
type Report struct {
	Results []Result
}

// Passed reports whether every case passed.
func (r Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// Failed returns the results of the failing cases.
func (r Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}

// RunCase runs one case against a Recorder and returns its result.
func RunCase(c Case) Result {
	start := time.Now()
	rec := effecthelper.NewRecorder(c.Name)
	rec.Run(func(t effecthelper.TestingT) {
		NewParamTest(c).SetAndGetStrength(t)
	})

	return Result{
		Case:     c,
		Passed:   !rec.Failed(),
		Failures: rec.Failures(),
		Duration: time.Since(start),
	}
}

// Run executes cases with at most parallel cases in flight. Values of
// parallel outside 1..64 are clamped.
func Run(cases []Case, parallel int) Report {
	if parallel < interfaces.MinParallel {
		parallel = interfaces.MinParallel
	}
	if parallel > interfaces.MaxParallel {
		parallel = interfaces.MaxParallel
	}

	logrus.WithFields(logrus.Fields{
		"function": "Run",
		"cases":    len(cases),
		"parallel": parallel,
	}).Info("Starting strength sweep")

	results := make([]Result, len(cases))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go runWorker(&wg, jobs, cases, results)
	}

	for i := range cases {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report := Report{Results: results}
	logrus.WithFields(logrus.Fields{
		"function": "Run",
		"cases":    len(cases),
		"failed":   len(report.Failed()),
	}).Info("Strength sweep finished")

	return report
}

func runWorker(wg *sync.WaitGroup, jobs <-chan int, cases []Case, results []Result) {
	defer wg.Done()

	for i := range jobs {
		results[i] = RunCase(cases[i])

		if !results[i].Passed {
			logrus.WithFields(logrus.Fields{
				"function": "runWorker",
				"case":     cases[i].Name,
				"failures": len(results[i].Failures),
			}).Warn("Case failed")
		}
	}
}

// RunSuite runs every case of pairs × values as a subtest of t.
func RunSuite(t *testing.T, pairs []factory.FactoryDescriptor, values []int32) {
	t.Helper()

	for _, c := range Cases(pairs, values) {
		t.Run(c.Name, func(t *testing.T) {
			NewParamTest(c).SetAndGetStrength(t)
		})
	}
}
