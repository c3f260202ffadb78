// Package effecthelper provides the effect lifecycle steps shared by
// conformance tests: create, open, close and destroy, each checked with
// testify assertions, plus status comparison by exception class.
//
// Helpers take a TestingT, so they work with *testing.T inside go test and
// with a Recorder when the suite is driven by the effectvts command:
//
//	rec := effecthelper.NewRecorder("case")
//	rec.Run(func(t effecthelper.TestingT) {
//	    instance := effecthelper.Create(t, factory, desc)
//	    defer effecthelper.Destroy(t, factory, instance)
//	    ...
//	})
//	if rec.Failed() {
//	    for _, f := range rec.Failures() {
//	        fmt.Println(f.Message)
//	    }
//	}
package effecthelper
