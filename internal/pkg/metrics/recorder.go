// Package metrics records reminder scheduling activity.
//
// Components take a Recorder; NoopRecorder is the default so that tests and
// tools never need a Prometheus registry.
package metrics

// Result labels
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder is implemented by metric sinks.
type Recorder interface {
	IncReschedule(result string)
	IncCancel(result string)
	IncFired(trigger string)
	SetScheduled(n int)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) IncReschedule(string) {}
func (NoopRecorder) IncCancel(string)     {}
func (NoopRecorder) IncFired(string)      {}
func (NoopRecorder) SetScheduled(int)     {}

// ResultLabel maps a success flag to a result label.
func ResultLabel(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}
