package users

import "fmt"

// Stage names where a request failed
type Stage string

const (
	StageDecode Stage = "decode"
	StageQuery  Stage = "query"
	StageMap    Stage = "map"
	StagePanic  Stage = "panic"
)

// RequestFailure is the only error the listing reports. Every stage
// degrades to the same opaque 500; Stage exists for logs.
type RequestFailure struct {
	Stage Stage
	Err   error
}

func (e *RequestFailure) Error() string {
	return fmt.Sprintf("users %s failed: %v", e.Stage, e.Err)
}

func (e *RequestFailure) Unwrap() error {
	return e.Err
}

func fail(stage Stage, err error) *RequestFailure {
	return &RequestFailure{Stage: stage, Err: err}
}
