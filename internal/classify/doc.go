// Package classify turns images into triage categories.
//
// Classification itself is an external capability: ExecClassifier shells out
// to a configured command that emits ranked (label, confidence) pairs as
// JSON. Resolve then collapses that ranked list into exactly one category id
// via keyword lookup plus the people-priority override.
package classify
