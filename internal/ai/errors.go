// README: Error types for the text-generation client.
package ai

import "fmt"

// UpstreamError reports a transport or HTTP failure from the generation
// endpoint, carrying whatever status/body information was available.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("generation upstream failure (status %d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("generation upstream failure: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// SafetyBlockedError reports that the model refused the prompt for a
// content-policy reason.
type SafetyBlockedError struct {
	Reason string
}

func (e *SafetyBlockedError) Error() string {
	return fmt.Sprintf("generation blocked by content policy: %s", e.Reason)
}

// MalformedResponseError reports that the upstream response carried no usable
// text payload, or that a payload could not be parsed as JSON.
type MalformedResponseError struct {
	Detail string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed generation response: %s: %v", e.Detail, e.Err)
	}
	return "malformed generation response: " + e.Detail
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
