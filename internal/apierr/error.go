// Package apierr carries the HTTP status alongside an error so handlers
// can translate failures straight into the wire format of §6 without
// re-deriving a status code at the response-writing boundary.
package apierr

// Error pairs an HTTP status with a message and optional detail, matching
// the {"error": string, "detail"?: string} wire shape every endpoint uses
// to report failures.
type Error struct {
	Status  int
	Message string
	Detail  string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

// New constructs an Error with no detail.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Newf constructs an Error carrying a detail string.
func Newf(status int, message, detail string) *Error {
	return &Error{Status: status, Message: message, Detail: detail}
}
