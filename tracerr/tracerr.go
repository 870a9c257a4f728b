// Package tracerr defines the tracer's error taxonomy. Each kind carries a
// stable exit code so the CLI entry point can translate any failure into a
// deterministic process exit status.
package tracerr

import "fmt"

// Kind identifies one of the error taxonomy's members (§7: kinds, not
// names).
type Kind int

const (
	// KindConfiguration covers configuration-file load/parse failures.
	KindConfiguration Kind = iota + 1
	// KindArgumentParsing covers CLI flag parsing failures.
	KindArgumentParsing
	// KindUnknownMaterial covers a scene file referencing an undefined material.
	KindUnknownMaterial
	// KindLockAcquire covers a failed attempt to acquire a shared lock.
	KindLockAcquire
	// KindExit is the expected, clean-shutdown signal.
	KindExit
	// KindCancel is the expected render-cancellation signal.
	KindCancel
	// KindImageSave covers a failure writing the output PNG.
	KindImageSave
	// KindSceneLoad covers scene file parse/resolve failures.
	KindSceneLoad
	// KindWindowCreate covers a failure to create the display window.
	KindWindowCreate
	// KindWindowUpdate covers a failure to blit to the display window.
	KindWindowUpdate
	// KindKeyCallback covers a failure inside an input key handler.
	KindKeyCallback
	// KindCreateLog covers a failure to initialize logging.
	KindCreateLog
	// KindReceive covers a failed channel/bus receive.
	KindReceive
	// KindSend covers a failed channel/bus send.
	KindSend
	// KindBusWrite covers a bus writer-side failure.
	KindBusWrite
	// KindBusRead covers a bus reader-side failure.
	KindBusRead
	// KindBusUpdate covers a bus broadcast (capacity overflow) failure.
	KindBusUpdate
	// KindBusTimeout is the expected empty-drain signal; never fatal.
	KindBusTimeout
	// KindNoObjectWithID covers a lookup of an object id no longer present.
	KindNoObjectWithID
	// KindFailedToOpenImage covers an unreadable image texture file.
	KindFailedToOpenImage
	// KindFailedToParse covers a value (e.g. a vector literal) that failed to parse.
	KindFailedToParse
)

// exitCodes maps each Kind to the process exit code it should produce.
// KindExit maps to 0 (clean exit); KindCancel and KindBusTimeout are
// expected, non-fatal conditions and are never surfaced to the process exit
// path, but still carry a code for completeness/logging.
var exitCodes = map[Kind]int{
	KindConfiguration:     3,
	KindArgumentParsing:   10,
	KindUnknownMaterial:   4,
	KindLockAcquire:       5,
	KindExit:              0,
	KindCancel:            7,
	KindImageSave:         8,
	KindSceneLoad:         9,
	KindWindowCreate:      1,
	KindWindowUpdate:      2,
	KindKeyCallback:       11,
	KindCreateLog:         12,
	KindReceive:           13,
	KindSend:              14,
	KindBusWrite:          16,
	KindBusRead:           17,
	KindBusUpdate:         18,
	KindBusTimeout:        19,
	KindNoObjectWithID:    20,
	KindFailedToOpenImage: 21,
	KindFailedToParse:     22,
}

// Error is a tracer error: a Kind plus a human-readable reason.
type Error struct {
	Kind   Kind
	Reason string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Reason }

// ExitCode returns the process exit code stably associated with e's Kind.
func (e *Error) ExitCode() int { return exitCodes[e.Kind] }

// Expected reports whether e is an expected control-flow signal (cancel,
// clean exit or bus timeout) rather than a genuine failure — these unwind the render loop
// or the program without being logged as errors.
func (e *Error) Expected() bool {
	return e.Kind == KindExit || e.Kind == KindCancel || e.Kind == KindBusTimeout
}

// New returns a tracer error of the given kind with a formatted reason.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Exit returns the expected clean-exit signal.
func Exit() *Error { return &Error{Kind: KindExit, Reason: "exit event"} }

// Cancel returns the expected render-cancellation signal.
func Cancel() *Error { return &Error{Kind: KindCancel, Reason: "cancel event"} }

// Timeout returns the expected empty-drain bus signal.
func Timeout() *Error { return &Error{Kind: KindBusTimeout, Reason: "bus timeout error"} }
