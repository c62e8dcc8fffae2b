// Package scheduler implements the tick engine: it evaluates an ordered
// list of jobs once, applies the cooldown gate, dispatches at most one
// notification per job, and reports what ran.
package scheduler

import (
	"context"
	"time"

	"github.com/blackwell-systems/aw-analyzer/internal/notifier"
	"github.com/blackwell-systems/aw-analyzer/internal/state"
)

// ResultKind distinguishes a job's no-op outcome from one requesting a
// notification.
type ResultKind string

const (
	KindNoNotify ResultKind = "no_notify"
	KindNotify   ResultKind = "notify"
)

// JobResult is the tagged outcome of one job's Run call.
type JobResult struct {
	Kind        ResultKind
	Reason      string // set when Kind == KindNoNotify
	Title       string // set when Kind == KindNotify
	Body        string
	CooldownKey string // optional; empty means no cooldown gate
	CooldownMs  int64
}

// NoNotify builds a KindNoNotify result.
func NoNotify(reason string) JobResult {
	return JobResult{Kind: KindNoNotify, Reason: reason}
}

// Notify builds a KindNotify result with no cooldown gate.
func Notify(title, body string) JobResult {
	return JobResult{Kind: KindNotify, Title: title, Body: body}
}

// NotifyWithCooldown builds a KindNotify result gated by a minimum
// inter-notification interval tracked under cooldownKey in state.
func NotifyWithCooldown(title, body, cooldownKey string, cooldownMs int64) JobResult {
	return JobResult{Kind: KindNotify, Title: title, Body: body, CooldownKey: cooldownKey, CooldownMs: cooldownMs}
}

// Context groups the dependencies threaded to every job in a tick: the
// clock reading already taken for this tick (never re-read mid-tick, to
// preserve determinism), the state store, the notifier, and a
// cancellation-capable context.Context for external calls. This is the
// "plain record of small interfaces, no hidden global state" shape in
// place of threading a clock/HTTP/notifier closure through every call.
type Context struct {
	context.Context
	Now      time.Time
	State    *state.Store
	Notifier notifier.Notifier
}

// Job is a named (shouldRun, run) pair: the unit of scheduling.
type Job interface {
	ID() string
	ShouldRun(sc *Context) bool
	Run(sc *Context) (JobResult, error)
}

// TickResult reports what a single runTick call did, in job order.
type TickResult struct {
	Executed []string
	Notified []string
	Skipped  []string
}

// ErrorKind classifies scheduler-fatal failures.
type ErrorKind string

const (
	KindJobError      ErrorKind = "job_error"
	KindNotifierError ErrorKind = "notifier_error"
)

// Error is a fatal scheduler failure: the tick aborts, but state and
// notifications already committed before the failing job remain intact.
type Error struct {
	Kind  ErrorKind
	JobID string
	Cause error
}

func (e *Error) Error() string {
	return string(e.Kind) + " in job " + e.JobID + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }
