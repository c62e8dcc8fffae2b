package scheduler

import "github.com/blackwell-systems/aw-analyzer/internal/logging"

// log returns the current process-wide logger scoped to this package.
// Looked up fresh on each call rather than cached at init time, since
// logging.Configure may run after package variables are initialized.
func log() *logging.Logger {
	return logging.L().With("scheduler")
}

// RunTick deterministically evaluates jobs, in order, against a single
// shared clock reading. Job N starts only after job N-1's full lifecycle
// — including its cooldown-state write — completes; there is no fan-out.
// The first job_error or notifier_error aborts the tick: jobs already
// executed, and their notifications and state writes, remain committed.
func RunTick(sc *Context, jobs []Job) (TickResult, error) {
	result := TickResult{}

	for _, job := range jobs {
		if !job.ShouldRun(sc) {
			result.Skipped = append(result.Skipped, job.ID())
			continue
		}

		jobResult, err := job.Run(sc)
		if err != nil {
			return result, &Error{Kind: KindJobError, JobID: job.ID(), Cause: err}
		}
		result.Executed = append(result.Executed, job.ID())

		if jobResult.Kind != KindNotify {
			continue
		}

		if !cooldownAllows(sc, jobResult) {
			continue
		}

		if err := sc.Notifier.Notify(jobResult.Title, jobResult.Body); err != nil {
			return result, &Error{Kind: KindNotifierError, JobID: job.ID(), Cause: err}
		}
		result.Notified = append(result.Notified, job.ID())

		if jobResult.CooldownKey != "" {
			if err := sc.State.SetTime(jobResult.CooldownKey, sc.Now.UnixMilli()); err != nil {
				log().Warn("writing cooldown state for %s: %v", job.ID(), err)
			}
		}
	}

	return result, nil
}

// cooldownAllows reports whether a notify result is allowed to fire now.
// A result with no cooldown key, or whose key has no recorded time, is
// allowed; otherwise it is suppressed while strictly less than cooldownMs
// has elapsed since the last recorded notification for that key, and
// allowed once at least cooldownMs has elapsed.
func cooldownAllows(sc *Context, result JobResult) bool {
	if result.CooldownKey == "" {
		return true
	}
	last, ok := sc.State.GetTime(result.CooldownKey)
	if !ok {
		return true
	}
	elapsed := sc.Now.UnixMilli() - last
	return elapsed >= result.CooldownMs
}
