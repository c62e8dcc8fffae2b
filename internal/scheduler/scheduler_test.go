package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blackwell-systems/aw-analyzer/internal/notifier"
	"github.com/blackwell-systems/aw-analyzer/internal/state"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	id        string
	shouldRun bool
	result    JobResult
	err       error
	runCount  int
}

func (f *fakeJob) ID() string { return f.id }

func (f *fakeJob) ShouldRun(sc *Context) bool { return f.shouldRun }

func (f *fakeJob) Run(sc *Context) (JobResult, error) {
	f.runCount++
	return f.result, f.err
}

func newTestStore(t *testing.T) *state.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	store, err := state.Open(path)
	require.NoError(t, err)
	return store
}

func newTestContext(t *testing.T, now time.Time) (*Context, *notifier.Fake) {
	fake := &notifier.Fake{}
	return &Context{
		Context:  context.Background(),
		Now:      now,
		State:    newTestStore(t),
		Notifier: fake,
	}, fake
}

func TestRunTick_CooldownSkip(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	sc, fake := newTestContext(t, now)
	require.NoError(t, sc.State.SetTime("cooldown:job", now.Add(-5*time.Minute).UnixMilli()))

	job := &fakeJob{id: "job", shouldRun: true, result: NotifyWithCooldown("t", "b", "cooldown:job", 60*60*1000)}
	result, err := RunTick(sc, []Job{job})

	require.NoError(t, err)
	require.Empty(t, result.Notified)
	require.Equal(t, []string{"job"}, result.Executed)
	require.Len(t, fake.Calls, 0)

	last, ok := sc.State.GetTime("cooldown:job")
	require.True(t, ok)
	require.Equal(t, now.Add(-5*time.Minute).UnixMilli(), last)
}

func TestRunTick_CooldownAllow(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	sc, fake := newTestContext(t, now)
	require.NoError(t, sc.State.SetTime("cooldown:job", now.Add(-2*time.Hour).UnixMilli()))

	job := &fakeJob{id: "job", shouldRun: true, result: NotifyWithCooldown("t", "b", "cooldown:job", 60*60*1000)}
	result, err := RunTick(sc, []Job{job})

	require.NoError(t, err)
	require.Equal(t, []string{"job"}, result.Notified)
	require.Len(t, fake.Calls, 1)

	last, ok := sc.State.GetTime("cooldown:job")
	require.True(t, ok)
	require.Equal(t, now.UnixMilli(), last)
}

func TestRunTick_SkippedJobIsNotExecuted(t *testing.T) {
	now := time.Now()
	sc, _ := newTestContext(t, now)
	job := &fakeJob{id: "job", shouldRun: false}

	result, err := RunTick(sc, []Job{job})
	require.NoError(t, err)
	require.Equal(t, []string{"job"}, result.Skipped)
	require.Empty(t, result.Executed)
	require.Zero(t, job.runCount)
}

func TestRunTick_OrderPreserved(t *testing.T) {
	now := time.Now()
	sc, _ := newTestContext(t, now)
	jobA := &fakeJob{id: "a", shouldRun: true, result: NoNotify("nothing to do")}
	jobB := &fakeJob{id: "b", shouldRun: true, result: NoNotify("nothing to do")}

	result, err := RunTick(sc, []Job{jobA, jobB})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, result.Executed)
}

func TestRunTick_JobErrorAbortsTickButKeepsPriorProgress(t *testing.T) {
	now := time.Now()
	sc, fake := newTestContext(t, now)
	jobA := &fakeJob{id: "a", shouldRun: true, result: Notify("t", "b")}
	jobB := &fakeJob{id: "b", shouldRun: true, err: os.ErrClosed}
	jobC := &fakeJob{id: "c", shouldRun: true, result: NoNotify("unreached")}

	result, err := RunTick(sc, []Job{jobA, jobB, jobC})
	require.Error(t, err)
	var schedErr *Error
	require.ErrorAs(t, err, &schedErr)
	require.Equal(t, "b", schedErr.JobID)

	require.Equal(t, []string{"a"}, result.Executed)
	require.Equal(t, []string{"a"}, result.Notified)
	require.Len(t, fake.Calls, 1)
	require.Zero(t, jobC.runCount)
}

func TestRunTick_NotifierErrorAbortsTick(t *testing.T) {
	now := time.Now()
	fake := &notifier.Fake{Err: &notifier.Error{Message: "boom"}}
	sc := &Context{Context: context.Background(), Now: now, State: newTestStore(t), Notifier: fake}
	job := &fakeJob{id: "a", shouldRun: true, result: Notify("t", "b")}

	_, err := RunTick(sc, []Job{job})
	require.Error(t, err)
	var schedErr *Error
	require.ErrorAs(t, err, &schedErr)
	require.Equal(t, KindNotifierError, schedErr.Kind)
}

func TestRunTick_CooldownWriteFailureIsLoggedNotFatal(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	// Force every persist() call to fail: a regular file where the
	// store expects to create a subdirectory makes os.MkdirAll return
	// ENOTDIR regardless of process privileges.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	store, err := state.Open(filepath.Join(blocker, "sub", "state.json"))
	require.NoError(t, err)

	fake := &notifier.Fake{}
	sc := &Context{Context: context.Background(), Now: now, State: store, Notifier: fake}
	job := &fakeJob{id: "job", shouldRun: true, result: NotifyWithCooldown("t", "b", "cooldown:job", 60*60*1000)}

	result, err := RunTick(sc, []Job{job})
	require.NoError(t, err)
	require.Equal(t, []string{"job"}, result.Notified)
	require.Len(t, fake.Calls, 1)

	_, ok := store.GetTime("cooldown:job")
	require.False(t, ok)
}

func TestRunTick_RepeatingSameTickAfterCooldownWriteYieldsNoSecondNotification(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	sc, fake := newTestContext(t, now)
	job := &fakeJob{id: "job", shouldRun: true, result: NotifyWithCooldown("t", "b", "cooldown:job", 60*60*1000)}

	_, err := RunTick(sc, []Job{job})
	require.NoError(t, err)
	require.Len(t, fake.Calls, 1)

	job.runCount = 0
	result, err := RunTick(sc, []Job{job})
	require.NoError(t, err)
	require.Empty(t, result.Notified)
	require.Len(t, fake.Calls, 1)
}
