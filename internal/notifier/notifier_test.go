package notifier

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFake_RecordsCallsInOrder(t *testing.T) {
	f := &Fake{}
	require.NoError(t, f.Notify("a", "1"))
	require.NoError(t, f.Notify("b", "2"))

	require.Equal(t, []Call{{Title: "a", Body: "1"}, {Title: "b", Body: "2"}}, f.Calls)
}

func TestFake_ReturnsScriptedError(t *testing.T) {
	f := &Fake{Err: &Error{Message: "boom"}}
	err := f.Notify("a", "1")
	require.Error(t, err)
	require.Len(t, f.Calls, 1)
}
