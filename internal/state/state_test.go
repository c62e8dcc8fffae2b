package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "state.json")
}

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	path := tempStorePath(t)
	s, err := Open(path)
	require.NoError(t, err)
	_, ok := s.Get("anything")
	require.False(t, ok)
}

func TestOpen_MalformedFileIsTreatedAsEmpty(t *testing.T) {
	path := tempStorePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	_, ok := s.Get("anything")
	require.False(t, ok)
}

func TestSetGet_RoundTrip(t *testing.T) {
	path := tempStorePath(t)
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("k1", "v1"))
	reopened, err := Open(path)
	require.NoError(t, err)

	v, ok := reopened.Get("k1")
	require.True(t, ok)
	require.Equal(t, "v1", v)
}

func TestClear_ThenSetThenReopen(t *testing.T) {
	path := tempStorePath(t)
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Set("k", nil))

	reopened, err := Open(path)
	require.NoError(t, err)
	v, ok := reopened.Get("k")
	require.True(t, ok)
	require.Nil(t, v)
}

func TestUnknownKeyPreservation_AcrossProcesses(t *testing.T) {
	path := tempStorePath(t)

	// "process A"
	a, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, a.Set("k1", "v1"))

	// "process B" opens independently and writes a different key.
	b, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, b.Set("k2", "v2"))

	// k1 must have survived B's write.
	v, ok := b.Get("k1")
	require.True(t, ok)
	require.Equal(t, "v1", v)
}

func TestGetTime_SetTime_RoundTrip(t *testing.T) {
	path := tempStorePath(t)
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.SetTime("cooldown:job", 1700000000000))

	ts, ok := s.GetTime("cooldown:job")
	require.True(t, ok)
	require.Equal(t, int64(1700000000000), ts)
}

func TestGetTime_MissingIsUndefined(t *testing.T) {
	path := tempStorePath(t)
	s, err := Open(path)
	require.NoError(t, err)

	_, ok := s.GetTime("nope")
	require.False(t, ok)
}

func TestGetTime_NonNumericIsUndefined(t *testing.T) {
	path := tempStorePath(t)
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("daily:job:2026-01-02", "2026-01-02"))
	_, ok := s.GetTime("daily:job:2026-01-02")
	require.False(t, ok)
}

func TestGetString_DailyMarker(t *testing.T) {
	path := tempStorePath(t)
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("daily:daily-summary:2026-01-02", "2026-01-02"))
	v, ok := s.GetString("daily:daily-summary:2026-01-02")
	require.True(t, ok)
	require.Equal(t, "2026-01-02", v)
}

func TestPersist_WritesValidJSONAtomically(t *testing.T) {
	path := tempStorePath(t)
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", float64(42)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Equal(t, float64(42), doc["k"])

	// No leftover temp file.
	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}
