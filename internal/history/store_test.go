package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mindcmd/internal/command"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.UnixMilli(1_700_000_000_000)
	require.NoError(t, s.Record(ctx, Entry{ID: "1", Time: base, Command: "down", Raw: "3j", Source: "keys", Count: 3, Success: true}))
	require.NoError(t, s.Record(ctx, Entry{ID: "2", Time: base.Add(time.Second), Command: "rename", Raw: `rename "x"`, Source: "text", Args: `text="x"`, Error: "No node selected"}))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "rename", entries[0].Command)
	assert.False(t, entries[0].Success)
	assert.Equal(t, "No node selected", entries[0].Error)
	assert.Equal(t, `text="x"`, entries[0].Args)

	assert.Equal(t, "down", entries[1].Command)
	assert.Equal(t, 3, entries[1].Count)
	assert.True(t, entries[1].Success)
	assert.True(t, entries[1].Time.Equal(base))
}

func TestPruneKeepsNewest(t *testing.T) {
	s := newTestStore(t, WithLimit(3))
	ctx := context.Background()

	for i := range 5 {
		require.NoError(t, s.Record(ctx, Entry{ID: uuid.NewString(), Command: "cmd", Count: i, Success: true}))
	}

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []int{4, 3, 2}, []int{entries[0].Count, entries[1].Count, entries[2].Count})
}

func TestByCommand(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, e := range []Entry{
		{Command: "down", Success: true},
		{Command: "down", Success: true},
		{Command: "delete", Success: false},
		{Command: "down", Success: false},
	} {
		require.NoError(t, s.Record(ctx, e))
	}

	stats, err := s.ByCommand(ctx, 5)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "down", stats[0].Command)
	assert.Equal(t, 3, stats[0].Runs)
	assert.Equal(t, 1, stats[0].Failures)
	assert.Equal(t, "delete", stats[1].Command)
}

func TestPostDispatch(t *testing.T) {
	s := newTestStore(t)

	inv := &command.Invocation{
		ID:     uuid.New(),
		Name:   "add",
		Args:   command.Args{"text": command.String("New node")},
		Source: command.SourceKeys,
		Raw:    "o",
	}
	result := command.SuccessWithMessage("Added node")
	s.PostDispatch(context.Background(), inv, &result)

	entries, err := s.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, inv.ID.String(), entries[0].ID)
	assert.Equal(t, "keys", entries[0].Source)
	assert.Equal(t, `text="New node"`, entries[0].Args)
	assert.Equal(t, "Added node", entries[0].Message)
}
