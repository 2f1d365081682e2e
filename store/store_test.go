package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SpecStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "specs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, InsertFields{
		Title:          "Login",
		Goal:           "Let users sign in",
		Users:          "End users",
		Constraints:    "2 weeks",
		OutputMarkdown: `{"userStories":[]}`,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	spec, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Login", spec.Title)
	assert.Equal(t, "Let users sign in", spec.Goal)
	assert.Equal(t, "End users", spec.Users)
	assert.Equal(t, "2 weeks", spec.Constraints)
	assert.Equal(t, `{"userStories":[]}`, spec.OutputMarkdown)
	assert.False(t, spec.CreatedAt.IsZero())
}

func TestGetUnknownID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, ErrStore))
}

func TestListRecentBoundAndOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := s.Insert(ctx, InsertFields{
			Title:          fmt.Sprintf("spec %d", i),
			Goal:           "goal",
			OutputMarkdown: "{}",
		})
		require.NoError(t, err)
	}

	specs, err := s.ListRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, specs, 5)

	assert.Equal(t, "spec 6", specs[0].Title)
	for i := 1; i < len(specs); i++ {
		assert.False(t, specs[i].CreatedAt.After(specs[i-1].CreatedAt),
			"created_at must be non-increasing")
	}
}

func TestListRecentEmpty(t *testing.T) {
	s := newTestStore(t)

	specs, err := s.ListRecent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestUpdateOutput(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, InsertFields{Title: "t", Goal: "g", OutputMarkdown: "{}"})
	require.NoError(t, err)

	require.NoError(t, s.UpdateOutput(ctx, id, "edited free text"))
	// Full overwrite is idempotent.
	require.NoError(t, s.UpdateOutput(ctx, id, "edited free text"))

	spec, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "edited free text", spec.OutputMarkdown)
}

func TestUpdateOutputUnknownID(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateOutput(context.Background(), "nope", "text")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProbe(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// An empty table is still reachable.
	assert.True(t, s.Probe(ctx))

	_, err := s.Insert(ctx, InsertFields{Title: "t", Goal: "g", OutputMarkdown: "{}"})
	require.NoError(t, err)
	assert.True(t, s.Probe(ctx))

	// A closed handle reads as unreachable, never as an error.
	require.NoError(t, s.Close())
	assert.False(t, s.Probe(ctx))
}
