package chain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cursorkit/internal/input"
)

type recorder struct {
	calls []input.Action
	fail  map[string]error
}

func (r *recorder) Execute(a input.Action) error {
	r.calls = append(r.calls, a)
	return r.fail[a.Name]
}

func (r *recorder) names() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Name
	}
	return out
}

func TestRunDefersAtAceJump(t *testing.T) {
	rec := &recorder{}
	specs := []input.Action{
		input.NewAction("A"),
		input.NewAction("ace_jump_x").WithArgs(input.Args{"mode": "word"}),
		input.NewAction("B"),
		input.NewAction("C"),
	}

	out, err := NewRunner(rec).Run(specs)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "ace_jump_x"}, rec.names())
	assert.Equal(t, Deferred, out.State)
	assert.Equal(t, 2, out.Invoked)
	assert.Equal(t, "ace_jump_x", out.DeferredTo)
	assert.Equal(t, 2, out.Pending)

	jump := rec.calls[1]
	assert.Equal(t, "word", jump.Args.GetString("mode"))
	cont, err := Continuation(jump.Args)
	require.NoError(t, err)
	require.Len(t, cont, 2)
	assert.Equal(t, "B", cont[0].Name)
	assert.Equal(t, "C", cont[1].Name)

	_, injected := specs[1].Args[ContinuationKey]
	assert.False(t, injected, "the caller's args must not be modified")
}

func TestRunWithoutDeferral(t *testing.T) {
	rec := &recorder{}
	out, err := NewRunner(rec).Run([]input.Action{{Name: "A"}, {Name: "B"}})
	require.NoError(t, err)

	assert.Equal(t, Running, out.State)
	assert.Equal(t, 2, out.Invoked)
	for _, c := range rec.calls {
		assert.NotNil(t, c.Args, "missing args default to an empty mapping")
		assert.Equal(t, input.SourceChain, c.Source)
	}
}

func TestRunStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{fail: map[string]error{"B": boom}}

	out, err := NewRunner(rec).Run([]input.Action{{Name: "A"}, {Name: "B"}, {Name: "C"}})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, out.Invoked)
	assert.Equal(t, []string{"A", "B"}, rec.names())
}

func TestRunDeferredLastHasEmptyContinuation(t *testing.T) {
	rec := &recorder{}
	out, err := NewRunner(rec).Run([]input.Action{{Name: "ace_jump_line"}})
	require.NoError(t, err)
	assert.Equal(t, Deferred, out.State)

	cont, err := Continuation(rec.calls[0].Args)
	require.NoError(t, err)
	assert.Empty(t, cont)
}

func TestIsDeferred(t *testing.T) {
	assert.True(t, IsDeferred("ace_jump_word"))
	assert.True(t, IsDeferred("my_ace_jump"))
	assert.False(t, IsDeferred("acejump"))
	assert.Equal(t, "deferred", Deferred.String())
	assert.Equal(t, "running", Running.String())
}
