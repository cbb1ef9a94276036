package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	refptrerrors "github.com/wippyai/refptr/errors"
)

func run(t *testing.T, doc string) error {
	t.Helper()
	s, err := Parse([]byte(doc))
	require.NoError(t, err)
	return NewRunner().Run(s)
}

func TestRunner_Scenario(t *testing.T) {
	require.NoError(t, run(t, scenarioYAML))
}

func TestRunner_FullLifetime(t *testing.T) {
	require.NoError(t, run(t, `
name: full-lifetime
steps:
  - op: new
    ptr: a
    value: hello
  - op: clone
    ptr: b
    from: a
  - op: downgrade
    ptr: w
    from: a
  - op: reset
    ptr: a
  - op: expect
    ptr: b
    equals: hello
  - op: expect
    ptr: w
    expired: false
  - op: reset
    ptr: b
  - op: expect
    ptr: w
    expired: true
  - op: lock
    ptr: l
    from: w
  - op: expect
    ptr: l
    empty: true
`))
}

func TestRunner_MoveEmptiesSource(t *testing.T) {
	require.NoError(t, run(t, `
name: move-empties-source
steps:
  - op: new
    ptr: a
    value: payload
  - op: move
    ptr: b
    from: a
  - op: expect
    ptr: a
    empty: true
  - op: expect
    ptr: b
    equals: payload
`))
}

func TestRunner_WeakNeverAttaches(t *testing.T) {
	require.NoError(t, run(t, `
name: raw-weak
steps:
  - op: weak
    ptr: w
    value: orphan
  - op: expect
    ptr: w
    expired: true
  - op: lock
    ptr: l
    from: w
  - op: expect
    ptr: l
    empty: true
`))
}

func TestRunner_WeakAssignmentMovesObservation(t *testing.T) {
	require.NoError(t, run(t, `
name: weak-assign
steps:
  - op: new
    ptr: a
    value: first
  - op: new
    ptr: b
    value: second
  - op: downgrade
    ptr: w1
    from: a
  - op: downgrade
    ptr: w2
    from: b
  - op: assign
    ptr: w1
    from: w2
  - op: release
    ptr: a
  - op: expect
    ptr: w1
    expired: false
  - op: expect
    ptr: w1
    equals: second
`))
}

func TestRunner_ExpectationFailure(t *testing.T) {
	err := run(t, `
name: doomed
steps:
  - op: new
    ptr: a
    value: hello
  - op: expect
    ptr: a
    equals: goodbye
`)
	require.Error(t, err)

	var serr *refptrerrors.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, refptrerrors.PhaseRun, serr.Phase)
	assert.Equal(t, refptrerrors.KindExpectation, serr.Kind)
	assert.Equal(t, 2, serr.StepIndex)
}

func TestRunner_UnknownPointer(t *testing.T) {
	err := run(t, `
name: missing
steps:
  - op: clone
    ptr: b
    from: nowhere
`)
	require.Error(t, err)

	var serr *refptrerrors.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, refptrerrors.KindUnknownPointer, serr.Kind)
}

func TestRunner_DuplicatePointer(t *testing.T) {
	err := run(t, `
name: duplicate
steps:
  - op: new
    ptr: a
    value: one
  - op: new
    ptr: a
    value: two
`)
	require.Error(t, err)

	var serr *refptrerrors.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, refptrerrors.KindDuplicatePointer, serr.Kind)
}

func TestRunner_States(t *testing.T) {
	s, err := Parse([]byte(`
name: snapshot
steps:
  - op: new
    ptr: a
    value: hello
  - op: clone
    ptr: b
    from: a
  - op: downgrade
    ptr: w
    from: a
`))
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	r := NewRunner()
	defer r.Close()
	for i := range s.Steps {
		require.NoError(t, r.Exec(s.Name, i+1, &s.Steps[i]))
	}

	states := r.States()
	require.Len(t, states, 3)

	// Sorted by name: a, b, w
	assert.Equal(t, "a", states[0].Name)
	assert.Equal(t, "strong", states[0].Kind)
	assert.Equal(t, "hello", states[0].Value)
	assert.Equal(t, uint(2), states[0].Shared)
	assert.Equal(t, uint(1), states[0].Weak)

	assert.Equal(t, "w", states[2].Name)
	assert.Equal(t, "weak", states[2].Kind)
	assert.False(t, states[2].Expired)
	assert.Equal(t, "hello", states[2].Value)
}
