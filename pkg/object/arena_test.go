package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funk-lang/funk/pkg/object"
)

type fakeVM struct{ errors []string }

func (f *fakeVM) Error(message string) { f.errors = append(f.errors, message) }

func TestArenaTeardownRunsCleanupExactlyOnce(t *testing.T) {
	arena := &object.Arena{}
	vm := &fakeVM{}

	calls := 0
	nf := arena.NewNativeFunction(arena.NewString("n"), func(object.VM, []object.Value, uint8) object.Value { return nil })
	nf.Cleanup = func(vm object.VM, fn *object.NativeFunction) { calls++ }

	arena.Teardown(vm)
	assert.Equal(t, 1, calls)

	// Tearing down again (e.g. a double-close) must not re-invoke cleanup:
	// Teardown clears the chain, so a second call walks nothing.
	arena.Teardown(vm)
	assert.Equal(t, 1, calls)
}

func TestArenaNewAllocationsChain(t *testing.T) {
	arena := &object.Arena{}
	s1 := arena.NewString("a")
	s2 := arena.NewString("b")
	_ = s1

	// The most recent allocation is spliced onto the head; Teardown
	// should reach both without panicking regardless of order.
	require.NotNil(t, s2)
	arena.Teardown(&fakeVM{})
}
