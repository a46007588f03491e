package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funk-lang/funk/pkg/bytecode"
	"github.com/funk-lang/funk/pkg/compiler"
	"github.com/funk-lang/funk/pkg/object"
	"github.com/funk-lang/funk/pkg/table"
)

type fakeVM struct{ errors []string }

func (f *fakeVM) Error(message string) { f.errors = append(f.errors, message) }

func newFixture() (*object.Arena, *object.Interner) {
	arena := &object.Arena{}
	strings := table.New()
	return arena, object.NewInterner(arena, strings)
}

func TestEmptySourceCompilesToReturningNull(t *testing.T) {
	arena, interner := newFixture()
	fn, ok := compiler.Compile(&fakeVM{}, arena, interner, "top", "")
	require.True(t, ok)
	require.Equal(t, []byte{byte(bytecode.OpPushNull), byte(bytecode.OpReturn)}, fn.Code)
}

func TestExpressionStatementEmitsPop(t *testing.T) {
	arena, interner := newFixture()
	fn, ok := compiler.Compile(&fakeVM{}, arena, interner, "top", "hello")
	require.True(t, ok)

	// bare NAME not followed by '(' -> GET_STRING, then POP from the
	// expression-statement rule, then the trailing PUSH_NULL; RETURN.
	assert.Equal(t, bytecode.OpGetString, bytecode.Op(fn.Code[0]))
	assert.Equal(t, bytecode.OpPop, bytecode.Op(fn.Code[3]))
	assert.Equal(t, bytecode.OpPushNull, bytecode.Op(fn.Code[4]))
	assert.Equal(t, bytecode.OpReturn, bytecode.Op(fn.Code[5]))
}

func TestCallEmitsGetThenCall(t *testing.T) {
	arena, interner := newFixture()
	fn, ok := compiler.Compile(&fakeVM{}, arena, interner, "top", "greet()")
	require.True(t, ok)

	assert.Equal(t, bytecode.OpGet, bytecode.Op(fn.Code[0]))
	assert.Equal(t, bytecode.OpCall, bytecode.Op(fn.Code[3]))
	assert.Equal(t, byte(0), fn.Code[4], "zero-argument call")
}

func TestChainedCallEmitsRepeatedCall(t *testing.T) {
	arena, interner := newFixture()
	fn, ok := compiler.Compile(&fakeVM{}, arena, interner, "top", "make()()")
	require.True(t, ok)

	var calls int
	for i := 0; i < len(fn.Code); {
		op := bytecode.Op(fn.Code[i])
		if op == bytecode.OpCall {
			calls++
			i += 2
			continue
		}
		if op == bytecode.OpGet || op == bytecode.OpGetString {
			i += 3
			continue
		}
		i++
	}
	assert.Equal(t, 2, calls, "f()() compiles to two CALLs chained off one GET")
}

func TestFunctionDeclarationEmitsDefine(t *testing.T) {
	arena, interner := newFixture()
	fn, ok := compiler.Compile(&fakeVM{}, arena, interner, "top", "function greet(){ print(hello) }")
	require.True(t, ok)

	assert.Equal(t, bytecode.OpDefine, bytecode.Op(fn.Code[0]))

	idx := bytecode.Uint16(fn.Code[1:3])
	inner, ok := fn.Constants[idx].(*object.BasicFunction)
	require.True(t, ok)
	assert.Equal(t, "greet", inner.FunctionName.Chars)
	assert.True(t, len(inner.Code) > 0)
}

func TestLambdaSyntheticName(t *testing.T) {
	arena, interner := newFixture()
	fn, ok := compiler.Compile(&fakeVM{}, arena, interner, "top", "function make(){ return (x) => x }")
	require.True(t, ok)

	idx := bytecode.Uint16(fn.Code[1:3])
	makeFn := fn.Constants[idx].(*object.BasicFunction)

	var lambdaName string
	for _, c := range makeFn.Constants {
		if bf, ok := c.(*object.BasicFunction); ok {
			lambdaName = bf.FunctionName.Chars
		}
	}
	assert.Contains(t, lambdaName, "lambda make")
}

func TestSyntaxErrorSetsHadErrorAndReturnsNil(t *testing.T) {
	arena, interner := newFixture()
	vm := &fakeVM{}
	fn, ok := compiler.Compile(vm, arena, interner, "top", "function (){}")

	assert.False(t, ok)
	assert.Nil(t, fn)
	assert.NotEmpty(t, vm.errors)
}
