package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funk-lang/funk/pkg/object"
)

func TestHashBytesIsDeterministic(t *testing.T) {
	a := object.HashBytes([]byte("hello"))
	b := object.HashBytes([]byte("hello"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, object.HashBytes([]byte("world")))
}

func TestBasicFunctionAddConstantDedupesByIdentity(t *testing.T) {
	fn := &object.BasicFunction{}
	s1 := &object.String{Chars: "a"}
	s2 := &object.String{Chars: "a"} // distinct object, same bytes

	i1 := fn.AddConstant(s1)
	i2 := fn.AddConstant(s1)
	i3 := fn.AddConstant(s2)

	assert.Equal(t, i1, i2, "inserting the same object twice returns the same index")
	assert.NotEqual(t, i1, i3, "a distinct object with equal bytes is a distinct constant")
	require.Len(t, fn.Constants, 2)
}

func TestBasicFunctionWriteUint16IsBigEndian(t *testing.T) {
	fn := &object.BasicFunction{}
	fn.WriteUint16(0x0102)
	require.Equal(t, []byte{0x01, 0x02}, fn.Code)
}

func TestHasCode(t *testing.T) {
	bare := &object.BasicFunction{FunctionName: &object.String{Chars: "x"}}
	assert.False(t, object.HasCode(bare), "a bare BasicFunction (from GET_STRING) carries no code")

	coded := &object.BasicFunction{FunctionName: &object.String{Chars: "f"}}
	coded.WriteByte(0)
	assert.True(t, object.HasCode(coded))

	native := &object.NativeFunction{FunctionName: &object.String{Chars: "n"}}
	assert.True(t, object.HasCode(native), "a native always has code to run")

	assert.False(t, object.HasCode(nil))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "null", object.ToString(nil))

	s := &object.String{Chars: "hi"}
	assert.Equal(t, "hi", object.ToString(s))

	fn := &object.BasicFunction{FunctionName: &object.String{Chars: "greet"}}
	assert.Equal(t, "greet", object.ToString(fn))
}
