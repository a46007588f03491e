package bytecode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funk-lang/funk/pkg/bytecode"
)

func TestUint16RoundTrip(t *testing.T) {
	buf := make([]byte, 2)
	bytecode.PutUint16(buf, 0xBEEF)
	assert.Equal(t, []byte{0xBE, 0xEF}, buf)
	assert.Equal(t, uint16(0xBEEF), bytecode.Uint16(buf))
}

func TestOpStringNames(t *testing.T) {
	assert.Equal(t, "RETURN", bytecode.OpReturn.String())
	assert.Equal(t, "CALL", bytecode.OpCall.String())
	assert.Equal(t, "PUSH_CONSTANT", bytecode.OpPushConstant.String())
}

func TestDisassembleListsEveryInstruction(t *testing.T) {
	var code []byte
	code = append(code, byte(bytecode.OpGet))
	code = append(code, 0, 3) // constant index 3
	code = append(code, byte(bytecode.OpCall), 2)
	code = append(code, byte(bytecode.OpPushNull))
	code = append(code, byte(bytecode.OpReturn))

	listing := bytecode.Disassemble(code, func(idx uint16) string {
		if idx == 3 {
			return "greet"
		}
		return "?"
	})

	require.Contains(t, listing, "GET")
	require.Contains(t, listing, "greet")
	require.Contains(t, listing, "CALL")
	require.Contains(t, listing, "argc=2")
	assert.Equal(t, 4, len(strings.Split(strings.TrimRight(listing, "\n"), "\n")))
}
