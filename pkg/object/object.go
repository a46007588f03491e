// Package object defines funk's heap value model: interned strings,
// user-defined (basic) functions, and host-provided (native) functions.
//
// funk has exactly one first-class value: the function. A BasicFunction
// is compiled from source; a NativeFunction is a host callable dressed up
// as a function value; a String is the function's name taken as data. All
// three are Objects, and every live Object is tracked by an Arena so it can
// be torn down when its VM goes away.
package object

import "hash/fnv"

// Kind discriminates the concrete type of an Object.
type Kind uint8

const (
	KindString Kind = iota
	KindBasicFunction
	KindNativeFunction
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBasicFunction:
		return "basic-function"
	case KindNativeFunction:
		return "native-function"
	default:
		return "unknown"
	}
}

// Value is implemented by every heap object kind (*String,
// *BasicFunction, *NativeFunction). A nil Value represents funk's null.
type Value interface {
	// next/setNext thread the object onto the arena's allocation chain.
	next() Value
	setNext(Value)
	// Name returns the function's name, or itself for a bare String.
	Name() *String
}

// Object is the supertype of every funk heap value. Concrete kinds embed
// Object as their first field, giving the arena a uniform handle for
// chaining and teardown without requiring a common base class.
type Object struct {
	Kind Kind
	link Value
}

func (o *Object) next() Value     { return o.link }
func (o *Object) setNext(v Value) { o.link = v }

// String is an immutable, interned byte sequence with a precomputed
// 32-bit FNV-1a hash. For a given VM, at most one String exists per
// distinct byte sequence: pointer equality coincides with value equality.
type String struct {
	Object
	Chars string
	Hash  uint32
}

func (s *String) Name() *String { return s }

// HashBytes computes the FNV-1a hash funk uses for interning and table
// probing. This is hash/fnv's New32a() rather than a hand-rolled loop:
// the offset basis (2166136261) and prime (16777619) spec.md names are
// exactly FNV-1a's standard constants, and no third-party FNV
// implementation appears anywhere in the retrieval pack.
func HashBytes(b []byte) uint32 {
	h := fnv.New32a()
	_, _ = h.Write(b)
	return h.Sum32()
}

// Function is the common shape of BasicFunction and NativeFunction: both
// carry a Name used for variable resolution and printing.
type Function interface {
	Value
	isFunction()
}

// BasicFunction is a user-defined function: an argument-name list, a
// growable bytecode buffer, and a constant pool deduplicated by identity.
// Every 16-bit constant index emitted into Code must resolve to an
// in-range Constants slot; pkg/compiler is responsible for the invariant,
// pkg/vm trusts it.
type BasicFunction struct {
	Object
	FunctionName *String

	ArgumentNames []*String // 0-255 entries

	Code []byte

	Constants []Value
}

func (f *BasicFunction) Name() *String { return f.FunctionName }
func (*BasicFunction) isFunction()     {}

// AddConstant appends value to the constant pool, deduplicating by
// identity (pointer equality), and returns its index. Inserting the same
// object twice returns the same index.
func (f *BasicFunction) AddConstant(value Value) uint16 {
	for i, c := range f.Constants {
		if c == value {
			return uint16(i)
		}
	}
	f.Constants = append(f.Constants, value)
	return uint16(len(f.Constants) - 1)
}

// WriteByte appends a single bytecode byte.
func (f *BasicFunction) WriteByte(b byte) {
	f.Code = append(f.Code, b)
}

// WriteUint16 appends a 16-bit operand, big-endian (high byte first), as
// spec.md's emission contract requires.
func (f *BasicFunction) WriteUint16(v uint16) {
	f.Code = append(f.Code, byte(v>>8), byte(v))
}

// VM is the minimal surface pkg/object needs from the virtual machine,
// kept as an interface here so this package never imports pkg/vm
// (which itself imports pkg/object).
type VM interface {
	Error(message string)
}

// NativeFn is the signature every host-provided callable implements:
// given the VM, the arguments (self points at argv[0] on the operand
// stack), and the argument count, return a result function or nil.
type NativeFn func(vm VM, self []Value, argCount uint8) Value

// NativeFunction wraps a host Go function as a funk function value. The
// opaque Data payload, together with Cleanup, lets a native attach state
// (an array, a map, an open file) to a function-shaped value; Cleanup
// runs exactly once, at VM teardown.
type NativeFunction struct {
	Object
	FunctionName *String
	Fn           NativeFn
	Data         interface{}
	Cleanup      func(vm VM, fn *NativeFunction)
}

func (f *NativeFunction) Name() *String { return f.FunctionName }
func (*NativeFunction) isFunction()     {}

// HasCode reports whether fn carries code that should be run to derive
// its value (spec.md §4.6's toNumber/isTrue helpers). A NativeFunction
// always has code — calling it is how a native produces its result. A
// BasicFunction has code only once the compiler has emitted instructions
// into it; one created bare by GET_STRING or createEmptyFunction (a pure
// name used as string data) has none.
func HasCode(fn Value) bool {
	switch v := fn.(type) {
	case *NativeFunction:
		return true
	case *BasicFunction:
		return len(v.Code) > 0
	default:
		return false
	}
}

// ToString returns fn's name as a Go string, or "null" for a nil value,
// mirroring funk_to_string in the original C implementation.
func ToString(fn Value) string {
	if fn == nil {
		return "null"
	}
	name := fn.Name()
	if name == nil {
		return ""
	}
	return name.Chars
}
