// Package stdlib is funk's standard library of native functions:
// printing, variable assignment, arithmetic, comparisons, control flow,
// arrays, maps, file I/O, and a `require` module loader. Spec.md
// explicitly scopes all of this out of the core ("external collaborator
// with a stated interface"); this package is the collaborator, built
// the way the reference implementation's funk_std.c builds `print` and
// `set` and extended in that same idiom for the rest.
package stdlib

import (
	"github.com/funk-lang/funk/pkg/object"
	"github.com/spf13/afero"
)

// Host is the subset of *vm.VM's API the natives in this package need.
// It's declared here, not imported from pkg/vm, so pkg/stdlib has no
// compile-time dependency on pkg/vm at all — any object.VM value handed
// to a NativeFn is simply type-asserted to Host at call time, and
// *vm.VM satisfies it structurally.
type Host interface {
	object.VM

	ToNumber(fn object.Value) float64
	NumberToString(value float64) string
	IsTrue(fn object.Value) bool
	ToString(fn object.Value) string

	CreateString(s string) *object.String
	CreateEmptyFunction(name string) *object.BasicFunction
	CreateNativeFunction(name string, fn object.NativeFn) *object.NativeFunction

	SetVariable(name string, value object.Value)
	GetVariable(name string) object.Value

	Run(fn object.Value, argc uint8) object.Value
	RunString(name, source string) object.Value
}

// Registrar is the narrow surface Install needs to hang natives off
// globals — again a local interface rather than an import of pkg/vm.
type Registrar interface {
	DefineNative(name string, fn object.NativeFn) *object.NativeFunction
}

// Install registers funk's full standard library into reg. fs backs
// readFile/writeFile/require; passing nil uses the real OS filesystem
// (afero.NewOsFs()) — tests pass an afero.NewMemMapFs() instead.
func Install(reg Registrar, fs afero.Fs) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	reg.DefineNative("print", print_)
	reg.DefineNative("set", set)

	reg.DefineNative("add", add)
	reg.DefineNative("subtract", subtract)
	reg.DefineNative("multiply", multiply)
	reg.DefineNative("divide", divide)
	reg.DefineNative("equal", equal)
	reg.DefineNative("lessEqual", lessEqual)

	reg.DefineNative("if", if_)
	reg.DefineNative("while", while)
	reg.DefineNative("for", for_)

	reg.DefineNative("array", arrayCtor)
	reg.DefineNative("map", mapCtor)

	installIO(reg, fs)
}

func host(vm object.VM) Host {
	return vm.(Host)
}

func boolName(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
