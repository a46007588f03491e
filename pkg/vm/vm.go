// Package vm implements funk's bytecode interpreter (spec.md §4.5): a
// fixed-capacity operand stack, a dynamically scoped chain of call
// frames, and the dispatch loop that executes a BasicFunction's code.
package vm

import (
	"fmt"
	"os"

	"github.com/funk-lang/funk/pkg/bytecode"
	"github.com/funk-lang/funk/pkg/compiler"
	"github.com/funk-lang/funk/pkg/object"
	"github.com/funk-lang/funk/pkg/roman"
	"github.com/funk-lang/funk/pkg/table"
)

// stackCapacity is the fixed operand-stack size spec.md §3/§5 specifies.
const stackCapacity = 256

// callFrame is created on every invocation of a BasicFunction and lives
// strictly for the duration of that call (spec.md §3's CallFrame).
type callFrame struct {
	callee    *object.BasicFunction
	locals    *table.Table
	parent    *callFrame
	stackBase int // operand-stack position this frame's call began at
}

// VM is funk's process-wide interpreter state: the arena, the intern
// table, the globals table, the operand stack, and the current call
// frame (spec.md §3's VM).
type VM struct {
	arena    *object.Arena
	interner *object.Interner
	strings  *table.Table
	globals  *table.Table

	stack    [stackCapacity]object.Value
	stackTop int
	frame    *callFrame

	errorFn func(message string)
}

// New builds a fresh VM (spec.md's createVm). Unlike the original C API
// there's no explicit alloc/free callback pair to inject — Go's runtime
// allocator plays that role — but the error callback remains a hook the
// host can install via SetErrorHandler.
func New() *VM {
	strings := table.New()
	arena := &object.Arena{}
	vm := &VM{
		strings: strings,
		globals: table.New(),
		arena:   arena,
	}
	vm.interner = object.NewInterner(arena, strings)
	return vm
}

// SetErrorHandler installs the callback VM.Error reports through. Without
// one, errors go to stderr.
func (vm *VM) SetErrorHandler(fn func(message string)) {
	vm.errorFn = fn
}

// Error implements object.VM, the narrow interface pkg/object and
// pkg/compiler depend on to report problems without importing pkg/vm.
func (vm *VM) Error(message string) {
	if vm.errorFn != nil {
		vm.errorFn(message)
		return
	}
	fmt.Fprintln(os.Stderr, message)
}

// StackTrace returns the names of the currently active call frames,
// innermost first — the data the reference implementation's
// funk_print_stack_trace walks before reporting an error (main.c's
// print_error), exposed here so a host error callback can print the
// same thing.
func (vm *VM) StackTrace() []string {
	var trace []string
	for f := vm.frame; f != nil; f = f.parent {
		trace = append(trace, object.ToString(f.callee))
	}
	return trace
}

// Close tears down every object this VM ever allocated, running each
// NativeFunction's Cleanup hook exactly once (spec.md's freeVm).
func (vm *VM) Close() {
	vm.arena.Teardown(vm)
}

// Compile translates source into a top-level BasicFunction named name.
func (vm *VM) Compile(name, source string) (*object.BasicFunction, bool) {
	return compiler.Compile(vm, vm.arena, vm.interner, name, source)
}

// RunString compiles and immediately runs source, funk's runString.
func (vm *VM) RunString(name, source string) object.Value {
	fn, ok := vm.Compile(name, source)
	if !ok {
		return nil
	}
	return vm.Run(fn, 0)
}

// Run executes fn with argc arguments (padded with null, since a
// top-level host invocation has no operand-stack arguments already
// staged) and returns its single result value, spec.md's run(vm,
// function, argc). The operand stack top is back where it was on entry
// when Run returns.
func (vm *VM) Run(fn object.Value, argc uint8) object.Value {
	base := vm.stackTop
	vm.pushStack(fn)
	for i := uint8(0); i < argc; i++ {
		vm.pushStack(nil)
	}
	result := vm.call(base, argc)
	vm.stackTop = base
	vm.stack[base] = nil
	return result
}

// -- operand stack -------------------------------------------------------

func (vm *VM) pushStack(v object.Value) {
	if vm.stackTop >= stackCapacity {
		vm.Error("stack overflow")
		return
	}
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) popStack() object.Value {
	vm.stackTop--
	v := vm.stack[vm.stackTop]
	vm.stack[vm.stackTop] = nil
	return v
}

// -- calling convention ----------------------------------------------

// call implements the CALL opcode's semantics (spec.md §4.5), shared by
// the dispatch loop and by the exported Run entry point: vm.stack[base]
// is the callee, vm.stack[base+1..base+argc] are its arguments, and
// vm.stackTop == base+argc+1 on entry.
func (vm *VM) call(base int, argc uint8) object.Value {
	callee := vm.stack[base]

	if callee == nil {
		vm.Error("call of null")
		vm.stackTop = base
		vm.pushStack(nil)
		return nil
	}

	switch fn := callee.(type) {
	case *object.NativeFunction:
		args := vm.stack[base+1 : base+1+int(argc)]
		result := fn.Fn(vm, args, argc)
		vm.stackTop = base
		vm.pushStack(result)
		return result

	case *object.BasicFunction:
		frame := &callFrame{
			callee:    fn,
			locals:    table.New(),
			parent:    vm.frame,
			stackBase: base,
		}
		for i, argName := range fn.ArgumentNames {
			var v object.Value
			if i < int(argc) {
				v = vm.stack[base+1+i]
			}
			frame.locals.Set(argName, v)
		}

		prevFrame := vm.frame
		vm.frame = frame
		result := vm.execute(fn)
		vm.frame = prevFrame

		vm.stackTop = base
		vm.pushStack(result)
		return result

	default:
		// Only *object.String reaches here: a plain string value used
		// where a function was expected. Treated like calling null.
		vm.Error("call of non-function")
		vm.stackTop = base
		vm.pushStack(nil)
		return nil
	}
}

// execute runs fn's bytecode in the current (already-installed) frame
// until RETURN, an error, or the buffer is exhausted, returning the
// single value this invocation produces.
func (vm *VM) execute(fn *object.BasicFunction) object.Value {
	code := fn.Code
	ip := 0

	for ip < len(code) {
		op := bytecode.Op(code[ip])
		ip++

		switch op {
		case bytecode.OpReturn:
			return vm.popStack()

		case bytecode.OpCall:
			argc := code[ip]
			ip++
			callBase := vm.stackTop - int(argc) - 1
			vm.call(callBase, argc)

		case bytecode.OpGet:
			idx := bytecode.Uint16(code[ip : ip+2])
			ip += 2
			name := fn.Constants[idx].(*object.String)
			v, _ := vm.resolve(name)
			vm.pushStack(v)

		case bytecode.OpGetString:
			idx := bytecode.Uint16(code[ip : ip+2])
			ip += 2
			name := fn.Constants[idx].(*object.String)
			v, found := vm.resolve(name)
			if !found {
				v = vm.arena.NewBasicFunction(name)
			}
			vm.pushStack(v)

		case bytecode.OpPop:
			vm.popStack()

		case bytecode.OpDefine:
			idx := bytecode.Uint16(code[ip : ip+2])
			ip += 2
			value := fn.Constants[idx]
			vm.frame.locals.Set(value.Name(), value)

		case bytecode.OpPushNull:
			vm.pushStack(nil)

		case bytecode.OpPushConstant:
			idx := bytecode.Uint16(code[ip : ip+2])
			ip += 2
			vm.pushStack(fn.Constants[idx])

		default:
			vm.Error("unknown instruction")
			vm.stackTop = vm.frame.stackBase
			return nil
		}
	}

	return nil
}

// resolve walks the frame chain innermost-first, then the globals table —
// the dynamic-scoping lookup order GET and GET_STRING both use. The
// bool distinguishes "bound to null" from "not bound at all", which
// GET_STRING's materialize-a-string fallback depends on.
func (vm *VM) resolve(name *object.String) (object.Value, bool) {
	for f := vm.frame; f != nil; f = f.parent {
		if v, ok := f.locals.Get(name); ok {
			return v, true
		}
	}
	if v, ok := vm.globals.Get(name); ok {
		return v, true
	}
	return nil, false
}

// -- variable write discipline (spec.md §4.5, used by the native `set`) --

// SetVariable implements the write discipline: update the nearest frame
// that already binds name; failing that, update an existing global
// binding in the globals table; only as a last resort bind name fresh in the
// innermost frame (or in globals, when called with no frame active).
func (vm *VM) SetVariable(name string, value object.Value) {
	key := vm.interner.Intern(name)

	for f := vm.frame; f != nil; f = f.parent {
		if _, ok := f.locals.Get(key); ok {
			f.locals.Set(key, value)
			return
		}
	}
	if _, ok := vm.globals.Get(key); ok {
		vm.globals.Set(key, value)
		return
	}
	if vm.frame != nil {
		vm.frame.locals.Set(key, value)
		return
	}
	vm.globals.Set(key, value)
}

// GetVariable resolves name through the same frame-chain-then-globals
// walk GET uses.
func (vm *VM) GetVariable(name string) object.Value {
	v, _ := vm.resolve(vm.interner.Intern(name))
	return v
}

// -- globals, factories, and helpers (spec.md §6's embedding surface) --

// DefineNative installs fn as a NativeFunction in globals under name.
func (vm *VM) DefineNative(name string, fn object.NativeFn) *object.NativeFunction {
	key := vm.interner.Intern(name)
	nf := vm.arena.NewNativeFunction(key, fn)
	vm.globals.Set(key, nf)
	return nf
}

// SetGlobal binds name directly in the globals table.
func (vm *VM) SetGlobal(name string, value object.Value) {
	vm.globals.Set(vm.interner.Intern(name), value)
}

// GetGlobal looks up name in the globals table only (no frame walk).
func (vm *VM) GetGlobal(name string) (object.Value, bool) {
	return vm.globals.Get(vm.interner.Intern(name))
}

// CreateString interns s, funk's createString.
func (vm *VM) CreateString(s string) *object.String {
	return vm.interner.Intern(s)
}

// CreateBasicFunction allocates a named, codeless BasicFunction a native
// can fill in by hand (rarely needed outside the compiler).
func (vm *VM) CreateBasicFunction(name string) *object.BasicFunction {
	return vm.arena.NewBasicFunction(vm.interner.Intern(name))
}

// CreateEmptyFunction allocates a bare named function with no code,
// i.e. a string value — exactly what GET_STRING materializes on an
// unresolved name. Exposed so natives can synthesize string results the
// same way the VM does.
func (vm *VM) CreateEmptyFunction(name string) *object.BasicFunction {
	return vm.arena.NewBasicFunction(vm.interner.Intern(name))
}

// CreateNativeFunction allocates a NativeFunction without installing it
// anywhere, for natives that hand out closures as return values (e.g.
// the array/map constructors in pkg/stdlib).
func (vm *VM) CreateNativeFunction(name string, fn object.NativeFn) *object.NativeFunction {
	return vm.arena.NewNativeFunction(vm.interner.Intern(name), fn)
}

// invokeIfCode runs fn with zero arguments when it carries code, per
// toNumber/isTrue's "first, if the function carries code, invoke it"
// rule; otherwise fn is returned unchanged.
func (vm *VM) invokeIfCode(fn object.Value) object.Value {
	if object.HasCode(fn) {
		return vm.Run(fn, 0)
	}
	return fn
}

// IsTrue implements spec.md §4.6's isTrue.
func (vm *VM) IsTrue(fn object.Value) bool {
	return roman.IsTrue(vm.invokeIfCode(fn))
}

// ToNumber implements spec.md §4.6's toNumber.
func (vm *VM) ToNumber(fn object.Value) float64 {
	return roman.ToNumber(vm.invokeIfCode(fn))
}

// NumberToString implements spec.md §4.6's numberToString.
func (vm *VM) NumberToString(value float64) string {
	return roman.NumberToString(value)
}

// FunctionHasCode reports whether fn carries code (spec.md's
// functionHasCode).
func (vm *VM) FunctionHasCode(fn object.Value) bool {
	return object.HasCode(fn)
}

// ToString renders fn's name, or "null" for a nil value (spec.md's
// toString).
func (vm *VM) ToString(fn object.Value) string {
	return object.ToString(fn)
}
