package stdlib

import (
	"fmt"

	"github.com/funk-lang/funk/pkg/object"
)

// print_ prints every argument's string form on its own line, exactly
// as funk_std.c's `print` does (its trailing underscore dodges the
// `print` builtin name collision).
func print_(vm object.VM, args []object.Value, argc uint8) object.Value {
	h := host(vm)
	for i := uint8(0); i < argc; i++ {
		fmt.Println(h.ToString(args[i]))
	}
	return nil
}

// set implements the `set` native from funk_std.c: bind args[1] to the
// variable named by args[0] via the frame-chain write discipline.
func set(vm object.VM, args []object.Value, argc uint8) object.Value {
	if argc != 2 {
		vm.Error("Expected 2 arguments")
		return nil
	}
	h := host(vm)
	h.SetVariable(h.ToString(args[0]), args[1])
	return nil
}

func add(vm object.VM, args []object.Value, argc uint8) object.Value {
	h := host(vm)
	sum := 0.0
	for i := uint8(0); i < argc; i++ {
		sum += h.ToNumber(args[i])
	}
	return h.CreateEmptyFunction(h.NumberToString(sum))
}

func subtract(vm object.VM, args []object.Value, argc uint8) object.Value {
	h := host(vm)
	if argc == 0 {
		return h.CreateEmptyFunction(h.NumberToString(0))
	}
	result := h.ToNumber(args[0])
	if argc == 1 {
		return h.CreateEmptyFunction(h.NumberToString(-result))
	}
	for i := uint8(1); i < argc; i++ {
		result -= h.ToNumber(args[i])
	}
	return h.CreateEmptyFunction(h.NumberToString(result))
}

func multiply(vm object.VM, args []object.Value, argc uint8) object.Value {
	h := host(vm)
	product := 1.0
	for i := uint8(0); i < argc; i++ {
		product *= h.ToNumber(args[i])
	}
	return h.CreateEmptyFunction(h.NumberToString(product))
}

func divide(vm object.VM, args []object.Value, argc uint8) object.Value {
	h := host(vm)
	if argc == 0 {
		vm.Error("Expected at least 1 argument")
		return nil
	}
	result := h.ToNumber(args[0])
	for i := uint8(1); i < argc; i++ {
		divisor := h.ToNumber(args[i])
		if divisor == 0 {
			vm.Error("division by zero")
			return nil
		}
		result /= divisor
	}
	return h.CreateEmptyFunction(h.NumberToString(result))
}

func equal(vm object.VM, args []object.Value, argc uint8) object.Value {
	if argc != 2 {
		vm.Error("Expected 2 arguments")
		return nil
	}
	h := host(vm)
	return h.CreateEmptyFunction(boolName(h.ToNumber(args[0]) == h.ToNumber(args[1])))
}

func lessEqual(vm object.VM, args []object.Value, argc uint8) object.Value {
	if argc != 2 {
		vm.Error("Expected 2 arguments")
		return nil
	}
	h := host(vm)
	return h.CreateEmptyFunction(boolName(h.ToNumber(args[0]) <= h.ToNumber(args[1])))
}

// if_ evaluates args[1] (the "then" thunk) when args[0] is truthy,
// otherwise args[2] if present (the "else" thunk); both are zero-arg
// functions, invoked via Run, matching the lambda bodies funk's
// end-to-end `if` scenario compiles.
func if_(vm object.VM, args []object.Value, argc uint8) object.Value {
	if argc < 2 {
		vm.Error("Expected at least 2 arguments")
		return nil
	}
	h := host(vm)
	if h.IsTrue(args[0]) {
		return h.Run(args[1], 0)
	}
	if argc >= 3 {
		return h.Run(args[2], 0)
	}
	return nil
}

// while repeatedly invokes args[0] (the condition thunk) and, while it's
// truthy, invokes args[1] (the body thunk).
func while(vm object.VM, args []object.Value, argc uint8) object.Value {
	if argc != 2 {
		vm.Error("Expected 2 arguments")
		return nil
	}
	h := host(vm)
	for h.IsTrue(h.Run(args[0], 0)) {
		h.Run(args[1], 0)
	}
	return nil
}

// for_ is a four-part loop: init, cond, step, body — all zero-arg
// thunks, run C-for-loop style. Named with a trailing underscore since
// `for` is a Go keyword.
func for_(vm object.VM, args []object.Value, argc uint8) object.Value {
	if argc != 4 {
		vm.Error("Expected 4 arguments")
		return nil
	}
	h := host(vm)
	h.Run(args[0], 0)
	for h.IsTrue(h.Run(args[1], 0)) {
		h.Run(args[3], 0)
		h.Run(args[2], 0)
	}
	return nil
}
