package stdlib

import "github.com/funk-lang/funk/pkg/object"

// arrayCtor builds a funk array: a NativeFunction whose Data field holds
// a *[]object.Value, and which is itself callable as:
//
//	arr()          -> length, as a number
//	arr(i)         -> element at index i, or null out of range
//	arr(i, v)      -> set element i to v (growing with nulls if needed), returns v
//
// This is the NativeFunction.Data payload mechanism spec.md's component
// design calls out as how a native attaches state to a function-shaped
// value (spec.md §3's NativeFunction, §5's resource discipline).
func arrayCtor(vm object.VM, args []object.Value, argc uint8) object.Value {
	h := host(vm)
	data := make([]object.Value, argc)
	copy(data, args[:argc])

	arr := h.CreateNativeFunction("array", nil)
	arr.Data = &data
	arr.Fn = func(vm object.VM, args []object.Value, argc uint8) object.Value {
		h := host(vm)
		slice := arr.Data.(*[]object.Value)

		switch argc {
		case 0:
			return h.CreateEmptyFunction(h.NumberToString(float64(len(*slice))))
		case 1:
			i := int(h.ToNumber(args[0]))
			if i < 0 || i >= len(*slice) {
				return nil
			}
			return (*slice)[i]
		default:
			i := int(h.ToNumber(args[0]))
			if i < 0 {
				return nil
			}
			for i >= len(*slice) {
				*slice = append(*slice, nil)
			}
			(*slice)[i] = args[1]
			return args[1]
		}
	}
	return arr
}

// mapCtor builds a funk map: a NativeFunction whose Data holds a
// map[string]object.Value keyed by a funk string's name, callable as:
//
//	m(key)        -> bound value, or null
//	m(key, value) -> bind key to value, returns value
func mapCtor(vm object.VM, args []object.Value, argc uint8) object.Value {
	h := host(vm)
	data := make(map[string]object.Value, argc/2)
	for i := uint8(0); i+1 < argc; i += 2 {
		data[h.ToString(args[i])] = args[i+1]
	}

	m := h.CreateNativeFunction("map", nil)
	m.Data = data
	m.Fn = func(vm object.VM, args []object.Value, argc uint8) object.Value {
		if argc == 0 {
			vm.Error("Expected at least 1 argument")
			return nil
		}
		h := host(vm)
		table := m.Data.(map[string]object.Value)
		key := h.ToString(args[0])

		if argc == 1 {
			return table[key]
		}
		table[key] = args[1]
		return args[1]
	}
	return m
}
