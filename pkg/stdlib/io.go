package stdlib

import (
	"github.com/funk-lang/funk/pkg/object"
	"github.com/funk-lang/funk/pkg/table"
	"github.com/spf13/afero"
)

// installIO registers the file I/O natives and `require`, all closed
// over fs so tests can swap in an in-memory filesystem.
func installIO(reg Registrar, fs afero.Fs) {
	reg.DefineNative("readFile", func(vm object.VM, args []object.Value, argc uint8) object.Value {
		if argc != 1 {
			vm.Error("Expected 1 argument")
			return nil
		}
		h := host(vm)
		path := h.ToString(args[0])
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			vm.Error(err.Error())
			return nil
		}
		return h.CreateEmptyFunction(string(data))
	})

	reg.DefineNative("writeFile", func(vm object.VM, args []object.Value, argc uint8) object.Value {
		if argc != 2 {
			vm.Error("Expected 2 arguments")
			return nil
		}
		h := host(vm)
		path := h.ToString(args[0])
		contents := h.ToString(args[1])
		if err := afero.WriteFile(fs, path, []byte(contents), 0o644); err != nil {
			vm.Error(err.Error())
			return nil
		}
		return nil
	})

	cache := table.New()

	reg.DefineNative("require", func(vm object.VM, args []object.Value, argc uint8) object.Value {
		if argc != 1 {
			vm.Error("Expected 1 argument")
			return nil
		}
		h := host(vm)
		path := h.ToString(args[0])
		key := h.CreateString(path)

		if cached, ok := cache.Get(key); ok {
			return cached
		}

		data, err := afero.ReadFile(fs, path)
		if err != nil {
			vm.Error(err.Error())
			return nil
		}

		result := h.RunString(path, string(data))
		cache.Set(key, result)
		return result
	})
}
