package object

// Arena is the singly-linked allocation chain that owns every heap
// object for one VM. Nothing outside the owning VM frees an Object
// directly — Teardown walks the whole chain exactly once.
type Arena struct {
	head Value
}

func link(a *Arena, v Value) {
	v.setNext(a.head)
	a.head = v
}

// NewString allocates (without interning) a String wrapping chars. Callers
// that need the interning invariant go through an intern table instead;
// this is the raw allocation primitive the interner builds on.
func (a *Arena) NewString(chars string) *String {
	s := &String{
		Object: Object{Kind: KindString},
		Chars:  chars,
		Hash:   HashBytes([]byte(chars)),
	}
	link(a, s)
	return s
}

// NewBasicFunction allocates an empty user-defined function named name,
// with no code and no constants yet.
func (a *Arena) NewBasicFunction(name *String) *BasicFunction {
	f := &BasicFunction{
		Object:       Object{Kind: KindBasicFunction},
		FunctionName: name,
	}
	link(a, f)
	return f
}

// NewNativeFunction allocates a host-provided function named name.
func (a *Arena) NewNativeFunction(name *String, fn NativeFn) *NativeFunction {
	f := &NativeFunction{
		Object:       Object{Kind: KindNativeFunction},
		FunctionName: name,
		Fn:           fn,
	}
	link(a, f)
	return f
}

// Teardown walks the allocation chain, running each NativeFunction's
// Cleanup hook exactly once, and drops every reference so the arena's
// objects become garbage. funk has no other form of garbage collection
// (spec.md's stated non-goal): VM teardown is the only release point.
func (a *Arena) Teardown(vm VM) {
	for o := a.head; o != nil; {
		next := o.next()
		if nf, ok := o.(*NativeFunction); ok && nf.Cleanup != nil {
			nf.Cleanup(vm, nf)
		}
		o.setNext(nil)
		o = next
	}
	a.head = nil
}
