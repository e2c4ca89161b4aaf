package analyze

import (
	"go/types"

	"enum-update-generator/internal/model"
)

// Classify returns the shape of t and, for owned values, how to duplicate them.
//
// Pointers, channels, functions and interfaces are shared references. Types
// holding a lock by value (the rule `go vet` applies for copylocks) are
// exclusive. Everything else is owned: slices and maps are cloned, types with
// a Clone method returning their own type use it, and the rest copy on
// assignment.
func Classify(t types.Type) (model.Shape, model.CopyKind) {
	if _, ok := types.Unalias(t).(*types.TypeParam); ok {
		return model.ShapeOwned, model.CopyAssign
	}

	if containsLock(t, make(map[types.Type]bool)) {
		return model.ShapeExclusive, model.CopyNone
	}

	switch u := t.Underlying().(type) {
	case *types.Pointer, *types.Chan, *types.Signature, *types.Interface:
		return model.ShapeShared, model.CopyNone

	case *types.Basic:
		if u.Kind() == types.UnsafePointer {
			return model.ShapeShared, model.CopyNone
		}

		return model.ShapeOwned, model.CopyAssign

	case *types.Slice:
		if hasClone(t) {
			return model.ShapeOwned, model.CopyMethod
		}

		return model.ShapeOwned, model.CopySlice

	case *types.Map:
		if hasClone(t) {
			return model.ShapeOwned, model.CopyMethod
		}

		return model.ShapeOwned, model.CopyMap

	default:
		if hasClone(t) {
			return model.ShapeOwned, model.CopyMethod
		}

		return model.ShapeOwned, model.CopyAssign
	}
}

// hasClone reports whether t has a method "Clone() T".
func hasClone(t types.Type) bool {
	obj, _, _ := types.LookupFieldOrMethod(t, true, nil, "Clone")

	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}

	return types.Identical(sig.Results().At(0).Type(), t)
}

// containsLock reports whether a value of type t holds a lock, i.e. a named
// struct whose pointer has Lock and Unlock methods while the value does not.
// Arrays and struct fields are searched; pointers are not followed.
func containsLock(t types.Type, seen map[types.Type]bool) bool {
	t = types.Unalias(t)
	if seen[t] {
		return false
	}

	seen[t] = true

	for {
		arr, ok := t.Underlying().(*types.Array)
		if !ok {
			break
		}

		t = types.Unalias(arr.Elem())
	}

	st, ok := t.Underlying().(*types.Struct)
	if !ok {
		return false
	}

	if _, named := t.(*types.Named); named && isLocker(types.NewPointer(t)) && !isLocker(t) {
		return true
	}

	for i := range st.NumFields() {
		if containsLock(st.Field(i).Type(), seen) {
			return true
		}
	}

	return false
}

func isLocker(t types.Type) bool {
	ms := types.NewMethodSet(t)

	return ms.Lookup(nil, "Lock") != nil && ms.Lookup(nil, "Unlock") != nil
}
