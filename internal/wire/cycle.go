package wire

import "reflect"

// visit identifies a reference-typed value on the current walk path.
// Slices also carry their length: two slices sharing a backing array are only
// the same node when they see the same elements.
type visit struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

// checkAcyclic walks v the way a serializer would and fails on the first
// reference that points back at one of its ancestors. Shared but acyclic
// references are allowed.
func checkAcyclic(v any) error {
	w := walker{path: make(map[visit]struct{})}
	return w.walk(reflect.ValueOf(v))
}

type walker struct {
	path map[visit]struct{}
}

func (w *walker) enter(v reflect.Value, n int) (func(), error) {
	k := visit{ptr: v.Pointer(), typ: v.Type(), n: n}
	if _, ok := w.path[k]; ok {
		return nil, &CycleError{Type: v.Type()}
	}
	w.path[k] = struct{}{}
	return func() { delete(w.path, k) }, nil
}

func (w *walker) walk(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return w.walk(v.Elem())

	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		leave, err := w.enter(v, 0)
		if err != nil {
			return err
		}
		defer leave()
		return w.walk(v.Elem())

	case reflect.Map:
		if v.IsNil() || v.Len() == 0 {
			return nil
		}
		leave, err := w.enter(v, 0)
		if err != nil {
			return err
		}
		defer leave()
		it := v.MapRange()
		for it.Next() {
			if err := w.walk(it.Value()); err != nil {
				return err
			}
		}
		return nil

	case reflect.Slice:
		if v.IsNil() || v.Len() == 0 {
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return nil // []byte can't hold references
		}
		leave, err := w.enter(v, v.Len())
		if err != nil {
			return err
		}
		defer leave()
		return w.walkElems(v)

	case reflect.Array:
		return w.walkElems(v)

	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if err := w.walk(v.Field(i)); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

func (w *walker) walkElems(v reflect.Value) error {
	for i := 0; i < v.Len(); i++ {
		if err := w.walk(v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}
