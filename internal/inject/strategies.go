package inject

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/kingrea/strata/internal/priv"
	"github.com/kingrea/strata/internal/source"
)

// extensionMethodNames are the method names probed by the privileged call
// strategy, in order. Loaders from other codebases name their extension hook
// differently but the shape is always location-in, optional-error-out.
var extensionMethodNames = []string{"AddLocation", "AddRoot", "AddPath"}

// locationFieldNames are the field names probed by the state mutation
// strategy, in order. Each candidate is validated by shape before anything
// is written so a same-named unrelated field is never touched.
var locationFieldNames = []string{"locations", "roots", "paths"}

// publicAPI calls the sanctioned Extender interface. Safest: the loader's
// own invariants and caching stay intact.
type publicAPI struct{}

func (publicAPI) Name() string { return "public-api" }

func (publicAPI) TryExtend(loader any, location string) error {
	ext, ok := loader.(source.Extender)
	if !ok {
		return fmt.Errorf("loader %T does not implement the extension API", loader)
	}
	return ext.AddLocation(location)
}

// privilegedCall invokes an extension method the loader carries without
// declaring it on any shared interface, through the privileged handle. Still
// the loader's own method, so preferred over raw state mutation.
type privilegedCall struct {
	handle *priv.Handle
}

func (privilegedCall) Name() string { return "privileged-call" }

func (s privilegedCall) TryExtend(loader any, location string) error {
	return s.handle.CallNamed(loader, extensionMethodNames, location)
}

// stateMutation locates the loader's internal location collection and grows
// it directly. Last resort: it bypasses the loader's bookkeeping, so it only
// runs when neither method-based strategy applied.
type stateMutation struct{}

func (stateMutation) Name() string { return "state-mutation" }

func (stateMutation) TryExtend(loader any, location string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("state mutation panicked: %v", r)
		}
	}()
	value := reflect.ValueOf(loader)
	for value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return fmt.Errorf("loader is nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return fmt.Errorf("loader %T is not a struct", loader)
	}
	if !value.CanAddr() {
		return fmt.Errorf("loader %T is not addressable", loader)
	}
	field, ok := findLocationField(value)
	if !ok {
		return fmt.Errorf("no location collection found on %T", loader)
	}
	return growCollection(field, location)
}

// findLocationField probes the candidate names on the struct itself, then
// recurses through embedded structs, which is how a loader inherits its
// location collection from a base type.
func findLocationField(value reflect.Value) (reflect.Value, bool) {
	t := value.Type()
	for _, name := range locationFieldNames {
		field := value.FieldByName(name)
		if field.IsValid() && collectionShapeOK(field.Type()) {
			return field, true
		}
	}
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).Anonymous {
			continue
		}
		embedded := value.Field(i)
		for embedded.Kind() == reflect.Pointer {
			if embedded.IsNil() {
				break
			}
			embedded = embedded.Elem()
		}
		if embedded.Kind() != reflect.Struct {
			continue
		}
		if field, ok := findLocationField(embedded); ok {
			return field, true
		}
	}
	return reflect.Value{}, false
}

// collectionShapeOK accepts the two collection shapes loaders use for their
// search sets.
func collectionShapeOK(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice:
		return t.Elem().Kind() == reflect.String
	case reflect.Map:
		return t.Key().Kind() == reflect.String && t.Elem() == reflect.TypeOf(struct{}{})
	default:
		return false
	}
}

func growCollection(field reflect.Value, location string) error {
	target := field
	if !target.CanSet() {
		if !target.CanAddr() {
			return fmt.Errorf("location collection is not addressable")
		}
		target = reflect.NewAt(target.Type(), unsafe.Pointer(target.UnsafeAddr())).Elem()
	}
	switch target.Kind() {
	case reflect.Slice:
		for i := 0; i < target.Len(); i++ {
			if target.Index(i).String() == location {
				return nil
			}
		}
		target.Set(reflect.Append(target, reflect.ValueOf(location).Convert(target.Type().Elem())))
		return nil
	case reflect.Map:
		if target.IsNil() {
			target.Set(reflect.MakeMap(target.Type()))
		}
		key := reflect.ValueOf(location).Convert(target.Type().Key())
		target.SetMapIndex(key, reflect.ValueOf(struct{}{}))
		return nil
	default:
		return fmt.Errorf("unsupported collection kind %s", target.Kind())
	}
}
