package types

import (
	"fmt"
	"reflect"
	"strconv"
)

// Convert converts a string value to the target reflect.Value's type.
// Only the scalar kinds used by resolver configuration are supported.
func Convert(value string, target reflect.Value) error {
	if !target.CanSet() {
		return nil
	}

	//nolint:exhaustive // Only scalar config types need explicit handling
	switch target.Kind() {
	case reflect.String:
		target.SetString(value)
	case reflect.Bool:
		return convertBool(value, target)
	case reflect.Slice:
		if target.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", target.Type())
		}
		target.Set(reflect.ValueOf(SplitList(value)).Convert(target.Type()))
	default:
		return fmt.Errorf("unsupported type: %s", target.Kind())
	}

	return nil
}

func convertBool(value string, target reflect.Value) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	target.SetBool(v)

	return nil
}
