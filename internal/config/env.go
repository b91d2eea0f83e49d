package config

import (
	"reflect"

	"github.com/arloliu/arhttp/internal/types"
)

// processEnv applies 'env' tag overrides to every exported field of v,
// descending into nested structs. A set variable wins over the value loaded
// from the source; an empty one only does so for string fields and is
// otherwise treated as unset.
func processEnv(v reflect.Value, prefix string, lookup func(string) (string, bool)) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if fieldVal.Kind() == reflect.Struct {
			if err := processEnv(fieldVal, prefix, lookup); err != nil {
				return err
			}

			continue
		}

		tag := field.Tag.Get("env")
		if tag == "" || tag == "-" {
			continue
		}

		envVal, ok := lookup(prefix + tag)
		if !ok || (envVal == "" && fieldVal.Kind() != reflect.String) {
			continue
		}

		if err := types.Convert(envVal, fieldVal); err != nil {
			return &types.FieldError{Path: field.Name, Tag: "env", Value: envVal, Err: err}
		}
	}

	return nil
}
