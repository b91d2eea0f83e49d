// Package config loads resolver settings from YAML, dotenv files and the
// environment, applies struct-tag defaults and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/arloliu/arhttp/internal/types"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Engine is the configuration processing engine.
// It handles YAML unmarshaling, tag processing (env, default), and validation.
type Engine struct {
	Fs         afero.Fs
	Validator  *validator.Validate
	EnvPrefix  string
	Source     []byte
	SourceName string // Name of the source (e.g., "arhttp.yaml", "bytes")
	Dotenv     *DotenvConfig

	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// Load populates target, which must be a non-nil pointer to a struct.
func (e *Engine) Load(target any) error {
	targetVal := reflect.ValueOf(target)
	if targetVal.Kind() != reflect.Pointer || targetVal.IsNil() || targetVal.Elem().Kind() != reflect.Struct {
		return &types.FieldError{Message: "target must be a non-nil pointer to a struct"}
	}

	dotenv, err := e.loadDotenvFiles()
	if err != nil {
		return &types.LoadError{Source: "dotenv", Err: err}
	}

	if len(e.Source) > 0 {
		if err := yaml.Unmarshal(e.Source, target); err != nil {
			if e.SourceName != "" {
				return &types.LoadError{Source: e.SourceName, Err: err}
			}

			return fmt.Errorf("failed to unmarshal source: %w", err)
		}
	}

	if err := processEnv(targetVal.Elem(), e.EnvPrefix, e.lookup(dotenv)); err != nil {
		return err
	}

	if err := defaults.Set(target); err != nil {
		return &types.FieldError{Tag: "default", Err: err}
	}

	v := e.Validator
	if v == nil {
		v = defaultValidator
	}

	return validate(v, target)
}

// lookup layers dotenv values under (or, with Override, over) the process environment.
func (e *Engine) lookup(dotenv map[string]string) func(string) (string, bool) {
	lookupEnv := e.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	override := e.Dotenv != nil && e.Dotenv.Override

	return func(key string) (string, bool) {
		if override {
			if v, ok := dotenv[key]; ok {
				return v, true
			}
		}
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]

		return v, ok
	}
}

// Validate runs struct validation with the shared validator, which knows the
// pathformat rule.
func Validate(target any) error {
	return validate(defaultValidator, target)
}

func validate(v *validator.Validate, target any) error {
	err := v.Struct(target)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		errs := make([]error, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			errs = append(errs, &types.FieldError{
				Path:    fe.Namespace(),
				Tag:     fe.Tag(),
				Value:   fmt.Sprint(fe.Value()),
				Message: describe(fe),
			})
		}

		return &types.ValidationError{Errors: errs}
	}

	return &types.ValidationError{Errors: []error{err}}
}
