package configmanager

import (
	"reflect"

	mapstructure "github.com/go-viper/mapstructure/v2"
)

type flagValueSetter interface {
	Set(value string) error
}

// enumDecodeHook routes strings into types implementing Set, so enum values from files and
// environment variables are normalized like flag values. Values Set rejects are passed through
// unchanged and reported by Config.Validate.
func enumDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.String {
			return data, nil
		}

		target := reflect.New(to)

		setter, ok := target.Interface().(flagValueSetter)
		if !ok {
			return data, nil
		}

		raw, _ := data.(string)
		if raw == "" {
			return data, nil
		}

		err := setter.Set(raw)
		if err != nil {
			return data, nil //nolint:nilerr // validation reports unknown values
		}

		return target.Elem().Interface(), nil
	}
}
