package cfgloader

import (
	"log/slog"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

const maskTag = "mask"

func printConfig(config any) {
	out, err := yaml.Marshal(masked(reflect.ValueOf(config)).Interface())
	if err != nil {
		slog.Error("[cfgloader]: failed to marshal config", "error", err.Error())
		return
	}
	slog.Info("[cfgloader]: loaded config:\n" + string(out))
}

// masked returns a copy of v with every string field tagged `mask:"true"`
// replaced by asterisks. Other kinds tagged for masking are zeroed.
func masked(v reflect.Value) reflect.Value {
	switch v.Kind() { //nolint:exhaustive // only containers need walking
	case reflect.Ptr:
		if v.IsNil() {
			return v
		}
		p := reflect.New(v.Elem().Type())
		p.Elem().Set(masked(v.Elem()))
		return p

	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		for i := range v.NumField() {
			if !out.Field(i).CanSet() {
				continue
			}
			field := v.Type().Field(i)
			switch {
			case field.Tag.Get(maskTag) != "true":
				out.Field(i).Set(masked(v.Field(i)))
			case field.Type.Kind() == reflect.String:
				out.Field(i).SetString(strings.Repeat("*", v.Field(i).Len()))
			default:
				// left zero
			}
		}
		return out

	default:
		return v
	}
}
