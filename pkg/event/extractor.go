package event

import (
	"reflect"
	"slices"
	"strings"
)

// Fields returns the named fields of a struct, keyed by json name.
// Non-struct values yield an empty map.
func Fields(obj interface{}, names ...string) map[string]interface{} {
	result := make(map[string]interface{})
	val := reflect.ValueOf(obj)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return result
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct || len(names) == 0 {
		return result
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		if slices.Contains(names, name) {
			result[name] = val.Field(i).Interface()
		}
	}
	return result
}

// Changes reports the named fields that differ between old and new as
// {"old": ..., "new": ...} pairs.
func Changes(old, new interface{}, names ...string) map[string]interface{} {
	before := Fields(old, names...)
	after := Fields(new, names...)
	changes := make(map[string]interface{})
	for name, next := range after {
		prev, ok := before[name]
		if ok && !reflect.DeepEqual(prev, next) {
			changes[name] = map[string]interface{}{"old": prev, "new": next}
		}
	}
	return changes
}
