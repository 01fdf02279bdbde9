package form

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ResolveValue returns the old input for name when present, otherwise the
// declared default.
func ResolveValue(old OldInputStore, name string, declared any) any {
	if old != nil {
		if v, ok := old.Get(name); ok {
			return v
		}
	}
	return declared
}

// Value returns the resolved value of a registered field, or nil.
func (f *Form) Value(name string) any {
	def, ok := f.fields.get(name)
	if !ok {
		return nil
	}
	return ResolveValue(f.old, name, def.Default)
}

// stringify renders a value the way it appears in an attribute.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(time.DateOnly)
	case *time.Time:
		if x == nil {
			return ""
		}
		return stringify(*x)
	case fmt.Stringer:
		return x.String()
	case []string:
		return strings.Join(x, ",")
	}
	return fmt.Sprint(v)
}

// truthy follows the usual loose rules: nil, false, "", "0", zero numbers,
// zero times and empty collections are false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != "" && x != "0"
	case time.Time:
		return !x.IsZero()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// looseEqual compares an option key with a resolved value. nil matches
// nothing, numbers compare numerically, booleans by truthiness of the key and
// collections match when any element does.
func looseEqual(key string, value any) bool {
	switch x := value.(type) {
	case nil:
		return false
	case bool:
		return truthy(key) == x
	case []string:
		for _, item := range x {
			if looseEqual(key, item) {
				return true
			}
		}
		return false
	case []any:
		for _, item := range x {
			if looseEqual(key, item) {
				return true
			}
		}
		return false
	}

	s := stringify(value)
	if key == s {
		return true
	}
	a, errA := strconv.ParseFloat(strings.TrimSpace(key), 64)
	b, errB := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return errA == nil && errB == nil && a == b
}

// intval converts v to an integer, reading leading digits of strings.
func intval(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case int:
		return x
	case string:
		return leadingInt(x)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint())
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return int(f)
	}
	return leadingInt(fmt.Sprint(v))
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
