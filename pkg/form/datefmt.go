package form

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goodsign/monday"

	"github.com/goliatone/go-formbuilder/pkg/i18n"
)

// DefaultPickerFormat is the picker notation used when a date picker has no
// "format" attr. Its display equivalent is "j F Y".
const DefaultPickerFormat = "d mmmm yyyy"

// dateTokens maps picker tokens to display tokens, longest first so the
// tokenizer always prefers the longest match.
var dateTokens = []struct {
	picker  string
	display string
}{
	{"yyyy", "Y"},
	{"yy", "y"},
	{"mmmm", "F"},
	{"mmm", "M"},
	{"mm", "m"},
	{"m", "n"},
	{"dddd", "l"},
	{"ddd", "D"},
	{"dd", "d"},
	{"d", "j"},
}

type dateToken struct {
	display string
	literal string
}

func tokenizeDateFormat(format string) []dateToken {
	var out []dateToken
	for i := 0; i < len(format); {
		matched := false
		for _, tok := range dateTokens {
			if strings.HasPrefix(format[i:], tok.picker) {
				out = append(out, dateToken{display: tok.display})
				i += len(tok.picker)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		j := i + 1
		for j < len(format) && format[j] != 'y' && format[j] != 'm' && format[j] != 'd' {
			j++
		}
		out = append(out, dateToken{literal: format[i:j]})
		i = j
	}
	return out
}

// DisplayFormat translates picker notation to display notation, for example
// "d mmmm yyyy" to "j F Y".
func DisplayFormat(pickerFormat string) string {
	var b strings.Builder
	for _, tok := range tokenizeDateFormat(pickerFormat) {
		if tok.display != "" {
			b.WriteString(tok.display)
			continue
		}
		b.WriteString(tok.literal)
	}
	return b.String()
}

// FormatDate formats t using picker notation. Month and weekday names are
// localized for lang.
func FormatDate(t time.Time, pickerFormat, lang string) string {
	locale := i18n.MondayLocale(lang)
	var b strings.Builder
	for _, tok := range tokenizeDateFormat(pickerFormat) {
		switch tok.display {
		case "":
			b.WriteString(tok.literal)
		case "Y":
			b.WriteString(strconv.Itoa(t.Year()))
		case "y":
			fmt.Fprintf(&b, "%02d", t.Year()%100)
		case "F":
			b.WriteString(monday.Format(t, "January", locale))
		case "M":
			b.WriteString(monday.Format(t, "Jan", locale))
		case "m":
			fmt.Fprintf(&b, "%02d", int(t.Month()))
		case "n":
			b.WriteString(strconv.Itoa(int(t.Month())))
		case "l":
			b.WriteString(monday.Format(t, "Monday", locale))
		case "D":
			b.WriteString(monday.Format(t, "Mon", locale))
		case "d":
			fmt.Fprintf(&b, "%02d", t.Day())
		case "j":
			b.WriteString(strconv.Itoa(t.Day()))
		}
	}
	return b.String()
}

// toTime interprets a resolved or attr value as a date. Strings are parsed
// loosely and integers are unix seconds.
func toTime(v any) (time.Time, bool, error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return x, !x.IsZero(), nil
	case *time.Time:
		if x == nil {
			return time.Time{}, false, nil
		}
		return *x, !x.IsZero(), nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return time.Unix(n, 0).UTC(), true, nil
		}
		f, err := x.Float64()
		if err != nil {
			return time.Time{}, false, err
		}
		return time.Unix(int64(f), 0).UTC(), true, nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false, nil
		}
		t, err := dateparse.ParseAny(s)
		if err != nil {
			return time.Time{}, false, err
		}
		return t, true, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.Unix(rv.Int(), 0).UTC(), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return time.Unix(int64(rv.Uint()), 0).UTC(), true, nil
	case reflect.Float32, reflect.Float64:
		return time.Unix(int64(rv.Float()), 0).UTC(), true, nil
	}
	return time.Time{}, false, fmt.Errorf("unsupported date value %T", v)
}

// pickerBound renders a min/max attr for the picker script: "today" becomes
// true and a date becomes a JavaScript Date with a zero based month.
func pickerBound(v any) (string, bool, error) {
	if s, ok := v.(string); ok && strings.EqualFold(strings.TrimSpace(s), "today") {
		return "true", true, nil
	}
	t, ok, err := toTime(v)
	if err != nil || !ok {
		return "", false, err
	}
	return fmt.Sprintf("new Date(%d, %d, %d)", t.Year(), int(t.Month())-1, t.Day()), true, nil
}
