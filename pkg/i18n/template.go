package i18n

import "strings"

// MissingHandler returns the text shown for a key without a translation.
type MissingHandler func(locale, key string, err error) string

func missingKey(_, key string, _ error) string { return key }

// TemplateFuncs returns helpers for a template context bound to locale:
//
//	trans(key)        the translated message, or the key when missing
//	current_locale()  the locale itself
//
// A nil translator renders every key as is.
func TemplateFuncs(t Translator, locale string, onMissing MissingHandler) map[string]any {
	if onMissing == nil {
		onMissing = missingKey
	}
	return map[string]any{
		"trans": func(key string) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			if t == nil {
				return onMissing(locale, key, ErrMissingTranslation)
			}
			msg, err := t.Translate(locale, key)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(locale, key, err)
			}
			return msg
		},
		"current_locale": func() string {
			return locale
		},
	}
}
