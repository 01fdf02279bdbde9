package i18n

import (
	"strings"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// NormalizeLang canonicalises a language tag ("en_gb" -> "en-GB"). Values
// that do not parse are returned trimmed.
func NormalizeLang(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err != nil {
		return tag
	}
	return parsed.String()
}

// BaseLang returns the base language of tag ("en-GB" -> "en").
func BaseLang(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err != nil {
		if idx := strings.IndexAny(tag, "-_"); idx > 0 {
			return strings.ToLower(tag[:idx])
		}
		return strings.ToLower(tag)
	}
	base, _ := parsed.Base()
	return base.String()
}

var mondayLocales = map[string]monday.Locale{
	"en":    monday.LocaleEnUS,
	"en_us": monday.LocaleEnUS,
	"en_gb": monday.LocaleEnGB,
	"de":    monday.LocaleDeDE,
	"fr":    monday.LocaleFrFR,
	"fr_ca": monday.LocaleFrCA,
	"es":    monday.LocaleEsES,
	"it":    monday.LocaleItIT,
	"pt":    monday.LocalePtPT,
	"pt_br": monday.LocalePtBR,
	"nl":    monday.LocaleNlNL,
	"nl_be": monday.LocaleNlBE,
	"ru":    monday.LocaleRuRU,
	"pl":    monday.LocalePlPL,
	"cs":    monday.LocaleCsCZ,
	"da":    monday.LocaleDaDK,
	"fi":    monday.LocaleFiFI,
	"sv":    monday.LocaleSvSE,
	"nb":    monday.LocaleNbNO,
	"ja":    monday.LocaleJaJP,
	"zh":    monday.LocaleZhCN,
	"zh_tw": monday.LocaleZhTW,
	"ko":    monday.LocaleKoKR,
	"tr":    monday.LocaleTrTR,
	"uk":    monday.LocaleUkUA,
	"el":    monday.LocaleElGR,
	"ro":    monday.LocaleRoRO,
	"hu":    monday.LocaleHuHU,
	"bg":    monday.LocaleBgBG,
	"id":    monday.LocaleIdID,
}

// MondayLocale maps a language tag to the locale used for month and weekday
// names. Unknown tags fall back to US English.
func MondayLocale(tag string) monday.Locale {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "-", "_"))
	if loc, ok := mondayLocales[key]; ok {
		return loc
	}
	if loc, ok := mondayLocales[strings.ToLower(BaseLang(tag))]; ok {
		return loc
	}
	return monday.LocaleEnUS
}
