// Package i18n holds the bilingual string tables for the site. Hebrew is
// the site default and renders right-to-left.
package i18n

const (
	LangHebrew  = "he"
	LangEnglish = "en"
)

// Langs lists supported language tags, default first.
func Langs() []string { return []string{LangHebrew, LangEnglish} }

// Normalize maps an arbitrary tag ("en-US", "EN", "fr") onto a supported
// language, falling back to Hebrew.
func Normalize(tag string) string {
	if len(tag) >= 2 {
		switch tag[0:2] {
		case "en", "En", "EN", "eN":
			return LangEnglish
		case "he", "He", "HE", "hE", "iw", "Iw", "IW":
			// iw is the legacy Hebrew tag some browsers still send
			return LangHebrew
		}
	}
	return LangHebrew
}

// Dir returns the text direction for a language tag.
func Dir(lang string) string {
	if Normalize(lang) == LangHebrew {
		return "rtl"
	}
	return "ltr"
}

// T resolves key for lang, falling back to English, then to the key itself
// so a missing entry is visible rather than blank.
func T(lang, key string) string {
	if tbl, ok := tables[Normalize(lang)]; ok {
		if v, ok := tbl[key]; ok {
			return v
		}
	}
	if v, ok := tables[LangEnglish][key]; ok {
		return v
	}
	return key
}

// Table returns a copy of the full string table for a language with the
// English fallback applied per key.
func Table(lang string) map[string]string {
	lang = Normalize(lang)
	out := make(map[string]string, len(tables[LangEnglish]))
	for k, v := range tables[LangEnglish] {
		out[k] = v
	}
	if lang != LangEnglish {
		for k, v := range tables[lang] {
			out[k] = v
		}
	}
	return out
}
