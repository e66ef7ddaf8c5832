package text

import (
	"fmt"
	"strings"
)

// Language is an ISO 639-1 code from the supported set.
type Language string

const (
	LangAuto Language = "auto"

	LangEnglish    Language = "en"
	LangTurkish    Language = "tr"
	LangSpanish    Language = "es"
	LangFrench     Language = "fr"
	LangGerman     Language = "de"
	LangItalian    Language = "it"
	LangPortuguese Language = "pt"
	LangRussian    Language = "ru"
	LangJapanese   Language = "ja"
	LangKorean     Language = "ko"
	LangChinese    Language = "zh"
	LangArabic     Language = "ar"
	LangDutch      Language = "nl"
	LangPolish     Language = "pl"
	LangSwedish    Language = "sv"
	LangHindi      Language = "hi"
	LangCzech      Language = "cs"
	LangDanish     Language = "da"
	LangFinnish    Language = "fi"
	LangGreek      Language = "el"
	LangHungarian  Language = "hu"
	LangIndonesian Language = "id"
	LangNorwegian  Language = "no"
	LangRomanian   Language = "ro"
	LangSlovak     Language = "sk"
	LangUkrainian  Language = "uk"
	LangVietnamese Language = "vi"
	LangThai       Language = "th"
	LangBulgarian  Language = "bg"
)

// languageNames maps each supported code to its display name.
var languageNames = map[Language]string{
	LangEnglish:    "English",
	LangTurkish:    "Turkish",
	LangSpanish:    "Spanish",
	LangFrench:     "French",
	LangGerman:     "German",
	LangItalian:    "Italian",
	LangPortuguese: "Portuguese",
	LangRussian:    "Russian",
	LangJapanese:   "Japanese",
	LangKorean:     "Korean",
	LangChinese:    "Chinese",
	LangArabic:     "Arabic",
	LangDutch:      "Dutch",
	LangPolish:     "Polish",
	LangSwedish:    "Swedish",
	LangHindi:      "Hindi",
	LangCzech:      "Czech",
	LangDanish:     "Danish",
	LangFinnish:    "Finnish",
	LangGreek:      "Greek",
	LangHungarian:  "Hungarian",
	LangIndonesian: "Indonesian",
	LangNorwegian:  "Norwegian",
	LangRomanian:   "Romanian",
	LangSlovak:     "Slovak",
	LangUkrainian:  "Ukrainian",
	LangVietnamese: "Vietnamese",
	LangThai:       "Thai",
	LangBulgarian:  "Bulgarian",
}

// ParseLanguage validates a code and returns the typed language.
// "auto" is accepted as the detection sentinel.
func ParseLanguage(code string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	if lang == LangAuto {
		return lang, nil
	}
	if _, ok := languageNames[lang]; !ok {
		return "", fmt.Errorf("unsupported language code %q", code)
	}
	return lang, nil
}

// Name returns the display name, or the raw code when unknown.
func (l Language) Name() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return string(l)
}

// Supported reports whether the language is in the supported set.
func (l Language) Supported() bool {
	_, ok := languageNames[l]
	return ok
}

// SupportedLanguages returns all supported codes, unordered.
func SupportedLanguages() []Language {
	langs := make([]Language, 0, len(languageNames))
	for l := range languageNames {
		langs = append(langs, l)
	}
	return langs
}
