package language

import (
	"strings"
	"unicode"
)

// Коды поддерживаемых языков
const (
	Russian   = "ru"
	Ukrainian = "uk"
	English   = "en"
	Auto      = "auto"
)

// NormalizeCode приводит код языка к стандартной форме
func NormalizeCode(code string) string {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "ru", "rus", "russian":
		return Russian
	case "uk", "ukr", "ukrainian":
		return Ukrainian
	case "en", "eng", "english":
		return English
	case "", "auto":
		return Auto
	}
	return Auto
}

// Detect определяет язык текста по письменности и маркерным буквам.
// Возвращает код языка и уверенность в диапазоне [0, 1].
func Detect(text string) (string, float64) {
	var cyrillic, latin, ukMarkers, ruMarkers, letters int

	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
			switch unicode.ToLower(r) {
			case 'є', 'і', 'ї', 'ґ':
				ukMarkers++
			case 'ы', 'э', 'ъ', 'ё':
				ruMarkers++
			}
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}

	if letters == 0 {
		return Auto, 0
	}

	if latin > cyrillic {
		confidence := float64(latin) / float64(letters)
		return English, confidence
	}

	base := float64(cyrillic) / float64(letters)
	switch {
	case ukMarkers > ruMarkers:
		return Ukrainian, base
	case ruMarkers > 0:
		return Russian, base
	}
	// Кириллица без маркерных букв: русский с пониженной уверенностью
	return Russian, base * 0.75
}
