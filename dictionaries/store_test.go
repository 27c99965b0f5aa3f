package dictionaries

import (
	"testing"
)

func TestFoldKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Иван", "иван"},
		{"ИВАН", "иван"},
		{"  Іван  ", "іван"},
		{"John", "john"},
	}

	for _, tt := range tests {
		if got := FoldKey(tt.input); got != tt.expected {
			t.Errorf("FoldKey(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestLookupGivenDirect(t *testing.T) {
	store := NewDefaultStore()

	tests := []struct {
		lang   string
		token  string
		want   string
		gender NameGender
	}{
		{"ru", "Иван", "Иван", GenderMale},
		{"ru", "иван", "Иван", GenderMale},
		{"ru", "Анна", "Анна", GenderFemale},
		{"uk", "Петро", "Петро", GenderMale},
		{"en", "William", "William", GenderMale},
	}

	for _, tt := range tests {
		gn, ok := store.LookupGiven(tt.lang, tt.token)
		if !ok {
			t.Errorf("LookupGiven(%s, %q) not found", tt.lang, tt.token)
			continue
		}
		if gn.Canonical != tt.want {
			t.Errorf("LookupGiven(%s, %q) = %q, want %q", tt.lang, tt.token, gn.Canonical, tt.want)
		}
		if gn.Gender != tt.gender {
			t.Errorf("LookupGiven(%s, %q) gender = %q, want %q", tt.lang, tt.token, gn.Gender, tt.gender)
		}
	}
}

func TestLookupGivenDeclined(t *testing.T) {
	store := NewDefaultStore()

	tests := []struct {
		lang  string
		token string
		want  string
	}{
		{"ru", "Ивана", "Иван"},
		{"ru", "Ивану", "Иван"},
		{"ru", "Иваном", "Иван"},
		{"uk", "Івана", "Іван"},
		{"uk", "Іванові", "Іван"},
		{"uk", "Петра", "Петро"},
	}

	for _, tt := range tests {
		gn, ok := store.LookupGiven(tt.lang, tt.token)
		if !ok {
			t.Errorf("LookupGiven(%s, %q) not found", tt.lang, tt.token)
			continue
		}
		if gn.Canonical != tt.want {
			t.Errorf("LookupGiven(%s, %q) = %q, want %q", tt.lang, tt.token, gn.Canonical, tt.want)
		}
	}
}

// Прямая форма женского имени не должна перекрываться склонением мужского:
// "Александра" остается Александрой, а не родительным падежом Александра.
func TestDirectFormBeatsDeclension(t *testing.T) {
	store := NewDefaultStore()

	gn, ok := store.LookupGiven("ru", "Александра")
	if !ok {
		t.Fatal("LookupGiven(ru, Александра) not found")
	}
	if gn.Canonical != "Александра" || gn.Gender != GenderFemale {
		t.Errorf("got %q (%s), want Александра (female)", gn.Canonical, gn.Gender)
	}
}

func TestLookupGivenAnyLanguage(t *testing.T) {
	store := NewDefaultStore()

	gn, lang, ok := store.LookupGivenAnyLanguage("Петро")
	if !ok {
		t.Fatal("LookupGivenAnyLanguage(Петро) not found")
	}
	if lang != "uk" {
		t.Errorf("language = %q, want uk", lang)
	}
	if gn.Canonical != "Петро" {
		t.Errorf("canonical = %q, want Петро", gn.Canonical)
	}
}

func TestResolveDiminutive(t *testing.T) {
	store := NewDefaultStore()

	tests := []struct {
		lang  string
		token string
		want  string
	}{
		{"ru", "Вова", "Владимир"},
		{"ru", "вова", "Владимир"},
		{"ru", "Саша", "Александр"},
		{"uk", "Сашко", "Олександр"},
		{"en", "Bill", "William"},
	}

	for _, tt := range tests {
		canonical, ok := store.ResolveDiminutive(tt.lang, tt.token)
		if !ok {
			t.Errorf("ResolveDiminutive(%s, %q) not found", tt.lang, tt.token)
			continue
		}
		if canonical != tt.want {
			t.Errorf("ResolveDiminutive(%s, %q) = %q, want %q", tt.lang, tt.token, canonical, tt.want)
		}
	}

	if _, ok := store.ResolveDiminutive("ru", "Петров"); ok {
		t.Error("ResolveDiminutive(ru, Петров) should not resolve")
	}
}

func TestResolveDiminutiveAnyLanguage(t *testing.T) {
	store := NewDefaultStore()

	canonical, lang, ok := store.ResolveDiminutiveAnyLanguage("ru", "Bill")
	if !ok {
		t.Fatal("ResolveDiminutiveAnyLanguage(ru, Bill) not found")
	}
	if lang != "en" || canonical != "William" {
		t.Errorf("got %q from %s, want William from en", canonical, lang)
	}

	// Исключаемый язык не просматривается
	if _, _, ok := store.ResolveDiminutiveAnyLanguage("ru", "Вова"); ok {
		t.Error("excluded language should be skipped")
	}
}

func TestLookupLegalForm(t *testing.T) {
	store := NewDefaultStore()

	tests := []struct {
		token string
		want  string
	}{
		{"ООО", "ООО"},
		{"ооо", "ООО"},
		{"О.О.О.", "ООО"},
		{"ТОВ", "ТОВ"},
		{"LLC", "LLC"},
		{"GmbH", "GMBH"},
	}

	for _, tt := range tests {
		canonical, ok := store.LookupLegalForm(tt.token)
		if !ok {
			t.Errorf("LookupLegalForm(%q) not found", tt.token)
			continue
		}
		if canonical != tt.want {
			t.Errorf("LookupLegalForm(%q) = %q, want %q", tt.token, canonical, tt.want)
		}
	}

	if _, ok := store.LookupLegalForm("Иван"); ok {
		t.Error("LookupLegalForm(Иван) should not match")
	}
}

func TestSingleLetterWords(t *testing.T) {
	store := NewDefaultStore()

	if !store.IsSingleLetterWord("ru", "и") {
		t.Error("IsSingleLetterWord(ru, и) = false, want true")
	}
	if !store.IsSingleLetterWord("uk", "і") {
		t.Error("IsSingleLetterWord(uk, і) = false, want true")
	}
	if store.IsSingleLetterWord("ru", "б") {
		t.Error("IsSingleLetterWord(ru, б) = true, want false")
	}
}

func TestIsConjunction(t *testing.T) {
	store := NewDefaultStore()

	if !store.IsConjunction("uk", "та") {
		t.Error("IsConjunction(uk, та) = false, want true")
	}
	if !store.IsConjunction("ru", "и") {
		t.Error("IsConjunction(ru, и) = false, want true")
	}
	// Амперсанд работает как разделитель для любого языка
	if !store.IsConjunction("en", "&") {
		t.Error("IsConjunction(en, &) = false, want true")
	}
	if store.IsConjunction("ru", "та") {
		t.Error("IsConjunction(ru, та) = true, want false")
	}
}

func TestLookupTitle(t *testing.T) {
	store := NewDefaultStore()

	g, ok := store.LookupTitle("uk", "пані")
	if !ok || g != GenderFemale {
		t.Errorf("LookupTitle(uk, пані) = %q, %v; want female, true", g, ok)
	}
	g, ok = store.LookupTitle("en", "Mr")
	if !ok || g != GenderMale {
		t.Errorf("LookupTitle(en, Mr) = %q, %v; want male, true", g, ok)
	}
}

// Порядок языков фиксирован: межъязыковые поиски обязаны быть
// воспроизводимыми от запуска к запуску.
func TestLanguagesDeterministic(t *testing.T) {
	store := NewDefaultStore()

	first := store.Languages()
	for i := 0; i < 10; i++ {
		got := store.Languages()
		if len(got) != len(first) {
			t.Fatalf("Languages() length changed: %v vs %v", got, first)
		}
		for j := range got {
			if got[j] != first[j] {
				t.Fatalf("Languages() order changed: %v vs %v", got, first)
			}
		}
	}
}
