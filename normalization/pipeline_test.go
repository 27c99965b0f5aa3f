package normalization

import (
	"context"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"namenorm/dictionaries"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(dictionaries.NewDefaultStore(), nil, nil)
}

func normalize(t *testing.T, n *Normalizer, text string, opts Options) *Result {
	t.Helper()
	result := n.Normalize(context.Background(), text, opts)
	if result == nil {
		t.Fatal("Normalize returned nil")
	}
	return result
}

func optsFor(lang string) Options {
	opts := DefaultOptions()
	opts.Language = lang
	return opts
}

// Имя вне словаря в начале тройки не теряется, а отчество
// в транслитерации занимает свой слот в каноническом порядке
func TestNormalizeTransliteratedTriple(t *testing.T) {
	n := newTestNormalizer()

	result := normalize(t, n, "Olga Petrovna Ivanova", optsFor("en"))
	if result.Normalized != "Olga Ivanova Petrovna" {
		t.Errorf("normalized = %q, want Olga Ivanova Petrovna", result.Normalized)
	}

	again := normalize(t, n, result.Normalized, optsFor("en"))
	if again.Normalized != result.Normalized {
		t.Errorf("renormalized = %q, want %q", again.Normalized, result.Normalized)
	}
}

// Изолированный точечный инициал не образует персону
func TestNormalizeIsolatedInitialNotEmitted(t *testing.T) {
	n := newTestNormalizer()

	result := normalize(t, n, "П. впроект", optsFor("ru"))
	if len(result.Persons) != 0 {
		t.Errorf("persons = %v, want none", result.Persons)
	}
	if result.Normalized != "П. впроект" {
		t.Errorf("normalized = %q, want passthrough", result.Normalized)
	}
}

func TestNormalizeDiminutiveWithSurname(t *testing.T) {
	n := newTestNormalizer()

	result := normalize(t, n, "Вова Петров", optsFor("ru"))
	if !result.Success {
		t.Fatalf("errors: %v", result.Errors)
	}
	if result.Normalized != "Владимир Петров" {
		t.Errorf("normalized = %q, want Владимир Петров", result.Normalized)
	}

	found := false
	for _, entry := range result.Trace {
		if entry.Rule == "diminutive" {
			found = true
		}
	}
	if !found {
		t.Error("trace has no diminutive entry")
	}
}

func TestNormalizeDeclinedInvariantSurname(t *testing.T) {
	n := newTestNormalizer()

	result := normalize(t, n, "Петренка Івана", optsFor("uk"))
	if result.Normalized != "Іван Петренко" {
		t.Errorf("normalized = %q, want Іван Петренко", result.Normalized)
	}
	if len(result.Persons) != 1 {
		t.Fatalf("persons = %d, want 1", len(result.Persons))
	}
}

func TestNormalizeInitialKept(t *testing.T) {
	n := newTestNormalizer()

	result := normalize(t, n, "О. Петренко", optsFor("uk"))
	if result.Normalized != "Петренко О." {
		t.Errorf("normalized = %q, want Петренко О.", result.Normalized)
	}
}

func TestNormalizeMixedOrganizationAndPerson(t *testing.T) {
	n := newTestNormalizer()

	result := normalize(t, n, `ТОВ "ПРИВАТБАНК" та Петро Коваленко`, optsFor("uk"))
	if result.Normalized != "ПРИВАТБАНК, Петро Коваленко" {
		t.Errorf("normalized = %q", result.Normalized)
	}
	if len(result.Organizations) != 1 || result.Organizations[0] != "ПРИВАТБАНК" {
		t.Errorf("organizations = %v", result.Organizations)
	}
	if strings.Contains(result.Normalized, "ТОВ") {
		t.Error("legal form leaked into normalized output")
	}
}

// Повторная нормализация своего же результата ничего не меняет
func TestNormalizeIdempotent(t *testing.T) {
	n := newTestNormalizer()

	inputs := []struct {
		text string
		lang string
	}{
		{"Вова Петров", "ru"},
		{"Петренка Івана", "uk"},
		{"О. Петренко", "uk"},
		{`ТОВ "ПРИВАТБАНК" та Петро Коваленко`, "uk"},
		{"Иванов Иван, Петров Пётр", "ru"},
		{"Mary Ann Walker", "en"},
		{"пані Коваленко Олена", "uk"},
	}

	for _, in := range inputs {
		opts := optsFor(in.lang)
		first := normalize(t, n, in.text, opts)
		if !first.Success {
			t.Errorf("%q failed: %v", in.text, first.Errors)
			continue
		}
		second := normalize(t, n, first.Normalized, opts)
		if second.Normalized != first.Normalized {
			t.Errorf("not idempotent on %q: %q then %q", in.text, first.Normalized, second.Normalized)
		}
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	n := newTestNormalizer()
	opts := optsFor("uk")
	input := `ТОВ "ПРИВАТБАНК" та Петро Коваленко, пані Оленка`

	first := normalize(t, n, input, opts)
	for i := 0; i < 10; i++ {
		got := normalize(t, n, input, opts)
		if got.Normalized != first.Normalized {
			t.Fatalf("output changed between runs: %q vs %q", got.Normalized, first.Normalized)
		}
	}
}

func TestNormalizeInputErrors(t *testing.T) {
	n := newTestNormalizer()
	opts := DefaultOptions()

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   \t "},
		{"too long", strings.Repeat("а", MaxInputLength+1)},
		{"no letters", "12345 --- !!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalize(t, n, tt.input, opts)
			if result.Success {
				t.Error("expected failure")
			}
			if len(result.Errors) == 0 {
				t.Error("expected error message")
			}
		})
	}
}

func TestNormalizeRoleExclusivity(t *testing.T) {
	n := newTestNormalizer()

	valid := map[Role]bool{
		RoleGiven: true, RoleSurname: true, RolePatronymic: true, RoleInitial: true,
		RoleOrganization: true, RoleLegalForm: true, RoleUnknown: true,
	}

	result := normalize(t, n, `ТОВ "ПРИВАТБАНК" та Петро Коваленко, пан Іван`, optsFor("uk"))
	for _, tok := range result.Tokens {
		if !valid[tok.Role] {
			t.Errorf("token %q carries invalid role %q", tok.Text, tok.Role)
		}
	}
}

// При недостаточном разрыве очков рода фамилия не переписывается
func TestNormalizeGenderStability(t *testing.T) {
	n := newTestNormalizer()

	result := normalize(t, n, "Иван Петрова", optsFor("ru"))
	if !strings.Contains(result.Normalized, "Петрова") {
		t.Errorf("ambiguous gender rewrote surname: %q", result.Normalized)
	}
}

func TestNormalizeGenderAdjustment(t *testing.T) {
	n := newTestNormalizer()

	result := normalize(t, n, "Анна Петров Сергеевна", optsFor("ru"))
	if result.Normalized != "Анна Петрова Сергеевна" {
		t.Errorf("normalized = %q, want Анна Петрова Сергеевна", result.Normalized)
	}
}

// Имя, совпадающее со своей канонической формой, неподвижная точка
func TestNormalizeDiminutiveFixedPoint(t *testing.T) {
	n := newTestNormalizer()

	result := normalize(t, n, "Вера Петрова", optsFor("ru"))
	if result.Normalized != "Вера Петрова" {
		t.Errorf("normalized = %q, want Вера Петрова", result.Normalized)
	}
}

func TestNormalizePreserveNames(t *testing.T) {
	n := newTestNormalizer()
	opts := optsFor("ru")
	opts.PreserveNames = true

	result := normalize(t, n, "Вова Петров", opts)
	if result.Normalized != "Вова Петров" {
		t.Errorf("normalized = %q, want untouched Вова Петров", result.Normalized)
	}
	// Роли при этом назначаются
	if len(result.Persons) != 1 {
		t.Errorf("persons = %d, want 1", len(result.Persons))
	}
}

func TestNormalizeCrossLangDiminutive(t *testing.T) {
	n := newTestNormalizer()

	opts := optsFor("ru")
	result := normalize(t, n, "Сашко Петров", opts)
	if !strings.Contains(result.Normalized, "Сашко") {
		t.Errorf("cross-lang off must keep Сашко: %q", result.Normalized)
	}

	opts.AllowCrossLangDiminutives = true
	result = normalize(t, n, "Сашко Петров", opts)
	if !strings.Contains(result.Normalized, "Олександр") {
		t.Errorf("cross-lang on: %q, want Олександр", result.Normalized)
	}
}

// Вход без распознанных сущностей проходит насквозь
func TestNormalizePassthrough(t *testing.T) {
	n := newTestNormalizer()
	opts := optsFor("ru")
	opts.RemoveStopWords = false

	result := normalize(t, n, "таинственный незнакомец", opts)
	if !result.Success {
		t.Fatalf("errors: %v", result.Errors)
	}
	if result.Normalized != "таинственный незнакомец" {
		t.Errorf("passthrough = %q", result.Normalized)
	}
}

func TestNormalizeAutoLanguage(t *testing.T) {
	n := newTestNormalizer()

	result := normalize(t, n, "Пётр Ёлкин", DefaultOptions())
	if result.Language != "ru" {
		t.Errorf("language = %q, want ru", result.Language)
	}
	result = normalize(t, n, "John Smith", DefaultOptions())
	if result.Language != "en" {
		t.Errorf("language = %q, want en", result.Language)
	}
}

func TestFastPathMatchesFullPipeline(t *testing.T) {
	n := newTestNormalizer()

	fast := optsFor("en")
	fast.ASCIIFastPath = true
	full := optsFor("en")

	inputs := []string{"John Smith", "Bill Walker", "Mary Ann Walker", "Anna Petrova"}
	for _, in := range inputs {
		fastResult := normalize(t, n, in, fast)
		fullResult := normalize(t, n, in, full)
		if fastResult.Normalized != fullResult.Normalized {
			t.Errorf("%q: fastpath %q, full %q", in, fastResult.Normalized, fullResult.Normalized)
		}
	}
}

func TestFastPathTraceMarker(t *testing.T) {
	n := newTestNormalizer()
	opts := optsFor("en")
	opts.ASCIIFastPath = true

	result := normalize(t, n, "John Smith", opts)
	if len(result.Trace) == 0 || result.Trace[0].Rule != "ascii_fastpath" {
		t.Error("fastpath result must carry ascii_fastpath trace marker")
	}

	// Не-ASCII вход игнорирует быстрый путь
	opts.Language = "ru"
	result = normalize(t, n, "Вова Петров", opts)
	for _, entry := range result.Trace {
		if entry.Rule == "ascii_fastpath" {
			t.Error("cyrillic input took the ascii fastpath")
		}
	}
}

// Случайные ASCII имена: нормализация идемпотентна на любом входе
func TestNormalizeRandomNamesIdempotent(t *testing.T) {
	n := newTestNormalizer()
	faker := gofakeit.New(42)
	opts := optsFor("en")

	for i := 0; i < 30; i++ {
		name := faker.Name()
		first := normalize(t, n, name, opts)
		if !first.Success {
			t.Errorf("%q failed: %v", name, first.Errors)
			continue
		}
		second := normalize(t, n, first.Normalized, opts)
		if second.Normalized != first.Normalized {
			t.Errorf("not idempotent on %q: %q then %q", name, first.Normalized, second.Normalized)
		}
	}
}
