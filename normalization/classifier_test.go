package normalization

import (
	"testing"

	"namenorm/dictionaries"
	"namenorm/entityhints"
)

func classify(t *testing.T, input, lang string) []TaggedToken {
	t.Helper()
	store := dictionaries.NewDefaultStore()
	tokens := NewTokenizer(store).Tokenize(input, lang, TokenizerOptions{PreserveSeparators: true})
	return NewClassifier(store).Classify(tokens, lang, nil)
}

func findToken(tagged []TaggedToken, text string) *TaggedToken {
	for i := range tagged {
		if tagged[i].Text == text {
			return &tagged[i]
		}
	}
	return nil
}

func TestClassifyRoles(t *testing.T) {
	tests := []struct {
		name  string
		input string
		lang  string
		token string
		role  Role
	}{
		{"dictionary given", "Иван Петров", "ru", "Иван", RoleGiven},
		{"declined given", "Петренка Івана", "uk", "Івана", RoleGiven},
		{"surname suffix", "Иван Петров", "ru", "Петров", RoleSurname},
		{"feminine surname suffix", "Анна Петрова", "ru", "Петрова", RoleSurname},
		{"invariant surname", "Петро Коваленко", "uk", "Коваленко", RoleSurname},
		{"declined invariant surname", "Петренка Івана", "uk", "Петренка", RoleSurname},
		{"patronymic", "Иван Петров Сергеевич", "ru", "Сергеевич", RolePatronymic},
		{"feminine patronymic", "Анна Петрова Сергеевна", "ru", "Сергеевна", RolePatronymic},
		{"initial with dot", "О. Петренко", "uk", "О.", RoleInitial},
		{"legal form", "ООО Ромашка", "ru", "ООО", RoleLegalForm},
		{"cross language given", "Петро Коваленко", "ru", "Петро", RoleGiven},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tagged := classify(t, tt.input, tt.lang)
			tok := findToken(tagged, tt.token)
			if tok == nil {
				t.Fatalf("token %q not found in %v", tt.token, tagged)
			}
			if tok.Role != tt.role {
				t.Errorf("%q role = %s (rule %s), want %s", tt.token, tok.Role, tok.RuleID, tt.role)
			}
		})
	}
}

func TestClassifyQuotedOrganization(t *testing.T) {
	tagged := classify(t, `ТОВ "ПРИВАТБАНК" та Петро Коваленко`, "uk")

	tov := findToken(tagged, "ТОВ")
	if tov == nil || tov.Role != RoleLegalForm {
		t.Errorf("ТОВ role = %v, want legal_form", tov)
	}
	bank := findToken(tagged, "ПРИВАТБАНК")
	if bank == nil || bank.Role != RoleOrganization {
		t.Errorf("ПРИВАТБАНК role = %v, want organization", bank)
	}
	if bank != nil && bank.RuleID != "quoted_org" {
		t.Errorf("ПРИВАТБАНК rule = %s, want quoted_org", bank.RuleID)
	}
}

func TestClassifyCapsOrganization(t *testing.T) {
	tagged := classify(t, "ЗАПОРІЖСТАЛЬ та Петро", "uk")
	org := findToken(tagged, "ЗАПОРІЖСТАЛЬ")
	if org == nil || org.Role != RoleOrganization {
		t.Fatalf("ЗАПОРІЖСТАЛЬ role = %v, want organization", org)
	}
}

// Словарное имя капсом остается именем: словарь сильнее формы записи
func TestCapsGivenNameIsNotOrganization(t *testing.T) {
	tagged := classify(t, "ИВАН ПЕТРОВ", "ru")
	ivan := findToken(tagged, "ИВАН")
	if ivan == nil || ivan.Role != RoleGiven {
		t.Fatalf("ИВАН role = %v, want given", ivan)
	}
	petrov := findToken(tagged, "ПЕТРОВ")
	if petrov == nil || petrov.Role != RoleSurname {
		t.Fatalf("ПЕТРОВ role = %v, want surname", petrov)
	}
}

func TestBareLetterInitial(t *testing.T) {
	// "О" входит в закрытый список однобуквенных слов — не инициал
	tagged := classify(t, "Иванов о Петров", "ru")
	o := findToken(tagged, "о")
	if o == nil || o.Role != RoleUnknown || o.RuleID != "letter_word" {
		t.Errorf("о = %v, want unknown/letter_word", o)
	}

	// "Б" вне списка и примыкает к фамилии — инициал
	tagged = classify(t, "Петров Б", "ru")
	b := findToken(tagged, "Б")
	if b == nil || b.Role != RoleInitial {
		t.Errorf("Б = %v, want initial", b)
	}
}

func TestIsolatedBareLetterDemoted(t *testing.T) {
	tagged := classify(t, "Б", "ru")
	b := findToken(tagged, "Б")
	if b == nil || b.Role != RoleUnknown || b.RuleID != "initial_isolated" {
		t.Errorf("isolated Б = %v, want unknown/initial_isolated", b)
	}
}

func TestIsolatedDottedInitialDemoted(t *testing.T) {
	tagged := classify(t, "П. впроект", "ru")
	p := findToken(tagged, "П.")
	if p == nil || p.Role != RoleUnknown || p.RuleID != "initial_isolated" {
		t.Errorf("isolated П. = %v, want unknown/initial_isolated", p)
	}

	// Рядом с фамилией точечный инициал сохраняется
	tagged = classify(t, "П. Петренко", "uk")
	p = findToken(tagged, "П.")
	if p == nil || p.Role != RoleInitial {
		t.Errorf("П. = %v, want initial next to surname", p)
	}

	// Пара инициалов удерживает друг друга
	tagged = classify(t, "Петров П. И.", "ru")
	for _, text := range []string{"П.", "И."} {
		tok := findToken(tagged, text)
		if tok == nil || tok.Role != RoleInitial {
			t.Errorf("%s = %v, want initial in a chain", text, tok)
		}
	}
}

func TestTransliteratedFemalePatronymic(t *testing.T) {
	tagged := classify(t, "Olga Petrovna Ivanova", "en")

	olga := findToken(tagged, "Olga")
	if olga == nil || olga.Role != RoleGiven || olga.RuleID != "positional_given" {
		t.Errorf("Olga = %v, want given/positional_given", olga)
	}
	petrovna := findToken(tagged, "Petrovna")
	if petrovna == nil || petrovna.Role != RolePatronymic || petrovna.RuleID != "positional_patronymic" {
		t.Errorf("Petrovna = %v, want patronymic/positional_patronymic", petrovna)
	}
	ivanova := findToken(tagged, "Ivanova")
	if ivanova == nil || ivanova.Role != RoleSurname {
		t.Errorf("Ivanova = %v, want surname", ivanova)
	}
}

func TestPositionalPromotion(t *testing.T) {
	// Неизвестный токен рядом с фамилией становится именем
	tagged := classify(t, "Вова Петров", "ru")
	vova := findToken(tagged, "Вова")
	if vova == nil || vova.Role != RoleGiven || vova.RuleID != "positional_given" {
		t.Errorf("Вова = %v, want given/positional_given", vova)
	}

	// Последний токен после словарного имени становится фамилией,
	// промежуточный — вторым именем
	tagged = classify(t, "Mary Ann Walker", "en")
	ann := findToken(tagged, "Ann")
	if ann == nil || ann.Role != RoleGiven {
		t.Errorf("Ann = %v, want given", ann)
	}
	walker := findToken(tagged, "Walker")
	if walker == nil || walker.Role != RoleSurname {
		t.Errorf("Walker = %v, want surname", walker)
	}
}

func TestConjunctionIsBoundary(t *testing.T) {
	// Продвижение не пересекает союз: Вова примыкает к своей фамилии,
	// а не к фамилии за союзом
	tagged := classify(t, "Коваленко та Вова", "uk")
	vova := findToken(tagged, "Вова")
	if vova == nil || vova.Role != RoleUnknown {
		t.Errorf("Вова за союзом = %v, want unknown", vova)
	}
}

func TestSurnameParticleAttachment(t *testing.T) {
	tagged := classify(t, "Людвиг ван Бетховен", "ru")
	van := findToken(tagged, "ван")
	if van == nil {
		t.Fatal("ван not found")
	}
	beethoven := findToken(tagged, "Бетховен")
	if beethoven == nil {
		t.Fatal("Бетховен not found")
	}
	// Частица присоединяется только если следующий токен — фамилия
	if beethoven.Role == RoleSurname && van.Role != RoleSurname {
		t.Errorf("ван = %s, want surname when followed by surname", van.Role)
	}
}

func TestContextTitle(t *testing.T) {
	tagged := classify(t, "пан Коваленко", "uk")
	pan := findToken(tagged, "пан")
	if pan == nil || pan.RuleID != "context_title" {
		t.Errorf("пан = %v, want context_title", pan)
	}
	if pan != nil && pan.Role != RoleUnknown {
		t.Errorf("пан role = %s, want unknown", pan.Role)
	}
}

func TestRoleExclusivity(t *testing.T) {
	inputs := []struct {
		text string
		lang string
	}{
		{"Иван Петров Сергеевич", "ru"},
		{`ТОВ "ПРИВАТБАНК" та Петро Коваленко`, "uk"},
		{"О. Петренко, пані Оленка", "uk"},
	}

	valid := map[Role]bool{
		RoleGiven: true, RoleSurname: true, RolePatronymic: true, RoleInitial: true,
		RoleOrganization: true, RoleLegalForm: true, RoleUnknown: true,
	}

	for _, in := range inputs {
		for _, tok := range classify(t, in.text, in.lang) {
			if !valid[tok.Role] {
				t.Errorf("token %q carries invalid role %q", tok.Text, tok.Role)
			}
		}
	}
}

func TestEntityHintsBiasUnknown(t *testing.T) {
	store := dictionaries.NewDefaultStore()
	input := "Globaltech Industries"
	tokens := NewTokenizer(store).Tokenize(input, "en", TokenizerOptions{})

	hints := &entityhints.Hints{
		OrganizationSpans: []entityhints.Span{{Start: 0, End: len(input), Text: input}},
	}
	tagged := NewClassifier(store).Classify(tokens, "en", hints)
	for _, tok := range tagged {
		if tok.Role != RoleOrganization {
			t.Errorf("%q = %s, want organization via hint", tok.Text, tok.Role)
		}
	}

	// Подсказка не перекрывает словарь
	input = "John Smith"
	tokens = NewTokenizer(store).Tokenize(input, "en", TokenizerOptions{})
	hints = &entityhints.Hints{
		OrganizationSpans: []entityhints.Span{{Start: 0, End: len(input), Text: input}},
	}
	tagged = NewClassifier(store).Classify(tokens, "en", hints)
	john := findToken(tagged, "John")
	if john == nil || john.Role != RoleGiven {
		t.Errorf("John = %v, hint must not override dictionary", john)
	}
}
