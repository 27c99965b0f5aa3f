package normalization

import (
	"testing"

	"namenorm/dictionaries"
)

func TestResolveDiminutive(t *testing.T) {
	r := NewDiminutiveResolver(dictionaries.NewDefaultStore())

	tests := []struct {
		name  string
		token TaggedToken
		lang  string
		want  string
	}{
		{"russian", tagged("Вова", RoleUnknown), "ru", "Владимир"},
		{"russian given", tagged("Саша", RoleGiven), "ru", "Александр"},
		{"ukrainian", tagged("Сашко", RoleUnknown), "uk", "Олександр"},
		{"english", tagged("Bill", RoleUnknown), "en", "William"},
		{"case shape kept", tagged("ВОВА", RoleUnknown), "ru", "ВЛАДИМИР"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := []TaggedToken{tt.token}
			trace := r.Resolve(tokens, tt.lang, false)
			if tokens[0].Text != tt.want {
				t.Errorf("resolved to %q, want %q", tokens[0].Text, tt.want)
			}
			if tokens[0].Role != RoleGiven {
				t.Errorf("role = %s, want given after resolution", tokens[0].Role)
			}
			if len(trace) != 1 || trace[0].Rule != "diminutive" {
				t.Errorf("trace = %v, want single diminutive entry", trace)
			}
		})
	}
}

// Каноническое имя, совпадающее с уменьшительным, неподвижно
func TestDiminutiveFixedPoint(t *testing.T) {
	r := NewDiminutiveResolver(dictionaries.NewDefaultStore())

	tokens := []TaggedToken{tagged("Вера", RoleGiven)}
	trace := r.Resolve(tokens, "ru", false)
	if tokens[0].Text != "Вера" {
		t.Errorf("Вера mutated to %q", tokens[0].Text)
	}
	if len(trace) != 0 {
		t.Errorf("no-op resolution produced trace: %v", trace)
	}

	// Повторный прогон результата тоже ничего не меняет
	tokens = []TaggedToken{tagged("Владимир", RoleGiven)}
	r.Resolve(tokens, "ru", false)
	if tokens[0].Text != "Владимир" {
		t.Errorf("canonical Владимир mutated to %q", tokens[0].Text)
	}
}

func TestDiminutiveCrossLanguageGate(t *testing.T) {
	r := NewDiminutiveResolver(dictionaries.NewDefaultStore())

	// Украинское уменьшительное в русском тексте: без флага не трогается
	tokens := []TaggedToken{tagged("Сашко", RoleUnknown)}
	r.Resolve(tokens, "ru", false)
	if tokens[0].Text != "Сашко" {
		t.Errorf("cross-lang off: %q, want untouched Сашко", tokens[0].Text)
	}

	tokens = []TaggedToken{tagged("Сашко", RoleUnknown)}
	trace := r.Resolve(tokens, "ru", true)
	if tokens[0].Text != "Олександр" {
		t.Errorf("cross-lang on: %q, want Олександр", tokens[0].Text)
	}
	if len(trace) != 1 || trace[0].Rule != "diminutive_xlang:uk" {
		t.Errorf("trace = %v, want diminutive_xlang:uk", trace)
	}
}

func TestDiminutiveSkipsServiceTokens(t *testing.T) {
	r := NewDiminutiveResolver(dictionaries.NewDefaultStore())

	org := tagged("Вова", RoleOrganization)
	initial := tagged("В.", RoleInitial)
	title := tagged("пан", RoleUnknown)
	title.RuleID = "context_title"

	tokens := []TaggedToken{org, initial, title}
	trace := r.Resolve(tokens, "ru", false)
	if len(trace) != 0 {
		t.Fatalf("service tokens resolved: %v", trace)
	}
	for i, want := range []string{"Вова", "В.", "пан"} {
		if tokens[i].Text != want {
			t.Errorf("token %d = %q, want %q", i, tokens[i].Text, want)
		}
	}
}
