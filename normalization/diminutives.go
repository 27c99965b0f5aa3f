package normalization

import (
	"namenorm/dictionaries"
)

// DiminutiveResolver разворачивает уменьшительные формы имен в
// канонические по словарю. Никаких эвристик: только словарное
// совпадение после case folding. Успешное разрешение принудительно
// переводит роль токена в Given.
type DiminutiveResolver struct {
	store *dictionaries.Store
}

// NewDiminutiveResolver создает резолвер уменьшительных форм
func NewDiminutiveResolver(store *dictionaries.Store) *DiminutiveResolver {
	return &DiminutiveResolver{store: store}
}

// Resolve проходит по токенам и заменяет уменьшительные формы.
// Кандидаты — токены с ролями Given, Surname и Unknown; инициалы,
// организации и юридические формы не рассматриваются.
// Запускается дважды: до морфологии (прямые формы) и после
// (уменьшительная форма могла скрываться за падежной).
func (r *DiminutiveResolver) Resolve(tagged []TaggedToken, lang string, allowCrossLang bool) []TraceEntry {
	var trace []TraceEntry
	for i := range tagged {
		switch tagged[i].Role {
		case RoleGiven, RoleSurname, RoleUnknown:
		default:
			continue
		}
		switch tagged[i].RuleID {
		case "separator_comma", "separator_conjunction", "context_title",
			"stop_word", "letter_word", "surname_particle":
			continue
		}

		canonical, ok := r.store.ResolveDiminutive(lang, tagged[i].Text)
		rule := "diminutive"
		if !ok && allowCrossLang {
			var srcLang string
			canonical, srcLang, ok = r.store.ResolveDiminutiveAnyLanguage(lang, tagged[i].Text)
			if ok {
				rule = "diminutive_xlang:" + srcLang
			}
		}
		if !ok {
			continue
		}

		original := tagged[i].Text
		replaced := applyCaseShape(original, canonical)
		if replaced == original && tagged[i].Role == RoleGiven {
			continue
		}
		tagged[i].Text = replaced
		tagged[i].Role = RoleGiven
		tagged[i].RuleID = rule
		trace = append(trace, TraceEntry{
			Input:  original,
			Output: replaced,
			Role:   RoleGiven,
			Rule:   rule,
		})
	}
	return trace
}
