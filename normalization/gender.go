package normalization

import (
	"strings"

	"namenorm/dictionaries"
)

// Вес источников при определении рода персоны
const (
	scorePatronymic = 3
	scoreGivenName  = 3
	scoreSurname    = 2
	scoreTitle      = 1
)

// genderResolveThreshold минимальный разрыв очков для вывода рода.
// При меньшем разрыве род остается неизвестным и фамилия не меняется.
const genderResolveThreshold = 3

// genderPair пара родовых суффиксов фамилии одного семейства
type genderPair struct {
	Masculine string
	Feminine  string
}

// Пары упорядочены от длинного суффикса к короткому: "-ский" должен
// совпасть раньше "-ий". Несклоняемые фамилии сюда не попадают никогда.
var surnameGenderPairs = map[string][]genderPair{
	"ru": {
		{"ский", "ская"},
		{"цкий", "цкая"},
		{"ёв", "ёва"},
		{"ов", "ова"},
		{"ев", "ева"},
		{"ин", "ина"},
		{"ын", "ына"},
	},
	"uk": {
		{"ський", "ська"},
		{"цький", "цька"},
		{"ов", "ова"},
	},
}

// GenderEngine определяет род персоны по совокупности признаков и
// согласует родовой суффикс фамилии с выведенным родом.
type GenderEngine struct {
	store *dictionaries.Store
}

// NewGenderEngine создает движок определения рода
func NewGenderEngine(store *dictionaries.Store) *GenderEngine {
	return &GenderEngine{store: store}
}

// Infer подсчитывает очки рода по токенам группы и контекстным титулам.
// Род выводится только при разрыве очков не меньше порога; иначе
// остается неизвестным.
func (e *GenderEngine) Infer(group *PersonGroup, lang string) {
	group.ScoreMale = 0
	group.ScoreFemale = 0

	for _, tt := range group.Tokens {
		folded := dictionaries.FoldKey(tt.Text)
		switch tt.Role {
		case RolePatronymic:
			if entry, ok := matchPatronymicSuffix(lang, folded); ok {
				e.addScore(group, entry.Gender, scorePatronymic)
			}
		case RoleGiven:
			gn, ok := e.store.LookupGiven(lang, tt.Text)
			if !ok {
				gn, _, ok = e.store.LookupGivenAnyLanguage(tt.Text)
			}
			if ok {
				switch gn.Gender {
				case dictionaries.GenderMale:
					group.ScoreMale += scoreGivenName
				case dictionaries.GenderFemale:
					group.ScoreFemale += scoreGivenName
				}
			}
		case RoleSurname:
			if entry, ok := matchSurnameSuffix(lang, folded); ok {
				e.addScore(group, entry.Gender, scoreSurname)
			}
		}
	}

	for _, title := range group.Context {
		if g, ok := e.lookupTitleAnyLanguage(lang, title); ok {
			switch g {
			case dictionaries.GenderMale:
				group.ScoreMale += scoreTitle
			case dictionaries.GenderFemale:
				group.ScoreFemale += scoreTitle
			}
		}
	}

	diff := group.ScoreMale - group.ScoreFemale
	switch {
	case diff >= genderResolveThreshold:
		group.Gender = GenderMasculine
	case diff <= -genderResolveThreshold:
		group.Gender = GenderFeminine
	default:
		group.Gender = GenderUnknown
	}
}

func (e *GenderEngine) addScore(group *PersonGroup, g Gender, weight int) {
	switch g {
	case GenderMasculine:
		group.ScoreMale += weight
	case GenderFeminine:
		group.ScoreFemale += weight
	}
}

func (e *GenderEngine) lookupTitleAnyLanguage(lang, title string) (dictionaries.NameGender, bool) {
	if g, ok := e.store.LookupTitle(lang, title); ok {
		return g, true
	}
	for _, other := range e.store.Languages() {
		if other == lang {
			continue
		}
		if g, ok := e.store.LookupTitle(other, title); ok {
			return g, true
		}
	}
	return "", false
}

// AdjustSurname согласует родовой суффикс фамилии с родом группы.
// Работает только при известном роде; несклоняемые фамилии и фамилии,
// уже согласованные с родом, не меняются. При неизвестном роде
// сохраняется исходное написание, даже родомаркированное.
func (e *GenderEngine) AdjustSurname(group *PersonGroup, lang string) []TraceEntry {
	if group.Gender == GenderUnknown {
		return nil
	}

	var trace []TraceEntry
	for i := range group.Tokens {
		if group.Tokens[i].Role != RoleSurname {
			continue
		}
		original := group.Tokens[i].Text
		adjusted, rule := adjustSurnameSegments(original, lang, group.Gender)
		if adjusted == original {
			continue
		}
		group.Tokens[i].Text = adjusted
		trace = append(trace, TraceEntry{
			Input:  original,
			Output: adjusted,
			Role:   RoleSurname,
			Rule:   rule,
		})
	}
	return trace
}

func adjustSurnameSegments(surname, lang string, gender Gender) (string, string) {
	segments := strings.Split(surname, "-")
	changed := false
	var lastRule string
	for i, seg := range segments {
		adjusted, rule, ok := adjustSurnameSegment(seg, lang, gender)
		if ok {
			segments[i] = adjusted
			changed = true
			lastRule = rule
		}
	}
	if !changed {
		return surname, ""
	}
	return strings.Join(segments, "-"), lastRule
}

func adjustSurnameSegment(segment, lang string, gender Gender) (string, string, bool) {
	folded := dictionaries.FoldKey(segment)
	if isInvariantSurname(lang, folded) {
		return "", "", false
	}
	for _, pair := range surnameGenderPairs[lang] {
		from, to := pair.Feminine, pair.Masculine
		if gender == GenderFeminine {
			from, to = pair.Masculine, pair.Feminine
		}
		if !strings.HasSuffix(folded, from) {
			// Суффикс целевого рода уже на месте: семейство найдено,
			// менять нечего
			if strings.HasSuffix(folded, to) {
				return "", "", false
			}
			continue
		}
		stem := strings.TrimSuffix(folded, from)
		if len([]rune(stem)) < minStemRunes {
			continue
		}
		adjusted := applyCaseShape(segment, stem+to)
		return adjusted, "gender_suffix:" + from + ">" + to, true
	}
	return "", "", false
}
