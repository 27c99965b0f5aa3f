package normalization

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"namenorm/dictionaries"
)

// suffixRule правило замены суффикса: склоненная форма -> именительный падеж
type suffixRule struct {
	From string
	To   string
}

// suffixEntry суффикс роли с грамматическим родом для классификации
type suffixEntry struct {
	Suffix string
	Gender Gender
}

// Таблицы суффиксов по (язык, семейство ролей). Внутри таблицы порядок
// строго от длинного суффикса к короткому: "-овны" должен совпасть
// раньше общего "-ы". Порядок фиксируется сортировкой при инициализации.
var (
	surnameSuffixes = map[string][]suffixEntry{
		"ru": {
			{"овым", GenderMasculine}, {"овой", GenderFeminine}, {"овых", GenderUnknown},
			{"евым", GenderMasculine}, {"евой", GenderFeminine},
			{"иным", GenderMasculine}, {"иной", GenderFeminine},
			{"ского", GenderMasculine}, {"скому", GenderMasculine}, {"ским", GenderMasculine},
			{"ском", GenderMasculine}, {"скую", GenderFeminine}, {"скою", GenderFeminine},
			{"цкого", GenderMasculine}, {"цкому", GenderMasculine}, {"цким", GenderMasculine},
			{"цкую", GenderFeminine},
			{"ский", GenderMasculine}, {"ская", GenderFeminine},
			{"цкий", GenderMasculine}, {"цкая", GenderFeminine},
			{"ской", GenderUnknown},
			{"ова", GenderFeminine}, {"ева", GenderFeminine}, {"ёва", GenderFeminine},
			{"ина", GenderFeminine}, {"ына", GenderFeminine},
			{"ову", GenderMasculine}, {"ове", GenderMasculine},
			{"еву", GenderMasculine}, {"еве", GenderMasculine},
			{"ину", GenderMasculine}, {"ине", GenderMasculine},
			{"ов", GenderMasculine}, {"ев", GenderMasculine}, {"ёв", GenderMasculine},
			{"ин", GenderMasculine}, {"ын", GenderMasculine},
			{"ых", GenderUnknown}, {"их", GenderUnknown},
		},
		"uk": {
			{"ського", GenderMasculine}, {"ському", GenderMasculine}, {"ським", GenderMasculine},
			{"ської", GenderFeminine}, {"ській", GenderFeminine}, {"ською", GenderFeminine},
			{"цького", GenderMasculine}, {"цькому", GenderMasculine}, {"цьким", GenderMasculine},
			{"цької", GenderFeminine}, {"цькій", GenderFeminine},
			{"ський", GenderMasculine}, {"ська", GenderFeminine},
			{"цький", GenderMasculine}, {"цька", GenderFeminine},
			{"ську", GenderFeminine}, {"цьку", GenderFeminine},
			{"ишин", GenderUnknown},
			{"ова", GenderFeminine}, {"ов", GenderMasculine},
		},
		"en": {
			{"ovich", GenderMasculine},
			{"shvili", GenderUnknown}, {"dze", GenderUnknown},
			{"skaya", GenderFeminine}, {"ska", GenderFeminine},
			{"sky", GenderMasculine}, {"ski", GenderMasculine},
			{"ova", GenderFeminine}, {"eva", GenderFeminine},
			{"ov", GenderMasculine}, {"ev", GenderMasculine},
			{"son", GenderUnknown}, {"sen", GenderUnknown},
			{"yan", GenderUnknown}, {"ian", GenderUnknown},
			{"berg", GenderUnknown}, {"stein", GenderUnknown},
			{"escu", GenderUnknown}, {"enko", GenderUnknown},
		},
	}

	patronymicSuffixes = map[string][]suffixEntry{
		"ru": {
			{"овича", GenderMasculine}, {"овичу", GenderMasculine}, {"овичем", GenderMasculine}, {"овиче", GenderMasculine},
			{"евича", GenderMasculine}, {"евичу", GenderMasculine}, {"евичем", GenderMasculine}, {"евиче", GenderMasculine},
			{"ович", GenderMasculine}, {"евич", GenderMasculine}, {"ьич", GenderMasculine},
			{"овной", GenderFeminine}, {"овною", GenderFeminine},
			{"овны", GenderFeminine}, {"овне", GenderFeminine}, {"овну", GenderFeminine},
			{"евной", GenderFeminine},
			{"евны", GenderFeminine}, {"евне", GenderFeminine}, {"евну", GenderFeminine},
			{"овна", GenderFeminine}, {"евна", GenderFeminine},
			{"иничны", GenderFeminine}, {"инична", GenderFeminine},
			{"ичной", GenderFeminine}, {"ичны", GenderFeminine}, {"ична", GenderFeminine},
		},
		"uk": {
			{"йовича", GenderMasculine}, {"йовичу", GenderMasculine}, {"йовичем", GenderMasculine},
			{"овича", GenderMasculine}, {"овичу", GenderMasculine}, {"овичем", GenderMasculine},
			{"йович", GenderMasculine}, {"ович", GenderMasculine},
			{"івною", GenderFeminine}, {"ївною", GenderFeminine},
			{"івни", GenderFeminine}, {"івні", GenderFeminine}, {"івну", GenderFeminine},
			{"ївни", GenderFeminine}, {"ївні", GenderFeminine}, {"ївну", GenderFeminine},
			{"івна", GenderFeminine}, {"ївна", GenderFeminine},
		},
	}

	// Несклоняемые по роду фамилии: суффикс не меняется при
	// согласовании с родом, допустима только падежная реставрация.
	invariantSurnameSuffixes = map[string][]string{
		"ru": {"енко", "енка", "енку", "енком", "енке", "ко", "ук", "юк", "чук", "ых", "их"},
		"uk": {"енко", "енка", "енку", "енком", "енкові", "енці", "ко", "ук", "ука", "уку", "уком", "юк", "юка", "юку", "чук", "ишин"},
		"en": {"enko", "ko", "uk", "chuk"},
	}

	// Падежная реставрация несклоняемых фамилий: восстановление
	// именительного "-о" и базовых форм. Родовые суффиксы здесь
	// не трогаются никогда.
	invariantCaseRules = map[string][]suffixRule{
		"ru": {
			{"енком", "енко"}, {"енка", "енко"}, {"енку", "енко"}, {"енке", "енко"},
		},
		"uk": {
			{"енкові", "енко"}, {"енком", "енко"}, {"енка", "енко"}, {"енку", "енко"}, {"енці", "енко"},
			{"уком", "ук"}, {"ука", "ук"}, {"уку", "ук"},
			{"юком", "юк"}, {"юка", "юк"}, {"юку", "юк"},
		},
	}

	surnameCaseRules = map[string][]suffixRule{
		"ru": {
			{"овым", "ов"}, {"овой", "ова"}, {"ове", "ов"}, {"ову", "ов"},
			{"евым", "ев"}, {"евой", "ева"}, {"еве", "ев"}, {"еву", "ев"},
			{"ёвым", "ёв"}, {"ёвой", "ёва"},
			{"иным", "ин"}, {"иной", "ина"}, {"ине", "ин"}, {"ину", "ин"},
			{"ыным", "ын"}, {"ыной", "ына"},
			{"ского", "ский"}, {"скому", "ский"}, {"ским", "ский"}, {"ском", "ский"},
			{"скую", "ская"}, {"скою", "ская"},
			{"цкого", "цкий"}, {"цкому", "цкий"}, {"цким", "цкий"}, {"цком", "цкий"},
			{"цкую", "цкая"}, {"цкою", "цкая"},
		},
		"uk": {
			{"ського", "ський"}, {"ському", "ський"}, {"ським", "ський"},
			{"ської", "ська"}, {"ській", "ська"}, {"ську", "ська"}, {"ською", "ська"},
			{"цького", "цький"}, {"цькому", "цький"}, {"цьким", "цький"},
			{"цької", "цька"}, {"цькій", "цька"}, {"цьку", "цька"}, {"цькою", "цька"},
		},
	}

	patronymicCaseRules = map[string][]suffixRule{
		"ru": {
			{"овичем", "ович"}, {"овича", "ович"}, {"овичу", "ович"}, {"овиче", "ович"},
			{"евичем", "евич"}, {"евича", "евич"}, {"евичу", "евич"}, {"евиче", "евич"},
			{"овной", "овна"}, {"овною", "овна"}, {"овны", "овна"}, {"овне", "овна"}, {"овну", "овна"},
			{"евной", "евна"}, {"евны", "евна"}, {"евне", "евна"}, {"евну", "евна"},
			{"ичной", "ична"}, {"ичны", "ична"}, {"ичне", "ична"}, {"ичну", "ична"},
		},
		"uk": {
			{"йовичем", "йович"}, {"йовича", "йович"}, {"йовичу", "йович"},
			{"овичем", "ович"}, {"овича", "ович"}, {"овичу", "ович"},
			{"івною", "івна"}, {"івни", "івна"}, {"івні", "івна"}, {"івну", "івна"},
			{"ївною", "ївна"}, {"ївни", "ївна"}, {"ївні", "ївна"}, {"ївну", "ївна"},
		},
	}
)

func init() {
	// Длинный суффикс всегда проверяется раньше короткого
	for _, tables := range []map[string][]suffixEntry{surnameSuffixes, patronymicSuffixes} {
		for lang := range tables {
			entries := tables[lang]
			sort.SliceStable(entries, func(i, j int) bool {
				return len(entries[i].Suffix) > len(entries[j].Suffix)
			})
		}
	}
	for _, tables := range []map[string][]suffixRule{invariantCaseRules, surnameCaseRules, patronymicCaseRules} {
		for lang := range tables {
			rules := tables[lang]
			sort.SliceStable(rules, func(i, j int) bool {
				return len(rules[i].From) > len(rules[j].From)
			})
		}
	}
	for lang := range invariantSurnameSuffixes {
		suffixes := invariantSurnameSuffixes[lang]
		sort.SliceStable(suffixes, func(i, j int) bool {
			return len(suffixes[i]) > len(suffixes[j])
		})
	}
}

// minStemRunes минимальная длина основы после отсечения суффикса
const minStemRunes = 2

// matchSuffixEntries ищет самый длинный подходящий суффикс семейства.
func matchSuffixEntries(entries []suffixEntry, folded string) (suffixEntry, bool) {
	for _, e := range entries {
		if strings.HasSuffix(folded, e.Suffix) &&
			utf8.RuneCountInString(strings.TrimSuffix(folded, e.Suffix)) >= minStemRunes {
			return e, true
		}
	}
	return suffixEntry{}, false
}

// matchSurnameSuffix проверяет принадлежность к фамильному семейству суффиксов.
func matchSurnameSuffix(lang, folded string) (suffixEntry, bool) {
	if isInvariantSurname(lang, folded) {
		// Несклоняемые фамилии принадлежат фамильному семейству,
		// но рода не маркируют
		return suffixEntry{Suffix: invariantSuffixOf(lang, folded), Gender: GenderUnknown}, true
	}
	return matchSuffixEntries(surnameSuffixes[lang], folded)
}

// matchPatronymicSuffix проверяет принадлежность к семейству отчеств.
func matchPatronymicSuffix(lang, folded string) (suffixEntry, bool) {
	return matchSuffixEntries(patronymicSuffixes[lang], folded)
}

// isInvariantSurname определяет несклоняемую по роду фамилию.
func isInvariantSurname(lang, folded string) bool {
	return invariantSuffixOf(lang, folded) != ""
}

func invariantSuffixOf(lang, folded string) string {
	for _, suffix := range invariantSurnameSuffixes[lang] {
		if strings.HasSuffix(folded, suffix) &&
			utf8.RuneCountInString(strings.TrimSuffix(folded, suffix)) >= minStemRunes {
			return suffix
		}
	}
	return ""
}

// applySuffixRules применяет первое (самое длинное) подходящее правило.
func applySuffixRules(rules []suffixRule, folded string) (string, string, bool) {
	for _, rule := range rules {
		if strings.HasSuffix(folded, rule.From) {
			stem := strings.TrimSuffix(folded, rule.From)
			if utf8.RuneCountInString(stem) < minStemRunes {
				continue
			}
			return stem + rule.To, fmt.Sprintf("suffix_table:%s>%s", rule.From, rule.To), true
		}
	}
	return folded, "", false
}

// Morphology приводит токены к именительному падежу.
// Таблицы правил авторитетны; внешний анализатор, если подключен,
// уточняет результат только когда не противоречит семейству роли.
// Результаты кэшируются по (токен, язык, роль) в ограниченном LRU.
type Morphology struct {
	store    *dictionaries.Store
	analyzer Analyzer
	cache    *lru.Cache[string, cachedForm]
	logger   *slog.Logger
}

type cachedForm struct {
	Text string
	Rule string
}

// DefaultMorphCacheSize размер кэша морфологии по умолчанию
const DefaultMorphCacheSize = 4096

// NewMorphology создает нормализатор морфологии. analyzer может быть nil —
// обработка деградирует до таблиц правил без ошибки.
func NewMorphology(store *dictionaries.Store, analyzer Analyzer, cacheSize int) *Morphology {
	if cacheSize <= 0 {
		cacheSize = DefaultMorphCacheSize
	}
	cache, _ := lru.New[string, cachedForm](cacheSize)
	return &Morphology{
		store:    store,
		analyzer: analyzer,
		cache:    cache,
		logger:   slog.Default().With("component", "morphology"),
	}
}

// ClearCache очищает кэш морфологии. Нужен тестам и горячей
// перезагрузке словарей.
func (m *Morphology) ClearCache() {
	m.cache.Purge()
}

// CacheLen возвращает число записей в кэше.
func (m *Morphology) CacheLen() int {
	return m.cache.Len()
}

// ToNominative приводит токен роли к именительному падежу.
// Возвращает нормализованную форму и идентификатор сработавшего правила
// (пустой, если форма не изменилась).
func (m *Morphology) ToNominative(token string, role Role, lang string) (string, string) {
	if !role.IsPersonal() || role == RoleInitial {
		return token, ""
	}

	key := lang + "\x00" + string(role) + "\x00" + token
	if cached, ok := m.cache.Get(key); ok {
		return cached.Text, cached.Rule
	}

	normalized, rule := m.normalize(token, role, lang)
	m.cache.Add(key, cachedForm{Text: normalized, Rule: rule})
	return normalized, rule
}

func (m *Morphology) normalize(token string, role Role, lang string) (string, string) {
	// Составные фамилии нормализуются посегментно
	if strings.Contains(token, "-") {
		segments := strings.Split(token, "-")
		changed := false
		var lastRule string
		for i, seg := range segments {
			if seg == "" {
				continue
			}
			normalized, rule := m.normalizeSegment(seg, role, lang)
			if normalized != seg {
				segments[i] = normalized
				changed = true
				lastRule = rule
			}
		}
		if changed {
			return strings.Join(segments, "-"), lastRule
		}
		return token, ""
	}
	return m.normalizeSegment(token, role, lang)
}

func (m *Morphology) normalizeSegment(token string, role Role, lang string) (string, string) {
	folded := dictionaries.FoldKey(token)

	switch role {
	case RoleGiven:
		// Имена нормализуются через словарь: суффиксные эвристики
		// на коротких именах ненадежны
		if gn, ok := m.store.LookupGiven(lang, token); ok {
			canonical := applyCaseShape(token, gn.Canonical)
			if canonical == token {
				return token, ""
			}
			return canonical, "dictionary_nominative"
		}
		return token, ""

	case RoleSurname:
		if isInvariantSurname(lang, folded) {
			if restored, rule, ok := applySuffixRules(invariantCaseRules[lang], folded); ok {
				return applyCaseShape(token, restored), "invariant_nominative:" + rule
			}
			return token, ""
		}
		if form, rule, ok := m.analyzerNominative(token, lang, RoleSurname); ok {
			return applyCaseShape(token, form), rule
		}
		if restored, rule, ok := applySuffixRules(surnameCaseRules[lang], folded); ok {
			return applyCaseShape(token, restored), rule
		}
		return token, ""

	case RolePatronymic:
		if restored, rule, ok := applySuffixRules(patronymicCaseRules[lang], folded); ok {
			return applyCaseShape(token, restored), rule
		}
		return token, ""
	}

	return token, ""
}

// analyzerNominative запрашивает внешний анализатор. Результат
// принимается только когда разбор согласуется с семейством роли;
// отказ или ошибка анализатора деградируют до таблиц правил.
func (m *Morphology) analyzerNominative(token, lang string, role Role) (string, string, bool) {
	if m.analyzer == nil {
		return "", "", false
	}

	parses, err := m.analyzer.Parse(token, lang)
	if err != nil {
		m.logger.Debug("Morphological analyzer failed, falling back to rule tables",
			"token", token,
			"language", lang,
			"error", err.Error())
		return "", "", false
	}

	best, ok := selectParse(parses, role)
	if !ok {
		return "", "", false
	}

	folded := dictionaries.FoldKey(best.Nominative)
	// Анализатор не должен выводить форму за пределы семейства роли
	if role == RoleSurname {
		if _, stillSurname := matchSurnameSuffix(lang, folded); !stillSurname {
			return "", "", false
		}
	}
	return folded, "analyzer:" + best.Tag, true
}

// selectParse выбирает разбор: предпочитаются разборы с тегами
// Surname/Name, среди них — уже именительные.
func selectParse(parses []Parse, role Role) (Parse, bool) {
	wanted := map[Role]string{RoleSurname: "Surname", RoleGiven: "Name"}[role]

	var candidates []Parse
	for _, p := range parses {
		if p.Nominative == "" {
			continue
		}
		if p.Tag == wanted {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return Parse{}, false
	}
	for _, p := range candidates {
		if p.Case == CaseNominative {
			return p, true
		}
	}
	return candidates[0], true
}

// applyCaseShape переносит регистровую структуру исходного токена
// на нормализованную форму: верхний регистр остается верхним,
// капитализация сохраняется посегментно для дефисных фамилий.
func applyCaseShape(original, normalized string) string {
	if isAllUpper(original) {
		return strings.ToUpper(normalized)
	}
	first, _ := utf8.DecodeRuneInString(original)
	if unicode.IsUpper(first) {
		segments := strings.Split(normalized, "-")
		for i, seg := range segments {
			segments[i] = titleSegment(seg)
		}
		return strings.Join(segments, "-")
	}
	return strings.ToLower(normalized)
}

func titleSegment(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return hasLetter
}
