package dictionaries

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NameGender грамматический род имени в словаре
type NameGender string

const (
	GenderMale   NameGender = "male"
	GenderFemale NameGender = "female"
	GenderUnisex NameGender = "unisex"
)

// GivenName запись словаря личных имен
type GivenName struct {
	Canonical string     // каноническая (именительная) форма
	Gender    NameGender // род имени
}

// Store неизменяемое хранилище словарей: имена, уменьшительные формы,
// стоп-слова, юридические формы, частицы фамилий и титулы.
// Создается один раз при старте и разделяется по ссылке между вызовами.
type Store struct {
	givenNames  map[string]map[string]GivenName // lang -> folded form -> имя
	declined    map[string]map[string]string    // lang -> склоненная форма -> folded nominative
	diminutives map[string]map[string]string    // lang -> folded nickname -> каноническое имя
	stopWords   map[string]map[string]bool      // lang -> folded слово
	letterWords map[string]map[string]bool      // lang -> однобуквенные предлоги/союзы
	conjunction map[string]map[string]bool      // lang -> союзы-разделители персон
	particles   map[string]map[string]bool      // lang -> частицы фамилий (де, ван, von)
	titles      map[string]map[string]NameGender // lang -> титул -> род
	legalForms  map[string]string               // folded токен -> каноническая ОПФ
}

var folder = cases.Fold()

// FoldKey приводит строку к ключу словаря: NFC + case folding.
func FoldKey(s string) string {
	return folder.String(norm.NFC.String(strings.TrimSpace(s)))
}

// foldLegalForm дополнительно убирает точки и дефисы: "т.о.в." -> "тов"
func foldLegalForm(s string) string {
	replacer := strings.NewReplacer(".", "", "-", "", "«", "", "»", "", `"`, "", "'", "")
	return FoldKey(replacer.Replace(s))
}

func newEmptyStore() *Store {
	return &Store{
		givenNames:  make(map[string]map[string]GivenName),
		declined:    make(map[string]map[string]string),
		diminutives: make(map[string]map[string]string),
		stopWords:   make(map[string]map[string]bool),
		letterWords: make(map[string]map[string]bool),
		conjunction: make(map[string]map[string]bool),
		particles:   make(map[string]map[string]bool),
		titles:      make(map[string]map[string]NameGender),
		legalForms:  make(map[string]string),
	}
}

// LookupGiven ищет личное имя в словаре языка: сначала прямая форма,
// затем сгенерированные склоненные формы.
func (s *Store) LookupGiven(lang, token string) (GivenName, bool) {
	key := FoldKey(token)
	if m, ok := s.givenNames[lang]; ok {
		if gn, ok := m[key]; ok {
			return gn, true
		}
	}
	if d, ok := s.declined[lang]; ok {
		if nom, ok := d[key]; ok {
			if gn, ok := s.givenNames[lang][nom]; ok {
				return gn, true
			}
		}
	}
	return GivenName{}, false
}

// languageOrder фиксированный порядок обхода языков: результаты
// межъязыкового поиска обязаны быть детерминированными.
var languageOrder = []string{"ru", "uk", "en"}

// orderedLanguages возвращает языки хранилища в детерминированном порядке.
func (s *Store) orderedLanguages(m map[string]map[string]string) []string {
	ordered := make([]string, 0, len(m))
	for _, lang := range languageOrder {
		if _, ok := m[lang]; ok {
			ordered = append(ordered, lang)
		}
	}
	extra := make([]string, 0)
	for lang := range m {
		if !slices.Contains(ordered, lang) {
			extra = append(extra, lang)
		}
	}
	slices.Sort(extra)
	return append(ordered, extra...)
}

// LookupGivenAnyLanguage ищет имя во всех языковых словарях.
func (s *Store) LookupGivenAnyLanguage(token string) (GivenName, string, bool) {
	for _, lang := range s.Languages() {
		if gn, ok := s.LookupGiven(lang, token); ok {
			return gn, lang, true
		}
	}
	return GivenName{}, "", false
}

// ResolveDiminutive возвращает каноническое имя для уменьшительной формы.
func (s *Store) ResolveDiminutive(lang, token string) (string, bool) {
	if m, ok := s.diminutives[lang]; ok {
		if canonical, ok := m[FoldKey(token)]; ok {
			return canonical, true
		}
	}
	return "", false
}

// ResolveDiminutiveAnyLanguage ищет уменьшительную форму во всех языках,
// кроме исключаемого (язык, в котором поиск уже выполнялся).
func (s *Store) ResolveDiminutiveAnyLanguage(excludeLang, token string) (string, string, bool) {
	for _, lang := range s.orderedLanguages(s.diminutives) {
		if lang == excludeLang {
			continue
		}
		if canonical, ok := s.ResolveDiminutive(lang, token); ok {
			return canonical, lang, true
		}
	}
	return "", "", false
}

// IsStopWord проверяет, является ли токен стоп-словом языка.
func (s *Store) IsStopWord(lang, token string) bool {
	return s.stopWords[lang][FoldKey(token)]
}

// IsSingleLetterWord проверяет, входит ли одиночная буква в закрытый список
// предлогов/союзов языка, которые нельзя считать инициалами без точки.
func (s *Store) IsSingleLetterWord(lang, token string) bool {
	return s.letterWords[lang][FoldKey(token)]
}

// IsConjunction проверяет, является ли токен союзом-разделителем персон.
func (s *Store) IsConjunction(lang, token string) bool {
	if s.conjunction[lang][FoldKey(token)] {
		return true
	}
	// "&" действует как разделитель независимо от языка
	return strings.TrimSpace(token) == "&"
}

// IsSurnameParticle проверяет частицу фамилии (де, ван, von, der).
func (s *Store) IsSurnameParticle(lang, token string) bool {
	return s.particles[lang][FoldKey(token)]
}

// LookupTitle возвращает род для гендерно-маркированного титула (пан, mrs).
func (s *Store) LookupTitle(lang, token string) (NameGender, bool) {
	if m, ok := s.titles[lang]; ok {
		if g, ok := m[FoldKey(token)]; ok {
			return g, true
		}
	}
	return "", false
}

// LookupLegalForm возвращает каноническую ОПФ для токена любого языка.
func (s *Store) LookupLegalForm(token string) (string, bool) {
	canonical, ok := s.legalForms[foldLegalForm(token)]
	return canonical, ok
}

// Languages возвращает языки, для которых загружены словари имен,
// в детерминированном порядке.
func (s *Store) Languages() []string {
	ordered := make([]string, 0, len(s.givenNames))
	for _, lang := range languageOrder {
		if _, ok := s.givenNames[lang]; ok {
			ordered = append(ordered, lang)
		}
	}
	extra := make([]string, 0)
	for lang := range s.givenNames {
		if !slices.Contains(ordered, lang) {
			extra = append(extra, lang)
		}
	}
	slices.Sort(extra)
	return append(ordered, extra...)
}

// addGivenName регистрирует имя и генерирует его склоненные формы.
func (s *Store) addGivenName(lang, name string, gender NameGender) {
	if s.givenNames[lang] == nil {
		s.givenNames[lang] = make(map[string]GivenName)
	}
	if s.declined[lang] == nil {
		s.declined[lang] = make(map[string]string)
	}
	key := FoldKey(name)
	s.givenNames[lang][key] = GivenName{Canonical: name, Gender: gender}
	for _, form := range declineGivenName(lang, key) {
		if form == key {
			continue
		}
		// Прямые формы других имен имеют приоритет над склонениями
		if _, exists := s.givenNames[lang][form]; exists {
			continue
		}
		s.declined[lang][form] = key
	}
}

// addDiminutive регистрирует уменьшительную форму имени.
func (s *Store) addDiminutive(lang, nickname, canonical string) {
	if s.diminutives[lang] == nil {
		s.diminutives[lang] = make(map[string]string)
	}
	s.diminutives[lang][FoldKey(nickname)] = canonical
}

func (s *Store) addStopWords(lang string, words ...string) {
	if s.stopWords[lang] == nil {
		s.stopWords[lang] = make(map[string]bool)
	}
	for _, w := range words {
		s.stopWords[lang][FoldKey(w)] = true
	}
}

func (s *Store) addLetterWords(lang string, letters ...string) {
	if s.letterWords[lang] == nil {
		s.letterWords[lang] = make(map[string]bool)
	}
	for _, l := range letters {
		s.letterWords[lang][FoldKey(l)] = true
	}
}

func (s *Store) addConjunctions(lang string, words ...string) {
	if s.conjunction[lang] == nil {
		s.conjunction[lang] = make(map[string]bool)
	}
	for _, w := range words {
		s.conjunction[lang][FoldKey(w)] = true
	}
}

func (s *Store) addParticles(lang string, words ...string) {
	if s.particles[lang] == nil {
		s.particles[lang] = make(map[string]bool)
	}
	for _, w := range words {
		s.particles[lang][FoldKey(w)] = true
	}
}

func (s *Store) addTitle(lang, title string, gender NameGender) {
	if s.titles[lang] == nil {
		s.titles[lang] = make(map[string]NameGender)
	}
	s.titles[lang][FoldKey(title)] = gender
}

func (s *Store) addLegalForm(alias, canonical string) {
	s.legalForms[foldLegalForm(alias)] = canonical
}

// declineGivenName генерирует падежные формы личного имени.
// Покрывает типовые парадигмы русского и украинского склонения;
// редкие формы добираются морфологическими правилами на этапе нормализации.
func declineGivenName(lang, name string) []string {
	runes := []rune(name)
	if len(runes) < 3 {
		return nil
	}
	last := runes[len(runes)-1]
	stem := string(runes[:len(runes)-1])

	var forms []string
	appendForms := func(base string, endings ...string) {
		for _, e := range endings {
			forms = append(forms, base+e)
		}
	}

	switch lang {
	case "ru":
		switch {
		case last == 'а':
			// Елена -> Елены, Елене, Елену, Еленой
			appendForms(stem, "ы", "и", "е", "у", "ой", "ою")
		case last == 'я':
			// Илья -> Ильи, Илье, Илью, Ильей
			appendForms(stem, "и", "е", "ю", "ей", "ёй")
		case last == 'й':
			// Сергей -> Сергея, Сергею, Сергеем, Сергее
			appendForms(stem, "я", "ю", "ем", "е")
		case last == 'ь':
			// Игорь -> Игоря, Игорю, Игорем, Игоре
			appendForms(stem, "я", "ю", "ем", "е")
		case isConsonant(last):
			// Иван -> Ивана, Ивану, Иваном, Иване
			appendForms(name, "а", "у", "ом", "е")
		}
	case "uk":
		switch {
		case last == 'о':
			// Петро -> Петра, Петру, Петром, Петрові, Петрі
			appendForms(stem, "а", "у", "ом", "ові", "і")
		case last == 'а':
			// Оксана -> Оксани, Оксані, Оксану, Оксаною
			appendForms(stem, "и", "і", "у", "ою")
		case last == 'я':
			appendForms(stem, "і", "ї", "ю", "ею")
		case last == 'й':
			appendForms(stem, "я", "ю", "єм", "єві", "ї")
		case last == 'ь':
			appendForms(stem, "я", "ю", "ем", "еві")
		case isConsonant(last):
			// Іван -> Івана, Івану, Іваном, Іванові, Івані
			appendForms(name, "а", "у", "ом", "ові", "і")
		}
	}
	return forms
}

func isConsonant(r rune) bool {
	switch r {
	case 'а', 'е', 'ё', 'и', 'о', 'у', 'ы', 'э', 'ю', 'я', 'і', 'ї', 'є', 'й', 'ь':
		return false
	}
	return true
}
