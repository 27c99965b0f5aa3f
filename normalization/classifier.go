package normalization

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"namenorm/dictionaries"
	"namenorm/entityhints"
)

// Classifier назначает токенам семантические роли.
// Роль эксклюзивна и назначается по строгому приоритету источников:
// юридическая форма -> организация в кавычках -> инициал -> словарь и
// суффиксные семейства -> организация капсом -> неизвестно.
// Подсказки внешнего распознавателя сущностей только смещают решение
// для неопознанных токенов и никогда не перекрывают словарь.
type Classifier struct {
	store *dictionaries.Store
}

// NewClassifier создает классификатор ролей
func NewClassifier(store *dictionaries.Store) *Classifier {
	return &Classifier{store: store}
}

// Classify назначает роли токенам одним проходом слева направо,
// затем выполняет позиционные уточнения.
func (c *Classifier) Classify(tokens []Token, lang string, hints *entityhints.Hints) []TaggedToken {
	tagged := make([]TaggedToken, 0, len(tokens))
	for _, tok := range tokens {
		tagged = append(tagged, c.classifyToken(tok, lang, hints))
	}
	c.repair(tagged, lang)
	return tagged
}

func (c *Classifier) classifyToken(tok Token, lang string, hints *entityhints.Hints) TaggedToken {
	tt := TaggedToken{Token: tok, Role: RoleUnknown, RuleID: "unclassified"}

	if tok.Text == "," {
		tt.RuleID = "separator_comma"
		return tt
	}
	if c.store.IsConjunction(lang, tok.Text) {
		tt.RuleID = "separator_conjunction"
		return tt
	}
	if gender, ok := c.store.LookupTitle(lang, tok.Text); ok {
		tt.RuleID = "context_title"
		tt.Evidence = append(tt.Evidence, "title_gender:"+string(gender))
		return tt
	}

	// Юридическая форма сильнее любой другой интерпретации,
	// кроме прямого совпадения со словарем имен
	if canonical, ok := c.store.LookupLegalForm(tok.Text); ok {
		if _, isGiven := c.store.LookupGiven(lang, tok.Text); !isGiven {
			tt.Role = RoleLegalForm
			tt.RuleID = "legal_form"
			tt.Evidence = append(tt.Evidence, "canonical:"+canonical)
			return tt
		}
	}

	if tok.Quoted && looksLikeOrgName(tok.Text) {
		tt.Role = RoleOrganization
		tt.RuleID = "quoted_org"
		return tt
	}

	if isInitialToken(tok.Text) {
		tt.Role = RoleInitial
		tt.RuleID = "initial_dot"
		return tt
	}
	if utf8.RuneCountInString(tok.Text) == 1 {
		r, _ := utf8.DecodeRuneInString(tok.Text)
		if !unicode.IsLetter(r) {
			return tt
		}
		// Одиночная буква без точки: инициал, если она не входит
		// в закрытый список однобуквенных слов языка
		if c.store.IsSingleLetterWord(lang, tok.Text) {
			tt.RuleID = "letter_word"
			return tt
		}
		tt.Role = RoleInitial
		tt.RuleID = "initial_bare"
		return tt
	}

	if c.store.IsSurnameParticle(lang, tok.Text) {
		tt.RuleID = "surname_particle"
		return tt
	}

	if gn, ok := c.store.LookupGiven(lang, tok.Text); ok {
		tt.Role = RoleGiven
		tt.RuleID = "dictionary_given"
		tt.Evidence = append(tt.Evidence, "name_gender:"+string(gn.Gender))
		return tt
	}
	if gn, srcLang, ok := c.store.LookupGivenAnyLanguage(tok.Text); ok {
		tt.Role = RoleGiven
		tt.RuleID = "dictionary_given_xlang"
		tt.Evidence = append(tt.Evidence, "name_gender:"+string(gn.Gender), "name_lang:"+srcLang)
		return tt
	}

	folded := dictionaries.FoldKey(tok.Text)
	sEntry, sOK := matchSurnameSuffix(lang, folded)
	pEntry, pOK := matchPatronymicSuffix(lang, folded)
	switch {
	case sOK && pOK:
		// Конфликт семейств решается самым длинным суффиксом,
		// при равенстве выигрывает отчество
		if len(sEntry.Suffix) > len(pEntry.Suffix) {
			tt.Role = RoleSurname
			tt.RuleID = "surname_suffix:" + sEntry.Suffix
		} else {
			tt.Role = RolePatronymic
			tt.RuleID = "patronymic_suffix:" + pEntry.Suffix
		}
		return tt
	case pOK:
		tt.Role = RolePatronymic
		tt.RuleID = "patronymic_suffix:" + pEntry.Suffix
		return tt
	case sOK:
		tt.Role = RoleSurname
		tt.RuleID = "surname_suffix:" + sEntry.Suffix
		return tt
	}

	if c.store.IsStopWord(lang, tok.Text) {
		tt.RuleID = "stop_word"
		return tt
	}

	if isAllUpper(tok.Text) && utf8.RuneCountInString(tok.Text) >= 3 {
		tt.Role = RoleOrganization
		tt.RuleID = "caps_org"
		return tt
	}

	if hints != nil {
		if entityhints.Covers(hints.OrganizationSpans, tok.Start, tok.End) {
			tt.Role = RoleOrganization
			tt.RuleID = "hint_org"
			return tt
		}
		if entityhints.Covers(hints.PersonSpans, tok.Start, tok.End) {
			tt.Evidence = append(tt.Evidence, "hint_person")
		}
	}

	return tt
}

// repair позиционные уточнения после первого прохода: заполнение
// недостающих ролей в пределах непрерывного участка, присоединение
// частиц, фильтрация изолированных инициалов.
// На каждый недостающий слот участка приходится не больше одного
// продвижения: каскадные перестановки ломали бы идемпотентность.
func (c *Classifier) repair(tagged []TaggedToken, lang string) {
	for start := 0; start < len(tagged); {
		if isRunBoundary(tagged[start]) {
			start++
			continue
		}
		end := start
		for end < len(tagged) && !isRunBoundary(tagged[end]) {
			end++
		}
		c.repairRun(tagged[start:end], lang)
		start = end
	}

	// Частица фамилии примыкает к следующей за ней фамилии
	for i := range tagged {
		if tagged[i].RuleID != "surname_particle" {
			continue
		}
		if next := neighbor(tagged, i, +1); next != nil && next.Role == RoleSurname {
			tagged[i].Role = RoleSurname
			tagged[i].RuleID = "surname_particle_attach"
		}
	}

	// Инициал удерживается только рядом с другим инициалом или именной
	// ролью; изолированный понижается до неизвестного. Соседство
	// оценивается до понижений, чтобы результат не зависел от порядка
	// обхода цепочки инициалов.
	var isolated []int
	for i := range tagged {
		switch tagged[i].RuleID {
		case "initial_bare", "initial_dot":
		default:
			continue
		}
		prev, next := neighbor(tagged, i, -1), neighbor(tagged, i, +1)
		adjacentPersonal := (prev != nil && prev.Role.IsPersonal()) ||
			(next != nil && next.Role.IsPersonal())
		if !adjacentPersonal {
			isolated = append(isolated, i)
		}
	}
	for _, i := range isolated {
		tagged[i].Role = RoleUnknown
		tagged[i].RuleID = "initial_isolated"
	}
}

// repairRun заполняет недостающие роли одного участка
func (c *Classifier) repairRun(run []TaggedToken, lang string) {
	// Женское отчество в латинской записи не покрывается суффиксными
	// таблицами и распознается по фрагменту внутри токена
	for i := range run {
		if run[i].Role == RoleUnknown && c.promotable(run[i], lang) &&
			hasFemalePatronymicMarker(run[i].Text) {
			run[i].Role = RolePatronymic
			run[i].RuleID = "positional_patronymic"
		}
	}

	hasGiven, hasSurname := false, false
	lastGiven := -1
	for i := range run {
		switch run[i].Role {
		case RoleGiven:
			hasGiven = true
			lastGiven = i
		case RoleSurname:
			hasSurname = true
		}
	}

	switch {
	case hasSurname && !hasGiven:
		// Первый подходящий неопознанный токен участка становится именем
		for i := range run {
			if run[i].Role == RoleUnknown && c.promotable(run[i], lang) {
				run[i].Role = RoleGiven
				run[i].RuleID = "positional_given"
				return
			}
		}

	case hasGiven && !hasSurname:
		// Последний подходящий токен после имени становится фамилией,
		// промежуточные — вторыми именами
		last := -1
		for i := lastGiven + 1; i < len(run); i++ {
			if run[i].Role == RoleUnknown && c.promotable(run[i], lang) {
				last = i
			}
		}
		if last == -1 {
			return
		}
		run[last].Role = RoleSurname
		run[last].RuleID = "positional_surname"
		for i := lastGiven + 1; i < last; i++ {
			if run[i].Role == RoleUnknown && c.promotable(run[i], lang) {
				run[i].Role = RoleGiven
				run[i].RuleID = "positional_middle"
			}
		}
	}
}

// isRunBoundary определяет границу непрерывного участка персоны
func isRunBoundary(tt TaggedToken) bool {
	if tt.Role == RoleOrganization || tt.Role == RoleLegalForm {
		return true
	}
	switch tt.RuleID {
	case "separator_comma", "separator_conjunction", "context_title":
		return true
	}
	return false
}

// Фрагменты женских отчеств, включая латинскую транслитерацию.
// Проверяется вхождение фрагмента, а не точный суффикс.
var femalePatronymicMarkers = []string{
	"овна", "евна", "ічна", "івна", "ївна", "инична",
	"ovna", "evna", "ichna", "ivna", "yevna",
}

func hasFemalePatronymicMarker(text string) bool {
	folded := dictionaries.FoldKey(text)
	for _, m := range femalePatronymicMarkers {
		if strings.Contains(folded, m) {
			return true
		}
	}
	return false
}

// promotable проверяет, что неопознанный токен по форме похож на имя
func (c *Classifier) promotable(tt TaggedToken, lang string) bool {
	switch tt.RuleID {
	case "separator_comma", "separator_conjunction", "context_title",
		"stop_word", "letter_word", "surname_particle", "initial_isolated":
		return false
	}
	n := utf8.RuneCountInString(tt.Text)
	if n < 2 || n > 24 || tt.Quoted {
		return false
	}
	first, _ := utf8.DecodeRuneInString(tt.Text)
	if !unicode.IsUpper(first) {
		return false
	}
	for _, r := range tt.Text {
		if !unicode.IsLetter(r) && r != '-' && !isApostrophe(r) {
			return false
		}
	}
	return true
}

// neighbor возвращает смежный токен. Запятая считается границей:
// токен за запятой смежным не является.
func neighbor(tagged []TaggedToken, i, dir int) *TaggedToken {
	j := i + dir
	if j < 0 || j >= len(tagged) {
		return nil
	}
	if tagged[j].Text == "," {
		return nil
	}
	return &tagged[j]
}

// looksLikeOrgName проверяет форму наименования организации в кавычках
func looksLikeOrgName(text string) bool {
	n := utf8.RuneCountInString(text)
	if n < 2 || n > 40 {
		return false
	}
	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters*2 >= n
}
