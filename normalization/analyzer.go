package normalization

// GrammaticalCase падеж словоформы в разборе анализатора
type GrammaticalCase string

const (
	CaseNominative GrammaticalCase = "nominative"
	CaseGenitive   GrammaticalCase = "genitive"
	CaseDative     GrammaticalCase = "dative"
	CaseAccusative GrammaticalCase = "accusative"
	CaseOther      GrammaticalCase = "other"
)

// Parse один вариант морфологического разбора словоформы
type Parse struct {
	// Nominative именительная форма слова
	Nominative string
	// Tag грамматический класс: Surname, Name, Patronymic или пустой
	Tag string
	// Case падеж исходной словоформы
	Case GrammaticalCase
	// Score уверенность анализатора, [0, 1]
	Score float64
}

// Analyzer внешний морфологический анализатор. Подключается опционально:
// при отказе или отсутствии анализатора нормализация продолжается
// по таблицам суффиксных правил, которые остаются авторитетными.
type Analyzer interface {
	Parse(word, lang string) ([]Parse, error)
}
