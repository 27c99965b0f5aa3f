package normalization

import "strings"

// Role семантическая роль токена в наименовании.
// Роль эксклюзивна: токен несет ровно одну роль, переназначение
// возможно только явным правилом (разрешение уменьшительной формы
// переводит Unknown в Given).
type Role string

const (
	RoleGiven        Role = "given"
	RoleSurname      Role = "surname"
	RolePatronymic   Role = "patronymic"
	RoleInitial      Role = "initial"
	RoleOrganization Role = "organization"
	RoleLegalForm    Role = "legal_form"
	RoleUnknown      Role = "unknown"
)

// IsPersonal сообщает, относится ли роль к персоне.
func (r Role) IsPersonal() bool {
	switch r {
	case RoleGiven, RoleSurname, RolePatronymic, RoleInitial:
		return true
	}
	return false
}

// Gender грамматический род персоны
type Gender string

const (
	GenderMasculine Gender = "masculine"
	GenderFeminine  Gender = "feminine"
	GenderUnknown   Gender = "unknown"
)

// Token токен исходного текста
type Token struct {
	Text   string `json:"text"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Quoted bool   `json:"quoted"`
}

// TaggedToken токен с назначенной ролью
type TaggedToken struct {
	Token
	Role     Role     `json:"role"`
	RuleID   string   `json:"rule_id"`
	Evidence []string `json:"evidence,omitempty"`
}

// PersonGroup группа токенов одной персоны.
// Инвариант: не содержит токенов с ролями organization и legal_form.
type PersonGroup struct {
	Tokens      []TaggedToken `json:"tokens"`
	Gender      Gender        `json:"gender"`
	ScoreFemale int           `json:"score_female"`
	ScoreMale   int           `json:"score_male"`
	// Context гендерно-маркированные титулы, примыкавшие к группе
	// в исходном тексте. Титулы служат разделителями и в группу
	// не входят, но учитываются при определении рода.
	Context []string `json:"context,omitempty"`
}

// Text собирает текст группы в текущем порядке токенов.
func (g *PersonGroup) Text() string {
	parts := make([]string, 0, len(g.Tokens))
	for _, t := range g.Tokens {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, " ")
}

// OrganizationSpan последовательность токенов одной организации.
// Токены юридических форм распознаются, но в span не попадают.
type OrganizationSpan struct {
	Tokens []TaggedToken `json:"tokens"`
}

// Text собирает наименование организации.
func (o *OrganizationSpan) Text() string {
	parts := make([]string, 0, len(o.Tokens))
	for _, t := range o.Tokens {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, " ")
}

// TraceEntry запись трассировки обработки одного токена.
// Трассировка предназначена для отладки и тестов и никогда
// не влияет на ход обработки.
type TraceEntry struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Role   Role   `json:"role"`
	Rule   string `json:"rule"`
	Notes  string `json:"notes,omitempty"`
}

// Result результат нормализации одного входа
type Result struct {
	Normalized    string             `json:"normalized"`
	Tokens        []TaggedToken      `json:"tokens"`
	Persons       []PersonGroup      `json:"persons"`
	Organizations []string           `json:"organizations"`
	Language      string             `json:"language"`
	Confidence    float64            `json:"confidence"`
	Success       bool               `json:"success"`
	Errors        []string           `json:"errors,omitempty"`
	Trace         []TraceEntry       `json:"trace,omitempty"`
}

// Options опции нормализации
type Options struct {
	// Language код языка входа: ru, uk, en или auto
	Language string `json:"language"`
	// RemoveStopWords удалять стоп-слова при токенизации
	RemoveStopWords bool `json:"remove_stop_words"`
	// PreserveNames запрещает переписывание личных имен:
	// роли назначаются, но уменьшительные формы и падежные формы
	// имен остаются как есть
	PreserveNames bool `json:"preserve_names"`
	// EnableMorphology включает падежную нормализацию
	EnableMorphology bool `json:"enable_morphology"`
	// EnableGenderAdjustment включает согласование фамилии с родом
	EnableGenderAdjustment bool `json:"enable_gender_adjustment"`
	// EnableDiminutives включает разворачивание уменьшительных форм
	EnableDiminutives bool `json:"enable_diminutives"`
	// AllowCrossLangDiminutives разрешает поиск уменьшительной формы
	// в словарях других языков, если в словаре языка входа ее нет
	AllowCrossLangDiminutives bool `json:"allow_cross_lang_diminutives"`
	// ASCIIFastPath включает быстрый путь для чисто ASCII входа
	ASCIIFastPath bool `json:"ascii_fastpath"`
}

// DefaultOptions опции по умолчанию: полная обработка, автоопределение языка.
func DefaultOptions() Options {
	return Options{
		Language:               "auto",
		RemoveStopWords:        true,
		EnableMorphology:       true,
		EnableGenderAdjustment: true,
		EnableDiminutives:      true,
	}
}
