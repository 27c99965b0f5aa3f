package normalization

import (
	"namenorm/dictionaries"
)

// Segments результат сегментации: группы персон и организации
type Segments struct {
	Persons       []PersonGroup
	Organizations []OrganizationSpan
}

// Segmenter разбивает размеченные токены на группы персон и
// организации. Разделителями служат запятые, союзы из закрытого
// списка, титулы, юридические формы и любые неопознанные токены.
// Группа персоны публикуется только если содержит хотя бы один
// персональный токен; токены юридических форм в span организации
// не входят.
type Segmenter struct {
	store *dictionaries.Store
}

// NewSegmenter создает сегментатор
func NewSegmenter(store *dictionaries.Store) *Segmenter {
	return &Segmenter{store: store}
}

// Segment выполняет сегментацию одним проходом слева направо.
// Гендерно-маркированный титул закрывает группу, но его свидетельство
// рода прикрепляется к смежной группе через Context.
func (s *Segmenter) Segment(tagged []TaggedToken, lang string) Segments {
	var result Segments
	var person PersonGroup
	var org OrganizationSpan
	var pendingContext []string

	closePerson := func() {
		if len(person.Tokens) > 0 {
			result.Persons = append(result.Persons, person)
		}
		person = PersonGroup{}
	}
	closeOrg := func() {
		if len(org.Tokens) > 0 {
			result.Organizations = append(result.Organizations, org)
		}
		org = OrganizationSpan{}
	}

	for _, tt := range tagged {
		switch {
		case tt.Role.IsPersonal():
			closeOrg()
			if len(person.Tokens) == 0 && len(pendingContext) > 0 {
				person.Context = append(person.Context, pendingContext...)
				pendingContext = nil
			}
			person.Tokens = append(person.Tokens, tt)

		case tt.Role == RoleOrganization:
			closePerson()
			pendingContext = nil
			org.Tokens = append(org.Tokens, tt)

		case tt.RuleID == "context_title":
			// Титул разделяет группы; его род достается ближайшей:
			// уже открытой группе, иначе следующей
			if len(person.Tokens) > 0 {
				person.Context = append(person.Context, tt.Text)
				closePerson()
			} else {
				pendingContext = append(pendingContext, tt.Text)
			}
			closeOrg()

		default:
			// Запятая, союз, юридическая форма, неопознанный токен
			closePerson()
			closeOrg()
			pendingContext = nil
		}
	}
	closePerson()
	closeOrg()

	return result
}

// AssembleOrder перестраивает токены группы в канонический порядок:
// имя, фамилия, отчество, инициалы. Повторы неинициальных токенов
// убираются без учета регистра; одинаковые инициалы не дедуплицируются.
func AssembleOrder(group *PersonGroup, surnameFirst bool) {
	var givens, surnames, patronymics, initials []TaggedToken
	seen := make(map[string]bool)

	for _, tt := range group.Tokens {
		if tt.Role == RoleInitial {
			initials = append(initials, tt)
			continue
		}
		key := dictionaries.FoldKey(tt.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		switch tt.Role {
		case RoleGiven:
			givens = append(givens, tt)
		case RoleSurname:
			surnames = append(surnames, tt)
		case RolePatronymic:
			patronymics = append(patronymics, tt)
		}
	}

	ordered := make([]TaggedToken, 0, len(group.Tokens))
	if surnameFirst {
		ordered = append(ordered, surnames...)
		ordered = append(ordered, givens...)
	} else {
		ordered = append(ordered, givens...)
		ordered = append(ordered, surnames...)
	}
	ordered = append(ordered, patronymics...)
	ordered = append(ordered, initials...)
	group.Tokens = ordered
}
