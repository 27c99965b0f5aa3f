package quality

import (
	"context"
	"fmt"
	"strings"

	"namenorm/normalization"
)

// ValidationIssue одно нарушение гарантии конвейера в результате
type ValidationIssue struct {
	Check   string `json:"check"`
	Message string `json:"message"`
}

// ValidateResult проверяет результат нормализации на гарантии конвейера:
// эксклюзивность ролей, чистоту групп персон от организационных токенов,
// отсутствие юридических форм в выходе. Используется в регрессионных
// прогонах качества; на пути запроса не вызывается.
func ValidateResult(result *normalization.Result) []ValidationIssue {
	var issues []ValidationIssue
	if result == nil {
		return []ValidationIssue{{Check: "result", Message: "nil result"}}
	}
	if !result.Success {
		if len(result.Errors) == 0 {
			issues = append(issues, ValidationIssue{
				Check:   "errors",
				Message: "failed result carries no error message",
			})
		}
		return issues
	}

	if strings.TrimSpace(result.Normalized) == "" {
		issues = append(issues, ValidationIssue{
			Check:   "normalized",
			Message: "successful result with empty normalized text",
		})
	}

	issues = append(issues, validateRoles(result.Tokens)...)
	issues = append(issues, validatePersons(result.Persons)...)
	issues = append(issues, validateOutput(result)...)
	return issues
}

var validRoles = map[normalization.Role]bool{
	normalization.RoleGiven:        true,
	normalization.RoleSurname:      true,
	normalization.RolePatronymic:   true,
	normalization.RoleInitial:      true,
	normalization.RoleOrganization: true,
	normalization.RoleLegalForm:    true,
	normalization.RoleUnknown:      true,
}

func validateRoles(tokens []normalization.TaggedToken) []ValidationIssue {
	var issues []ValidationIssue
	for _, tok := range tokens {
		if !validRoles[tok.Role] {
			issues = append(issues, ValidationIssue{
				Check:   "role_exclusivity",
				Message: fmt.Sprintf("token %q carries invalid role %q", tok.Text, tok.Role),
			})
		}
	}
	return issues
}

func validatePersons(persons []normalization.PersonGroup) []ValidationIssue {
	var issues []ValidationIssue
	for i, group := range persons {
		if len(group.Tokens) == 0 {
			issues = append(issues, ValidationIssue{
				Check:   "person_group",
				Message: fmt.Sprintf("person group %d is empty", i),
			})
			continue
		}
		for _, tok := range group.Tokens {
			if !tok.Role.IsPersonal() {
				issues = append(issues, ValidationIssue{
					Check:   "person_group",
					Message: fmt.Sprintf("person group %d carries non-personal token %q (%s)", i, tok.Text, tok.Role),
				})
			}
		}
		switch group.Gender {
		case normalization.GenderMasculine, normalization.GenderFeminine, normalization.GenderUnknown:
		default:
			issues = append(issues, ValidationIssue{
				Check:   "gender",
				Message: fmt.Sprintf("person group %d carries invalid gender %q", i, group.Gender),
			})
		}
	}
	return issues
}

func validateOutput(result *normalization.Result) []ValidationIssue {
	var issues []ValidationIssue
	for _, tok := range result.Tokens {
		if tok.Role != normalization.RoleLegalForm {
			continue
		}
		for _, word := range strings.FieldsFunc(result.Normalized, func(r rune) bool {
			return r == ' ' || r == ','
		}) {
			if strings.EqualFold(word, tok.Text) {
				issues = append(issues, ValidationIssue{
					Check:   "legal_form",
					Message: fmt.Sprintf("legal form %q leaked into normalized output", tok.Text),
				})
			}
		}
	}
	return issues
}

// ValidateIdempotence повторно нормализует выход и сравнивает с ним же.
// Нарушение идемпотентности всегда дефект конвейера, а не данных.
func ValidateIdempotence(normalizer *normalization.Normalizer, result *normalization.Result, opts normalization.Options) *ValidationIssue {
	if result == nil || !result.Success {
		return nil
	}
	second := normalizer.Normalize(context.Background(), result.Normalized, opts)
	if second.Normalized != result.Normalized {
		return &ValidationIssue{
			Check:   "idempotence",
			Message: fmt.Sprintf("renormalization changed output: %q -> %q", result.Normalized, second.Normalized),
		}
	}
	return nil
}
