package validator

import (
	"jewelscan/internal/domain"
)

// ValidationResult is the outcome of one rule applied to one item.
type ValidationResult struct {
	Passed        bool
	FieldPath     string
	ExpectedValue string
	ActualValue   string
	Message       string
}

// Validator is the interface for a single built-in review rule.
type Validator interface {
	Validate(item *domain.ItemEdit) []ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
}

// BuiltinValidators returns the review rules in evaluation order. The equation rule
// runs last so structural problems are reported first.
func BuiltinValidators() []Validator {
	return []Validator{
		requiredCodeValidator(),
		piecesRangeValidator(),
		piecesNonZeroValidator(),
		weightsPresentValidator(),
		weightEquationValidator(),
	}
}
