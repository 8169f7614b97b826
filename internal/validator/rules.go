package validator

import (
	"fmt"
	"strconv"
	"strings"

	"jewelscan/internal/domain"
)

const equationRuleKey = "math.weight_equation"

// ruleValidator is a review rule backed by a validate function.
type ruleValidator struct {
	ruleKey  string
	ruleName string
	ruleType domain.ValidationRuleType
	severity domain.ValidationSeverity
	validate func(*domain.ItemEdit) []ValidationResult
}

func (v *ruleValidator) RuleKey() string                     { return v.ruleKey }
func (v *ruleValidator) RuleName() string                    { return v.ruleName }
func (v *ruleValidator) RuleType() domain.ValidationRuleType { return v.ruleType }
func (v *ruleValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *ruleValidator) Validate(item *domain.ItemEdit) []ValidationResult {
	return v.validate(item)
}

func requiredCodeValidator() *ruleValidator {
	return &ruleValidator{
		ruleKey: "required.code", ruleName: "Required: Code",
		ruleType: domain.ValidationRuleRequired, severity: domain.ValidationSeverityError,
		validate: func(item *domain.ItemEdit) []ValidationResult {
			code := strings.TrimSpace(item.Code)
			passed := code != "" && startsWithLetter(code)
			msg := "Required: Code: present"
			if !passed {
				msg = "Required: Code: code must start with a letter"
			}
			return []ValidationResult{{
				Passed: passed, FieldPath: "code",
				ExpectedValue: "code starting with a letter", ActualValue: code, Message: msg,
			}}
		},
	}
}

func piecesRangeValidator() *ruleValidator {
	return &ruleValidator{
		ruleKey: "range.pieces", ruleName: "Range: Pieces",
		ruleType: domain.ValidationRuleRange, severity: domain.ValidationSeverityError,
		validate: func(item *domain.ItemEdit) []ValidationResult {
			actual := ""
			passed := false
			if item.Pieces != nil {
				actual = strconv.Itoa(*item.Pieces)
				passed = *item.Pieces >= 0 && *item.Pieces <= 9
			}
			msg := "Range: Pieces: within 0-9"
			if !passed {
				msg = fmt.Sprintf("Range: Pieces: expected a single digit 0-9, got %q", actual)
			}
			return []ValidationResult{{
				Passed: passed, FieldPath: "pieces",
				ExpectedValue: "0-9", ActualValue: actual, Message: msg,
			}}
		},
	}
}

func piecesNonZeroValidator() *ruleValidator {
	return &ruleValidator{
		ruleKey: "range.pieces_nonzero", ruleName: "Range: Pieces Non-Zero",
		ruleType: domain.ValidationRuleRange, severity: domain.ValidationSeverityWarning,
		validate: func(item *domain.ItemEdit) []ValidationResult {
			if item.Pieces == nil {
				return nil
			}
			passed := *item.Pieces != 0
			msg := "Range: Pieces Non-Zero: at least one piece"
			if !passed {
				msg = "Range: Pieces Non-Zero: item records zero pieces"
			}
			return []ValidationResult{{
				Passed: passed, FieldPath: "pieces",
				ExpectedValue: "1-9", ActualValue: strconv.Itoa(*item.Pieces), Message: msg,
			}}
		},
	}
}

func weightsPresentValidator() *ruleValidator {
	return &ruleValidator{
		ruleKey: "range.weights", ruleName: "Range: Weights",
		ruleType: domain.ValidationRuleRange, severity: domain.ValidationSeverityError,
		validate: func(item *domain.ItemEdit) []ValidationResult {
			fields := []struct {
				path string
				w    *domain.Weight
			}{
				{"grossWeight", item.GrossWeight},
				{"stoneWeight", item.StoneWeight},
				{"netWeight", item.NetWeight},
			}
			results := make([]ValidationResult, 0, len(fields))
			for _, f := range fields {
				var r ValidationResult
				switch {
				case f.w == nil:
					r = ValidationResult{FieldPath: f.path, ExpectedValue: "weight >= 0",
						Message: fmt.Sprintf("Range: Weights: %s is required", f.path)}
				case *f.w < 0:
					r = ValidationResult{FieldPath: f.path, ExpectedValue: "weight >= 0", ActualValue: f.w.Fixed(),
						Message: fmt.Sprintf("Range: Weights: %s must not be negative", f.path)}
				default:
					r = ValidationResult{Passed: true, FieldPath: f.path, ExpectedValue: "weight >= 0", ActualValue: f.w.Fixed(),
						Message: fmt.Sprintf("Range: Weights: %s present", f.path)}
				}
				results = append(results, r)
			}
			return results
		},
	}
}

// weightEquationValidator checks GW = SW + NW with the same exact comparison the
// parser uses. It passes vacuously when a weight is missing; range.weights reports that.
func weightEquationValidator() *ruleValidator {
	return &ruleValidator{
		ruleKey: equationRuleKey, ruleName: "Math: Weight Equation",
		ruleType: domain.ValidationRuleSumCheck, severity: domain.ValidationSeverityError,
		validate: func(item *domain.ItemEdit) []ValidationResult {
			if item.GrossWeight == nil || item.StoneWeight == nil || item.NetWeight == nil {
				return nil
			}
			gw, sw, nw := *item.GrossWeight, *item.StoneWeight, *item.NetWeight
			sum := sw + nw
			passed := domain.Balanced(gw, sw, nw)
			msg := "Math: Weight Equation: GW matches SW + NW"
			if !passed {
				msg = fmt.Sprintf("GW (%s) != SW + NW (%s)", gw.Fixed(), sum.Fixed())
			}
			return []ValidationResult{{
				Passed: passed, FieldPath: "grossWeight",
				ExpectedValue: sum.Fixed(), ActualValue: gw.Fixed(), Message: msg,
			}}
		},
	}
}

func startsWithLetter(s string) bool {
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
