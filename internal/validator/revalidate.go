package validator

import (
	"fmt"

	"jewelscan/internal/domain"
)

// Revalidate classifies hand-edited values the same way Parse classifies a scan:
// VALID when every rule passes, MISTAKE when only the weight equation fails and
// INVALID otherwise. Edited values are carried through so the reviewer can keep
// correcting them.
func Revalidate(edit domain.ItemEdit) domain.ParsedItem {
	item := domain.ParsedItem{
		Code:        edit.Code,
		GrossWeight: edit.GrossWeight,
		StoneWeight: edit.StoneWeight,
		NetWeight:   edit.NetWeight,
		Pieces:      edit.Pieces,
		Status:      domain.ParseStatusValid,
	}

	failure, equationOnly := firstFailure(&edit)
	switch {
	case failure == nil:
	case equationOnly:
		item.Status = domain.ParseStatusMistake
		item.Error = failure.Message
	default:
		item.Status = domain.ParseStatusInvalid
		item.Error = failure.Message
	}
	return item
}

// CheckConfirmable returns nil when item may be forwarded to the ledger: its status
// is VALID and its values still pass every review rule.
func CheckConfirmable(item *domain.ParsedItem) error {
	if item.Status != domain.ParseStatusValid {
		return fmt.Errorf("%w: %q has status %s", domain.ErrItemNotValid, item.Code, item.Status)
	}
	edit := domain.ItemEdit{
		Code:        item.Code,
		GrossWeight: item.GrossWeight,
		StoneWeight: item.StoneWeight,
		NetWeight:   item.NetWeight,
		Pieces:      item.Pieces,
	}
	if failure, _ := firstFailure(&edit); failure != nil {
		return fmt.Errorf("%w: %q: %s", domain.ErrItemNotValid, item.Code, failure.Message)
	}
	return nil
}

// firstFailure runs the builtin rules and returns the first failed error-severity
// result. The flag reports whether the weight equation was the only rule that failed.
func firstFailure(edit *domain.ItemEdit) (failure *ValidationResult, equationOnly bool) {
	equationOnly = true
	for _, v := range BuiltinValidators() {
		if v.Severity() != domain.ValidationSeverityError {
			continue
		}
		for _, r := range v.Validate(edit) {
			if r.Passed {
				continue
			}
			if failure == nil {
				failure = &r
			}
			if v.RuleKey() != equationRuleKey {
				equationOnly = false
			}
		}
	}
	return failure, failure != nil && equationOnly
}
