package validator

import (
	"jewelscan/internal/domain"
)

// FieldStatus represents the computed review state for a single field path.
type FieldStatus struct {
	Status   domain.FieldValidationStatus `json:"status"`
	Messages []string                     `json:"messages"`
}

// ComputeFieldStatuses runs every builtin rule over edit and derives a status per field.
// A failed error-severity rule marks the field invalid; a failed warning marks it unsure.
func ComputeFieldStatuses(edit *domain.ItemEdit) map[string]*FieldStatus {
	statuses := map[string]*FieldStatus{
		"code":        {Status: domain.FieldStatusValid, Messages: []string{}},
		"pieces":      {Status: domain.FieldStatusValid, Messages: []string{}},
		"grossWeight": {Status: domain.FieldStatusValid, Messages: []string{}},
		"stoneWeight": {Status: domain.FieldStatusValid, Messages: []string{}},
		"netWeight":   {Status: domain.FieldStatusValid, Messages: []string{}},
	}

	for _, v := range BuiltinValidators() {
		for _, r := range v.Validate(edit) {
			if r.Passed {
				continue
			}
			fs, ok := statuses[r.FieldPath]
			if !ok {
				fs = &FieldStatus{Status: domain.FieldStatusValid, Messages: []string{}}
				statuses[r.FieldPath] = fs
			}
			if v.Severity() == domain.ValidationSeverityError {
				fs.Status = domain.FieldStatusInvalid
			} else if fs.Status != domain.FieldStatusInvalid {
				fs.Status = domain.FieldStatusUnsure
			}
			fs.Messages = append(fs.Messages, r.Message)
		}
	}

	return statuses
}
