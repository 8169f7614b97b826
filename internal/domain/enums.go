package domain

// ParseStatus classifies the outcome of parsing a scanner string.
type ParseStatus string

const (
	ParseStatusValid   ParseStatus = "VALID"
	ParseStatusMistake ParseStatus = "MISTAKE"
	ParseStatusInvalid ParseStatus = "INVALID"
)

// ItemType is the ledger movement a confirmed item is recorded under.
type ItemType string

const (
	ItemTypePurchase       ItemType = "purchase"
	ItemTypeSale           ItemType = "sale"
	ItemTypeSalesReturn    ItemType = "salesReturn"
	ItemTypePurchaseReturn ItemType = "purchaseReturn"
)

// ValidItemTypes lists every accepted ItemType.
var ValidItemTypes = map[ItemType]bool{
	ItemTypePurchase:       true,
	ItemTypeSale:           true,
	ItemTypeSalesReturn:    true,
	ItemTypePurchaseReturn: true,
}

// FileType represents the spreadsheet formats accepted for import.
type FileType string

const (
	FileTypeXLSX FileType = "xlsx"
	FileTypeCSV  FileType = "csv"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"xlsx": FileTypeXLSX,
	"csv":  FileTypeCSV,
}

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FileTypeCSV:  "text/csv",
}

// ValidationSeverity indicates how a failed review rule affects an item.
type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
)

// ValidationRuleType categorizes review rules.
type ValidationRuleType string

const (
	ValidationRuleRequired ValidationRuleType = "required_field"
	ValidationRuleRange    ValidationRuleType = "range_check"
	ValidationRuleSumCheck ValidationRuleType = "sum_check"
)

// FieldValidationStatus is the per-field review state shown next to an edited value.
type FieldValidationStatus string

const (
	FieldStatusValid   FieldValidationStatus = "valid"
	FieldStatusInvalid FieldValidationStatus = "invalid"
	FieldStatusUnsure  FieldValidationStatus = "unsure"
)
