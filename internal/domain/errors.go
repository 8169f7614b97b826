package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrNoScannerData       = errors.New("no scanner strings found in file")
	ErrBatchTooLarge       = errors.New("batch exceeds maximum allowed size")
	ErrEmptyBatch          = errors.New("batch contains no items")
	ErrInvalidItemType     = errors.New("invalid item type")
	ErrItemNotValid        = errors.New("item is not valid for the ledger")
	ErrDuplicateItemCode   = errors.New("item code already exists")
)
