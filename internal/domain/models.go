package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParsedItem is the outcome of parsing one scanner string.
//
// Weights are set only when Status is VALID. Code is set once a letter was found and
// Pieces once a digit was found before it, even if a later stage fails.
type ParsedItem struct {
	Code        string      `json:"code"`
	GrossWeight *Weight     `json:"grossWeight"`
	StoneWeight *Weight     `json:"stoneWeight"`
	NetWeight   *Weight     `json:"netWeight"`
	Pieces      *int        `json:"pieces"`
	Status      ParseStatus `json:"status"`
	Error       string      `json:"error,omitempty"`
}

// IsValid reports whether the item may be forwarded to the ledger.
func (p *ParsedItem) IsValid() bool {
	return p.Status == ParseStatusValid
}

// ItemEdit carries hand-corrected values from the review surface.
type ItemEdit struct {
	Code        string  `json:"code"`
	GrossWeight *Weight `json:"grossWeight"`
	StoneWeight *Weight `json:"stoneWeight"`
	NetWeight   *Weight `json:"netWeight"`
	Pieces      *int    `json:"pieces"`
}

// JewelleryItem is a confirmed ledger record.
type JewelleryItem struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	GrossWeight Weight    `db:"gross_weight" json:"grossWeight"`
	StoneWeight Weight    `db:"stone_weight" json:"stoneWeight"`
	NetWeight   Weight    `db:"net_weight" json:"netWeight"`
	Pieces      int       `db:"pieces" json:"pieces"`
	ItemType    ItemType  `db:"item_type" json:"itemType"`
	IsSold      bool      `db:"is_sold" json:"isSold"`
	CreatedBy   string    `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// ItemFilter narrows a ledger listing. An empty ItemType matches every type and
// Code matches as a prefix. AvailableOnly drops sold items.
type ItemFilter struct {
	ItemType      ItemType
	Code          string
	AvailableOnly bool
}

// StatusSummary counts parsed items by status.
type StatusSummary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Mistake int `json:"mistake"`
	Invalid int `json:"invalid"`
}

// Summarize counts items by status.
func Summarize(items []ParsedItem) StatusSummary {
	s := StatusSummary{Total: len(items)}
	for i := range items {
		switch items[i].Status {
		case ParseStatusValid:
			s.Valid++
		case ParseStatusMistake:
			s.Mistake++
		default:
			s.Invalid++
		}
	}
	return s
}
