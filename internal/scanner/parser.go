// Package scanner decodes jewellery scanner strings of the form
// <weights><pieces><CODE> into physical quantities.
//
// The weight block carries no delimiters, so every two- and three-field split is
// tried and the first one satisfying GW = SW + NW (or GW = NW) in exact fixed point wins.
package scanner

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"jewelscan/internal/domain"
)

// Stage failures. Their messages become ParsedItem.Error verbatim.
var (
	ErrEmptyInput         = errors.New("empty scanner string")
	ErrNoCode             = errors.New("no alphabetic character found for CODE")
	ErrNoPieces           = errors.New("no digit found for PCS")
	ErrNoWeightData       = errors.New("no weight data found")
	ErrNoDecimalStructure = errors.New("no valid decimal structure found")
	ErrEquationUnbalanced = errors.New("valid decimal structure found but weight equation not satisfied")
)

// Parse decodes one scanner string. It never panics; every failure is reported
// through Status and Error.
func Parse(raw string) domain.ParsedItem {
	result := domain.ParsedItem{Status: domain.ParseStatusInvalid}

	input := strings.TrimSpace(raw)
	if input == "" {
		result.Error = ErrEmptyInput.Error()
		return result
	}

	code, codeStart, err := extractCode(input)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Code = code

	pieces, pcsIndex, err := extractPieces(input, codeStart)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Pieces = &pieces

	cleaned, err := cleanWeightBlock(input[:pcsIndex])
	if err != nil {
		result.Error = err.Error()
		return result
	}

	match, err := selectPartition(generatePartitions(cleaned))
	switch {
	case errors.Is(err, ErrEquationUnbalanced):
		result.Status = domain.ParseStatusMistake
		result.Error = err.Error()
		return result
	case err != nil:
		result.Error = err.Error()
		return result
	}

	result.GrossWeight = match.gwInt.Ptr()
	result.StoneWeight = match.swInt.Ptr()
	result.NetWeight = match.nwInt.Ptr()
	result.Status = domain.ParseStatusValid
	return result
}

// ParseAll parses every input in order. A failed element never stops the batch.
func ParseAll(inputs []string) []domain.ParsedItem {
	items := make([]domain.ParsedItem, len(inputs))
	for i, raw := range inputs {
		items[i] = Parse(raw)
	}
	return items
}

// ParseAllConcurrent is ParseAll spread over at most workers goroutines. Results are
// written by index, so the output order matches the input order. Cancelling ctx stops
// scheduling new elements and returns ctx.Err().
func ParseAllConcurrent(ctx context.Context, inputs []string, workers int) ([]domain.ParsedItem, error) {
	if workers <= 1 || len(inputs) < 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return ParseAll(inputs), nil
	}

	items := make([]domain.ParsedItem, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range inputs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = Parse(inputs[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
