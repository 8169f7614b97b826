package scanner

import (
	"strings"

	"jewelscan/internal/domain"
)

// partition is one candidate reading of a cleaned weight block.
type partition struct {
	gw, sw, nw string
	threePart  bool
	gwInt      domain.Weight
	swInt      domain.Weight
	nwInt      domain.Weight
}

// exact reports whether the candidate satisfies the weight equation.
func (p *partition) exact() bool {
	if p.threePart {
		return domain.Balanced(p.gwInt, p.swInt, p.nwInt)
	}
	return p.gwInt == p.nwInt
}

// parseDecimal accepts exactly one dot, an optional all-digit integer part and one
// to three fraction digits, and returns the fixed-point value.
func parseDecimal(s string) (domain.Weight, bool) {
	if strings.Count(s, ".") != 1 {
		return 0, false
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if len(fracPart) < 1 || len(fracPart) > 3 {
		return 0, false
	}
	// WeightFromParts also rejects integer parts of 10^12 grams or more. Such a
	// field is treated as malformed, so a block made only of them reports no
	// decimal structure instead of an unbalanced equation.
	w, err := domain.WeightFromParts(intPart, fracPart)
	if err != nil {
		return 0, false
	}
	return w, true
}

// generatePartitions lists every well-formed reading of cleaned. Three-part readings
// come first by ascending (i, j), then two-part readings by ascending i. Callers rely
// on this order to pick the first exact match.
func generatePartitions(cleaned string) []partition {
	n := len(cleaned)
	var parts []partition

	for i := 1; i < n-1; i++ {
		gw, ok := parseDecimal(cleaned[:i])
		if !ok {
			continue
		}
		for j := i + 1; j < n; j++ {
			sw, ok := parseDecimal(cleaned[i:j])
			if !ok {
				continue
			}
			nw, ok := parseDecimal(cleaned[j:])
			if !ok {
				continue
			}
			parts = append(parts, partition{
				gw: cleaned[:i], sw: cleaned[i:j], nw: cleaned[j:],
				threePart: true,
				gwInt:     gw, swInt: sw, nwInt: nw,
			})
		}
	}

	for i := 1; i < n; i++ {
		gw, ok := parseDecimal(cleaned[:i])
		if !ok {
			continue
		}
		nw, ok := parseDecimal(cleaned[i:])
		if !ok {
			continue
		}
		parts = append(parts, partition{
			gw: cleaned[:i], nw: cleaned[i:],
			gwInt: gw, nwInt: nw,
		})
	}

	return parts
}

// selectPartition returns the first exact candidate in generation order.
func selectPartition(parts []partition) (*partition, error) {
	if len(parts) == 0 {
		return nil, ErrNoDecimalStructure
	}
	for i := range parts {
		if parts[i].exact() {
			return &parts[i], nil
		}
	}
	return nil, ErrEquationUnbalanced
}
