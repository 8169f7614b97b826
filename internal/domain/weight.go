package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// WeightScale is the number of Weight units in one gram.
const WeightScale = 1000

// maxWeightGrams bounds the integer part so that GW and SW+NW never overflow int64.
const maxWeightGrams = 1_000_000_000_000

// ErrInvalidWeight is returned when a weight literal cannot be represented exactly.
var ErrInvalidWeight = errors.New("invalid weight")

// Weight is a gram quantity held as an exact count of thousandths of a gram.
type Weight int64

// WeightFromParts combines an integer gram part with a fractional literal of at most
// three digits. The fraction is right-padded with zeros, so "5" means 500 milligrams.
func WeightFromParts(intPart, fracPart string) (Weight, error) {
	if len(fracPart) > 3 || !allDigits(intPart) || !allDigits(fracPart) {
		return 0, fmt.Errorf("%w: %q.%q", ErrInvalidWeight, intPart, fracPart)
	}

	var grams int64
	if intPart != "" {
		v, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil || v >= maxWeightGrams {
			return 0, fmt.Errorf("%w: integer part %q out of range", ErrInvalidWeight, intPart)
		}
		grams = v
	}

	var milli int64
	if fracPart != "" {
		padded := fracPart + strings.Repeat("0", 3-len(fracPart))
		v, err := strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: fraction %q", ErrInvalidWeight, fracPart)
		}
		milli = v
	}

	return Weight(grams*WeightScale + milli), nil
}

// ParseWeight parses a non-negative decimal literal such as "12", "12.5" or ".250".
// Values with more than three fractional digits are rejected rather than rounded.
func ParseWeight(s string) (Weight, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "." {
		return 0, fmt.Errorf("%w: empty", ErrInvalidWeight)
	}
	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if hasDot && fracPart == "" {
		return 0, fmt.Errorf("%w: %q has no fraction digits", ErrInvalidWeight, s)
	}
	return WeightFromParts(intPart, fracPart)
}

// MustParseWeight is ParseWeight for literals known to be valid. It panics otherwise.
func MustParseWeight(s string) Weight {
	w, err := ParseWeight(s)
	if err != nil {
		panic(err)
	}
	return w
}

// Fixed renders the weight with exactly three fractional digits, e.g. "12.500".
func (w Weight) Fixed() string {
	sign := ""
	v := int64(w)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%03d", sign, v/WeightScale, v%WeightScale)
}

// String renders the shortest exact decimal form, e.g. "12.5" or "10".
func (w Weight) String() string {
	s := strings.TrimRight(w.Fixed(), "0")
	return strings.TrimSuffix(s, ".")
}

// Ptr returns a pointer to a copy of w.
func (w Weight) Ptr() *Weight { return &w }

// MarshalJSON encodes the weight as a JSON number without going through float64.
func (w Weight) MarshalJSON() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (w *Weight) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		s = unquoted
	}
	parsed, err := ParseWeight(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Value stores the weight as a NUMERIC literal.
func (w Weight) Value() (driver.Value, error) {
	return w.Fixed(), nil
}

// Scan reads NUMERIC columns, which pgx hands over as text.
func (w *Weight) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*w = 0
		return nil
	case string:
		return w.scanText(v)
	case []byte:
		return w.scanText(string(v))
	case int64:
		*w = Weight(v * WeightScale)
		return nil
	case float64:
		return w.scanText(strconv.FormatFloat(v, 'f', 3, 64))
	default:
		return fmt.Errorf("weight: unsupported scan type %T", src)
	}
}

func (w *Weight) scanText(s string) error {
	parsed, err := ParseWeight(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Balanced reports whether gw equals sw + nw exactly. A two-field reading passes sw = 0.
func Balanced(gw, sw, nw Weight) bool {
	return gw == sw+nw
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
