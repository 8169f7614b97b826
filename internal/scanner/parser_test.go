package scanner_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"jewelscan/internal/domain"
	"jewelscan/internal/scanner"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func w(s string) domain.Weight { return domain.MustParseWeight(s) }

func requireValid(t *testing.T, item domain.ParsedItem, gw, sw, nw string, pcs int, code string) {
	t.Helper()
	require.Equal(t, domain.ParseStatusValid, item.Status, "error: %s", item.Error)
	require.NotNil(t, item.GrossWeight)
	require.NotNil(t, item.StoneWeight)
	require.NotNil(t, item.NetWeight)
	require.NotNil(t, item.Pieces)
	assert.Equal(t, w(gw), *item.GrossWeight)
	assert.Equal(t, w(sw), *item.StoneWeight)
	assert.Equal(t, w(nw), *item.NetWeight)
	assert.Equal(t, pcs, *item.Pieces)
	assert.Equal(t, code, item.Code)
	assert.Empty(t, item.Error)
}

func TestParse_ThreePartWithSymbols(t *testing.T) {
	item := scanner.Parse("12.500*2.500*10.0001ABC123")
	requireValid(t, item, "12.5", "2.5", "10", 1, "ABC123")
}

func TestParse_TwoPart(t *testing.T) {
	item := scanner.Parse("7.2507.2505XYZ9")
	requireValid(t, item, "7.25", "0", "7.25", 5, "XYZ9")
}

func TestParse_TrimsSurroundingWhitespace(t *testing.T) {
	item := scanner.Parse("  12.500 2.500 10.000 1 ABC123 \n")
	requireValid(t, item, "12.5", "2.5", "10", 1, "ABC123")
}

func TestParse_LeadingDotGetsZero(t *testing.T) {
	// ".750.250.5002R1" cleans to "0.750.250.500"
	item := scanner.Parse(".750.250.5002R1")
	requireValid(t, item, "0.75", "0.25", "0.5", 2, "R1")
}

func TestParse_CollapsesRepeatedDots(t *testing.T) {
	item := scanner.Parse("5...5001..5004...0003RING")
	requireValid(t, item, "5.5", "1.5", "4", 3, "RING")
}

func TestParse_SkipsSymbolsBeforePieces(t *testing.T) {
	item := scanner.Parse("3.0003.0004 - .# BNG7")
	requireValid(t, item, "3", "0", "3", 4, "BNG7")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		status domain.ParseStatus
		errMsg string
	}{
		{"empty", "", domain.ParseStatusInvalid, "empty scanner string"},
		{"whitespace only", "   \t ", domain.ParseStatusInvalid, "empty scanner string"},
		{"no code", "12.5002.50010.0001", domain.ParseStatusInvalid, "no alphabetic character found for CODE"},
		{"no pieces", "ABCXYZ", domain.ParseStatusInvalid, "no digit found for PCS"},
		{"symbols only before code", "..-- ABC", domain.ParseStatusInvalid, "no digit found for PCS"},
		{"no weight data", "1ABC", domain.ParseStatusInvalid, "no weight data found"},
		{"symbols only before pieces", "*#-1ABC", domain.ParseStatusInvalid, "no weight data found"},
		{"only dots before pieces", "...1ABC", domain.ParseStatusInvalid, "no valid decimal structure found"},
		{"no decimal structure", "1234561ABC", domain.ParseStatusInvalid, "no valid decimal structure found"},
		{"too many fraction digits", "1.23451ABC", domain.ParseStatusInvalid, "no valid decimal structure found"},
		{"unbalanced", "12.0002.0005.0001ABC", domain.ParseStatusMistake, "valid decimal structure found but weight equation not satisfied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := scanner.Parse(tt.raw)
			assert.Equal(t, tt.status, item.Status)
			assert.Equal(t, tt.errMsg, item.Error)
			assert.Nil(t, item.GrossWeight)
			assert.Nil(t, item.StoneWeight)
			assert.Nil(t, item.NetWeight)
		})
	}
}

func TestParse_ErrorMentionsStage(t *testing.T) {
	assert.Contains(t, scanner.Parse("12.5002.50010.0001").Error, "CODE")
	assert.Contains(t, scanner.Parse("ABCXYZ").Error, "PCS")
}

func TestParse_PartialFieldsOnFailure(t *testing.T) {
	t.Run("code kept when pieces missing", func(t *testing.T) {
		item := scanner.Parse("ABCXYZ")
		assert.Equal(t, "ABCXYZ", item.Code)
		assert.Nil(t, item.Pieces)
	})

	t.Run("pieces kept on mistake", func(t *testing.T) {
		item := scanner.Parse("12.0002.0005.0001ABC")
		assert.Equal(t, "ABC", item.Code)
		require.NotNil(t, item.Pieces)
		assert.Equal(t, 1, *item.Pieces)
	})
}

func TestParse_Idempotent(t *testing.T) {
	inputs := []string{"12.500*2.500*10.0001ABC123", "7.2507.2505XYZ9", "ABCXYZ", "", "12.0002.0005.0001ABC"}
	for _, raw := range inputs {
		assert.Equal(t, scanner.Parse(raw), scanner.Parse(raw), raw)
	}
}

func TestParse_ThreePartRoundTrip(t *testing.T) {
	separators := []string{"", " ", "*", " / ", "#"}
	cases := []struct{ sw, nw string }{
		{"0.125", "3.5"},
		{"1.0", "9.999"},
		{"12.34", "0.066"},
		{"0.5", "100.25"},
	}

	for _, c := range cases {
		sw, nw := w(c.sw), w(c.nw)
		gw := sw + nw
		for _, sep := range separators {
			for pcs := 0; pcs <= 9; pcs++ {
				raw := gw.Fixed() + sep + sw.Fixed() + sep + nw.Fixed() + sep + fmt.Sprint(pcs) + "CH" + fmt.Sprint(pcs)
				item := scanner.Parse(raw)
				require.Equal(t, domain.ParseStatusValid, item.Status, raw)
				assert.True(t, domain.Balanced(*item.GrossWeight, *item.StoneWeight, *item.NetWeight), raw)
				assert.Equal(t, gw, *item.GrossWeight, raw)
				assert.Equal(t, sw, *item.StoneWeight, raw)
				assert.Equal(t, nw, *item.NetWeight, raw)
				assert.Equal(t, pcs, *item.Pieces, raw)
				assert.Equal(t, "CH"+fmt.Sprint(pcs), item.Code, raw)
			}
		}
	}
}

func TestParse_OversizedWeightsAreNotDecimals(t *testing.T) {
	item := scanner.Parse("99999999999999999999.01.099999999999999999999.0 1A")
	assert.Equal(t, domain.ParseStatusInvalid, item.Status)
	assert.Equal(t, scanner.ErrNoDecimalStructure.Error(), item.Error)
	assert.Equal(t, "A", item.Code)
	require.NotNil(t, item.Pieces)
	assert.Equal(t, 1, *item.Pieces)
}

func TestParse_FixedPointAvoidsFloatError(t *testing.T) {
	// 0.1 + 0.2 != 0.3 in float64
	item := scanner.Parse("0.3000.1000.2001CODE")
	requireValid(t, item, "0.3", "0.1", "0.2", 1, "CODE")
}

func TestParse_AmbiguousBlockTakesFirstReading(t *testing.T) {
	// "1.00.50.50" balances at several cuts; the lowest (i, j) is reported.
	item := scanner.Parse("1.00.50.502A")
	requireValid(t, item, "1", "0.5", "0.5", 2, "A")
}

func TestParseAll_PreservesOrder(t *testing.T) {
	inputs := []string{"ABCXYZ", "12.500*2.500*10.0001ABC123", "", "7.2507.2505XYZ9", "12.0002.0005.0001ABC"}
	items := scanner.ParseAll(inputs)

	require.Len(t, items, len(inputs))
	for i, raw := range inputs {
		assert.Equal(t, scanner.Parse(raw), items[i], "index %d", i)
	}
}

func TestParseAll_Empty(t *testing.T) {
	assert.Empty(t, scanner.ParseAll(nil))
}

func TestParseAllConcurrent_MatchesSequential(t *testing.T) {
	inputs := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		switch i % 4 {
		case 0:
			inputs = append(inputs, "12.500*2.500*10.0001ABC"+fmt.Sprint(i))
		case 1:
			inputs = append(inputs, "7.2507.2505XYZ"+fmt.Sprint(i))
		case 2:
			inputs = append(inputs, strings.Repeat(" ", i%3))
		default:
			inputs = append(inputs, "12.0002.0005.0001ABC")
		}
	}

	got, err := scanner.ParseAllConcurrent(context.Background(), inputs, 8)
	require.NoError(t, err)
	assert.Equal(t, scanner.ParseAll(inputs), got)
}

func TestParseAllConcurrent_SingleWorker(t *testing.T) {
	inputs := []string{"7.2507.2505XYZ9", "ABCXYZ"}
	got, err := scanner.ParseAllConcurrent(context.Background(), inputs, 1)
	require.NoError(t, err)
	assert.Equal(t, scanner.ParseAll(inputs), got)
}

func TestParseAllConcurrent_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scanner.ParseAllConcurrent(ctx, []string{"7.2507.2505XYZ9", "ABCXYZ", "1ABC"}, 4)
	assert.ErrorIs(t, err, context.Canceled)
}
