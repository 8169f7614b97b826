package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelscan/internal/domain"
	"jewelscan/internal/scanner"
	"jewelscan/internal/validator"
)

func wp(s string) *domain.Weight { return domain.MustParseWeight(s).Ptr() }

func ip(n int) *int { return &n }

func validEdit() domain.ItemEdit {
	return domain.ItemEdit{
		Code:        "ABC123",
		GrossWeight: wp("12.5"),
		StoneWeight: wp("2.5"),
		NetWeight:   wp("10"),
		Pieces:      ip(1),
	}
}

func TestBuiltinValidators_Metadata(t *testing.T) {
	vs := validator.BuiltinValidators()
	require.Len(t, vs, 5)
	seen := map[string]bool{}
	for _, v := range vs {
		assert.NotEmpty(t, v.RuleKey())
		assert.NotEmpty(t, v.RuleName())
		assert.False(t, seen[v.RuleKey()], "duplicate rule key %s", v.RuleKey())
		seen[v.RuleKey()] = true
	}
	assert.Equal(t, "math.weight_equation", vs[len(vs)-1].RuleKey())
	assert.Equal(t, domain.ValidationRuleSumCheck, vs[len(vs)-1].RuleType())
}

func TestRevalidate_Valid(t *testing.T) {
	item := validator.Revalidate(validEdit())
	assert.Equal(t, domain.ParseStatusValid, item.Status)
	assert.Empty(t, item.Error)
	assert.Equal(t, "ABC123", item.Code)
}

func TestRevalidate_ExactComparison(t *testing.T) {
	// Within a 0.01 tolerance, but not equal at three decimals.
	edit := validEdit()
	edit.GrossWeight = wp("12.505")

	item := validator.Revalidate(edit)
	assert.Equal(t, domain.ParseStatusMistake, item.Status)
	assert.Equal(t, "GW (12.505) != SW + NW (12.500)", item.Error)
	require.NotNil(t, item.GrossWeight)
	assert.Equal(t, domain.MustParseWeight("12.505"), *item.GrossWeight)
}

func TestRevalidate_TrailingZerosAreEqual(t *testing.T) {
	edit := validEdit()
	edit.GrossWeight = wp("12.500")
	edit.NetWeight = wp("10.000")
	assert.Equal(t, domain.ParseStatusValid, validator.Revalidate(edit).Status)
}

func TestRevalidate_Invalid(t *testing.T) {
	t.Run("missing code", func(t *testing.T) {
		edit := validEdit()
		edit.Code = "  "
		item := validator.Revalidate(edit)
		assert.Equal(t, domain.ParseStatusInvalid, item.Status)
		assert.Contains(t, item.Error, "Code")
	})

	t.Run("pieces out of range", func(t *testing.T) {
		edit := validEdit()
		edit.Pieces = ip(12)
		item := validator.Revalidate(edit)
		assert.Equal(t, domain.ParseStatusInvalid, item.Status)
		assert.Contains(t, item.Error, "Pieces")
	})

	t.Run("missing stone weight", func(t *testing.T) {
		edit := validEdit()
		edit.StoneWeight = nil
		item := validator.Revalidate(edit)
		assert.Equal(t, domain.ParseStatusInvalid, item.Status)
		assert.Contains(t, item.Error, "stoneWeight is required")
	})

	t.Run("structural failure wins over equation", func(t *testing.T) {
		edit := validEdit()
		edit.Pieces = nil
		edit.GrossWeight = wp("99")
		item := validator.Revalidate(edit)
		assert.Equal(t, domain.ParseStatusInvalid, item.Status)
		assert.Contains(t, item.Error, "Pieces")
	})
}

func TestRevalidate_ZeroPiecesIsOnlyAWarning(t *testing.T) {
	edit := validEdit()
	edit.Pieces = ip(0)
	assert.Equal(t, domain.ParseStatusValid, validator.Revalidate(edit).Status)
}

func TestRevalidate_AgreesWithParser(t *testing.T) {
	for _, raw := range []string{"12.500*2.500*10.0001ABC123", "7.2507.2505XYZ9", "0.3000.1000.2001CODE"} {
		parsed := scanner.Parse(raw)
		require.Equal(t, domain.ParseStatusValid, parsed.Status, raw)

		edited := validator.Revalidate(domain.ItemEdit{
			Code:        parsed.Code,
			GrossWeight: parsed.GrossWeight,
			StoneWeight: parsed.StoneWeight,
			NetWeight:   parsed.NetWeight,
			Pieces:      parsed.Pieces,
		})
		assert.Equal(t, parsed, edited, raw)
	}
}

func TestRevalidate_AgreesWithParserOnMistakes(t *testing.T) {
	tests := []struct {
		raw        string
		gw, sw, nw string
	}{
		{"12.0002.0005.0001ABC", "12", "2", "5"},
		{"10.0001.0001.0003XY7", "10", "1", "1"},
		{"5.5005.4003Q", "5.5", "0", "5.4"},
	}

	for _, tt := range tests {
		parsed := scanner.Parse(tt.raw)
		require.Equal(t, domain.ParseStatusMistake, parsed.Status, tt.raw)
		require.NotNil(t, parsed.Pieces, tt.raw)

		// A mistake carries no weights, so the operator types in the values read off the tag.
		edited := validator.Revalidate(domain.ItemEdit{
			Code:        parsed.Code,
			GrossWeight: wp(tt.gw),
			StoneWeight: wp(tt.sw),
			NetWeight:   wp(tt.nw),
			Pieces:      parsed.Pieces,
		})
		assert.Equal(t, parsed.Status, edited.Status, tt.raw)
		assert.Contains(t, edited.Error, "!= SW + NW", tt.raw)
	}
}

func TestCheckConfirmable(t *testing.T) {
	t.Run("parsed valid item", func(t *testing.T) {
		item := scanner.Parse("12.500*2.500*10.0001ABC123")
		assert.NoError(t, validator.CheckConfirmable(&item))
	})

	t.Run("mistake rejected", func(t *testing.T) {
		item := scanner.Parse("12.0002.0005.0001ABC")
		assert.ErrorIs(t, validator.CheckConfirmable(&item), domain.ErrItemNotValid)
	})

	t.Run("status claims valid but equation fails", func(t *testing.T) {
		item := domain.ParsedItem{
			Code: "ABC", GrossWeight: wp("5"), StoneWeight: wp("1"), NetWeight: wp("3"),
			Pieces: ip(1), Status: domain.ParseStatusValid,
		}
		err := validator.CheckConfirmable(&item)
		assert.ErrorIs(t, err, domain.ErrItemNotValid)
		assert.Contains(t, err.Error(), "GW (5.000) != SW + NW (4.000)")
	})
}

func TestComputeFieldStatuses(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		edit := validEdit()
		statuses := validator.ComputeFieldStatuses(&edit)
		for path, fs := range statuses {
			assert.Equal(t, domain.FieldStatusValid, fs.Status, path)
			assert.Empty(t, fs.Messages, path)
		}
	})

	t.Run("equation marks gross weight", func(t *testing.T) {
		edit := validEdit()
		edit.GrossWeight = wp("13")
		statuses := validator.ComputeFieldStatuses(&edit)
		assert.Equal(t, domain.FieldStatusInvalid, statuses["grossWeight"].Status)
		assert.Equal(t, domain.FieldStatusValid, statuses["netWeight"].Status)
		require.Len(t, statuses["grossWeight"].Messages, 1)
	})

	t.Run("zero pieces unsure", func(t *testing.T) {
		edit := validEdit()
		edit.Pieces = ip(0)
		statuses := validator.ComputeFieldStatuses(&edit)
		assert.Equal(t, domain.FieldStatusUnsure, statuses["pieces"].Status)
	})
}
