package platform

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestIsSaleValid(t *testing.T) {
	testCases := []struct {
		name string
		sale *SalePrice
		want bool
	}{
		{"nil sale", nil, false},
		{"nil price", &SalePrice{}, false},
		{"zero price", &SalePrice{Price: big.NewInt(0)}, false},
		{"negative price", &SalePrice{Price: big.NewInt(-1)}, false},
		{"positive price", &SalePrice{Price: big.NewInt(1)}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsSaleValid(tc.sale))
		})
	}
}

func TestApplyFee(t *testing.T) {
	testCases := []struct {
		name       string
		base       int64
		feePercent int64
		unit       int64
		want       int64
	}{
		{"3 percent single unit", 100, 3, 1, 103},
		{"3 percent two units", 100, 3, 2, 206},
		{"fee floors per unit", 99, 3, 1, 101},
		{"fee floored before multiplying", 99, 3, 10, 1010},
		{"no fee", 500, 0, 3, 1500},
		{"fee smaller than one", 10, 5, 4, 40},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyFee(big.NewInt(tc.base), big.NewInt(tc.feePercent), big.NewInt(tc.unit))
			assert.Equal(t, big.NewInt(tc.want), got)
		})
	}
}

func TestApplyFee_MatchesFormulaForAllSmallInputs(t *testing.T) {
	for base := int64(1); base <= 300; base += 7 {
		for fee := int64(0); fee <= 20; fee++ {
			for unit := int64(1); unit <= 4; unit++ {
				want := unit * (base + base*fee/100)
				got := ApplyFee(big.NewInt(base), big.NewInt(fee), big.NewInt(unit))
				assert.Equal(t, want, got.Int64(), "base=%d fee=%d unit=%d", base, fee, unit)
			}
		}
	}
}

func TestApplyFee_DoesNotMutateInputs(t *testing.T) {
	base := big.NewInt(100)
	fee := big.NewInt(3)
	unit := big.NewInt(2)

	ApplyFee(base, fee, unit)

	assert.Equal(t, int64(100), base.Int64())
	assert.Equal(t, int64(3), fee.Int64())
	assert.Equal(t, int64(2), unit.Int64())
}

func TestQuoteSale(t *testing.T) {
	token := common.HexToAddress("0x4200000000000000000000000000000000000006")

	assert.Nil(t, QuoteSale(nil, big.NewInt(3), big.NewInt(1)))
	assert.Nil(t, QuoteSale(&SalePrice{Price: big.NewInt(0)}, big.NewInt(3), big.NewInt(1)))

	quote := QuoteSale(&SalePrice{Price: big.NewInt(100), PaymentToken: token}, big.NewInt(3), big.NewInt(2))
	if assert.NotNil(t, quote) {
		assert.Equal(t, big.NewInt(206), quote.Total)
		assert.Equal(t, token, quote.PaymentToken)
	}
}
