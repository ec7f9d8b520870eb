package platform

import "math/big"

var hundred = big.NewInt(100)

// IsSaleValid reports whether sale is an active listing with a positive price.
func IsSaleValid(sale *SalePrice) bool {
	return sale != nil && sale.Price != nil && sale.Price.Sign() > 0
}

// ApplyFee returns (base*feePercent/100 + base) * unit. The fee is floored
// per unit before multiplying.
func ApplyFee(base *big.Int, feePercent *big.Int, unit *big.Int) *big.Int {
	fee := new(big.Int).Mul(base, feePercent)
	fee.Quo(fee, hundred)
	perUnit := fee.Add(fee, base)
	return perUnit.Mul(perUnit, unit)
}

// QuoteSale prices unit copies of sale, or returns nil if the sale is not
// valid.
func QuoteSale(sale *SalePrice, feePercent *big.Int, unit *big.Int) *Quote {
	if !IsSaleValid(sale) {
		return nil
	}
	return &Quote{
		Total:        ApplyFee(sale.Price, feePercent, unit),
		PaymentToken: sale.PaymentToken,
	}
}
