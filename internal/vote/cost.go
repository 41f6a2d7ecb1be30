package vote

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

const (
	MinWeight = 1
	// DefaultMaxWeight bounds a single ballot. The ledger itself does not
	// enforce it.
	DefaultMaxWeight = 100
	// DefaultDecimals matches an ERC20 token with 18 decimals.
	DefaultDecimals = 18
)

// maxExactWeight keeps weight*weight inside uint64.
const maxExactWeight = math.MaxUint32

// CalculateCost returns the quadratic cost of a ballot, weight squared, in
// whole tokens.
func CalculateCost(weight uint64) uint64 {
	return weight * weight
}

// Quote is the price of a ballot before it is cast.
type Quote struct {
	Weight   uint64
	Cost     uint64
	Amount   *big.Int
	Decimals uint8
}

// PriceBallot quotes a ballot of the given weight, rejecting weights
// outside [MinWeight, maxWeight].
func PriceBallot(weight, maxWeight uint64, decimals uint8) (Quote, error) {
	if maxWeight > maxExactWeight {
		maxWeight = maxExactWeight
	}
	if weight < MinWeight || weight > maxWeight {
		return Quote{}, errors.Errorf("weight %d is outside [%d, %d]", weight, MinWeight, maxWeight)
	}
	cost := CalculateCost(weight)
	return Quote{
		Weight:   weight,
		Cost:     cost,
		Amount:   BaseUnits(cost, decimals),
		Decimals: decimals,
	}, nil
}

func (q Quote) String() string {
	return fmt.Sprintf("%d² = %d tokens", q.Weight, q.Cost)
}

// BaseUnits converts whole tokens into the token's smallest unit.
func BaseUnits(tokens uint64, decimals uint8) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return scale.Mul(scale, new(big.Int).SetUint64(tokens))
}

// FormatUnits renders a base unit amount as a decimal token amount without
// trailing zeros.
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	sign := ""
	v := new(big.Int).Set(amount)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(v, scale, new(big.Int))
	if frac.Sign() == 0 {
		return sign + whole.String()
	}
	fracStr := frac.String()
	fracStr = strings.Repeat("0", int(decimals)-len(fracStr)) + fracStr
	return sign + whole.String() + "." + strings.TrimRight(fracStr, "0")
}
