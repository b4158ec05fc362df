package crypto

import (
	"fmt"
	"math/big"
)

// Transform computes value^exponent mod modulus.
//
// The base is reduced into [0, modulus) first, so negative or oversized
// inputs are accepted. A non-positive modulus or a negative exponent is a
// programming error and panics.
func Transform(value, exponent, modulus int64) int64 {
	if modulus <= 0 {
		panic(fmt.Sprintf("crypto: non-positive modulus %d", modulus))
	}
	if exponent < 0 {
		panic(fmt.Sprintf("crypto: negative exponent %d", exponent))
	}

	m := big.NewInt(modulus)
	base := new(big.Int).Mod(big.NewInt(value), m)
	result := new(big.Int).Exp(base, big.NewInt(exponent), m)
	return result.Int64()
}
