package crypto

import (
	"math"
	"math/bits"
)

// Exponents is the raw output of the exponent search.
type Exponents struct {
	E   int64
	D   int64
	N   int64
	Phi int64
}

// DeriveExponents derives the RSA exponents for the two primes.
//
// The public exponent is the first value from 3 upward that does not divide
// phi. Full coprimality with phi is not checked. The private exponent is the
// first multiple of e (starting at 0) with e*d = 1 mod phi. Both searches
// run in this order so that the same primes always give the same exponents.
//
// maxIterations bounds each search; values <= 0 use DefaultMaxSearchIterations.
func DeriveExponents(primeOne, primeTwo int64, maxIterations int) (*Exponents, error) {
	if primeOne < 2 || primeTwo < 2 {
		return nil, ErrInvalidPrime
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxSearchIterations
	}

	hi, lo := bits.Mul64(uint64(primeOne), uint64(primeTwo))
	if hi != 0 || lo > math.MaxInt64 {
		return nil, &SearchError{PrimeOne: primeOne, PrimeTwo: primeTwo, Err: ErrModulusOverflow}
	}
	n := int64(lo)
	phi := uint64(primeOne-1) * uint64(primeTwo-1)

	e, iterations, ok := searchPublic(phi, maxIterations)
	if !ok {
		return nil, &SearchError{
			PrimeOne:   primeOne,
			PrimeTwo:   primeTwo,
			Exponent:   int64(e),
			Iterations: iterations,
			Err:        ErrPublicExponentNotFound,
		}
	}

	d, iterations, ok := searchPrivate(e, phi, maxIterations)
	if !ok {
		return nil, &SearchError{
			PrimeOne:   primeOne,
			PrimeTwo:   primeTwo,
			Exponent:   int64(e),
			Iterations: iterations,
			Err:        ErrPrivateExponentNotFound,
		}
	}

	return &Exponents{E: int64(e), D: int64(d), N: n, Phi: int64(phi)}, nil
}

func searchPublic(phi uint64, maxIterations int) (e uint64, iterations int, ok bool) {
	e = FirstPublicExponent
	for phi%e == 0 {
		iterations++
		if iterations >= maxIterations {
			return e, iterations, false
		}
		e++
	}
	return e, iterations, true
}

// searchPrivate walks d = 0, e, 2e, ... keeping e*d mod phi incrementally,
// which gives the same sequence as the direct product without overflow.
func searchPrivate(e, phi uint64, maxIterations int) (d uint64, iterations int, ok bool) {
	step := mulMod(e, e, phi)
	var residue uint64
	for residue != 1 {
		iterations++
		// After phi steps the residues repeat.
		if iterations >= maxIterations || uint64(iterations) >= phi {
			return d, iterations, false
		}
		if d > math.MaxInt64-e {
			return d, iterations, false
		}
		d += e
		residue = addMod(residue, step, phi)
	}
	return d, iterations, true
}

func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

func addMod(a, b, m uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 || sum >= m {
		sum -= m
	}
	return sum
}
