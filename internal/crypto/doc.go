// Package crypto provides the arithmetic behind the integrity protocol.
// It is a teaching implementation and offers no real security.
//
// # Key Derivation
//
// [DeriveExponents] turns two primes into the textbook RSA triple (e, d, n)
// using deliberately naive linear searches:
//
//   - e is the first integer from 3 upward that does not divide phi.
//   - d is the first multiple of e with e*d = 1 (mod phi).
//
// The e search checks divisibility only, not coprimality, so some prime pairs
// yield an e for which no d exists. Both searches are bounded and fail with a
// [SearchError] instead of looping forever.
//
// # Modular Exponentiation
//
// [Transform] computes value^exponent mod modulus with math/big. The same
// function encrypts (exponent e) and decrypts (exponent d).
//
// # Digests and Armor
//
// Every [Digest] yields 16 bytes, i.e. 32 hex characters, which is what fixes
// the length of the encrypted tail of a payload. An [Armor] turns a payload
// into text for transport:
//
//   - [ArmorBase58]: zig-zag varints, base58.
//   - [ArmorBase64URL]: zig-zag varints, URL-safe base64 without padding.
//   - [ArmorJSON]: a JSON number array.
package crypto
