// Package integrity demonstrates message integrity checking with a toy RSA
// scheme. It is a teaching tool: the primes are tiny, there is no padding and
// keys are not validated for size. Do not use it to protect anything.
//
// A sender encodes a message into a payload made of the code point of every
// character followed by the 32 hex digits of the message digest, each
// encrypted with the public key. The receiver decrypts the digest with the
// private key, recomputes the digest of the received characters and compares
// the two. Any alteration of the payload shows up as a mismatch.
//
// Basic usage:
//
//	keys, err := integrity.GenerateDefaultKeys()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sent, err := integrity.Encode("KINO", keys.Public)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := integrity.Decode(sent.Payload, keys.Private)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if !result.HashesMatch {
//	    fmt.Println("tampered:", result.Mismatch())
//	}
//
// Mismatches are results, not errors: Decode always returns a
// VerificationResult for a well-formed payload.
package integrity
