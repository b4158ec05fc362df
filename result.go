package integrity

// VerificationResult is the receiver side output of Decode.
type VerificationResult struct {
	// Message is the reconstructed plaintext.
	Message string `json:"message"`
	// Hash is the digest computed from Message.
	Hash string `json:"hash"`
	// ReceivedHash is the digest decrypted from the payload.
	ReceivedHash string `json:"receivedHash"`
	// HashesMatch reports whether Hash equals ReceivedHash.
	HashesMatch bool `json:"hashesMatch"`
}

// Mismatch returns the details of a failed verification, or nil when the
// digests match.
func (r *VerificationResult) Mismatch() *IntegrityMismatch {
	if r.HashesMatch {
		return nil
	}
	return &IntegrityMismatch{Received: r.ReceivedHash, Computed: r.Hash}
}

// Err returns the mismatch as an error, or nil when the digests match.
func (r *VerificationResult) Err() error {
	if m := r.Mismatch(); m != nil {
		return m
	}
	return nil
}
