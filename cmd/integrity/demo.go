package main

import (
	"fmt"
	"io"

	"github.com/kinolab/integrity"
)

// runScenarios sends the message once untouched and once with a single
// payload element overwritten, printing both outcomes. A mismatch in the
// second scenario is the expected result, not an error.
func runScenarios(w io.Writer, codec *integrity.Codec, keys *integrity.KeyPair, s DemoSettings) error {
	fmt.Fprintf(w, "Keys:             public {e: %d, n: %d}, private {d: %d, n: %d}, digest %s\n",
		keys.Public.E, keys.Public.N, keys.Private.D, keys.Private.N, codec.Digest())

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scenario 1: payload delivered untouched")
	if err := sendAndReceive(w, codec, keys, s.Message, nil); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Scenario 2: payload[%d] overwritten with %d\n", s.TamperIndex, s.TamperValue)
	tamper := func(p integrity.Payload) (integrity.Payload, error) {
		return p.Tamper(s.TamperIndex, s.TamperValue)
	}
	return sendAndReceive(w, codec, keys, s.Message, tamper)
}

func sendAndReceive(w io.Writer, codec *integrity.Codec, keys *integrity.KeyPair, message string,
	tamper func(integrity.Payload) (integrity.Payload, error),
) error {
	sent, err := codec.Encode(message, keys.Public)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	payload := sent.Payload
	if tamper != nil {
		if payload, err = tamper(payload); err != nil {
			return fmt.Errorf("tamper: %w", err)
		}
	}

	received, err := codec.Decode(payload, keys.Private)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	fmt.Fprintf(w, "Sent message:     {message: %q, hash: %s}\n", message, sent.Hash)
	fmt.Fprintf(w, "Received message: {message: %q, hash: %s, hashesMatch: %t}\n",
		received.Message, received.Hash, received.HashesMatch)
	if mismatch := received.Mismatch(); mismatch != nil {
		fmt.Fprintf(w, "Error receiving the message: %v\n", mismatch)
	}
	return nil
}
