package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kinolab/integrity"
)

// ./integrity demo [-m MESSAGE] [-p P -q Q] [--tamper-index I --tamper-value V]
func (d *driver) demo(c *cli.Context) error {
	s := d.settings
	if c.IsSet("message") {
		s.Demo.Message = c.String("message")
	}
	if c.IsSet("tamper-index") {
		s.Demo.TamperIndex = c.Int("tamper-index")
	}
	if c.IsSet("tamper-value") {
		s.Demo.TamperValue = c.Int64("tamper-value")
	}

	keys, err := d.generateKeys(c)
	if err != nil {
		return err
	}
	codec, err := d.codec(s.Codec.Digest)
	if err != nil {
		return err
	}

	return runScenarios(c.App.Writer, codec, keys, s.Demo)
}

// ./integrity keygen [-p P -q Q] [-o FILE]
func (d *driver) keygen(c *cli.Context) error {
	keys, err := d.generateKeys(c)
	if err != nil {
		return err
	}
	digest, err := integrity.ParseDigest(d.settings.Codec.Digest)
	if err != nil {
		return err
	}

	exported := keys.Export(digest)
	out := c.String("out")
	if out == "" {
		data, err := integrity.MarshalKeyFile(exported)
		if err != nil {
			return err
		}
		_, err = c.App.Writer.Write(data)
		return err
	}

	if err := integrity.WriteKeyFile(out, exported); err != nil {
		return err
	}
	d.logger.Info("key file written", "path", out, "e", keys.Public.E, "n", keys.Public.N)
	return nil
}

// ./integrity encode -k FILE [-a ARMOR] [MESSAGE|-]
func (d *driver) encode(c *cli.Context) error {
	keys, codec, armor, err := d.loadKeys(c)
	if err != nil {
		return err
	}

	message, err := argOrStdin(c)
	if err != nil {
		return err
	}

	sent, err := codec.Encode(message, keys.Public)
	if err != nil {
		return err
	}
	text, err := sent.Payload.Armor(armor)
	if err != nil {
		return err
	}

	d.logger.Info("message encoded", "hash", sent.Hash, "length", len(sent.Payload))
	_, err = fmt.Fprintln(c.App.Writer, text)
	return err
}

// ./integrity decode -k FILE [-a ARMOR] [PAYLOAD|-]
func (d *driver) decode(c *cli.Context) error {
	keys, codec, armor, err := d.loadKeys(c)
	if err != nil {
		return err
	}

	text, err := argOrStdin(c)
	if err != nil {
		return err
	}
	payload, err := integrity.ParsePayload(text, armor)
	if err != nil {
		return err
	}

	result, err := codec.Decode(payload, keys.Private)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}

	if mismatch := result.Mismatch(); mismatch != nil {
		return cli.Exit(mismatch.Error(), exitMismatch)
	}
	return nil
}

func (d *driver) generateKeys(c *cli.Context) (*integrity.KeyPair, error) {
	p, q := d.settings.Keys.PrimeOne, d.settings.Keys.PrimeTwo
	if c.IsSet("p") {
		p = c.Int64("p")
	}
	if c.IsSet("q") {
		q = c.Int64("q")
	}

	keys, err := integrity.GenerateKeys(p, q,
		integrity.WithMaxSearchIterations(d.settings.Keys.MaxSearchIterations))
	if err != nil {
		return nil, err
	}
	d.logger.Debug("keys generated", "p", p, "q", q, "e", keys.Public.E, "d", keys.Private.D, "n", keys.Public.N)
	return keys, nil
}

// loadKeys reads the key file and resolves the codec and armor for
// encode and decode. The key file digest applies unless --digest is given.
func (d *driver) loadKeys(c *cli.Context) (*integrity.KeyPair, *integrity.Codec, integrity.Armor, error) {
	exported, err := integrity.ReadKeyFile(c.String("keys"))
	if err != nil {
		return nil, nil, "", err
	}
	keys, err := integrity.ImportKeyPair(exported)
	if err != nil {
		return nil, nil, "", err
	}

	digest := d.settings.Codec.Digest
	if exported.Digest != "" && !c.IsSet("digest") {
		digest = string(exported.Digest)
	}
	codec, err := d.codec(digest)
	if err != nil {
		return nil, nil, "", err
	}

	armorName := d.settings.Codec.Armor
	if c.IsSet("armor") {
		armorName = c.String("armor")
	}
	armor, err := integrity.ParseArmor(armorName)
	if err != nil {
		return nil, nil, "", fmt.Errorf("%w: %q", err, armorName)
	}
	return keys, codec, armor, nil
}

// argOrStdin returns the first argument, or stdin when it is absent or "-".
func argOrStdin(c *cli.Context) (string, error) {
	if arg := c.Args().First(); arg != "" && arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
