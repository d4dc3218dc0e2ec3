package wallet

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// ed25519 scheme flag used in Sui addresses and serialized signatures.
const ed25519Flag = byte(0x00)

// intentTransactionData is the signing intent prefix:
// scope=TransactionData, version=0, app=Sui.
var intentTransactionData = []byte{0, 0, 0}

// transactionDigestPrefix salts the digest so it cannot collide with other
// hashed object kinds.
const transactionDigestPrefix = "TransactionData::"

// keypairFromBase64 decodes a base64-encoded ed25519 seed (32 bytes) or full
// private key (64 bytes). Sui keystore entries carry a leading scheme flag.
func keypairFromBase64(encoded string) (ed25519.PrivateKey, ed25519.PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, nil, fmt.Errorf("private key is not valid base64: %w", err)
	}

	if len(raw) == ed25519.SeedSize+1 && raw[0] == ed25519Flag {
		raw = raw[1:]
	}

	var priv ed25519.PrivateKey
	switch len(raw) {
	case ed25519.SeedSize:
		priv = ed25519.NewKeyFromSeed(raw)
	case ed25519.PrivateKeySize:
		priv = ed25519.PrivateKey(raw)
	default:
		return nil, nil, fmt.Errorf("unexpected private key length %d", len(raw))
	}

	return priv, priv.Public().(ed25519.PublicKey), nil
}

// addressFromPublicKey derives the Sui address: blake2b-256 over the scheme
// flag followed by the raw public key, hex encoded.
func addressFromPublicKey(pub ed25519.PublicKey) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte{ed25519Flag})
	h.Write(pub)
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

// signTransactionBytes produces the serialized signature for base64
// transaction bytes: base64(flag || ed25519_sig || pubkey). The signature
// covers blake2b-256 of the intent-prefixed transaction data.
func signTransactionBytes(priv ed25519.PrivateKey, pub ed25519.PublicKey, txBytesB64 string) (string, error) {
	txBytes, err := base64.StdEncoding.DecodeString(txBytesB64)
	if err != nil {
		return "", fmt.Errorf("transaction bytes are not valid base64: %w", err)
	}

	h, _ := blake2b.New256(nil)
	h.Write(intentTransactionData)
	h.Write(txBytes)
	digest := h.Sum(nil)

	sig := ed25519.Sign(priv, digest)

	serialized := make([]byte, 0, 1+len(sig)+len(pub))
	serialized = append(serialized, ed25519Flag)
	serialized = append(serialized, sig...)
	serialized = append(serialized, pub...)
	return base64.StdEncoding.EncodeToString(serialized), nil
}

// transactionDigest computes the base58 digest the node will assign to the
// transaction, so receipts can be cross-checked locally.
func transactionDigest(txBytesB64 string) (string, error) {
	txBytes, err := base64.StdEncoding.DecodeString(txBytesB64)
	if err != nil {
		return "", fmt.Errorf("transaction bytes are not valid base64: %w", err)
	}

	h, _ := blake2b.New256(nil)
	h.Write([]byte(transactionDigestPrefix))
	h.Write(txBytes)
	return base58.Encode(h.Sum(nil)), nil
}
