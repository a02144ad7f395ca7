package sigcheck

import (
	"encoding/binary"
	"encoding/hex"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/sha3"
)

// messagePrefix domain separator for signed price answers
const messagePrefix = "oracle-price:v1"

// PriceDecimals fixed-point precision of the signed price value
const PriceDecimals = 8

var (
	// ErrInvalidKey invalid private key encoding
	ErrInvalidKey = errors.New("sigcheck: invalid private key")
	// ErrInvalidSignature malformed or unrecoverable signature
	ErrInvalidSignature = errors.New("sigcheck: invalid signature")
	// ErrPriceOutOfRange price does not fit the signed message encoding
	ErrPriceOutOfRange = errors.New("sigcheck: price out of range")
)

// Digest computes the canonical message digest of a price answer.
//
// The signature binds the exact (asset, timestamp, price) tuple:
// prefix || assetID || uint64be(timestamp) || uint256be(price * 10^8),
// hashed with keccak256. Any component change yields a different digest.
func Digest(assetID [32]byte, timestamp int64, price decimal.Decimal) ([]byte, error) {
	units := price.Shift(PriceDecimals).Truncate(0).BigInt()
	if units.Sign() < 0 || units.BitLen() > 256 {
		return nil, ErrPriceOutOfRange
	}

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(timestamp))

	var value [32]byte
	units.FillBytes(value[:])

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(messagePrefix))
	h.Write(assetID[:])
	h.Write(ts[:])
	h.Write(value[:])
	return h.Sum(nil), nil
}

// Sign signs a digest with a hex encoded secp256k1 private key and
// returns the 65-byte compact signature, hex encoded.
func Sign(digest []byte, privateKeyHex string) (string, error) {
	key, err := parseKey(privateKeyHex)
	if err != nil {
		return "", err
	}

	sig := secpecdsa.SignCompact(key, digest, false)
	return hex.EncodeToString(sig), nil
}

// Recover recovers the signer address from a compact signature.
func Recover(digest []byte, signatureHex string) (string, error) {
	sig, err := hex.DecodeString(signatureHex)
	if err != nil || len(sig) != 65 {
		return "", ErrInvalidSignature
	}

	pub, _, err := secpecdsa.RecoverCompact(sig, digest)
	if err != nil {
		return "", ErrInvalidSignature
	}

	return pubKeyAddress(pub), nil
}

// GenerateKey generates a fresh keypair, returning the hex private key
// and the derived signer address.
func GenerateKey() (string, string, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return "", "", err
	}

	return hex.EncodeToString(key.Serialize()), pubKeyAddress(key.PubKey()), nil
}

// Address derives the signer address of a private key
func Address(privateKeyHex string) (string, error) {
	key, err := parseKey(privateKeyHex)
	if err != nil {
		return "", err
	}

	return pubKeyAddress(key.PubKey()), nil
}

func parseKey(privateKeyHex string) (*secp256k1.PrivateKey, error) {
	raw, err := hex.DecodeString(privateKeyHex)
	if err != nil || len(raw) != 32 {
		return nil, ErrInvalidKey
	}

	return secp256k1.PrivKeyFromBytes(raw), nil
}

// pubKeyAddress keccak of the uncompressed point without the 0x04 tag,
// last 20 bytes, same derivation the original contracts recover.
func pubKeyAddress(pub *secp256k1.PublicKey) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(pub.SerializeUncompressed()[1:])
	sum := h.Sum(nil)
	return "0x" + hex.EncodeToString(sum[12:])
}
