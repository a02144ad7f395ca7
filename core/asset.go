package core

import (
	"encoding/hex"
	"unicode/utf8"

	"golang.org/x/crypto/sha3"
)

const (
	// AssetIDSize fixed width of an asset identifier
	AssetIDSize = 32
	// MaxPairLength max bytes of an asset pair string, e.g. "BTC/USDT"
	MaxPairLength = 64
)

// AssetID fixed-width asset identifier derived from a pair string
type AssetID [AssetIDSize]byte

func (a AssetID) String() string {
	return hex.EncodeToString(a[:])
}

// ToAssetID derives the canonical asset identifier of a trading pair.
//
// Every component resolving the same pair must use this function: the
// derivation is keccak256 over the raw UTF-8 bytes of the pair string.
func ToAssetID(pair string) (AssetID, error) {
	var id AssetID

	if pair == "" || len(pair) > MaxPairLength || !utf8.ValidString(pair) {
		return id, ErrInvalidPair
	}

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(pair))
	copy(id[:], h.Sum(nil))

	return id, nil
}

// ParseAssetID parse a hex encoded asset identifier
func ParseAssetID(s string) (AssetID, error) {
	var id AssetID

	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != AssetIDSize {
		return id, ErrInvalidPair
	}

	copy(id[:], raw)
	return id, nil
}
