package oracle

import (
	"context"
	"strings"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"
	"github.com/MAGNETO903/oracle-platform-hackathon/pkg/sigcheck"
)

type answerVerifier struct {
	requests core.RequestStore
}

// NewVerifier new signed answer verifier
func NewVerifier(requests core.RequestStore) core.AnswerVerifier {
	return &answerVerifier{requests: requests}
}

// Verify recomputes the canonical message for the answer's exact
// (asset, timestamp, price) tuple and recovers the signing identity.
// An answer over any other tuple recovers a different address and is
// rejected, so a valid signature cannot be replayed against another key.
func (v *answerVerifier) Verify(ctx context.Context, answer *core.SignedAnswer, expectedSigner string) error {
	if !answer.Price.IsPositive() {
		return core.ErrInvalidPrice
	}

	assetID, err := core.ParseAssetID(answer.AssetID)
	if err != nil {
		return core.ErrInvalidPair
	}

	digest, err := sigcheck.Digest(assetID, answer.Timestamp, answer.Price)
	if err != nil {
		return core.ErrInvalidPrice
	}

	recovered, err := sigcheck.Recover(digest, answer.Signature)
	if err != nil {
		return core.ErrSignatureMismatch
	}

	if !strings.EqualFold(recovered, expectedSigner) {
		return core.ErrSignatureMismatch
	}

	req, err := v.requests.Find(ctx, answer.AssetID, answer.Timestamp)
	if err == core.ErrNoSuchRequest {
		return core.ErrNoMatchingRequest
	}
	if err != nil {
		return err
	}

	switch req.State {
	case core.RequestStatePending:
		return nil
	case core.RequestStateFulfilled:
		// replay of an already answered key
		return core.ErrAlreadyCommitted
	default:
		return core.ErrNoMatchingRequest
	}
}
