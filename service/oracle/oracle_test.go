package oracle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"
	"github.com/MAGNETO903/oracle-platform-hackathon/pkg/sigcheck"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	oracle      core.OracleService
	registry    *fakeRegistry
	requests    *fakeRequestStore
	validations *fakeValidationStore
	signerKey   string
}

func newTestEnv(t *testing.T) *testEnv {
	signerKey, signerAddress, err := sigcheck.GenerateKey()
	require.Nil(t, err)

	registry := newFakeRegistry("0xowner", signerAddress)
	requests := newFakeRequestStore()
	validations := newFakeValidationStore()
	system := &core.System{MaxFutureSkew: time.Minute}

	return &testEnv{
		oracle:      New(nil, system, registry, requests, validations, NewVerifier(requests)),
		registry:    registry,
		requests:    requests,
		validations: validations,
		signerKey:   signerKey,
	}
}

func (env *testEnv) signAnswer(t *testing.T, pair string, timestamp int64, price decimal.Decimal) *core.SignedAnswer {
	assetID, err := core.ToAssetID(pair)
	require.Nil(t, err)

	digest, err := sigcheck.Digest(assetID, timestamp, price)
	require.Nil(t, err)

	signature, err := sigcheck.Sign(digest, env.signerKey)
	require.Nil(t, err)

	return &core.SignedAnswer{
		AssetID:   assetID.String(),
		Timestamp: timestamp,
		Price:     price,
		Signature: signature,
	}
}

func TestRequestPriceWhitelistGate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.oracle.RequestPrice(ctx, "0xaddr2", "BTC/USDT", 1001)
	assert.Equal(t, core.ErrNotWhitelisted, err)

	// the gate answers first whatever else is wrong with the request
	_, err = env.oracle.RequestPrice(ctx, "0xaddr2", "", 1000)
	assert.Equal(t, core.ErrNotWhitelisted, err)

	_, err = env.oracle.RequestPrice(ctx, "0xaddr2", "BTC/USDT", time.Now().Add(time.Hour).Unix())
	assert.Equal(t, core.ErrNotWhitelisted, err)

	require.Nil(t, env.registry.AddIdentity(ctx, "0xowner", "0xaddr1"))

	req, err := env.oracle.RequestPrice(ctx, "0xaddr1", "BTC/USDT", 1000)
	require.Nil(t, err)
	assert.Equal(t, core.RequestStatePending, req.State)
	assert.Equal(t, "BTC/USDT", req.Symbol)
	assert.NotEmpty(t, req.TraceID)
}

func TestRequestPriceInvalidPair(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.Nil(t, env.registry.AddIdentity(ctx, "0xowner", "0xaddr1"))

	_, err := env.oracle.RequestPrice(ctx, "0xaddr1", "", 1000)
	assert.Equal(t, core.ErrInvalidPair, err)
}

func TestRequestPriceFutureTimestamp(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.Nil(t, env.registry.AddIdentity(ctx, "0xowner", "0xaddr1"))

	future := time.Now().Add(time.Hour).Unix()
	_, err := env.oracle.RequestPrice(ctx, "0xaddr1", "BTC/USDT", future)
	assert.Equal(t, core.ErrFutureTimestamp, err)

	// old timestamps are explicitly supported
	old := time.Now().Add(-5 * time.Minute).Unix()
	_, err = env.oracle.RequestPrice(ctx, "0xaddr1", "BTC/USDT", old)
	assert.Nil(t, err)
}

func TestRequestPriceDuplicate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.Nil(t, env.registry.AddIdentity(ctx, "0xowner", "0xaddr1"))

	_, err := env.oracle.RequestPrice(ctx, "0xaddr1", "BTC/USDT", 1000)
	require.Nil(t, err)

	_, err = env.oracle.RequestPrice(ctx, "0xaddr1", "BTC/USDT", 1000)
	assert.Equal(t, core.ErrDuplicateRequest, err)

	// a distinct key is unaffected
	_, err = env.oracle.RequestPrice(ctx, "0xaddr1", "BTC/USDT", 1001)
	assert.Nil(t, err)
}

func TestRequestPriceConcurrentSameKey(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.Nil(t, env.registry.AddIdentity(ctx, "0xowner", "0xaddr1"))

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.oracle.RequestPrice(ctx, "0xaddr1", "BTC/USDT", 1000)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.Equal(t, core.ErrDuplicateRequest, err)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestSubmitAnswerScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.Nil(t, env.registry.AddIdentity(ctx, "0xowner", "0xaddr1"))

	_, err := env.oracle.RequestPrice(ctx, "0xaddr1", "BTC/USDT", 1000)
	require.Nil(t, err)

	answer := env.signAnswer(t, "BTC/USDT", 1000, decimal.NewFromInt(65000))
	record, err := env.oracle.SubmitAnswer(ctx, answer)
	require.Nil(t, err)
	assert.True(t, record.Price.Equal(decimal.NewFromInt(65000)))

	got, err := env.oracle.GetValidatedPrice(ctx, "BTC/USDT", 1000)
	require.Nil(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(65000)))

	// replaying the same answer never rewrites the record
	_, err = env.oracle.SubmitAnswer(ctx, answer)
	assert.Equal(t, core.ErrAlreadyCommitted, err)

	got, err = env.oracle.GetValidatedPrice(ctx, "BTC/USDT", 1000)
	require.Nil(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(65000)))

	// the ledger entry ended up fulfilled
	req, err := env.requests.Find(ctx, answer.AssetID, 1000)
	require.Nil(t, err)
	assert.Equal(t, core.RequestStateFulfilled, req.State)

	_, err = env.oracle.RequestPrice(ctx, "0xaddr2", "BTC/USDT", 1001)
	assert.Equal(t, core.ErrNotWhitelisted, err)
}

func TestSubmitAnswerBinding(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.Nil(t, env.registry.AddIdentity(ctx, "0xowner", "0xaddr1"))

	_, err := env.oracle.RequestPrice(ctx, "0xaddr1", "BTC/USDT", 1000)
	require.Nil(t, err)
	_, err = env.oracle.RequestPrice(ctx, "0xaddr1", "BTC/USDT", 1001)
	require.Nil(t, err)

	answer := env.signAnswer(t, "BTC/USDT", 1000, decimal.NewFromInt(65000))

	// moving a valid signature to another pending key must fail
	moved := *answer
	moved.Timestamp = 1001
	_, err = env.oracle.SubmitAnswer(ctx, &moved)
	assert.Equal(t, core.ErrSignatureMismatch, err)

	// tampering with the price must fail
	repriced := *answer
	repriced.Price = decimal.NewFromInt(1)
	_, err = env.oracle.SubmitAnswer(ctx, &repriced)
	assert.Equal(t, core.ErrSignatureMismatch, err)

	// nothing was committed
	_, err = env.oracle.GetValidatedPrice(ctx, "BTC/USDT", 1000)
	assert.Equal(t, core.ErrPriceNotFound, err)
	_, err = env.oracle.GetValidatedPrice(ctx, "BTC/USDT", 1001)
	assert.Equal(t, core.ErrPriceNotFound, err)
}

func TestSubmitAnswerForgedSigner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.Nil(t, env.registry.AddIdentity(ctx, "0xowner", "0xaddr1"))

	_, err := env.oracle.RequestPrice(ctx, "0xaddr1", "BTC/USDT", 1000)
	require.Nil(t, err)

	// an intruder key signs a perfectly shaped answer
	intruderKey, _, err := sigcheck.GenerateKey()
	require.Nil(t, err)

	assetID, err := core.ToAssetID("BTC/USDT")
	require.Nil(t, err)
	digest, err := sigcheck.Digest(assetID, 1000, decimal.NewFromInt(65000))
	require.Nil(t, err)
	signature, err := sigcheck.Sign(digest, intruderKey)
	require.Nil(t, err)

	_, err = env.oracle.SubmitAnswer(ctx, &core.SignedAnswer{
		AssetID:   assetID.String(),
		Timestamp: 1000,
		Price:     decimal.NewFromInt(65000),
		Signature: signature,
	})
	assert.Equal(t, core.ErrSignatureMismatch, err)
}

func TestSubmitAnswerWithoutRequest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	answer := env.signAnswer(t, "BTC/USDT", 1000, decimal.NewFromInt(65000))
	_, err := env.oracle.SubmitAnswer(ctx, answer)
	assert.Equal(t, core.ErrNoMatchingRequest, err)
}

func TestSubmitAnswerInvalidPrice(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	answer := &core.SignedAnswer{
		AssetID:   "00",
		Timestamp: 1000,
		Price:     decimal.Zero,
	}
	_, err := env.oracle.SubmitAnswer(ctx, answer)
	assert.Equal(t, core.ErrInvalidPrice, err)
}

func TestRejectedRequestAllowsFreshCycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.Nil(t, env.registry.AddIdentity(ctx, "0xowner", "0xaddr1"))

	req, err := env.oracle.RequestPrice(ctx, "0xaddr1", "BTC/USDT", 1000)
	require.Nil(t, err)

	require.Nil(t, env.oracle.RejectRequest(ctx, req.AssetID, 1000, "expired"))

	// the late answer is refused
	answer := env.signAnswer(t, "BTC/USDT", 1000, decimal.NewFromInt(65000))
	_, err = env.oracle.SubmitAnswer(ctx, answer)
	assert.Equal(t, core.ErrNoMatchingRequest, err)

	// a fresh request cycle for the key succeeds and can be answered
	_, err = env.oracle.RequestPrice(ctx, "0xaddr1", "BTC/USDT", 1000)
	require.Nil(t, err)

	_, err = env.oracle.SubmitAnswer(ctx, answer)
	require.Nil(t, err)
}

func TestGetLatestPrice(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.Nil(t, env.registry.AddIdentity(ctx, "0xowner", "0xaddr1"))

	_, err := env.oracle.GetLatestPrice(ctx, "BTC/USDT")
	assert.Equal(t, core.ErrPriceNotFound, err)

	for ts, price := range map[int64]int64{1000: 65000, 2000: 66000} {
		_, err := env.oracle.RequestPrice(ctx, "0xaddr1", "BTC/USDT", ts)
		require.Nil(t, err)
		_, err = env.oracle.SubmitAnswer(ctx, env.signAnswer(t, "BTC/USDT", ts, decimal.NewFromInt(price)))
		require.Nil(t, err)
	}

	latest, err := env.oracle.GetLatestPrice(ctx, "BTC/USDT")
	require.Nil(t, err)
	assert.Equal(t, int64(2000), latest.Timestamp)
	assert.True(t, latest.Price.Equal(decimal.NewFromInt(66000)))
}
