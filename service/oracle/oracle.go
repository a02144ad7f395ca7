package oracle

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
)

type oracleService struct {
	db          *db.DB
	system      *core.System
	registry    core.RegistryService
	requests    core.RequestStore
	validations core.ValidationStore
	verifier    core.AnswerVerifier
}

// New new oracle coordinator
func New(
	db *db.DB,
	system *core.System,
	registrySrv core.RegistryService,
	requestStr core.RequestStore,
	validationStr core.ValidationStore,
	verifier core.AnswerVerifier,
) core.OracleService {
	return &oracleService{
		db:          db,
		system:      system,
		registry:    registrySrv,
		requests:    requestStr,
		validations: validationStr,
		verifier:    verifier,
	}
}

func (s *oracleService) RequestPrice(ctx context.Context, requester, pair string, timestamp int64) (*core.PriceRequest, error) {
	log := logger.FromContext(ctx).WithField("service", "oracle")

	// the access gate comes first: callers outside the whitelist learn
	// nothing about how their request would have been judged
	ok, err := s.registry.IsWhitelisted(ctx, requester)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrNotWhitelisted
	}

	assetID, err := core.ToAssetID(pair)
	if err != nil {
		return nil, err
	}

	if timestamp > time.Now().Add(s.system.MaxFutureSkew).Unix() {
		return nil, core.ErrFutureTimestamp
	}

	req := &core.PriceRequest{
		TraceID:   uuid.New(),
		AssetID:   assetID.String(),
		Symbol:    pair,
		Timestamp: timestamp,
		Requester: requester,
		State:     core.RequestStatePending,
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	log.Infoln("price requested:", pair, timestamp, "by", requester)
	return req, nil
}

// SubmitAnswer runs the three-step commit: verify, fulfill, commit.
// The fulfill and commit steps share one transaction so a failed answer
// leaves the ledger and the validation store untouched.
func (s *oracleService) SubmitAnswer(ctx context.Context, answer *core.SignedAnswer) (*core.ValidationRecord, error) {
	log := logger.FromContext(ctx).WithField("service", "oracle")

	signer, err := s.registry.TrustedSigner(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.verifier.Verify(ctx, answer, signer); err != nil {
		return nil, err
	}

	content, _ := json.Marshal(answer)
	record := &core.ValidationRecord{
		AssetID:   answer.AssetID,
		Timestamp: answer.Timestamp,
		Price:     answer.Price,
		Signature: answer.Signature,
		Content:   content,
	}

	if err := s.transact(func(tx *db.DB) error {
		if err := s.requests.MarkFulfilled(ctx, tx, answer.AssetID, answer.Timestamp); err != nil {
			return err
		}

		return s.validations.Commit(ctx, tx, record)
	}); err != nil {
		return nil, err
	}

	log.Infoln("answer committed:", answer.AssetID, answer.Timestamp, answer.Price)
	return record, nil
}

func (s *oracleService) transact(fn func(tx *db.DB) error) error {
	if s.db != nil {
		return s.db.Tx(fn)
	}

	return fn(nil)
}

func (s *oracleService) RejectRequest(ctx context.Context, assetID string, timestamp int64, reason string) error {
	return s.requests.MarkRejected(ctx, assetID, timestamp, reason)
}

func (s *oracleService) ListPending(ctx context.Context, limit int) ([]*core.PriceRequest, error) {
	return s.requests.ListPending(ctx, limit)
}

func (s *oracleService) GetValidatedPrice(ctx context.Context, pair string, timestamp int64) (*core.ValidationRecord, error) {
	assetID, err := core.ToAssetID(pair)
	if err != nil {
		return nil, err
	}

	return s.validations.Find(ctx, assetID.String(), timestamp)
}

func (s *oracleService) GetLatestPrice(ctx context.Context, pair string) (*core.ValidationRecord, error) {
	assetID, err := core.ToAssetID(pair)
	if err != nil {
		return nil, err
	}

	return s.validations.Latest(ctx, assetID.String())
}
