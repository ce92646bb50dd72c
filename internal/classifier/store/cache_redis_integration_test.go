//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"riskengine/internal/classifier"
	"riskengine/internal/classifier/store"
	id "riskengine/pkg/domain"
	"riskengine/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *store.RedisCache
	ctx   context.Context
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.ctx = context.Background()
	s.redis = containers.NewRedisContainer(s.T())
	s.cache = store.NewRedisCache(s.redis.Client, time.Minute)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func (s *RedisCacheSuite) TestRoundTrip() {
	decision := &classifier.ClassificationDecision{
		AssessmentID:          id.NewAssessmentID(),
		SystemID:              "loan-scoring",
		Tier:                  classifier.TierHighRisk,
		Confidence:            0.7,
		TriggeredBy:           []id.QuestionID{"H5"},
		FiredRule:             classifier.RuleHighRisk,
		RecommendVerification: false,
		RulepackVersion:       "builtin-2026.08",
		EvaluatedAt:           time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.cache.Set(s.ctx, "fingerprint:builtin-2026.08", decision))

	got, err := s.cache.Get(s.ctx, "fingerprint:builtin-2026.08")
	s.Require().NoError(err)
	s.Equal(decision, got)
}

func (s *RedisCacheSuite) TestMiss() {
	_, err := s.cache.Get(s.ctx, "no-such-fingerprint")
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *RedisCacheSuite) TestTTLExpiry() {
	shortLived := store.NewRedisCache(s.redis.Client, 50*time.Millisecond)
	decision := &classifier.ClassificationDecision{
		AssessmentID:    id.NewAssessmentID(),
		SystemID:        "chatbot",
		Tier:            classifier.TierLowRisk,
		Confidence:      1.0,
		FiredRule:       classifier.RuleLowRisk,
		RulepackVersion: "builtin-2026.08",
		EvaluatedAt:     time.Now().UTC(),
	}
	s.Require().NoError(shortLived.Set(s.ctx, "ephemeral", decision))

	time.Sleep(100 * time.Millisecond)

	_, err := shortLived.Get(s.ctx, "ephemeral")
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *RedisCacheSuite) TestKeysAreIndependent() {
	a := &classifier.ClassificationDecision{
		AssessmentID:    id.NewAssessmentID(),
		SystemID:        "sys-a",
		Tier:            classifier.TierLowRisk,
		Confidence:      1.0,
		FiredRule:       classifier.RuleLowRisk,
		RulepackVersion: "v1",
		EvaluatedAt:     time.Now().UTC(),
	}
	b := &classifier.ClassificationDecision{
		AssessmentID:    id.NewAssessmentID(),
		SystemID:        "sys-a",
		Tier:            classifier.TierHighRisk,
		TriggeredBy:     []id.QuestionID{"H1"},
		FiredRule:       classifier.RuleHighRisk,
		Confidence:      0.85,
		RulepackVersion: "v2",
		EvaluatedAt:     time.Now().UTC(),
	}
	s.Require().NoError(s.cache.Set(s.ctx, "fp:v1", a))
	s.Require().NoError(s.cache.Set(s.ctx, "fp:v2", b))

	gotA, err := s.cache.Get(s.ctx, "fp:v1")
	s.Require().NoError(err)
	s.Equal(a.AssessmentID, gotA.AssessmentID)

	gotB, err := s.cache.Get(s.ctx, "fp:v2")
	s.Require().NoError(err)
	s.Equal(b.AssessmentID, gotB.AssessmentID)
}
