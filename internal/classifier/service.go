package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"riskengine/internal/assessment"
	"riskengine/internal/audit"
	"riskengine/internal/classifier/metrics"
	"riskengine/internal/rulepack"
	id "riskengine/pkg/domain"
	dErrors "riskengine/pkg/domain-errors"
	"riskengine/pkg/requestcontext"
)

// batchConcurrency bounds parallel evaluations in a batch request. Evaluations
// are independent pure computations, so the limit only protects the stores.
const batchConcurrency = 8

// DecisionStore persists decisions; see the store package for implementations.
type DecisionStore interface {
	Save(ctx context.Context, decision *ClassificationDecision) error
	Latest(ctx context.Context, systemID id.SystemID) (*ClassificationDecision, error)
	History(ctx context.Context, systemID id.SystemID) ([]*ClassificationDecision, error)
}

// DecisionCache memoizes decided outcomes keyed by response-set fingerprint
// and rulepack version.
type DecisionCache interface {
	Get(ctx context.Context, key string) (*ClassificationDecision, error)
	Set(ctx context.Context, key string, decision *ClassificationDecision) error
}

// ErrStoreNotFound must be returned by stores and caches for missing entries;
// it is re-declared here so the service does not depend on a concrete store
// package.
var ErrStoreNotFound = errors.New("decision not found")

// Service sequences one evaluation request: shape check, validation, rule
// cascade, confidence and audit construction, then persistence and audit
// emission. The request moves through
//
//	Received -> Validating -> {Evaluating | ManualReview} -> Decided
//
// where ManualReview and Decided are terminal for the call. Nothing is
// retried automatically; manual-review outcomes are surfaced to the caller,
// who decides whether to resubmit a corrected response set.
type Service struct {
	pack      *rulepack.Pack
	decisions DecisionStore
	cache     DecisionCache
	publisher *audit.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// NewService constructs the orchestrator. Pack and store are required;
// cache, audit publisher, and metrics are optional.
func NewService(pack *rulepack.Pack, decisions DecisionStore, logger *slog.Logger, m *metrics.Metrics) (*Service, error) {
	if pack == nil {
		return nil, fmt.Errorf("rulepack is required")
	}
	if decisions == nil {
		return nil, fmt.Errorf("decision store is required")
	}
	return &Service{
		pack:      pack,
		decisions: decisions,
		logger:    logger,
		metrics:   m,
		tracer:    otel.Tracer("riskengine/classifier"),
	}, nil
}

// WithCache attaches a decision cache.
func (s *Service) WithCache(cache DecisionCache) *Service {
	s.cache = cache
	return s
}

// WithAudit attaches an audit publisher.
func (s *Service) WithAudit(publisher *audit.Publisher) *Service {
	s.publisher = publisher
	return s
}

// Evaluate classifies one response set and returns the decision.
//
// Errors: CodeMalformedInput for caller-contract violations (unknown or
// duplicate question IDs, out-of-enum answers); CodeInternal for persistence
// failures. Validation failures and uncertain-prohibited escalations are not
// errors: they return a manual-review decision carrying the reason code and
// the partial evidence collected so far.
func (s *Service) Evaluate(ctx context.Context, rs *assessment.ResponseSet) (*ClassificationDecision, error) {
	ctx, span := s.tracer.Start(ctx, "classifier.Evaluate")
	defer span.End()
	start := time.Now()

	if err := CheckShape(s.pack, rs); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("system_id", rs.SystemID.String()))

	cacheKey := rs.Fingerprint() + ":" + s.pack.Version
	if cached := s.cachedDecision(ctx, cacheKey); cached != nil {
		span.SetAttributes(attribute.String("tier", string(cached.Tier)), attribute.Bool("cache_hit", true))
		return cached, nil
	}

	var verdict Verdict
	if outcome := Validate(s.pack, rs); outcome.OK {
		verdict = Evaluate(s.pack, rs)
	} else {
		verdict = Verdict{
			Tier:      TierManualReview,
			Reason:    outcome.Reason,
			Triggers:  outcome.OffendingQuestions,
			FiredRule: RuleNone,
		}
	}

	decision := BuildDecision(s.pack, rs, verdict, requestcontext.Now(ctx).UTC())
	span.SetAttributes(attribute.String("tier", string(decision.Tier)))

	if err := s.finalize(ctx, rs, &decision, cacheKey); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	s.metrics.ObserveEvaluateLatency(duration)
	s.observeOutcome(&decision)
	if s.logger != nil {
		s.logger.InfoContext(ctx, "response set classified",
			"request_id", requestcontext.RequestID(ctx),
			"assessment_id", decision.AssessmentID.String(),
			"system_id", decision.SystemID.String(),
			"tier", decision.Tier,
			"reason", decision.Reason,
			"confidence", decision.Confidence,
			"fired_rule", decision.FiredRule,
			"duration_ms", duration.Milliseconds(),
		)
	}
	return &decision, nil
}

// BatchResult is one entry of a batch evaluation; exactly one of Decision and
// Err is set.
type BatchResult struct {
	Decision *ClassificationDecision
	Err      error
}

// EvaluateBatch classifies independent response sets concurrently. Results
// are positionally aligned with the input; one malformed entry does not fail
// the others.
func (s *Service) EvaluateBatch(ctx context.Context, sets []*assessment.ResponseSet) []BatchResult {
	results := make([]BatchResult, len(sets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, rs := range sets {
		g.Go(func() error {
			decision, err := s.Evaluate(ctx, rs)
			results[i] = BatchResult{Decision: decision, Err: err}
			return nil
		})
	}
	_ = g.Wait() // goroutines report per-item errors through results
	return results
}

// Latest returns the most recent decision for a system.
func (s *Service) Latest(ctx context.Context, systemID id.SystemID) (*ClassificationDecision, error) {
	decision, err := s.decisions.Latest(ctx, systemID)
	if err != nil {
		return nil, mapStoreErr(err, systemID)
	}
	return decision, nil
}

// History returns all decisions for a system, newest first.
func (s *Service) History(ctx context.Context, systemID id.SystemID) ([]*ClassificationDecision, error) {
	history, err := s.decisions.History(ctx, systemID)
	if err != nil {
		return nil, mapStoreErr(err, systemID)
	}
	return history, nil
}

func mapStoreErr(err error, systemID id.SystemID) error {
	if errors.Is(err, ErrStoreNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "no decision recorded for system %q", systemID)
	}
	return dErrors.Wrap(dErrors.CodeInternal, "decision store", err)
}

func (s *Service) cachedDecision(ctx context.Context, key string) *ClassificationDecision {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrStoreNotFound) && s.logger != nil {
			s.logger.WarnContext(ctx, "decision cache lookup failed", "error", err)
		}
		s.metrics.IncrementCacheLookup("miss")
		return nil
	}
	s.metrics.IncrementCacheLookup("hit")
	return cached
}

// finalize persists the decision, primes the cache, and emits the audit
// event. Persistence failures fail the call; cache priming is best effort.
func (s *Service) finalize(ctx context.Context, rs *assessment.ResponseSet, decision *ClassificationDecision, cacheKey string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.decisions.Save(gctx, decision); err != nil {
			return dErrors.Wrap(dErrors.CodeInternal, "persist decision", err)
		}
		return nil
	})
	if s.cache != nil && !decision.IsManualReview() {
		g.Go(func() error {
			if err := s.cache.Set(gctx, cacheKey, decision); err != nil && s.logger != nil {
				s.logger.WarnContext(gctx, "decision cache set failed", "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if s.publisher != nil {
		s.publisher.Emit(ctx, audit.Event{
			Timestamp:       decision.EvaluatedAt,
			AssessmentID:    decision.AssessmentID.String(),
			SystemID:        decision.SystemID.String(),
			Actor:           requestcontext.UserID(ctx),
			Tier:            string(decision.Tier),
			Reason:          string(decision.Reason),
			TriggeredBy:     id.QuestionIDStrings(decision.TriggeredBy),
			Confidence:      decision.Confidence,
			FiredRule:       decision.FiredRule,
			RulepackVersion: decision.RulepackVersion,
		})
	}
	return nil
}

func (s *Service) observeOutcome(decision *ClassificationDecision) {
	s.metrics.IncrementDecision(string(decision.Tier), strconv.Itoa(decision.FiredRule))
	if decision.IsManualReview() {
		s.metrics.IncrementManualReview(string(decision.Reason))
	}
	if decision.RecommendVerification {
		s.metrics.IncrementVerificationFlagged()
	}
}
