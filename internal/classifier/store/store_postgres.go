package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"riskengine/internal/classifier"
	id "riskengine/pkg/domain"
)

// PostgresStore persists decisions in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed decision store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const decisionsSchema = `
CREATE TABLE IF NOT EXISTS classification_decisions (
    assessment_id          UUID PRIMARY KEY,
    system_id              TEXT NOT NULL,
    tier                   TEXT NOT NULL,
    reason                 TEXT NOT NULL DEFAULT '',
    confidence             DOUBLE PRECISION NOT NULL,
    triggered_by           TEXT[] NOT NULL DEFAULT '{}',
    fired_rule             INT NOT NULL,
    recommend_verification BOOLEAN NOT NULL,
    rulepack_version       TEXT NOT NULL,
    evaluated_at           TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_classification_decisions_system
    ON classification_decisions (system_id, evaluated_at DESC);
`

// EnsureSchema creates the decisions table if it does not exist. Called at
// startup; real deployments may manage the schema externally instead.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, decisionsSchema); err != nil {
		return fmt.Errorf("ensure decisions schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, decision *classifier.ClassificationDecision) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO classification_decisions (
			assessment_id, system_id, tier, reason, confidence, triggered_by,
			fired_rule, recommend_verification, rulepack_version, evaluated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		decision.AssessmentID.String(),
		decision.SystemID.String(),
		string(decision.Tier),
		string(decision.Reason),
		decision.Confidence,
		pq.Array(id.QuestionIDStrings(decision.TriggeredBy)),
		decision.FiredRule,
		decision.RecommendVerification,
		decision.RulepackVersion,
		decision.EvaluatedAt,
	)
	if err != nil {
		return fmt.Errorf("save decision: %w", err)
	}
	return nil
}

func (s *PostgresStore) Latest(ctx context.Context, systemID id.SystemID) (*classifier.ClassificationDecision, error) {
	row := s.db.QueryRowContext(ctx, selectDecisions+`
		WHERE system_id = $1
		ORDER BY evaluated_at DESC
		LIMIT 1`, systemID.String())
	decision, err := scanDecision(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("latest decision: %w", err)
	}
	return decision, nil
}

func (s *PostgresStore) History(ctx context.Context, systemID id.SystemID) ([]*classifier.ClassificationDecision, error) {
	rows, err := s.db.QueryContext(ctx, selectDecisions+`
		WHERE system_id = $1
		ORDER BY evaluated_at DESC`, systemID.String())
	if err != nil {
		return nil, fmt.Errorf("decision history: %w", err)
	}
	defer rows.Close()

	var out []*classifier.ClassificationDecision
	for rows.Next() {
		decision, err := scanDecision(rows)
		if err != nil {
			return nil, fmt.Errorf("decision history: %w", err)
		}
		out = append(out, decision)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("decision history: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

const selectDecisions = `
	SELECT assessment_id, system_id, tier, reason, confidence, triggered_by,
	       fired_rule, recommend_verification, rulepack_version, evaluated_at
	FROM classification_decisions`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDecision(row rowScanner) (*classifier.ClassificationDecision, error) {
	var (
		assessmentID string
		systemID     string
		tier         string
		reason       string
		triggeredBy  pq.StringArray
		evaluatedAt  time.Time
	)
	decision := &classifier.ClassificationDecision{}
	if err := row.Scan(
		&assessmentID,
		&systemID,
		&tier,
		&reason,
		&decision.Confidence,
		&triggeredBy,
		&decision.FiredRule,
		&decision.RecommendVerification,
		&decision.RulepackVersion,
		&evaluatedAt,
	); err != nil {
		return nil, err
	}
	u, err := uuid.Parse(assessmentID)
	if err != nil {
		return nil, fmt.Errorf("parse assessment id: %w", err)
	}
	decision.AssessmentID = id.AssessmentID(u)
	decision.SystemID = id.SystemID(systemID)
	decision.Tier = classifier.Tier(tier)
	decision.Reason = classifier.ReasonCode(reason)
	decision.EvaluatedAt = evaluatedAt.UTC()
	for _, q := range triggeredBy {
		decision.TriggeredBy = append(decision.TriggeredBy, id.QuestionID(q))
	}
	return decision, nil
}
