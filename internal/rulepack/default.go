package rulepack

import id "riskengine/pkg/domain"

// Default returns the built-in rulepack. It encodes the current questionnaire:
// seven prohibited-use questions and eight high-risk questions, with the
// follow-up predicates agreed with the compliance team.
//
// Deployments normally load a versioned pack document instead (see Load); the
// built-in pack keeps the CLI and tests self-contained.
func Default() *Pack {
	p := &Pack{
		Version: "builtin-2026.08",
		Prohibited: []Question{
			{
				ID:                  "P1",
				Text:                "Does the system deploy subliminal or purposefully manipulative techniques that materially distort a person's behaviour in a way likely to cause harm?",
				EscalationSensitive: true,
			},
			{
				ID:                  "P2",
				Text:                "Does the system exploit vulnerabilities of a specific group of persons due to their age, disability, or social or economic situation?",
				EscalationSensitive: true,
			},
			{
				ID:                  "P3",
				Text:                "Is the system used for social scoring of natural persons by or on behalf of public authorities?",
				EscalationSensitive: true,
			},
			{
				ID:   "P4",
				Text: "Does the system perform real-time remote biometric identification in publicly accessible spaces?",
				FollowUps: []FollowUp{
					{ID: "P4.1", Text: "Is the deployment covered by an authorised law-enforcement exemption?"},
					{ID: "P4.2", Text: "Is the identification capability active in production use?"},
				},
				Predicate: &Predicate{
					ClearingFollowUp:   "P4.1",
					AffirmingFollowUps: []id.QuestionID{"P4.2"},
				},
			},
			{
				ID:   "P5",
				Text: "Does the system infer emotions of natural persons in workplace or educational settings?",
				FollowUps: []FollowUp{
					{ID: "P5.1", Text: "Is the use limited to a medical or safety purpose?"},
					{ID: "P5.2", Text: "Are the inferred emotions used in decisions about the persons observed?"},
				},
				Predicate: &Predicate{
					ClearingFollowUp:   "P5.1",
					AffirmingFollowUps: []id.QuestionID{"P5.2"},
				},
			},
			{
				ID:   "P6",
				Text: "Does the system create or expand facial recognition databases through untargeted scraping of facial images?",
				FollowUps: []FollowUp{
					{ID: "P6.1", Text: "Is scraped imagery retained and matched against in production?"},
				},
				Predicate: &Predicate{
					AffirmingFollowUps: []id.QuestionID{"P6.1"},
				},
			},
			{
				ID:   "P7",
				Text: "Does the system assess or predict the risk of a natural person committing a criminal offence based solely on profiling?",
			},
		},
		HighRisk: []Question{
			{
				ID:   "H1",
				Text: "Is the system a biometric categorisation or identification system outside the prohibited uses?",
			},
			{
				ID:   "H2",
				Text: "Is the system a safety component in the management or operation of critical infrastructure?",
			},
			{
				ID:   "H3",
				Text: "Is the system used to determine access to, or evaluate outcomes in, education or vocational training?",
			},
			{
				ID:   "H4",
				Text: "Is the system used for recruitment, screening, or evaluation of candidates or employees?",
				FollowUps: []FollowUp{
					{ID: "H4.1", Text: "Are its outputs applied without individual human review?"},
				},
			},
			{
				ID:   "H5",
				Text: "Does the system evaluate creditworthiness or eligibility for essential private or public services?",
			},
			{
				ID:   "H6",
				Text: "Is the system used by or on behalf of law enforcement in a supporting capacity?",
			},
			{
				ID:   "H7",
				Text: "Is the system used in migration, asylum, or border control management?",
			},
			{
				ID:   "H8",
				Text: "Is the system used in the administration of justice or democratic processes?",
			},
		},
		Penalties: Penalties{
			Maybe:    DefaultMaybePenalty,
			FollowUp: DefaultFollowUpPenalty,
		},
		VerificationThreshold: DefaultVerificationThreshold,
	}
	if err := p.finalize(); err != nil {
		// The built-in pack is covered by tests; a finalize failure here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return p
}
