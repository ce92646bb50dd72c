// Command riskctl evaluates assessment response sets offline, without the
// HTTP service: useful for compliance analysts dry-running a questionnaire
// and for validating rulepack documents before rollout.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"riskengine/internal/assessment"
	"riskengine/internal/classifier"
	"riskengine/internal/jwttoken"
	"riskengine/internal/rulepack"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// Exit codes: 1 usage/load failures, 2 manual-review outcome, 3 malformed input.
const (
	exitManualReview   = 2
	exitMalformedInput = 3
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func main() {
	root := &cobra.Command{
		Use:           "riskctl",
		Short:         "Evaluate AI assessment response sets against a rulepack",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEvaluateCmd(), newPackCmd(), newTokenCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "riskctl:", err)
		code := 1
		var ee *exitErr
		if ok := asExitErr(err, &ee); ok {
			code = ee.code
		}
		os.Exit(code)
	}
}

func asExitErr(err error, target **exitErr) bool {
	for err != nil {
		if ee, ok := err.(*exitErr); ok {
			*target = ee
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func newEvaluateCmd() *cobra.Command {
	var packPath string
	cmd := &cobra.Command{
		Use:   "evaluate <responses.json>",
		Short: "Classify one response set and print the decision as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pack, err := loadPack(packPath)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var rs assessment.ResponseSet
			if err := json.Unmarshal(data, &rs); err != nil {
				return fmt.Errorf("parse response set: %w", err)
			}

			if err := classifier.CheckShape(pack, &rs); err != nil {
				return &exitErr{code: exitMalformedInput, msg: err.Error()}
			}

			var verdict classifier.Verdict
			if outcome := classifier.Validate(pack, &rs); outcome.OK {
				verdict = classifier.Evaluate(pack, &rs)
			} else {
				verdict = classifier.Verdict{
					Tier:     classifier.TierManualReview,
					Reason:   outcome.Reason,
					Triggers: outcome.OffendingQuestions,
				}
			}
			decision := classifier.BuildDecision(pack, &rs, verdict, time.Now().UTC())

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(decision); err != nil {
				return err
			}
			if decision.IsManualReview() {
				return &exitErr{code: exitManualReview, msg: "manual review required: " + string(decision.Reason)}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&packPath, "pack", "", "rulepack document (default: built-in pack)")
	return cmd
}

func newPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Rulepack utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate <pack.json>",
		Short: "Validate a rulepack document against the schema and invariants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pack, err := rulepack.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: version %s, %d prohibited, %d high-risk questions\n",
				pack.Version, len(pack.Prohibited), len(pack.HighRisk))
			return nil
		},
	})
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		signingKey string
		user       string
		role       string
		ttl        time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token for the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if signingKey == "" || user == "" {
				return fmt.Errorf("--key and --user are required")
			}
			svc := jwttoken.NewJWTService(signingKey, "riskengine")
			token, err := svc.GenerateAccessToken(user, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&signingKey, "key", "", "JWT signing key")
	cmd.Flags().StringVar(&user, "user", "", "user id claim")
	cmd.Flags().StringVar(&role, "role", "assessor", "role claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

func loadPack(path string) (*rulepack.Pack, error) {
	if path == "" {
		return rulepack.Default(), nil
	}
	return rulepack.Load(path)
}
