package provision

import (
	"context"
	"fmt"

	"github.com/mastrkit/refschema/internal/manifest"
)

// Store is a connected relational store capable of executing DDL.
// The internal/db clients implement it, one per backend.
type Store interface {
	// Dialect reports how DDL must be rendered for this store.
	Dialect() Dialect

	// ExecStatement executes a single DDL statement and reports its
	// success or failure. Each statement commits independently; there
	// is no surrounding transaction.
	ExecStatement(ctx context.Context, sql string) error
}

// StatementStatus is the per-statement outcome of an apply run.
type StatementStatus string

const (
	StatusApplied StatementStatus = "applied"
	StatusFailed  StatementStatus = "failed"
	StatusSkipped StatementStatus = "skipped"
)

// StatementResult records the outcome of one planned statement.
type StatementResult struct {
	Statement Statement
	Status    StatementStatus
	Err       error // set only when Status is StatusFailed
}

// Result is the full per-statement report of an apply run.
type Result struct {
	Statements []StatementResult
	Applied    int
}

// Complete reports whether every planned statement was applied.
func (r *Result) Complete() bool {
	return r.Applied == len(r.Statements)
}

// StatementError reports the exact point at which an apply run halted.
// Statements before Index remain in effect; re-running the apply after
// fixing the cause reproduces the same end state, since every statement
// is idempotent.
type StatementError struct {
	Index  int // zero-based position in the plan
	Total  int
	Kind   StatementKind
	Object string
	SQL    string
	Err    error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d/%d (%s %s) failed: %v", e.Index+1, e.Total, e.Kind, e.Object, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

// Apply plans the manifest for the store's dialect and executes the
// statements sequentially. It stops at the first failure, leaving prior
// statements in effect, and returns a *StatementError identifying the
// failing statement. A manifest that fails validation is rejected before
// any statement reaches the store.
//
// Cancellation is cooperative: the context is checked between
// statements, never mid-statement. The store connection must not be
// shared with a concurrent apply; callers run provisioning as a
// singleton operation.
//
// The returned Result is non-nil whenever planning succeeded, including
// on failure and cancellation, so partial runs stay observable.
func Apply(ctx context.Context, store Store, m *manifest.Manifest) (*Result, error) {
	plan, err := Plan(m, store.Dialect())
	if err != nil {
		return nil, err
	}

	result := &Result{Statements: make([]StatementResult, 0, len(plan))}
	for i, stmt := range plan {
		if err := ctx.Err(); err != nil {
			skipRemaining(result, plan[i:])
			return result, fmt.Errorf("apply cancelled before statement %d/%d: %w", i+1, len(plan), err)
		}

		if err := store.ExecStatement(ctx, stmt.SQL); err != nil {
			stmtErr := &StatementError{
				Index:  i,
				Total:  len(plan),
				Kind:   stmt.Kind,
				Object: stmt.Object,
				SQL:    stmt.SQL,
				Err:    err,
			}
			result.Statements = append(result.Statements, StatementResult{
				Statement: stmt,
				Status:    StatusFailed,
				Err:       err,
			})
			skipRemaining(result, plan[i+1:])
			return result, stmtErr
		}

		result.Statements = append(result.Statements, StatementResult{Statement: stmt, Status: StatusApplied})
		result.Applied++
	}
	return result, nil
}

func skipRemaining(result *Result, remaining []Statement) {
	for _, stmt := range remaining {
		result.Statements = append(result.Statements, StatementResult{Statement: stmt, Status: StatusSkipped})
	}
}
