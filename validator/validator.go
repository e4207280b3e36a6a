// Package validator implements the rule-based syntax checks that decide
// whether a raw MQL query is well-formed enough to submit for translation.
// It performs no parsing; every check is a lexical inspection of the input.
package validator

import "strings"

// Result is the outcome of validating a single query. A Result is built
// fresh on every call and is never mutated after it is returned.
type Result struct {
	OK       bool
	Errors   []string
	Warnings []string
}

// Validate runs the fixed sequence of syntactic checks against query.
// It is a pure function: no state survives between calls, so concurrent
// invocations are safe.
//
// Structural failures (unbalanced parentheses, missing leading 'fetch')
// stop validation immediately; quote imbalance is recorded and validation
// continues. Quote counting is a plain character count and does not
// understand escaping or quotes nested inside the other quote kind.
func Validate(query string) Result {
	var errs, warnings []string

	// 1. Basic empty check.
	if strings.TrimSpace(query) == "" {
		return Result{Errors: []string{"Query cannot be empty"}}
	}

	// 2. Balanced quotes, counted independently per quote kind.
	if strings.Count(query, "'")%2 != 0 {
		errs = append(errs, "Unmatched single quotes in query")
	}
	if strings.Count(query, `"`)%2 != 0 {
		errs = append(errs, "Unmatched double quotes in query")
	}

	// 3. Balanced parentheses, tracked as a running depth.
	depth := 0
	for _, ch := range query {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth < 0 {
			errs = append(errs, "Unmatched closing parenthesis")
			return Result{Errors: errs, Warnings: warnings}
		}
	}
	if depth > 0 {
		errs = append(errs, "Unmatched opening parenthesis")
		return Result{Errors: errs, Warnings: warnings}
	}

	// 4. Basic MQL format check. strings.Split never returns an empty
	// slice, so this branch should be unreachable; the guard is kept so a
	// structural failure would report instead of falling through to the
	// fetch check.
	stages := strings.Split(query, "|")
	if len(stages) == 0 {
		errs = append(errs, "Invalid query format (no '|' found)")
		return Result{Errors: errs, Warnings: warnings}
	}

	// 5. The first pipe stage must start with 'fetch'.
	if !strings.HasPrefix(strings.TrimSpace(stages[0]), "fetch") {
		errs = append(errs, "Query must start with 'fetch'")
		return Result{Errors: errs, Warnings: warnings}
	}

	// 6. Common pitfall: a resource specification without any fetch. Runs
	// only after the fetch check has passed.
	if strings.Contains(query, "::") && !strings.Contains(query, "fetch") {
		warnings = append(warnings, "Resource specification without fetch may cause issues")
	}

	return Result{OK: len(errs) == 0, Errors: errs, Warnings: warnings}
}
