package llm

import (
	"context"
	"fmt"
)

// QueryTranslator defines the interface for the external translation
// collaborator. Implementations submit the raw MQL text and return the
// translated PromQL; any failure is reported as a *TranslationError.
type QueryTranslator interface {
	TranslateQuery(ctx context.Context, mqlQuery string) (string, error)
}

// TokenEstimator is an optional capability of a QueryTranslator that can
// estimate how many tokens the full translation prompt for a query would
// consume. Callers discover it with a type assertion.
type TokenEstimator interface {
	EstimatePromptTokens(mqlQuery string) int
}

// TranslationError reports a failure signaled by the translation
// collaborator. It is never produced by validation; the two stay distinct
// all the way to the caller.
type TranslationError struct {
	Reason string
	Err    error
}

func (e *TranslationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}
