// Package converter sequences validation and LLM translation for a single
// MQL query. Validation failures reject the query before any LLM call is
// made.
package converter

import (
	"context"

	"github.com/prashantgupta17/mqlpromql/llm"
	"github.com/prashantgupta17/mqlpromql/validator"
)

// Status tags the variant of an Outcome.
type Status string

const (
	StatusSuccess           Status = "success"
	StatusValidationFailed  Status = "validation_failed"
	StatusTranslationFailed Status = "translation_failed"
)

// Outcome is the result of one conversion attempt.
//
//   - StatusSuccess: PromQL holds the translation, Errors is empty and
//     Warnings carries any validation warnings.
//   - StatusValidationFailed: Errors and Warnings come from validation,
//     PromQL is empty and the translator was never invoked.
//   - StatusTranslationFailed: FailureMessage holds the translator's
//     reason, PromQL is empty and Warnings carries validation warnings.
type Outcome struct {
	Status         Status
	PromQL         string
	Errors         []string
	Warnings       []string
	FailureMessage string
}

// Converter runs MQL queries through validation and, when they pass,
// through the translation backend. It is stateless and safe for
// concurrent use.
type Converter struct {
	translator llm.QueryTranslator
	validate   func(string) validator.Result
}

// New creates a Converter backed by the given translator.
func New(translator llm.QueryTranslator) *Converter {
	return &Converter{
		translator: translator,
		validate:   validator.Validate,
	}
}

// Convert validates mqlQuery and, if it is well formed, asks the
// translator for the PromQL equivalent. The query is forwarded to the
// translator exactly as received, with no normalization. ctx bounds the
// translation call only; validation is local and immediate.
func (c *Converter) Convert(ctx context.Context, mqlQuery string) Outcome {
	result := c.validate(mqlQuery)
	if !result.OK {
		return Outcome{
			Status:   StatusValidationFailed,
			Errors:   result.Errors,
			Warnings: result.Warnings,
		}
	}

	promql, err := c.translator.TranslateQuery(ctx, mqlQuery)
	if err != nil {
		return Outcome{
			Status:         StatusTranslationFailed,
			Warnings:       result.Warnings,
			FailureMessage: err.Error(),
		}
	}

	return Outcome{
		Status:   StatusSuccess,
		PromQL:   promql,
		Warnings: result.Warnings,
	}
}
