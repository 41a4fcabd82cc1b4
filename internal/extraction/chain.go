package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/models"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/utils"
)

// Strategy is a single extraction approach over a binary document.
//
// Extract returns the raw text it recovered and the page count it observed.
// A strategy reports failure through its error return; it must not panic, but
// the chain still recovers panics from underlying parsers as strategy failure.
type Strategy interface {
	// Name identifies the strategy in extraction results. See the
	// ExtractionMethod* constants.
	Name() string

	// Extract attempts to recover text from the document bytes.
	Extract(ctx context.Context, content []byte, fileName string) (text string, pageCount int, err error)
}

// Chain runs an ordered list of extraction strategies over a document,
// consulting the quality validator after each attempt and returning the first
// result that clears the acceptance gate.
type Chain struct {
	strategies  []Strategy
	placeholder Strategy

	// strategyTimeout bounds a single strategy run. A timed-out strategy is a
	// failed strategy; the chain moves on.
	strategyTimeout time.Duration
}

// NewChain creates a chain over the given real extraction strategies. The
// placeholder strategy is held separately: it is only reached when every real
// strategy has failed, and its output is never reported as success.
func NewChain(placeholder Strategy, strategies ...Strategy) *Chain {
	return &Chain{
		strategies:      strategies,
		placeholder:     placeholder,
		strategyTimeout: constants.StrategyTimeout,
	}
}

// WithStrategyTimeout overrides the per-strategy wall-clock bound.
func (c *Chain) WithStrategyTimeout(d time.Duration) *Chain {
	if d > 0 {
		c.strategyTimeout = d
	}
	return c
}

// NewDefaultChain creates the production strategy order: structured per-page
// extraction, the relaxed whole-document walk, the raw byte scan, then the
// contextual placeholder.
func NewDefaultChain() *Chain {
	return NewChain(
		NewPlaceholderStrategy(),
		NewStructuredStrategy(),
		NewRelaxedStrategy(),
		NewRawScanStrategy(),
	)
}

// Extract runs the chain over a document. Failure of one strategy is never
// fatal: the chain catches it and continues with the next. If no strategy
// yields valid content, the returned result carries the placeholder text,
// Success=false and a populated Error, and callers must not treat it as
// analyzable content.
func (c *Chain) Extract(ctx context.Context, content []byte, fileName string) models.ExtractionResult {
	var lastErr error

	for _, strategy := range c.strategies {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}

		sctx, cancel := context.WithTimeout(ctx, c.strategyTimeout)
		text, pageCount, err := runStrategy(sctx, strategy, content, fileName)
		cancel()
		if err != nil {
			// Strategy failure is recovered locally: try the next one.
			log.Debug().
				Str("strategy", strategy.Name()).
				Str("file_name", fileName).
				Err(err).
				Msg("Extraction strategy failed, continuing chain")
			lastErr = fmt.Errorf("%w: %s: %v", utils.ErrStrategyFailure, strategy.Name(), err)
			continue
		}

		verdict := Validate(text)
		if verdict.HasValidContent {
			// Short-circuit on the first strategy that clears the gate.
			return models.ExtractionResult{
				Text:            text,
				PageCount:       pageCount,
				Method:          strategy.Name(),
				Success:         true,
				Quality:         verdict.Quality,
				WordCount:       verdict.WordCount,
				HasValidContent: true,
			}
		}

		lastErr = fmt.Errorf("%w: %s: content failed quality gate (quality=%s, words=%d)",
			utils.ErrStrategyFailure, strategy.Name(), verdict.Quality, verdict.WordCount)
	}

	return c.exhausted(ctx, content, fileName, lastErr)
}

// exhausted builds the terminal result after every real strategy has failed.
// The placeholder synthesizes descriptive text from the file name, but the
// result is marked failed: fabricated text must never masquerade as extracted
// content for redaction or analysis.
func (c *Chain) exhausted(ctx context.Context, content []byte, fileName string, lastErr error) models.ExtractionResult {
	errMsg := utils.ErrExtractionExhausted.Error()
	if lastErr != nil {
		errMsg = fmt.Sprintf("%s: last failure: %v", errMsg, lastErr)
	}

	text, pageCount, err := runStrategy(ctx, c.placeholder, content, fileName)
	if err != nil {
		text = ""
		pageCount = 0
	}

	verdict := Validate(text)

	log.Warn().
		Str("file_name", fileName).
		Int("size", len(content)).
		Msg("All extraction strategies exhausted, returning placeholder result")

	return models.ExtractionResult{
		Text:            text,
		PageCount:       pageCount,
		Method:          c.placeholder.Name(),
		Success:         false,
		Quality:         constants.QualityFailed,
		WordCount:       verdict.WordCount,
		HasValidContent: false,
		Error:           errMsg,
	}
}

// runStrategy executes one strategy, converting panics from underlying parsers
// into strategy errors. Malformed PDF structures routinely panic inside parser
// internals; the chain treats that the same as a returned error.
func runStrategy(ctx context.Context, strategy Strategy, content []byte, fileName string) (text string, pageCount int, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			text = ""
			pageCount = 0
			err = fmt.Errorf("strategy panic: %v", recovered)
		}
	}()

	return strategy.Extract(ctx, content, fileName)
}

// pageSeparator joins page texts so page boundaries survive into the transcript.
const pageSeparator = "\n\n"

// joinPages concatenates page texts with page-break separators, skipping
// empty pages.
func joinPages(pages []string) string {
	nonEmpty := make([]string, 0, len(pages))
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(p))
		}
	}
	return strings.Join(nonEmpty, pageSeparator)
}
