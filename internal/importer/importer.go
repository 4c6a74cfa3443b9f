// Package importer drives one full statement import run: detect the format,
// validate and bound the input, stream rows through the matching parser into
// the repository, and report progress and the final outcome as events.
package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"kopilka/bank-import/internal/detect"
	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/models"
	"kopilka/bank-import/internal/parser"
	"kopilka/bank-import/internal/parsererror"
	"kopilka/bank-import/internal/pdftext"
	"kopilka/bank-import/internal/source"
	"kopilka/bank-import/internal/store"
)

// Defaults for Options fields left zero.
const (
	DefaultMaxRows       = 2000
	DefaultPDFTimeout    = 30 * time.Second
	DefaultProgressEvery = 10
	DefaultThrottleEvery = 20
	DefaultThrottleDelay = 5 * time.Millisecond
)

// Options tunes one Importer. The zero value picks the defaults above.
type Options struct {
	// MaxRows caps how many data rows a statement may hold. Statements over
	// the cap fail before any row is persisted.
	MaxRows int

	// PDFTimeout bounds the whole PDF extract-and-parse sequence.
	PDFTimeout time.Duration

	// ProgressEvery emits a Progress event each N processed rows.
	ProgressEvery int

	// ThrottleEvery and ThrottleDelay pause the row stream each N rows so
	// repository writes do not starve readers.
	ThrottleEvery int
	ThrottleDelay time.Duration
}

func (o *Options) fill() {
	if o.MaxRows <= 0 {
		o.MaxRows = DefaultMaxRows
	}
	if o.PDFTimeout <= 0 {
		o.PDFTimeout = DefaultPDFTimeout
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = DefaultProgressEvery
	}
	if o.ThrottleEvery <= 0 {
		o.ThrottleEvery = DefaultThrottleEvery
	}
	if o.ThrottleDelay <= 0 {
		o.ThrottleDelay = DefaultThrottleDelay
	}
}

// FallbackStats aggregates the silent best-effort fallbacks the run's parser
// made, so callers can tell when dates were fabricated or amounts zeroed.
type FallbackStats struct {
	DateNow    int
	ZeroAmount int
}

// Importer runs statement imports against a repository. At most one import
// runs at a time; a second call while one is running fails immediately.
type Importer struct {
	repo      store.TransactionRepository
	detector  *detect.Detector
	extractor pdftext.Extractor
	logger    logging.Logger
	opts      Options

	running atomic.Bool

	fallbacksMu sync.Mutex
	fallbacks   FallbackStats
}

// New constructs an Importer.
func New(repo store.TransactionRepository, extractor pdftext.Extractor, logger logging.Logger, opts Options) *Importer {
	opts.fill()
	return &Importer{
		repo:      repo,
		detector:  detect.New(logger),
		extractor: extractor,
		logger:    logger,
		opts:      opts,
	}
}

// LastFallbacks reports the fallback counters of the most recently finished
// run. Only meaningful between runs; the single-flight guard makes that the
// common case.
func (im *Importer) LastFallbacks() FallbackStats {
	im.fallbacksMu.Lock()
	defer im.fallbacksMu.Unlock()
	return im.fallbacks
}

func (im *Importer) setFallbacks(fb FallbackStats) {
	im.fallbacksMu.Lock()
	defer im.fallbacksMu.Unlock()
	im.fallbacks = fb
}

// Import runs one import and returns its event stream. The channel carries
// any number of Progress events followed by exactly one terminal Success or
// Failure, then closes. A second concurrent call fails immediately without
// touching the repository.
func (im *Importer) Import(ctx context.Context, h source.Handle) <-chan models.ImportEvent {
	events := make(chan models.ImportEvent, 16)

	if !im.running.CompareAndSwap(false, true) {
		go func() {
			defer close(events)
			err := &parsererror.ImportInProgressError{}
			events <- models.Failure{Message: err.Error(), Cause: err}
		}()
		return events
	}

	go func() {
		defer im.running.Store(false)
		defer close(events)
		im.run(ctx, h, events)
	}()
	return events
}

// emit delivers an event without wedging the run goroutine. The buffered
// attempt keeps events flowing while channel space remains; once the buffer
// is full a cancelled context unblocks the send, so a caller that cancels
// and walks away cannot pin the single-flight flag. Returns false when the
// event was abandoned.
func emit(ctx context.Context, events chan<- models.ImportEvent, e models.ImportEvent) bool {
	select {
	case events <- e:
		return true
	default:
	}
	select {
	case events <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

func (im *Importer) run(ctx context.Context, h source.Handle, events chan<- models.ImportEvent) {
	logger := im.logger.WithField("run_id", uuid.NewString())
	im.setFallbacks(FallbackStats{})

	raw, err := source.ReadAll(h)
	if err != nil {
		logger.WithError(err).Error("Failed to read statement")
		emit(ctx, events, models.Failure{Message: "failed to read statement", Cause: err})
		return
	}
	if len(raw) == 0 {
		err := &parsererror.ValidationError{Source: h.Name(), Reason: "statement is empty"}
		emit(ctx, events, models.Failure{Message: err.Error(), Cause: err})
		return
	}

	if detect.IsPDF(raw) {
		im.runPDF(ctx, h.Name(), raw, logger, events)
		return
	}
	im.runCSV(ctx, raw, logger, events)
}

// runCSV streams a line-oriented statement. The lines are materialized once;
// the validate, bound and stream phases all walk the same snapshot.
func (im *Importer) runCSV(ctx context.Context, raw []byte, logger logging.Logger, events chan<- models.ImportEvent) {
	lines, err := source.ReadLines(source.BytesHandle{Data: raw}, 0)
	if err != nil {
		emit(ctx, events, models.Failure{Message: "failed to read statement lines", Cause: err})
		return
	}

	p := im.detector.DetectCSV(lines)
	logger = logger.WithField("parser", p.Name())

	skip := p.SkipHeaders(lines)
	body := lines[skip:]

	total := 0
	for _, line := range body {
		if !p.ShouldSkipLine(line) {
			total++
		}
	}
	if total > im.opts.MaxRows {
		err := &parsererror.RowLimitError{Count: total, Limit: im.opts.MaxRows}
		logger.WithField("rows", total).Warn("Statement exceeds row limit")
		emit(ctx, events, models.Failure{Message: err.Error(), Cause: err})
		return
	}
	logger.WithField("rows", total).Info("Starting import")

	imported, skipped := 0, 0
	totalAmount := decimal.Zero
	processed := 0

	for _, line := range body {
		if ctx.Err() != nil {
			emit(ctx, events, models.Failure{Message: "import cancelled", Cause: ctx.Err()})
			return
		}
		if p.ShouldSkipLine(line) {
			continue
		}
		processed++

		tx, err := p.ParseLine(line)
		if err != nil {
			var formatErr *parsererror.InvalidFormatError
			if errors.As(err, &formatErr) {
				logger.WithError(err).Error("Statement format unusable")
				emit(ctx, events, models.Failure{Message: formatErr.Error(), Cause: formatErr})
				return
			}
			logger.WithError(err).Debug("Row skipped")
			skipped++
		} else if _, exists := im.repo.GetTransactionByID(tx.ID); exists {
			skipped++
		} else if err := im.repo.AddTransaction(tx); err != nil {
			logger.WithError(err).Warn("Failed to persist row")
			skipped++
		} else {
			imported++
			if tx.IsExpense {
				totalAmount = totalAmount.Sub(tx.Amount)
			} else {
				totalAmount = totalAmount.Add(tx.Amount)
			}
		}

		if processed%im.opts.ProgressEvery == 0 {
			ok := emit(ctx, events, models.Progress{
				Current: processed,
				Total:   total,
				Message: fmt.Sprintf("processed %d of %d rows", processed, total),
			})
			if !ok {
				return
			}
		}
		if processed%im.opts.ThrottleEvery == 0 && im.opts.ThrottleDelay > 0 {
			time.Sleep(im.opts.ThrottleDelay)
		}
	}

	im.finish(ctx, p.Fallbacks(), imported, skipped, totalAmount, logger, events)
}

// runPDF extracts and parses a PDF statement inside the configured timeout.
// Records land in the repository without a dedup check; PDF parse IDs are
// minted per run, so re-importing the same PDF duplicates records.
func (im *Importer) runPDF(ctx context.Context, name string, raw []byte, logger logging.Logger, events chan<- models.ImportEvent) {
	// Events go out under the caller's context, not the timeout one, so the
	// timeout Failure itself can still be delivered.
	tctx, cancel := context.WithTimeout(ctx, im.opts.PDFTimeout)
	defer cancel()

	type parsed struct {
		p   parser.DocumentParser
		txs []models.Transaction
		err error
	}
	done := make(chan parsed, 1)
	go func() {
		text, err := im.extractor.ExtractText(raw)
		if err != nil {
			done <- parsed{err: err}
			return
		}
		p := im.detector.DetectPDF(name, text)
		txs, err := p.ParseText(text)
		done <- parsed{p: p, txs: txs, err: err}
	}()

	var result parsed
	select {
	case <-tctx.Done():
		err := &parsererror.ImportTimeoutError{Stage: "pdf extraction", Err: tctx.Err()}
		logger.WithError(err).Error("PDF import timed out")
		emit(ctx, events, models.Failure{Message: err.Error(), Cause: err})
		return
	case result = <-done:
	}
	if result.err != nil {
		logger.WithError(result.err).Error("Failed to parse PDF statement")
		emit(ctx, events, models.Failure{Message: "failed to parse PDF statement", Cause: result.err})
		return
	}
	logger = logger.WithField("parser", result.p.Name())

	if len(result.txs) > im.opts.MaxRows {
		err := &parsererror.RowLimitError{Count: len(result.txs), Limit: im.opts.MaxRows}
		emit(ctx, events, models.Failure{Message: err.Error(), Cause: err})
		return
	}

	imported, skipped := 0, 0
	totalAmount := decimal.Zero
	for i, tx := range result.txs {
		if err := im.repo.AddTransaction(tx); err != nil {
			logger.WithError(err).Warn("Failed to persist row")
			skipped++
		} else {
			imported++
			if tx.IsExpense {
				totalAmount = totalAmount.Sub(tx.Amount)
			} else {
				totalAmount = totalAmount.Add(tx.Amount)
			}
		}
		if (i+1)%im.opts.ProgressEvery == 0 {
			ok := emit(ctx, events, models.Progress{
				Current: i + 1,
				Total:   len(result.txs),
				Message: fmt.Sprintf("processed %d of %d rows", i+1, len(result.txs)),
			})
			if !ok {
				return
			}
		}
	}

	im.finish(ctx, result.p.Fallbacks(), imported, skipped, totalAmount, logger, events)
}

func (im *Importer) finish(ctx context.Context, fb parser.Fallbacks, imported, skipped int, totalAmount decimal.Decimal, logger logging.Logger, events chan<- models.ImportEvent) {
	im.setFallbacks(FallbackStats{DateNow: fb.DateNow, ZeroAmount: fb.ZeroAmount})
	logger.WithFields(
		logging.Field{Key: "imported", Value: imported},
		logging.Field{Key: "skipped", Value: skipped},
		logging.Field{Key: "date_fallbacks", Value: fb.DateNow},
		logging.Field{Key: "zero_amount_fallbacks", Value: fb.ZeroAmount},
	).Info("Import finished")
	emit(ctx, events, models.Success{Imported: imported, Skipped: skipped, TotalAmount: totalAmount})
}
