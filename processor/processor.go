package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/bassamadnan/triage/inquiry"
	"github.com/bassamadnan/triage/logger"
	"github.com/bassamadnan/triage/summarizer"
)

// Sheet is the slice of a worksheet the loop reads and writes.
type Sheet interface {
	Values(ctx context.Context) ([][]string, error)
	UpdateCell(ctx context.Context, row, col int, value string) error
	AppendRow(ctx context.Context, values []string) error
}

// ArchiveOpener returns the archive sheet, creating it with inquiry.ArchiveHeader if needed.
// It is only called when there is something to archive.
type ArchiveOpener func(ctx context.Context) (Sheet, error)

// Notifier delivers a processed row. It never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, row inquiry.Row, sum inquiry.Summary)
}

type Deps struct {
	Source     Sheet
	Archive    ArchiveOpener
	Summarizer summarizer.Summarizer
	Notifier   Notifier
	Logger     logger.Logger
}

// Processor runs the triage loop over one source sheet.
type Processor struct {
	source     Sheet
	archive    ArchiveOpener
	summarizer summarizer.Summarizer
	notifier   Notifier
	log        logger.Logger
}

func New(d Deps) *Processor {
	return &Processor{
		source:     d.Source,
		archive:    d.Archive,
		summarizer: d.Summarizer,
		notifier:   d.Notifier,
		log:        d.Logger,
	}
}

// Result summarizes a run.
type Result struct {
	// Rows is the number of data rows in the source sheet.
	Rows    int
	Pending int
	// Updated counts rows that reached the notify step.
	Updated                int
	ProcessedColumnCreated bool
	// MarkFailures and ArchiveFailures hold sheet row numbers whose write failed.
	MarkFailures    []int
	ArchiveFailures []int
}

// NoInquiries reports whether the run found nothing to do.
func (r Result) NoInquiries() bool { return r.Pending == 0 }

var ErrInterrupted = errors.New("run interrupted")

// Run processes every unprocessed row in sheet order. Only setup failures are returned;
// per-row write failures are logged and recorded in the Result.
func (p *Processor) Run(ctx context.Context) (Result, error) {
	var res Result

	values, err := p.source.Values(ctx)
	if err != nil {
		return res, fmt.Errorf("unable to read responses: %w", err)
	}
	if len(values) < 2 {
		p.log.Info("Sheet is empty. Submit one test response in the form, then re-run.")
		return res, nil
	}

	values, created, err := p.ensureProcessedColumn(ctx, values)
	if err != nil {
		return res, err
	}
	res.ProcessedColumnCreated = created
	headers := values[0]
	processedCol := inquiry.IndexOf(headers, inquiry.ProcessedColumn)

	hm, err := inquiry.ResolveHeaders(headers)
	if err != nil {
		return res, err
	}
	for _, field := range inquiry.CanonicalFields {
		p.log.Debug("Resolved column", "field", field, "header", hm[field].Name)
	}

	rows := inquiry.ParseRows(values, hm, processedCol)
	pending := inquiry.Unprocessed(rows)
	res.Rows, res.Pending = len(rows), len(pending)
	if len(pending) == 0 {
		p.log.Info("No new inquiries", "rows", len(rows))
		return res, nil
	}
	p.log.Info("Found new inquiries", "pending", len(pending), "rows", len(rows))

	archive, err := p.archive(ctx)
	if err != nil {
		return res, fmt.Errorf("unable to open archive sheet: %w", err)
	}

	for _, row := range pending {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("%w after %d of %d rows: %w", ErrInterrupted, res.Updated, len(pending), err)
		}
		// A started row always finishes its writes, even if the run is cancelled meanwhile.
		p.processRow(context.WithoutCancel(ctx), archive, processedCol+1, row, &res)
	}
	return res, nil
}

// processRow walks one row through summarize, notify, mark and archive. Every step runs
// even when an earlier one warned.
func (p *Processor) processRow(ctx context.Context, archive Sheet, processedCol int, row inquiry.Row, res *Result) {
	sum := p.summarizer.Summarize(ctx, row.Symptoms, row.Urgency)
	p.notifier.Notify(ctx, row, sum)
	res.Updated++

	if err := p.source.UpdateCell(ctx, row.Index, processedCol, inquiry.ProcessedMarker); err != nil {
		p.log.Warn("Could not mark row as processed", "row", row.Index, "err", err)
		res.MarkFailures = append(res.MarkFailures, row.Index)
	}
	if err := archive.AppendRow(ctx, inquiry.NewArchiveEntry(row, sum).Values()); err != nil {
		p.log.Warn("Could not append to archive", "row", row.Index, "err", err)
		res.ArchiveFailures = append(res.ArchiveFailures, row.Index)
	}
	p.log.Debug("Row done", "row", row.Index, "urgency", sum.Urgency)
}

// ensureProcessedColumn appends the Processed header after the last header cell when
// no header is exactly "Processed", then re-reads the sheet.
func (p *Processor) ensureProcessedColumn(ctx context.Context, values [][]string) ([][]string, bool, error) {
	headers := values[0]
	if inquiry.IndexOf(headers, inquiry.ProcessedColumn) >= 0 {
		return values, false, nil
	}
	col := len(headers) + 1
	if err := p.source.UpdateCell(ctx, 1, col, inquiry.ProcessedColumn); err != nil {
		return nil, false, fmt.Errorf("unable to create %s column: %w", inquiry.ProcessedColumn, err)
	}
	p.log.Info("Created tracking column", "column", inquiry.ProcessedColumn, "index", col)

	values, err := p.source.Values(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("unable to read responses: %w", err)
	}
	if len(values) == 0 || inquiry.IndexOf(values[0], inquiry.ProcessedColumn) < 0 {
		return nil, false, fmt.Errorf("%s column missing after creation", inquiry.ProcessedColumn)
	}
	return values, true, nil
}
