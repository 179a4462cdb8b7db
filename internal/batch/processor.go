// Package batch analyzes many certificates concurrently.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/a3tai/mcp-fines-reader/internal/pdf"
)

// DefaultWorkers bounds concurrent analyses when no limit is configured.
const DefaultWorkers = 4

// Analyzer analyzes one certificate.
type Analyzer interface {
	AnalyzeFile(req pdf.CertificateAnalyzeRequest) (*pdf.CertificateAnalyzeResult, error)
}

// Item is the result for one input path. Exactly one of Result and Error is set.
type Item struct {
	Path   string                        `json:"path"`
	Result *pdf.CertificateAnalyzeResult `json:"result,omitempty"`
	Error  string                        `json:"error,omitempty"`
}

// Report holds the items in input order plus totals.
type Report struct {
	Items            []Item `json:"items"`
	Accepted         int    `json:"accepted"`
	Rejected         int    `json:"rejected"`
	Failed           int    `json:"failed"`
	TotalRecords     int    `json:"total_records"`
	EstimatedSavings int64  `json:"estimated_savings"`
}

// Processor fans analyses out over a bounded number of goroutines.
type Processor struct {
	analyzer Analyzer
	workers  int
}

// NewProcessor creates a processor running at most workers analyses at once.
func NewProcessor(analyzer Analyzer, workers int) *Processor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Processor{analyzer: analyzer, workers: workers}
}

// Run analyzes every path. A failing path is recorded on its item and does
// not stop the others. When ctx is cancelled no new analyses start; the
// remaining items carry the context error, which Run also returns.
func (p *Processor) Run(ctx context.Context, paths []string) (*Report, error) {
	items := make([]Item, len(paths))
	for i, path := range paths {
		items[i].Path = path
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.workers)

	for i := range paths {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				items[i].Error = err.Error()
				return nil
			}
			items[i] = p.analyze(paths[i])
			return nil
		})
	}
	_ = eg.Wait() // workers never fail the group

	report := &Report{Items: items}
	ctxErr := ctx.Err()
	for i := range report.Items {
		item := &report.Items[i]
		if item.Result == nil && item.Error == "" && ctxErr != nil {
			item.Error = ctxErr.Error()
		}
		report.add(*item)
	}
	return report, ctxErr
}

func (p *Processor) analyze(path string) (item Item) {
	item.Path = path
	defer func() {
		if r := recover(); r != nil {
			item.Result = nil
			item.Error = fmt.Sprintf("analysis panicked: %v", r)
		}
	}()

	result, err := p.analyzer.AnalyzeFile(pdf.CertificateAnalyzeRequest{Path: path})
	if err != nil {
		item.Error = err.Error()
		return item
	}
	item.Result = result
	return item
}

func (r *Report) add(item Item) {
	switch {
	case item.Result == nil:
		r.Failed++
	case item.Result.Outcome.IsRejected():
		r.Rejected++
	default:
		r.Accepted++
		r.TotalRecords += len(item.Result.Outcome.Records)
		r.EstimatedSavings += item.Result.EstimatedSavings
	}
}
