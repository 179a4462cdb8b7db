package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-fines-reader/internal/certificate"
	"github.com/a3tai/mcp-fines-reader/internal/pdf"
)

type fakeAnalyzer struct {
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
	mu       sync.Mutex
	gate     chan struct{}
}

func (f *fakeAnalyzer) AnalyzeFile(req pdf.CertificateAnalyzeRequest) (*pdf.CertificateAnalyzeResult, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)

	f.mu.Lock()
	if n > f.peak.Load() {
		f.peak.Store(n)
	}
	f.mu.Unlock()

	if f.gate != nil {
		<-f.gate
	}
	time.Sleep(f.delay)

	switch req.Path {
	case "broken.pdf":
		return nil, errors.New("security validation failed")
	case "panic.pdf":
		panic("decoder exploded")
	case "other.pdf":
		return &pdf.CertificateAnalyzeResult{Path: req.Path, Outcome: certificate.Rejected()}, nil
	}

	records := []certificate.FineRecord{{CourtName: "TRIBUNAL DE SANTIAGO", CaseRoll: "1-2020", EntryDate: "01-01-2020"}}
	return &pdf.CertificateAnalyzeResult{
		Path:             req.Path,
		Outcome:          certificate.Accepted(certificate.Subject{Plate: "BBFC12"}, records),
		EstimatedSavings: pdf.EstimatedSavingsPerFine,
	}, nil
}

func TestProcessor_Run_PreservesOrderAndCapturesFailures(t *testing.T) {
	analyzer := &fakeAnalyzer{delay: time.Millisecond}
	processor := NewProcessor(analyzer, 2)

	paths := []string{"a.pdf", "broken.pdf", "other.pdf", "panic.pdf", "b.pdf"}
	report, err := processor.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, report.Items, len(paths))

	for i, item := range report.Items {
		assert.Equal(t, paths[i], item.Path)
	}

	assert.NotNil(t, report.Items[0].Result)
	assert.Contains(t, report.Items[1].Error, "security validation failed")
	assert.True(t, report.Items[2].Result.Outcome.IsRejected())
	assert.Contains(t, report.Items[3].Error, "decoder exploded")
	assert.Nil(t, report.Items[3].Result)

	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, 1, report.Rejected)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 2, report.TotalRecords)
	assert.Equal(t, int64(2*pdf.EstimatedSavingsPerFine), report.EstimatedSavings)
}

func TestProcessor_Run_BoundsConcurrency(t *testing.T) {
	analyzer := &fakeAnalyzer{delay: 5 * time.Millisecond}
	processor := NewProcessor(analyzer, 3)

	paths := make([]string, 12)
	for i := range paths {
		paths[i] = "cert.pdf"
	}
	_, err := processor.Run(context.Background(), paths)
	require.NoError(t, err)

	assert.Equal(t, int32(12), analyzer.calls.Load())
	assert.LessOrEqual(t, analyzer.peak.Load(), int32(3))
}

func TestProcessor_Run_Cancelled(t *testing.T) {
	analyzer := &fakeAnalyzer{gate: make(chan struct{})}
	processor := NewProcessor(analyzer, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var report *Report
	var err error
	go func() {
		defer close(done)
		report, err = processor.Run(ctx, []string{"a.pdf", "b.pdf", "c.pdf"})
	}()

	// Let the first analysis start, then cancel while it is blocked.
	require.Eventually(t, func() bool { return analyzer.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	close(analyzer.gate)
	<-done

	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, report.Items, 3)
	assert.NotNil(t, report.Items[0].Result)
	assert.Equal(t, context.Canceled.Error(), report.Items[2].Error)
	assert.Equal(t, int32(1), analyzer.calls.Load())
}

func TestNewProcessor_DefaultWorkers(t *testing.T) {
	assert.Equal(t, DefaultWorkers, NewProcessor(&fakeAnalyzer{}, 0).workers)
}
