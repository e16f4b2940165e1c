package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordBatch(t *testing.T) {
	before := testutil.ToFloat64(propagationsTotal)
	batchesBefore := testutil.ToFloat64(batchesTotal)

	RecordBatch(40*time.Millisecond, 7, 3)

	if got := testutil.ToFloat64(propagationsTotal) - before; got != 10 {
		t.Errorf("propagationsTotal increased by %v, want 10", got)
	}
	if got := testutil.ToFloat64(batchesTotal) - batchesBefore; got != 1 {
		t.Errorf("batchesTotal increased by %v, want 1", got)
	}
}

func TestRecordFailure(t *testing.T) {
	counter := propagationFailuresTotal.WithLabelValues("satellite_decayed")
	before := testutil.ToFloat64(counter)

	RecordFailure("satellite_decayed")
	RecordFailure("satellite_decayed")

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("failures counter increased by %v, want 2", got)
	}
}

func TestHandler(t *testing.T) {
	if Handler() == nil {
		t.Fatal("Handler returned nil")
	}
}
