package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obi-eke/pdfgrid/constants"
	"github.com/obi-eke/pdfgrid/internal/backend"
	"github.com/obi-eke/pdfgrid/internal/table"
)

// fakeBackend returns canned tables keyed by flavor ("" for tabula) and
// records every request it sees.
type fakeBackend struct {
	byFlavor map[string][]table.Table
	err      error
	calls    []backend.Request
}

func (f *fakeBackend) Extract(_ context.Context, req backend.Request) ([]table.Table, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.byFlavor[req.Flavor], nil
}

// wide builds a single-table slice with the given column count.
func wide(cols int) []table.Table {
	row := make([]string, cols)
	for i := range row {
		row[i] = "x"
	}
	return []table.Table{{Rows: [][]string{row}}}
}

func req(method string) Request {
	return Request{
		Request: backend.Request{Path: "in.pdf", Pages: backend.AllPages()},
		Method:  method,
	}
}

func TestAutoPrefersTabula(t *testing.T) {
	tabula := &fakeBackend{byFlavor: map[string][]table.Table{"": wide(3)}}
	camelot := &fakeBackend{}
	orch := NewOrchestrator(tabula, camelot, backend.Capabilities{Tabula: true, Camelot: true}, nil)

	out, err := orch.Extract(context.Background(), req(constants.BackendAuto))
	require.NoError(t, err)
	assert.Equal(t, constants.BackendTabula, out.Backend)
	assert.Equal(t, 3, table.MaxColumns(out.Tables))
	assert.Empty(t, camelot.calls, "camelot must not run when tabula succeeds")
}

func TestAutoFallsThroughToCamelot(t *testing.T) {
	tabula := &fakeBackend{} // zero tables
	camelot := &fakeBackend{byFlavor: map[string][]table.Table{
		constants.FlavorStream: wide(4),
	}}
	orch := NewOrchestrator(tabula, camelot, backend.Capabilities{Tabula: true, Camelot: true}, nil)

	out, err := orch.Extract(context.Background(), req(constants.BackendAuto))
	require.NoError(t, err)
	assert.Equal(t, constants.BackendCamelot, out.Backend)
	assert.Equal(t, constants.FlavorStream, out.Flavor)
}

func TestAutoTriesLatticeBeforeGivingUp(t *testing.T) {
	// tabula unavailable and stream finds nothing: lattice must still be
	// attempted before returning empty.
	camelot := &fakeBackend{byFlavor: map[string][]table.Table{
		constants.FlavorLattice: wide(5),
	}}
	orch := NewOrchestrator(&fakeBackend{}, camelot, backend.Capabilities{Camelot: true}, nil)

	out, err := orch.Extract(context.Background(), req(constants.BackendAuto))
	require.NoError(t, err)
	assert.Equal(t, constants.FlavorLattice, out.Flavor)

	require.Len(t, camelot.calls, 2)
	assert.Equal(t, constants.FlavorStream, camelot.calls[0].Flavor)
	assert.Equal(t, constants.FlavorLattice, camelot.calls[1].Flavor)
}

func TestAutoRecoversFromBackendError(t *testing.T) {
	tabula := &fakeBackend{err: errors.New("jar exploded")}
	camelot := &fakeBackend{byFlavor: map[string][]table.Table{
		constants.FlavorStream: wide(2),
	}}
	orch := NewOrchestrator(tabula, camelot, backend.Capabilities{Tabula: true, Camelot: true}, nil)

	out, err := orch.Extract(context.Background(), req(constants.BackendAuto))
	require.NoError(t, err)
	assert.Equal(t, constants.BackendCamelot, out.Backend)
}

func TestAutoEmptyOutcomeIsNotAnError(t *testing.T) {
	orch := NewOrchestrator(&fakeBackend{}, &fakeBackend{}, backend.Capabilities{Tabula: true, Camelot: true}, nil)

	out, err := orch.Extract(context.Background(), req(constants.BackendAuto))
	require.NoError(t, err)
	assert.True(t, out.Empty())
}

func TestAutoNoBackendsAvailable(t *testing.T) {
	tabula := &fakeBackend{byFlavor: map[string][]table.Table{"": wide(3)}}
	orch := NewOrchestrator(tabula, &fakeBackend{}, backend.Capabilities{}, nil)

	out, err := orch.Extract(context.Background(), req(constants.BackendAuto))
	require.NoError(t, err)
	assert.True(t, out.Empty())
	assert.Empty(t, tabula.calls)
}

func TestExplicitTabulaUnavailable(t *testing.T) {
	tabula := &fakeBackend{byFlavor: map[string][]table.Table{"": wide(3)}}
	orch := NewOrchestrator(tabula, &fakeBackend{}, backend.Capabilities{Camelot: true}, nil)

	out, err := orch.Extract(context.Background(), req(constants.BackendTabula))
	require.NoError(t, err)
	assert.True(t, out.Empty(), "explicit mode surfaces unavailability as an empty outcome")
	assert.Empty(t, tabula.calls)
}

func TestExplicitCamelotNarrowRetry(t *testing.T) {
	tests := []struct {
		name        string
		streamCols  int
		latticeCols int
		wantFlavor  string
		wantRetries int
	}{
		{name: "lattice strictly better wins", streamCols: 1, latticeCols: 4, wantFlavor: constants.FlavorLattice, wantRetries: 1},
		{name: "lattice equal keeps stream", streamCols: 2, latticeCols: 2, wantFlavor: constants.FlavorStream, wantRetries: 1},
		{name: "lattice worse keeps stream", streamCols: 2, latticeCols: 1, wantFlavor: constants.FlavorStream, wantRetries: 1},
		{name: "wide stream never retries", streamCols: 3, latticeCols: 9, wantFlavor: constants.FlavorStream, wantRetries: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			camelot := &fakeBackend{byFlavor: map[string][]table.Table{
				constants.FlavorStream:  wide(tc.streamCols),
				constants.FlavorLattice: wide(tc.latticeCols),
			}}
			orch := NewOrchestrator(&fakeBackend{}, camelot, backend.Capabilities{Camelot: true}, nil)

			r := req(constants.BackendCamelot)
			r.Flavor = constants.FlavorStream
			out, err := orch.Extract(context.Background(), r)
			require.NoError(t, err)
			assert.Equal(t, tc.wantFlavor, out.Flavor)
			assert.Len(t, camelot.calls, 1+tc.wantRetries, "retry must happen at most once")
		})
	}
}

func TestExplicitCamelotNoRetryOnEmptyStream(t *testing.T) {
	// Zero stream tables is "nothing found", not "narrow result"; the
	// stream->lattice retry only fires on a found-but-narrow detection.
	camelot := &fakeBackend{byFlavor: map[string][]table.Table{
		constants.FlavorLattice: wide(4),
	}}
	orch := NewOrchestrator(&fakeBackend{}, camelot, backend.Capabilities{Camelot: true}, nil)

	r := req(constants.BackendCamelot)
	r.Flavor = constants.FlavorStream
	out, err := orch.Extract(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, out.Empty())
	assert.Len(t, camelot.calls, 1)
}

func TestExplicitCamelotLatticeNeverRetries(t *testing.T) {
	camelot := &fakeBackend{byFlavor: map[string][]table.Table{
		constants.FlavorLattice: wide(1),
	}}
	orch := NewOrchestrator(&fakeBackend{}, camelot, backend.Capabilities{Camelot: true}, nil)

	r := req(constants.BackendCamelot)
	r.Flavor = constants.FlavorLattice
	out, err := orch.Extract(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, constants.FlavorLattice, out.Flavor)
	assert.Len(t, camelot.calls, 1)
}

func TestTryBothFlavors(t *testing.T) {
	tests := []struct {
		name        string
		streamCols  int
		latticeCols int
		wantFlavor  string
	}{
		{name: "lattice wins with more columns", streamCols: 3, latticeCols: 5, wantFlavor: constants.FlavorLattice},
		{name: "tie favors stream", streamCols: 5, latticeCols: 5, wantFlavor: constants.FlavorStream},
		{name: "stream wins with more columns", streamCols: 6, latticeCols: 2, wantFlavor: constants.FlavorStream},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			camelot := &fakeBackend{byFlavor: map[string][]table.Table{
				constants.FlavorStream:  wide(tc.streamCols),
				constants.FlavorLattice: wide(tc.latticeCols),
			}}
			orch := NewOrchestrator(&fakeBackend{}, camelot, backend.Capabilities{Camelot: true}, nil)

			r := req(constants.BackendCamelot)
			r.TryBothFlavors = true
			out, err := orch.Extract(context.Background(), r)
			require.NoError(t, err)
			assert.Equal(t, tc.wantFlavor, out.Flavor)
			assert.Len(t, camelot.calls, 2, "both flavors must run unconditionally")
		})
	}
}

func TestCustomScorer(t *testing.T) {
	// A scorer that prefers more rows flips the dual-flavor decision.
	camelot := &fakeBackend{byFlavor: map[string][]table.Table{
		constants.FlavorStream:  {{Rows: [][]string{{"a", "b", "c"}}}},
		constants.FlavorLattice: {{Rows: [][]string{{"a"}, {"b"}, {"c"}, {"d"}}}},
	}}
	orch := NewOrchestrator(&fakeBackend{}, camelot, backend.Capabilities{Camelot: true}, nil)
	orch.SetScorer(func(tables []table.Table) int {
		rows := 0
		for _, t := range tables {
			rows += t.RowCount()
		}
		return rows
	})

	r := req(constants.BackendCamelot)
	r.TryBothFlavors = true
	out, err := orch.Extract(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, constants.FlavorLattice, out.Flavor)
}

func TestUnknownMethod(t *testing.T) {
	orch := NewOrchestrator(&fakeBackend{}, &fakeBackend{}, backend.Capabilities{}, nil)
	_, err := orch.Extract(context.Background(), req("ocr"))
	assert.Error(t, err)
}
