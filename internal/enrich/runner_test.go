package enrich

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotsheet/spotsheet/internal/model"
	"github.com/spotsheet/spotsheet/internal/table"
)

// stubSource scripts per-URL responses for the loop.
type stubSource struct {
	calls     []string
	responses map[string][]model.Row
	errs      map[string]error
}

func (s *stubSource) Fill(_ context.Context, urls []string) ([]model.Row, error) {
	s.calls = append(s.calls, urls...)
	u := urls[0]
	if err := s.errs[u]; err != nil {
		return nil, err
	}
	return s.responses[u], nil
}

func TestRunMergesReturnedFields(t *testing.T) {
	tbl := table.New()
	tbl.Append(model.Row{URL: "a"})

	src := &stubSource{responses: map[string][]model.Row{
		"a": {{URL: "a", TrackName: "Song A", Artist: "Artist A"}},
	}}

	stats, err := NewRunner(src, nil).Run(context.Background(), tbl)
	require.NoError(t, err)
	assert.Equal(t, Stats{Updated: 1}, stats)

	row, err := tbl.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "Song A", row.TrackName)
	assert.Equal(t, "Artist A", row.Artist)
}

func TestRunFailureLeavesRowUntouched(t *testing.T) {
	tbl := table.New()
	tbl.Append(model.Row{URL: "a", TrackName: "Existing", Artist: "Kept"})

	src := &stubSource{errs: map[string]error{"a": eris.New("request failed")}}

	stats, err := NewRunner(src, nil).Run(context.Background(), tbl)
	require.NoError(t, err)
	assert.Equal(t, Stats{Failed: 1}, stats)

	row, err := tbl.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "Existing", row.TrackName)
	assert.Equal(t, "Kept", row.Artist)
}

func TestRunPartialBackendResponse(t *testing.T) {
	// Backend enriches "a" but has nothing for "b": row "b" keeps its state.
	tbl := table.New()
	tbl.Append(model.Row{URL: "a"})
	tbl.Append(model.Row{URL: "b", Album: "Prior Album"})

	src := &stubSource{responses: map[string][]model.Row{
		"a": {{URL: "a", TrackName: "Found"}},
		"b": {{URL: "b"}},
	}}

	stats, err := NewRunner(src, nil).Run(context.Background(), tbl)
	require.NoError(t, err)
	assert.Equal(t, Stats{Updated: 1, Failed: 1}, stats)

	rowA, err := tbl.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "Found", rowA.TrackName)

	rowB, err := tbl.Row(1)
	require.NoError(t, err)
	assert.Equal(t, "Prior Album", rowB.Album)
	assert.Equal(t, "", rowB.TrackName)
}

func TestRunSkipsEmptyURLs(t *testing.T) {
	tbl := table.New()
	tbl.Append(model.Row{URL: "   "})
	tbl.Append(model.Row{URL: "a"})

	src := &stubSource{responses: map[string][]model.Row{
		"a": {{URL: "a", Artist: "X"}},
	}}

	stats, err := NewRunner(src, nil).Run(context.Background(), tbl)
	require.NoError(t, err)
	assert.Equal(t, Stats{Updated: 1, Skipped: 1}, stats)
	assert.Equal(t, []string{"a"}, src.calls)
}

func TestRunOneRequestPerRow(t *testing.T) {
	tbl := table.New()
	tbl.Append(model.Row{URL: "a"})
	tbl.Append(model.Row{URL: "b"})
	tbl.Append(model.Row{URL: "a"})

	src := &stubSource{responses: map[string][]model.Row{
		"a": {{TrackName: "A"}},
		"b": {{TrackName: "B"}},
	}}

	_, err := NewRunner(src, nil).Run(context.Background(), tbl)
	require.NoError(t, err)
	// No batching, no dedup: one call per row, in table order.
	assert.Equal(t, []string{"a", "b", "a"}, src.calls)
}

func TestRunProgressCallback(t *testing.T) {
	tbl := table.New()
	tbl.Append(model.Row{URL: "a"})
	tbl.Append(model.Row{URL: ""})

	src := &stubSource{responses: map[string][]model.Row{
		"a": {{TrackName: "A"}},
	}}

	var seen []Stats
	progress := func(index int, row model.Row, stats Stats) {
		seen = append(seen, stats)
	}

	_, err := NewRunner(src, progress).Run(context.Background(), tbl)
	require.NoError(t, err)
	require.Len(t, seen, 2)
	assert.Equal(t, Stats{Updated: 1}, seen[0])
	assert.Equal(t, Stats{Updated: 1, Skipped: 1}, seen[1])
}

func TestRunStopsOnContextCancel(t *testing.T) {
	tbl := table.New()
	tbl.Append(model.Row{URL: "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &stubSource{}
	_, err := NewRunner(src, nil).Run(ctx, tbl)
	assert.Error(t, err)
	assert.Empty(t, src.calls)
}
