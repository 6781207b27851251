package suggest

import (
	"strings"
	"testing"

	"github.com/alexanderramin/tabi/internal/importer"
	"github.com/alexanderramin/tabi/internal/itinerary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderThenParse_RoundTrip(t *testing.T) {
	store := itinerary.NewStore()
	for _, in := range []struct{ clock, activity string }{
		{"18:26", "自宅 着"},
		{"9:40", "自宅を出る"},
		{"11:55", "北ノ麺　もりうち"},
		{"11:55", "鶴見駅 着"},
		{"13:29", "弁天橋駅 - 海芝浦駅"},
	} {
		_, err := store.Add(in.clock, in.activity, "")
		require.NoError(t, err)
	}
	snap := store.Snapshot()

	rendered := RenderItinerary(snap)
	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, len(snap))

	for i, line := range lines {
		parsed := importer.Parse(line)
		require.Len(t, parsed, 1, "line %q", line)
		assert.Equal(t, snap[i].Time, parsed[0].Time)
		assert.Equal(t, snap[i].Activity, parsed[0].Activity)
	}

	// The whole rendering also parses back in order.
	all := importer.Parse(rendered)
	require.Len(t, all, len(snap))
	for i := range all {
		assert.Equal(t, snap[i].Time, all[i].Time)
		assert.Equal(t, snap[i].Activity, all[i].Activity)
	}
}
