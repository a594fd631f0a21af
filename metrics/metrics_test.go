package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("keeps decisions in order", func(t *testing.T) {
		c := NewCollector()
		c.Add(Decision{Turn: 1, Action: "North"})
		c.Add(Decision{Turn: 2, Action: "Stop"})

		decisions := c.Decisions()
		require.Len(t, decisions, 2)
		require.Equal(t, "North", decisions[0].Action)
		require.Equal(t, 2, decisions[1].Turn)
	})

	t.Run("returns a copy", func(t *testing.T) {
		c := NewCollector()
		c.Add(Decision{Turn: 1})

		decisions := c.Decisions()
		decisions[0].Turn = 42

		require.Equal(t, 1, c.Decisions()[0].Turn)
	})

	t.Run("dummy collector drops everything", func(t *testing.T) {
		c := NewDummyCollector()
		c.Add(Decision{Turn: 1})
		require.Empty(t, c.Decisions())
	})
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "session")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())
	require.Equal(t, filepath.Join(root, "session"), filepath.Dir(w.Dir()))

	decisions := []Decision{
		{Turn: 1, Agent: 0, Name: "forager", Mode: "attack", Action: "East", Safety: 2, Target: "(6,1)", Duration: time.Millisecond},
		{Turn: 2, Agent: 2, Name: "defender", Mode: "defense", Action: "Stop", Safety: 0, Fallback: true},
	}
	require.NoError(t, w.WriteDecisions(decisions))

	require.Equal(t, filepath.Join(w.Dir(), DecisionsFile), w.DecisionsPath())
	f, err := os.Open(w.DecisionsPath())
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"turn", "agent", "name", "mode", "action", "safety", "power_mode", "target", "fallback", "duration"}, rows[0])
	require.Equal(t, []string{"1", "0", "forager", "attack", "East", "2", "false", "(6,1)", "false", "1ms"}, rows[1])
	require.Equal(t, "true", rows[2][8])
}

func TestCompressedWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "session", WithCompression(true))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(w.Dir(), DecisionsFile+CompressedSuffix), w.DecisionsPath())

	decisions := make([]Decision, 100)
	for i := range decisions {
		decisions[i] = Decision{Turn: i + 1, Name: "forager", Mode: "attack", Action: "North"}
	}
	require.NoError(t, w.WriteDecisions(decisions))

	f, err := os.Open(w.DecisionsPath())
	require.NoError(t, err)
	defer f.Close()

	dec, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer dec.Close()

	rows, err := csv.NewReader(dec).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 101)
	require.Equal(t, "100", rows[100][0])
}
