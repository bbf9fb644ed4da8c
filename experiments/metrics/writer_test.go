package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func moveRecords() []MoveRecord {
	return []MoveRecord{
		{Game: "g1", MoveMetric: MoveMetric{Step: 1, Player: 0, Action: 5,
			SearchMetric: SearchMetric{Goroutines: 1, Exploration: 1.4, Duration: 1500 * time.Microsecond,
				Simulations: 100, FullPlayouts: 100, TreeSize: 90, MaxDepth: 6}}},
		{Game: "g1", MoveMetric: MoveMetric{Step: 2, Player: 1, Action: 1}},
	}
}

func TestWriter(t *testing.T) {
	t.Run("creating a timestamped directory", func(t *testing.T) {
		root := t.TempDir()

		w, err := NewWriter(root, "matchup")

		require.NoError(t, err)
		require.DirExists(t, w.Dir())
		require.Equal(t, filepath.Join(root, "matchup"), filepath.Dir(w.Dir()))
	})

	t.Run("writing agent configs", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "configs")
		require.NoError(t, err)

		err = w.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Kind: "mcts", Simulations: 1000, Exploration: 1.4, Goroutines: 4, Seed: 42},
			{ID: 2, Kind: "minimax", Depth: 3, Evaluator: "lines"},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 3, "Header plus one row per config")
		require.Equal(t, []string{"1", "mcts", "1000", "1.4", "4", "0", "", "0", "0", "42"}, rows[1])
		require.Equal(t, "lines", rows[2][6])
		require.Equal(t, "3", rows[2][8])
	})

	t.Run("writing game records", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "games")
		require.NoError(t, err)
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

		err = w.WriteGameRecords([]GameRecord{{Match: "m1", Agent1: 1, Agent2: 2, GameMetric: GameMetric{
			ID: "g1", StartingPlayer: 1, Winner: -1, StartTime: start, EndTime: start.Add(time.Second),
			Duration: time.Second, TotalMoves: 9,
		}}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"g1", "m1", "1", "2", "1", "-1", "2024-01-02T03:04:05Z",
			"2024-01-02T03:04:06Z", "1s", "9"}, rows[1])
	})

	t.Run("writing move records", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "moves")
		require.NoError(t, err)

		require.NoError(t, w.WriteMoveRecords(moveRecords()))

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"g1", "1", "0", "5", "1.5ms", "100", "100", "0", "90", "6"}, rows[1])
	})

	t.Run("round-tripping moves through parquet", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "parquet")
		require.NoError(t, err)

		path, err := w.WriteMoveParquet(moveRecords())
		require.NoError(t, err)
		require.FileExists(t, path)
		require.NoFileExists(t, path+".tmp")

		rows, err := ReadMoveParquet(path)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, MoveRow{Game: "g1", Step: 1, Player: 0, Action: 5, Goroutines: 1, Exploration: 1.4,
			DurationUs: 1500, Simulations: 100, FullPlayouts: 100, TreeSize: 90, MaxDepth: 6}, rows[0])
		require.Equal(t, int32(1), rows[1].Player)
	})

	t.Run("failing on a missing parquet file", func(t *testing.T) {
		_, err := ReadMoveParquet(filepath.Join(t.TempDir(), "missing.parquet"))

		require.Error(t, err)
	})
}
