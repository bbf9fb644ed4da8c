package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

type AgentConfig struct {
	ID          int
	Kind        string // mcts, training, random, minimax
	Simulations int
	Exploration float64
	Goroutines  int
	Cutoff      int     // Random moves before the evaluator, needs Evaluator
	Evaluator   string  // Named evaluation function, empty for random rollouts
	Temperature float64 // Training agents only
	Depth       int     // Minimax only, 0 searches to the end
	Seed        uint64
}

type GameRecord struct {
	Match  string
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game string // GameMetric.ID
	MoveMetric
}

// MoveRow is the parquet layout of a MoveRecord.
type MoveRow struct {
	Game         string  `parquet:"game,dict"`
	Step         int32   `parquet:"step"`
	Player       int32   `parquet:"player"`
	Action       int32   `parquet:"action"`
	Goroutines   int32   `parquet:"goroutines"`
	Exploration  float64 `parquet:"exploration"`
	Cutoff       int32   `parquet:"cutoff"`
	Evaluator    bool    `parquet:"evaluator"`
	DurationUs   int64   `parquet:"duration_us"`
	Simulations  int32   `parquet:"simulations"`
	FullPlayouts int32   `parquet:"full_playouts"`
	Evaluations  int32   `parquet:"evaluations"`
	TreeSize     int32   `parquet:"tree_size"`
	MaxDepth     int32   `parquet:"max_depth"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes every record there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Simulations),
			strconv.FormatFloat(config.Exploration, 'g', -1, 64),
			strconv.Itoa(config.Goroutines),
			strconv.Itoa(config.Cutoff),
			config.Evaluator,
			strconv.FormatFloat(config.Temperature, 'g', -1, 64),
			strconv.Itoa(config.Depth),
			strconv.FormatUint(config.Seed, 10),
		})
	}

	header := []string{"id", "kind", "simulations", "exploration", "goroutines", "cutoff", "evaluator", "temperature", "depth", "seed"}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			record.Match,
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingPlayer),
			strconv.Itoa(record.Winner),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}

	header := []string{"id", "match", "agent1", "agent2", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Action),
			record.Duration.String(),
			strconv.Itoa(record.Simulations),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.TreeSize),
			strconv.Itoa(record.MaxDepth),
		})
	}

	header := []string{"game", "step", "player", "action", "duration", "simulations", "full_playouts", "evaluations", "tree_size", "max_depth"}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

// WriteMoveParquet stores move records as moves.parquet. The file is written
// under a temporary name and renamed once complete.
func (w *Writer) WriteMoveParquet(records []MoveRecord) (string, error) {
	rows := make([]MoveRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, MoveRow{
			Game:         record.Game,
			Step:         int32(record.Step),
			Player:       int32(record.Player),
			Action:       int32(record.Action),
			Goroutines:   int32(record.Goroutines),
			Exploration:  record.Exploration,
			Cutoff:       int32(record.Cutoff),
			Evaluator:    record.Evaluator,
			DurationUs:   record.Duration.Microseconds(),
			Simulations:  int32(record.Simulations),
			FullPlayouts: int32(record.FullPlayouts),
			Evaluations:  int32(record.Evaluations),
			TreeSize:     int32(record.TreeSize),
			MaxDepth:     int32(record.MaxDepth),
		})
	}

	path := filepath.Join(w.baseDir, "moves.parquet")
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "move_record_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return path, nil
}

// ReadMoveParquet loads every row of a file written by WriteMoveParquet.
func ReadMoveParquet(path string) ([]MoveRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[MoveRow](pf)
	defer reader.Close()

	rows := make([]MoveRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows[:n], nil
}
