package experiments

import (
	"fmt"

	"gridmcts/engine"
	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Tally counts results of a matchup by agent slot.
type Tally struct {
	Wins  [2]int
	Draws int
}

func (t Tally) Games() int {
	return t.Wins[0] + t.Wins[1] + t.Draws
}

// Result holds everything a matchup produced.
type Result struct {
	Match       string
	Configs     [2]metrics.AgentConfig
	Tally       Tally
	GameRecords []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
}

type Matchup struct {
	NewGame   NewGame
	Agents    [2]metrics.AgentConfig // Agents[p] plays for player p
	Games     int
	Alternate bool // Alternate the starting player between games
	// Progress is called after each game with the running tally
	Progress      func(game int, tally Tally)
	EngineOptions []engine.EngineOption
}

// Run plays every game of the matchup. Agents are built once and keep their
// random state across games.
func (m Matchup) Run() (Result, error) {
	result := Result{
		Match:   uuid.NewString(),
		Configs: m.Agents,
	}

	var agents [2]agent.Agent
	for i, config := range m.Agents {
		a, err := CreateAgent(config)
		if err != nil {
			return result, fmt.Errorf("agent%d: %w", i+1, err)
		}
		agents[i] = a
	}

	log.Info().Msgf("starting matchup %s between agent1=%+v and agent2=%+v...", result.Match, m.Agents[0], m.Agents[1])

	starting := game.Player(0)
	for i := 0; i < m.Games; i++ {
		log.Info().Msgf("starting game %d of %d...", i+1, m.Games)

		e := engine.NewLocalEngine(m.NewGame(starting), agents, m.EngineOptions...)
		winner, gameMetric, moveMetrics, err := e.Run()
		if err != nil {
			return result, fmt.Errorf("game %d: %w", i+1, err)
		}

		if winner == game.Draw {
			result.Tally.Draws++
		} else {
			result.Tally.Wins[winner]++
		}
		result.GameRecords = append(result.GameRecords, metrics.GameRecord{
			Match:      result.Match,
			Agent1:     m.Agents[0].ID,
			Agent2:     m.Agents[1].ID,
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			result.MoveRecords = append(result.MoveRecords, metrics.MoveRecord{
				Game:       gameMetric.ID,
				MoveMetric: mm,
			})
		}

		log.Info().Msgf("completed game %d of %d with winner: %d", i+1, m.Games, winner)
		if m.Progress != nil {
			m.Progress(i+1, result.Tally)
		}

		if m.Alternate {
			starting = starting.Opponent()
		}
	}

	log.Info().Msgf("completed matchup %s: %+v", result.Match, result.Tally)
	return result, nil
}

// Store writes configs, games and moves of every result under
// root/name/<timestamp> and returns that directory.
func Store(root, name string, results ...Result) (string, error) {
	var configs []metrics.AgentConfig
	seen := make(map[int]bool)
	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	for _, result := range results {
		for _, config := range result.Configs {
			if !seen[config.ID] {
				seen[config.ID] = true
				configs = append(configs, config)
			}
		}
		gameRecords = append(gameRecords, result.GameRecords...)
		moveRecords = append(moveRecords, result.MoveRecords...)
	}

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	path, err := writer.WriteMoveParquet(moveRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write move parquet: %w", err)
	}
	log.Info().Msgf("stored move records (%s)", path)

	return writer.Dir(), nil
}
