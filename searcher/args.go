package searcher

// Hyperparameters for MCTS

// Scores closer than this (relative) are treated as a tie
const Tolerance = 1e-9

const absTolerance = 1e-12
