package repository

import "errors"

// Общие ошибки репозитория.
var (
	ErrBuildQuery   = errors.New("failed to build SQL query")
	ErrExecuteQuery = errors.New("failed to execute query")
	ErrScanResult   = errors.New("failed to scan result")
)

const (
	tableSnapshots = "board_snapshots"
	tableStandings = "board_standings"
	tablePrizes    = "board_prizes"
)
