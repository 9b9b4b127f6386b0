package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/infrastructure/nower"
)

type pgxPool interface {
	trmpgx.Tr
	Close()
	Ping(ctx context.Context) error
}

// Storage хранит архив досок в PostgreSQL.
// Запросы выполняются в транзакции из контекста, если её открыл trm.Manager.
type Storage struct {
	pool   pgxPool
	getter *trmpgx.CtxGetter
	nower  nower.Nower
	sb     squirrel.StatementBuilderType
}

// New создаёт новый слой хранения.
func New(pool pgxPool, nower nower.Nower) *Storage {
	return &Storage{
		pool:   pool,
		getter: trmpgx.DefaultCtxGetter,
		nower:  nower,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Close освобождает соединения пула.
func (s *Storage) Close() {
	s.pool.Close()
}

// Ping проверяет доступность подключения к БД.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) conn(ctx context.Context) trmpgx.Tr {
	return s.getter.DefaultTrOrDB(ctx, s.pool)
}

// SaveBoard сохраняет доску за месяц, полностью заменяя ранее сохранённые позиции.
// Атомарность обеспечивает вызывающий через trm.Manager.
func (s *Storage) SaveBoard(ctx context.Context, board domain.Board) error {
	conn := s.conn(ctx)

	upsertSQL, upsertArgs, err := s.sb.
		Insert(tableSnapshots).
		Columns("repository", "month", "since", "seed", "total_solves", "rate_limit_remaining", "generated_at", "archived_at").
		Values(board.Repository, board.Month, board.Since, board.Seed, board.TotalSolves, board.RateLimitRemaining, board.GeneratedAt, s.nower.Now()).
		Suffix("ON CONFLICT (repository, month) DO UPDATE SET since=EXCLUDED.since, seed=EXCLUDED.seed, total_solves=EXCLUDED.total_solves, rate_limit_remaining=EXCLUDED.rate_limit_remaining, generated_at=EXCLUDED.generated_at, archived_at=EXCLUDED.archived_at").
		ToSql()
	if err != nil {
		slog.ErrorContext(ctx, "failed to build upsert snapshot query", "error", err)
		return fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}
	if _, err := conn.Exec(ctx, upsertSQL, upsertArgs...); err != nil {
		slog.ErrorContext(ctx, "failed to upsert snapshot", "error", err)
		return fmt.Errorf("%w: %v", ErrExecuteQuery, err)
	}

	for _, table := range []string{tableStandings, tablePrizes} {
		deleteSQL, deleteArgs, err := s.sb.
			Delete(table).
			Where("repository = ? AND month = ?", board.Repository, board.Month).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBuildQuery, err)
		}
		if _, err := conn.Exec(ctx, deleteSQL, deleteArgs...); err != nil {
			slog.ErrorContext(ctx, "failed to clear board rows", "table", table, "error", err)
			return fmt.Errorf("%w: %v", ErrExecuteQuery, err)
		}
	}

	if err := s.insertEntries(ctx, conn, tableStandings, board, board.Standings); err != nil {
		return err
	}
	return s.insertEntries(ctx, conn, tablePrizes, board, board.PrizeRank)
}

func (s *Storage) insertEntries(ctx context.Context, conn trmpgx.Tr, table string, board domain.Board, entries []domain.SolveCount) error {
	if len(entries) == 0 {
		return nil
	}
	insert := s.sb.Insert(table).Columns("repository", "month", "position", "author", "solved")
	for i, e := range entries {
		insert = insert.Values(board.Repository, board.Month, i+1, e.Author, e.Solved)
	}
	insertSQL, insertArgs, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}
	if _, err := conn.Exec(ctx, insertSQL, insertArgs...); err != nil {
		slog.ErrorContext(ctx, "failed to insert board rows", "table", table, "rows", len(entries), "error", err)
		return fmt.Errorf("%w: %v", ErrExecuteQuery, err)
	}
	return nil
}

// GetBoard возвращает сохранённую доску.
func (s *Storage) GetBoard(ctx context.Context, repository, month string) (domain.Board, error) {
	conn := s.conn(ctx)

	selectSQL, selectArgs, err := s.sb.
		Select("repository", "month", "since", "seed", "total_solves", "rate_limit_remaining", "generated_at").
		From(tableSnapshots).
		Where("repository = ? AND month = ?", repository, month).
		ToSql()
	if err != nil {
		return domain.Board{}, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	var b domain.Board
	err = conn.QueryRow(ctx, selectSQL, selectArgs...).
		Scan(&b.Repository, &b.Month, &b.Since, &b.Seed, &b.TotalSolves, &b.RateLimitRemaining, &b.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Board{}, domain.ErrBoardNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to query snapshot", "error", err)
		return domain.Board{}, fmt.Errorf("%w: %v", ErrExecuteQuery, err)
	}

	if b.Standings, err = s.listEntries(ctx, conn, tableStandings, repository, month); err != nil {
		return domain.Board{}, err
	}
	if b.PrizeRank, err = s.listEntries(ctx, conn, tablePrizes, repository, month); err != nil {
		return domain.Board{}, err
	}
	return b, nil
}

func (s *Storage) listEntries(ctx context.Context, conn trmpgx.Tr, table, repository, month string) ([]domain.SolveCount, error) {
	selectSQL, selectArgs, err := s.sb.
		Select("author", "solved").
		From(table).
		Where("repository = ? AND month = ?", repository, month).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}
	rows, err := conn.Query(ctx, selectSQL, selectArgs...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query board rows", "table", table, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrExecuteQuery, err)
	}
	defer rows.Close()

	entries := []domain.SolveCount{}
	for rows.Next() {
		var e domain.SolveCount
		if err := rows.Scan(&e.Author, &e.Solved); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanResult, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanResult, err)
	}
	return entries, nil
}

// ListMonths возвращает месяцы, за которые есть доски, от новых к старым.
func (s *Storage) ListMonths(ctx context.Context, repository string) ([]string, error) {
	selectSQL, selectArgs, err := s.sb.
		Select("month").
		From(tableSnapshots).
		Where(squirrel.Eq{"repository": repository}).
		OrderBy("month DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}
	rows, err := s.conn(ctx).Query(ctx, selectSQL, selectArgs...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query months", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrExecuteQuery, err)
	}
	defer rows.Close()

	months := []string{}
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanResult, err)
		}
		months = append(months, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanResult, err)
	}
	return months, nil
}
