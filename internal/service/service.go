package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	trm "github.com/avito-tech/go-transaction-manager/trm/v2"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/config"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/infrastructure/nower"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/logging"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/lottery"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/metrics"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/repository"
)

const (
	// DefaultOperationTimeout таймаут по умолчанию для обычных операций
	DefaultOperationTimeout = 30 * time.Second
	// DefaultLongOperationTimeout таймаут по умолчанию для длительных операций
	DefaultLongOperationTimeout = 60 * time.Second
)

// CommitFetcher источник коммитов репозитория с решениями.
type CommitFetcher interface {
	CommitsSince(ctx context.Context, since time.Time) (domain.CommitPage, error)
}

// Archive описывает операции архива, которые требуются сервису.
type Archive interface {
	repository.BoardRepository
}

// Service агрегирует бизнес-логику доски.
type Service struct {
	fetcher CommitFetcher
	archive Archive
	health  repository.HealthChecker
	cfg     config.Config
	trMgr   trm.Manager
	nower   nower.Nower
	loc     *time.Location

	refreshMu sync.Mutex

	mu       sync.RWMutex
	current  domain.Board
	cachedAt time.Time
	cached   bool

	subsMu      sync.Mutex
	nextSubID   int
	subscribers map[int]func(domain.Board)
}

// New создаёт сервис. archive и trMgr могут быть nil: тогда архив отключён.
func New(fetcher CommitFetcher, archive Archive, cfg config.Config, trMgr trm.Manager, nower nower.Nower) *Service {
	svc := &Service{
		fetcher:     fetcher,
		archive:     archive,
		cfg:         cfg,
		trMgr:       trMgr,
		nower:       nower,
		loc:         cfg.Board.Location(),
		subscribers: make(map[int]func(domain.Board)),
	}
	if svc.cfg.Timeouts.Operation <= 0 {
		svc.cfg.Timeouts.Operation = DefaultOperationTimeout
	}
	if svc.cfg.Timeouts.LongOperation <= 0 {
		svc.cfg.Timeouts.LongOperation = DefaultLongOperationTimeout
	}
	if checker, ok := archive.(repository.HealthChecker); ok {
		svc.health = checker
	}
	return svc
}

// Board возвращает доску текущего месяца из кэша, пересобирая её по истечении board.cache_ttl.
// Если GitHub недоступен, отдаётся последняя собранная доска того же месяца.
func (s *Service) Board(ctx context.Context) (domain.Board, error) {
	if board, ok := s.fresh(); ok {
		return board, nil
	}

	board, err := s.rebuild(ctx, false)
	if err == nil {
		return board, nil
	}
	if stale, ok := s.sameMonth(); ok {
		slog.WarnContext(logging.ErrorCtx(ctx, err), "serving stale board", "error", err)
		return stale, nil
	}
	return domain.Board{}, err
}

// Refresh загружает коммиты, пересобирает доску, сохраняет её в архив и рассылает подписчикам.
func (s *Service) Refresh(ctx context.Context) (domain.Board, error) {
	return s.rebuild(ctx, true)
}

func (s *Service) rebuild(ctx context.Context, force bool) (domain.Board, error) {
	ctx, cancel := s.longOperationContext(ctx)
	defer cancel()

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// Пока ждали блокировку, доску мог пересобрать другой запрос.
	if !force {
		if board, ok := s.fresh(); ok {
			return board, nil
		}
	}

	now := s.nower.Now()
	month := nower.Month(now, s.loc)
	since := nower.MonthStart(now, s.loc)
	ctx = logging.WithLogRepository(ctx, s.cfg.GitHub.Repository())
	ctx = logging.WithLogMonth(ctx, month)

	page, err := s.fetcher.CommitsSince(ctx, since)
	if err != nil {
		return domain.Board{}, logging.WrapError(ctx, err)
	}
	ctx = logging.WithLogCommitsCount(ctx, len(page.Commits))

	board := BuildBoard(page, BuildOptions{
		Repository:  s.cfg.GitHub.Repository(),
		Month:       month,
		Since:       since,
		GeneratedAt: now,
		Location:    s.loc,
		Blacklist:   s.cfg.Board.Blacklist,
		SeedFormat:  s.cfg.Board.SeedFormat,
		RecentLimit: s.cfg.Board.RecentLimit,
	})
	ctx = logging.WithLogSeed(ctx, board.Seed)
	metrics.IncBoardsBuilt()
	metrics.SetPrizeEntrants(len(board.PrizeRank))
	slog.InfoContext(ctx, "board rebuilt", "total_solves", board.TotalSolves, "authors", len(board.Standings))

	s.store(board, now)
	s.archiveBoard(ctx, board)
	s.notify(board)
	return board, nil
}

// archiveBoard сохраняет доску в архив. Ошибка архива не мешает отдавать актуальную доску.
func (s *Service) archiveBoard(ctx context.Context, board domain.Board) {
	if s.archive == nil {
		return
	}
	err := s.withTransaction(ctx, func(ctx context.Context) error {
		return s.archive.SaveBoard(ctx, board)
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to archive board", "error", err)
		return
	}
	metrics.IncBoardsArchived()
}

func (s *Service) withTransaction(ctx context.Context, fn func(context.Context) error) error {
	if s.trMgr == nil {
		return fn(ctx)
	}
	return s.trMgr.Do(ctx, fn)
}

// ArchivedBoard возвращает сохранённую доску за месяц YYYY-MM.
func (s *Service) ArchivedBoard(ctx context.Context, month string) (domain.Board, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	month, err := ValidateMonth(month)
	if err != nil {
		return domain.Board{}, err
	}
	if s.archive == nil {
		return domain.Board{}, domain.ErrArchiveDisabled
	}
	return s.archive.GetBoard(ctx, s.cfg.GitHub.Repository(), month)
}

// ArchivedMonths возвращает месяцы архива от новых к старым.
func (s *Service) ArchivedMonths(ctx context.Context) ([]string, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if s.archive == nil {
		return nil, domain.ErrArchiveDisabled
	}
	return s.archive.ListMonths(ctx, s.cfg.GitHub.Repository())
}

// PreviewDraw проводит розыгрыш на произвольном взвешенном списке.
// Пустой seed выводится из длины списка по board.seed_format.
func (s *Service) PreviewDraw(ctx context.Context, entries []string, seed string) (domain.LotteryDraw, error) {
	if err := ValidateEntries(entries); err != nil {
		return domain.LotteryDraw{}, err
	}
	if err := ValidateSeed(seed); err != nil {
		return domain.LotteryDraw{}, err
	}
	draw := lottery.Draw(entries, s.cfg.Board.SeedFormat, seed)
	slog.DebugContext(logging.WithLogSeed(ctx, draw.Seed), "lottery preview", "entries", len(entries))
	return draw, nil
}

// Subscribe регистрирует получателя пересобранных досок. Возвращает функцию отписки.
func (s *Service) Subscribe(fn func(domain.Board)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Service) notify(board domain.Board) {
	s.subsMu.Lock()
	fns := make([]func(domain.Board), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(board)
	}
}

// Current возвращает последнюю собранную доску без обращения к GitHub.
func (s *Service) Current() (domain.Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.cached
}

func (s *Service) store(board domain.Board, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = board
	s.cachedAt = at
	s.cached = true
}

func (s *Service) fresh() (domain.Board, bool) {
	board, ok := s.sameMonth()
	if !ok {
		return domain.Board{}, false
	}
	s.mu.RLock()
	cachedAt := s.cachedAt
	s.mu.RUnlock()
	if s.nower.Now().Sub(cachedAt) >= s.cfg.Board.CacheTTL {
		return domain.Board{}, false
	}
	return board, true
}

func (s *Service) sameMonth() (domain.Board, bool) {
	board, ok := s.Current()
	if !ok || board.Month != nower.Month(s.nower.Now(), s.loc) {
		return domain.Board{}, false
	}
	return board, true
}

// HealthCheck возвращает состояние зависимостей сервиса.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.health == nil {
		return nil
	}
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()
	return s.health.Ping(ctx)
}

// shortOperationContext создаёт контекст с таймаутом для обычных операций.
func (s *Service) shortOperationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.Timeouts.Operation)
}

// longOperationContext создаёт контекст с таймаутом для длительных операций.
func (s *Service) longOperationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.Timeouts.LongOperation)
}
