// Package edit реализует сессии редактирования мира в духе WorldEdit:
// буфер обмена, вставка со стратегией слияния, заливка, линии, замена и откат.
// Каждая операция читает область из мира, изменяет ее и записывает обратно.
package edit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/annel0/mmo-blockarea/internal/blockarea"
	"github.com/annel0/mmo-blockarea/internal/eventbus"
	"github.com/annel0/mmo-blockarea/internal/logging"
	"github.com/annel0/mmo-blockarea/internal/observability"
	"github.com/annel0/mmo-blockarea/internal/storage"
	"github.com/annel0/mmo-blockarea/internal/vec"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const eventSource = "edit"

var (
	// ErrAreaTooLarge - объем операции превышает edit.max_volume
	ErrAreaTooLarge = errors.New("слишком большая область")
	// ErrEmptyClipboard - буфер обмена сессии пуст
	ErrEmptyClipboard = errors.New("буфер обмена пуст")
	// ErrNothingToUndo - стек отката пуст
	ErrNothingToUndo = errors.New("нечего отменять")
	// ErrSessionNotFound - сессия с таким ID не открыта
	ErrSessionNotFound = errors.New("сессия не найдена")
	// ErrNoPrefabRepo - сервис создан без хранилища заготовок
	ErrNoPrefabRepo = errors.New("хранилище заготовок не подключено")
)

// Config - ограничения сервиса
type Config struct {
	UndoDepth int // 0 отключает откат
	MaxVolume int
}

// Service хранит открытые сессии одного мира. Методы сервиса безопасны
// для конкурентного использования, методы отдельной сессии: нет.
type Service struct {
	world   blockarea.ChunkProvider
	cfg     Config
	prefabs storage.PrefabRepo
	bus     eventbus.EventBus
	metrics *observability.AreaMetrics
	audit   *logging.Logger
	tracer  trace.Tracer

	mu       sync.RWMutex
	sessions map[string]*Session
}

// Option настраивает необязательные зависимости сервиса
type Option func(*Service)

// WithPrefabs подключает хранилище заготовок для SaveClipboard/LoadClipboard
func WithPrefabs(repo storage.PrefabRepo) Option {
	return func(s *Service) { s.prefabs = repo }
}

// WithEventBus включает публикацию событий area.written и prefab.saved
func WithEventBus(bus eventbus.EventBus) Option {
	return func(s *Service) { s.bus = bus }
}

// WithMetrics включает Prometheus-метрики операций
func WithMetrics(m *observability.AreaMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAuditLogger включает журнал операций редактирования
func WithAuditLogger(l *logging.Logger) Option {
	return func(s *Service) { s.audit = l }
}

// NewService создает сервис редактирования поверх провайдера чанков
func NewService(world blockarea.ChunkProvider, cfg Config, opts ...Option) *Service {
	s := &Service{
		world:    world,
		cfg:      cfg,
		tracer:   otel.Tracer("github.com/annel0/mmo-blockarea/internal/edit"),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenSession открывает новую сессию для владельца
func (s *Service) OpenSession(owner string) *Session {
	sess := &Session{
		ID:      uuid.NewString(),
		Owner:   owner,
		Created: time.Now(),
		svc:     s,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ActiveSessions.Set(float64(n))
	}
	logging.Info("Открыта сессия редактирования %s (%s)", sess.ID, owner)
	return sess
}

// Session возвращает открытую сессию по ID
func (s *Service) Session(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// CloseSession закрывает сессию, освобождая буфер обмена и стек отката
func (s *Service) CloseSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ActiveSessions.Set(float64(n))
	}
	logging.Debug("Сессия редактирования %s закрыта", id)
}

// SessionCount возвращает количество открытых сессий
func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// checkVolume отклоняет операции над слишком большими областями
func (s *Service) checkVolume(region vec.Cuboid) error {
	region.Sort()
	if v := region.Volume(); v > s.cfg.MaxVolume {
		return fmt.Errorf("%w: %d блоков при ограничении %d", ErrAreaTooLarge, v, s.cfg.MaxVolume)
	}
	return nil
}

// startOp открывает span операции и возвращает функцию ее завершения,
// которая пишет метрики, статус span и лог.
func (s *Service) startOp(ctx context.Context, sess *Session, op string, region vec.Cuboid) (context.Context, func(changed int, err error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "edit."+op, trace.WithAttributes(
		attribute.String("session.id", sess.ID),
		attribute.String("region.min", region.P1.String()),
		attribute.String("region.max", region.P2.String()),
	))

	return ctx, func(changed int, err error) {
		span.SetAttributes(attribute.Int("blocks.changed", changed))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		if s.metrics != nil {
			s.metrics.Observe(op, start, changed, err)
		}

		traceID := span.SpanContext().TraceID().String()
		if s.audit != nil {
			s.audit.Info("%s owner=%s session=%s region=%s..%s changed=%d err=%v trace=%s",
				op, sess.Owner, sess.ID, region.P1, region.P2, changed, err, traceID)
		}
		if err != nil {
			logging.Warn("[edit] %s сессии %s завершилась ошибкой: %v trace=%s", op, sess.ID, err, traceID)
			return
		}
		logging.LogAreaOperation(op, region.P1, region.Size(), time.Since(start))
	}
}

// writeBack записывает область в мир и публикует событие.
// При частичной записи событие тоже публикуется, со списком отказавших чанков.
func (s *Service) writeBack(ctx context.Context, sess *Session, op string, area *blockarea.BlockArea, changed int) error {
	err := area.WriteAll(s.world)

	var partial *blockarea.PartialWriteError
	if err != nil && !errors.As(err, &partial) {
		return err
	}

	ev := eventbus.AreaWritten{
		SessionID: sess.ID,
		Operation: op,
		Min:       area.Origin(),
		Max:       area.Bounds().P2,
		DataTypes: int(area.DataTypes()),
		Changed:   changed,
	}
	if partial != nil {
		ev.Failed = partial.Failed
		if s.metrics != nil {
			s.metrics.ChunksFailed.Add(float64(len(partial.Failed)))
		}
	}
	s.publish(ctx, eventbus.EventAreaWritten, ev, sess.ID)
	return err
}

// publish отправляет событие в шину; ошибки шины не прерывают операцию
func (s *Service) publish(ctx context.Context, eventType string, payload any, correlationID string) {
	if s.bus == nil {
		return
	}
	env, err := eventbus.NewEnvelope(eventSource, eventType, payload)
	if err != nil {
		logging.Error("Не удалось сформировать событие %s: %v", eventType, err)
		return
	}
	env.CorrelationID = correlationID
	if err := s.bus.Publish(ctx, env); err != nil {
		logging.Warn("Не удалось опубликовать событие %s: %v", eventType, err)
	}
}
