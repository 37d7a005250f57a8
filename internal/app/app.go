// Package app собирает компоненты сервера областей блоков из конфигурации.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/annel0/mmo-blockarea/internal/cache"
	"github.com/annel0/mmo-blockarea/internal/config"
	"github.com/annel0/mmo-blockarea/internal/edit"
	"github.com/annel0/mmo-blockarea/internal/eventbus"
	"github.com/annel0/mmo-blockarea/internal/logging"
	"github.com/annel0/mmo-blockarea/internal/observability"
	"github.com/annel0/mmo-blockarea/internal/storage"
	"github.com/annel0/mmo-blockarea/internal/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// App владеет всеми долгоживущими компонентами процесса
type App struct {
	Config   *config.Config
	World    *world.WorldManager
	Storage  *storage.WorldStorage
	Prefabs  storage.PrefabRepo
	Bus      eventbus.EventBus
	Edit     *edit.Service
	Registry *prometheus.Registry
	Metrics  *observability.AreaMetrics

	exporter      *eventbus.MetricsExporter
	prefabCache   *cache.PrefabCache
	cacheRepo     cache.CacheRepo
	invalidator   cache.CacheInvalidator
	shutdownTrace func(context.Context) error

	// closers вызываются в обратном порядке
	closers []func() error
}

// New создает приложение. При ошибке уже открытые ресурсы освобождаются.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{Config: cfg}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	a.shutdownTrace, err = observability.InitTelemetry(ctx, cfg.Server.ServiceName, cfg.Server.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации трассировки: %w", err)
	}
	a.closers = append(a.closers, func() error { return a.shutdownTrace(context.Background()) })

	if err = a.initStorage(); err != nil {
		return nil, err
	}
	a.initWorld()
	if err = a.initPrefabs(ctx); err != nil {
		return nil, err
	}
	if err = a.initBus(); err != nil {
		return nil, err
	}
	if err = a.initMetrics(); err != nil {
		return nil, err
	}

	// Журнал правок пишется в файл, в консоль попадают только предупреждения
	audit := logging.GetEditLogger()
	if lerr := logging.GetLoggerManager().SetLogLevel("edit", logging.WARN, logging.INFO); lerr != nil {
		logging.Warn("Журнал правок пишется в консоль: %v", lerr)
	}

	a.Edit = edit.NewService(a.World, edit.Config{
		UndoDepth: cfg.Edit.UndoDepth,
		MaxVolume: cfg.Edit.MaxVolume,
	},
		edit.WithPrefabs(a.Prefabs),
		edit.WithEventBus(a.Bus),
		edit.WithMetrics(a.Metrics),
		edit.WithAuditLogger(audit),
	)

	logging.Info("Приложение собрано: prefabs=%s cache=%v bus=%s",
		cfg.Storage.PrefabBackend, cfg.Cache.Enabled, busKind(cfg))
	return a, nil
}

func busKind(cfg *config.Config) string {
	if cfg.EventBus.URL != "" {
		return "jetstream"
	}
	return "memory"
}

func (a *App) initStorage() error {
	var (
		ws  *storage.WorldStorage
		err error
	)
	if a.Config.Storage.DataPath == "" {
		ws, err = storage.NewInMemoryWorldStorage()
	} else {
		ws, err = storage.NewWorldStorage(a.Config.Storage.DataPath)
	}
	if err != nil {
		return fmt.Errorf("ошибка открытия хранилища мира: %w", err)
	}
	a.Storage = ws
	a.closers = append(a.closers, ws.Close)
	return nil
}

func (a *App) initWorld() {
	a.World = world.NewWorldManager(a.Config.World.Seed)
	a.World.SetChunkStore(a.Storage)
	a.World.SetGenerateMissing(a.Config.World.GenerateMissing)
	a.World.SetAutosaveInterval(a.Config.World.AutosaveInterval())
}

func (a *App) initPrefabs(ctx context.Context) error {
	var repo storage.PrefabRepo
	switch a.Config.Storage.PrefabBackend {
	case config.PrefabBackendMaria:
		maria, err := storage.NewMariaPrefabRepo(a.Config.Storage.MariaDSN)
		if err != nil {
			return fmt.Errorf("ошибка подключения к MariaDB: %w", err)
		}
		a.closers = append(a.closers, maria.Close)
		repo = maria
	case config.PrefabBackendMemory:
		repo = storage.NewMemoryPrefabRepo()
	default:
		repo = storage.NewBadgerPrefabRepo(a.Storage)
	}

	if !a.Config.Cache.Enabled {
		a.Prefabs = repo
		return nil
	}

	cc := a.Config.Cache
	if cc.NATSURL != "" {
		inv, err := cache.NewNATSInvalidator(&cache.InvalidatorConfig{
			NATSURL: cc.NATSURL,
			Subject: cc.Subject,
		}, "")
		if err != nil {
			return fmt.Errorf("ошибка подключения к NATS: %w", err)
		}
		a.invalidator = inv
		a.closers = append(a.closers, inv.Close)
	}

	cacheCfg := &cache.CacheConfig{
		RedisURL:      cc.RedisURL,
		RedisPassword: cc.RedisPassword,
		RedisDB:       cc.RedisDB,
		DefaultTTL:    cc.TTL(),
	}
	if cc.RedisURL != "" {
		rc, err := cache.NewRedisCache(cacheCfg, a.invalidator)
		if err != nil {
			return fmt.Errorf("ошибка подключения к Redis: %w", err)
		}
		a.cacheRepo = rc
	} else {
		a.cacheRepo = cache.NewMemoryCache(cacheCfg, a.invalidator)
	}
	a.closers = append(a.closers, a.cacheRepo.Close)

	pc, err := cache.NewPrefabCache(repo, a.cacheRepo, cc.TTL())
	if err != nil {
		return err
	}
	a.prefabCache = pc
	a.closers = append(a.closers, func() error { pc.Close(); return nil })

	if a.invalidator != nil {
		if err := a.invalidator.SubscribeInvalidations(ctx, pc.HandleInvalidation); err != nil {
			return fmt.Errorf("ошибка подписки на инвалидации: %w", err)
		}
	}
	a.Prefabs = pc
	return nil
}

func (a *App) initBus() error {
	ec := a.Config.EventBus
	if ec.URL == "" {
		a.Bus = eventbus.NewMemoryBus(ec.Capacity)
	} else {
		js, err := eventbus.NewJetStreamBus(ec.URL, ec.Stream, ec.RetentionDuration())
		if err != nil {
			return fmt.Errorf("ошибка подключения к JetStream: %w", err)
		}
		a.Bus = js
	}
	eventbus.Init(a.Bus)
	a.closers = append(a.closers, a.Bus.Close)
	return nil
}

func (a *App) initMetrics() error {
	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m, err := observability.NewAreaMetrics(a.Registry)
	if err != nil {
		return fmt.Errorf("ошибка регистрации метрик областей: %w", err)
	}
	a.Metrics = m

	exp, err := eventbus.NewMetricsExporter(a.Bus, a.Registry)
	if err != nil {
		return fmt.Errorf("ошибка регистрации метрик шины: %w", err)
	}
	a.exporter = exp
	return nil
}

// Run запускает фоновые процессы и блокируется до отмены ctx.
// При metricsAddr == "" HTTP эндпоинт метрик не поднимается.
func (a *App) Run(ctx context.Context, metricsAddr string) error {
	g, ctx := errgroup.WithContext(ctx)

	a.World.Run(ctx)

	a.exporter.Start()
	g.Go(func() error {
		<-ctx.Done()
		a.exporter.Stop()
		return nil
	})

	sub, err := eventbus.StartLoggingListener(ctx, a.Bus)
	if err != nil {
		return fmt.Errorf("ошибка подписки логгера событий: %w", err)
	}
	g.Go(func() error {
		<-ctx.Done()
		sub.Unsubscribe()
		return nil
	})

	if metricsAddr != "" {
		observability.ServeMetrics(ctx, metricsAddr, a.Registry)
	}

	g.Go(func() error {
		<-ctx.Done()
		return a.World.Stop()
	})

	return g.Wait()
}

// CacheMetrics возвращает метрики кеша заготовок или nil, если кеш выключен
func (a *App) CacheMetrics() *cache.CacheMetrics {
	if a.prefabCache == nil {
		return nil
	}
	return a.prefabCache.Metrics()
}

// Close освобождает ресурсы в порядке, обратном открытию
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
