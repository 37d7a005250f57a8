package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/annel0/mmo-blockarea/internal/app"
	"github.com/annel0/mmo-blockarea/internal/config"
	"github.com/annel0/mmo-blockarea/internal/logging"
	_ "github.com/annel0/mmo-blockarea/internal/world/block/implementations"
)

func main() {
	configPath := flag.String("config", "", "Путь к YAML конфигурации (по умолчанию $GAME_CONFIG)")
	flag.Parse()

	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка загрузки конфигурации: %v", err)
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	logging.SetDefaultLevel(logging.ParseLevel(cfg.Server.LogLevel))

	logging.Info("🧱 Запуск сервера областей блоков (seed=%d)", cfg.World.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logging.Error("❌ Ошибка сборки приложения: %v", err)
		log.Fatalf("❌ Ошибка сборки приложения: %v", err)
	}

	metricsAddr := fmt.Sprintf(":%d", cfg.Server.GetMetricsPort())
	logging.Info("✅ Сервер запущен, метрики: http://localhost%s/metrics", metricsAddr)

	if err := application.Run(ctx, metricsAddr); err != nil {
		logging.Error("❌ Ошибка при остановке: %v", err)
	}

	// === GRACEFUL SHUTDOWN ===
	logging.Debug("Закрытие хранилищ и соединений...")
	if err := application.Close(); err != nil {
		logging.Error("❌ Ошибка освобождения ресурсов: %v", err)
	}

	logging.Info("👋 Сервер успешно остановлен")
}
