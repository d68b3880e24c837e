package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-hrsuit/internal/config"
	"go-hrsuit/internal/dashboard"
	"go-hrsuit/internal/events"
	"go-hrsuit/internal/leave"
	"go-hrsuit/internal/messaging/kafka/consumer"
	"go-hrsuit/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer records leave history and refreshes the dashboard cache from
// the leave and employee topics until interrupted.
func RunConsumer(cfg config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.Retries)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, cfg.Retries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	historyRepo := leave.NewHistoryRepository(gormDB)
	leaveService := leave.NewService(sqlDB, leave.NewRepository(gormDB), historyRepo, nil, logger)
	dashboardService := dashboard.NewService(dashboard.NewRepository(gormDB), leaveService, rdb, logger)

	leaveReader := newReader(cfg.Kafka, events.LeaveStatusChangedTopic)
	defer leaveReader.Close()
	employeeReader := newReader(cfg.Kafka, events.EmployeeCreatedTopic)
	defer employeeReader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeLeaveStatus(ctx, leaveReader, historyRepo, dashboardService, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, employeeReader, dashboardService, logger)
	}()
	wg.Wait()

	log.Info("consumer shutting down")
	return nil
}

func newReader(cfg config.KafkaConfig, topic string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{cfg.Broker},
		Topic:       topic,
		GroupID:     cfg.ConsumerGroup,
		StartOffset: kafkago.FirstOffset,
	})
}
