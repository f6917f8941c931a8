package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/storyboard/backend/internal/aiclient"
	"github.com/OFFIS-RIT/storyboard/backend/internal/db"
	"github.com/OFFIS-RIT/storyboard/backend/internal/queue"
	"github.com/OFFIS-RIT/storyboard/backend/internal/timing"
	"github.com/OFFIS-RIT/storyboard/backend/internal/util"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/ai"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/leaselock"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/logger"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/logger/console"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/relation"
	pgstore "github.com/OFFIS-RIT/storyboard/backend/pkg/store/pgx"

	"github.com/jackc/pgx/v5/pgxpool"
)

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	// GraphAiClient
	aiClient, err := aiclient.FromEnv()
	if err != nil {
		logger.Fatal("Could not create AI client", "err", err)
	}

	// Init pgx client
	databaseURL := util.GetEnv("DATABASE_URL")
	if err := db.Migrate(util.GetEnvString("MIGRATIONS_PATH", "migrations"), databaseURL); err != nil {
		logger.Fatal("Failed to migrate database", "err", err)
	}
	pgConn, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Fatal("Unable to connect to database", "err", err)
	}
	defer pgConn.Close()

	analyzer := relation.NewAnalyzer(relation.AnalyzerParams{
		Storage:   pgstore.NewRelationshipDBStorage(pgConn),
		Suggester: relation.NewAISuggester(aiClient, aiclient.SuggesterOptionsFromEnv()),
		Locker: leaselock.NewProjectLocker(
			leaselock.New(pgConn),
			util.GetEnvDuration("RELATIONSHIP_LOCK_TTL", 5*time.Minute),
		),
	})

	timer := timing.New(pgConn)

	// Init rabbitmq
	conn := queue.Init()
	defer conn.Close()

	// Init rabbitmq queues if not exist
	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, queue.Queues); err != nil {
		logger.Fatal("Failed to setup queues", "err", err)
	}

	// One message at a time; an analysis holds the project lease until done
	err = ch.Qos(1, 0, false)
	if err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	msgs, err := ch.Consume(
		queue.RelationshipQueue,
		queue.RelationshipQueue+"_consumer",
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		logger.Fatal("Failed to start consuming", "queue", queue.RelationshipQueue, "err", err)
	}

	logger.Info("Listening for messages")

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("Stopping message processor")
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Info("Message channel closed", "queue", queue.RelationshipQueue)
					stop()
					return
				}

				startTime := time.Now()
				logger.Info("Received message", "queue", queue.RelationshipQueue)

				if err := queue.ProcessRelationshipMessage(ctx, analyzer, timer, msg.Body); err != nil {
					logger.Error("Error processing message", "queue", queue.RelationshipQueue, "err", err)
					queue.HandleProcessingError(ch, msg, queue.RelationshipQueue, err)
				} else {
					if err := msg.Ack(false); err != nil {
						logger.Error("Failed to ack message", "err", err)
					}
					logger.Info("Message processed successfully", "queue", queue.RelationshipQueue)
				}

				logMetrics(aiClient)
				logger.Info("Processing time", "duration", formatDuration(time.Since(startTime)))
				logger.Info("Waiting for next message")
				aiClient.ResetMetrics()
			}
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, exiting...")
}

func logMetrics(client ai.GraphAIClient) {
	metrics := client.GetMetrics()
	logger.Info(
		"AI Metrics",
		"input_tokens", metrics.InputTokens,
		"output_tokens", metrics.OutputTokens,
		"total_tokens", metrics.TotalTokens,
		"duration", formatDuration(time.Duration(metrics.DurationMs)*time.Millisecond),
	)
}
