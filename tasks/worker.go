package tasks

import (
	"context"
	"encoding/json"
	"log"

	"keazy/config"

	"github.com/hibiken/asynq"
)

// Retrainer is what the worker needs from the ML client.
type Retrainer interface {
	Retrain(ctx context.Context) error
}

// NewClient builds the asynq client used to enqueue retrain triggers.
func NewClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitRetrainWorker runs the async worker in background.
func InitRetrainWorker(ml Retrainer) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRetrainTrigger, handleRetrainTask(ml))

	go func() {
		log.Println("[RetrainWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[RetrainWorker] worker stopped: %v", err)
		}
	}()
}

func handleRetrainTask(ml Retrainer) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload RetrainPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return err
		}
		log.Printf("[RetrainWorker] triggering retrain at %d logged queries", payload.LogCount)
		return ml.Retrain(ctx)
	}
}
