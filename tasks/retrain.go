// Package tasks holds the async retrain trigger: the orchestrator enqueues a
// task each time the audit log crosses a volume threshold, and the worker
// asks the external classifier to retrain from approved logs.
package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeRetrainTrigger = "retrain:trigger"

// Enqueuer is the subset of *asynq.Client the orchestrator needs.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RetrainPayload records why the trigger fired.
type RetrainPayload struct {
	LogCount int64 `json:"logCount"`
}

// NewRetrainTask builds a retrain trigger task. Duplicate triggers within
// an hour collapse onto one queued task.
func NewRetrainTask(logCount int64) (*asynq.Task, error) {
	b, err := json.Marshal(RetrainPayload{LogCount: logCount})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRetrainTrigger, b, asynq.TaskID(TypeRetrainTrigger)), nil
}
