package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

const (
	// TaskWelcome is the task type string Asynq uses to route welcome
	// email jobs to their handler.
	TaskWelcome = "email:welcome"
)

// WelcomeEmailPayload is the JSON payload stored in Redis for a
// welcome email task.
type WelcomeEmailPayload struct {
	To        string `json:"to"`
	FirstName string `json:"first_name"`
}

// NewWelcomeEmailTask constructs the Asynq task for sending a welcome email.
//
// The task retries up to 3 times, runs on the default queue, and is killed
// if the handler takes longer than 30 seconds.
func NewWelcomeEmailTask(to, firstName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:        to,
		FirstName: firstName,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal welcome email payload")
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueWelcomeEmail pushes a welcome email task onto the queue. The email
// is sent asynchronously by the worker server.
func (j *JobService) EnqueueWelcomeEmail(to, firstName string) error {
	task, err := NewWelcomeEmailTask(to, firstName)
	if err != nil {
		return err
	}

	info, err := j.Client.Enqueue(task)
	if err != nil {
		return errors.Wrap(err, "failed to enqueue welcome email task")
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("to", to).
		Msg("Enqueued welcome email task")

	return nil
}
