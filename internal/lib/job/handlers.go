package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agamjotsodhi/jobly/internal/config"
	"github.com/agamjotsodhi/jobly/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// InitHandlers builds the dependencies task handlers need. Must be called
// before Start so workers have an email client to send with.
func (j *JobService) InitHandlers(config *config.Config, logger *zerolog.Logger) {
	j.email = email.NewClient(config, logger)
}

// handleWelcomeEmailTask processes a welcome email task: decode the payload,
// send the email, and let Asynq retry on failure.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := j.email.SendWelcomeEmail(p.To, p.FirstName); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")

	return nil
}
