// Package lib groups modules that do not fit strictly into the
// handler/service/repository layers.
//
// It holds background job processing (Redis/Asynq), the transactional
// email client (Resend), and access token issuing/verification.
package lib
