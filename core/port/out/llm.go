// Package out defines outbound ports consumed by the core services.
package out

import "context"

// TextGenerator is the generative text service port. Generate returns the
// raw model output for a prompt; implementations must return an error
// carrying the SERVICE_UNAVAILABLE code for transport, auth, and quota
// failures, and must never classify a malformed-but-delivered response as
// such an error. The pipeline treats unavailability as fatal and anything
// else as a degraded result.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, systemInstruction string, temperature float32) (string, error)
}
