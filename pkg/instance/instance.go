package instance

import "github.com/arellano-digital/alternativas-backend/pkg/env"

// GetID returns the API instance identifier used in log fields, so runs of
// multiple replicas stay distinguishable.
func GetID() string {
	return env.Get("ALTERNATIVAS_INSTANCE_ID", "api-0")
}
