package admin

import "github.com/minikart-next/minikart/internal/provider"

// Handler serves the admin API. Routes mounting it sit behind the admin
// role check.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
