package app

import (
	"pact/internal/domain"
	identitysvc "pact/internal/services/identity"
	"pact/internal/store"
)

// Wire bundles the stores and services for the CLI.
type Wire struct {
	Store    domain.IdentityStore
	Identity domain.IdentityService
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) *Wire {
	fs := store.NewFileStore(cfg.Home)
	return &Wire{
		Store:    fs,
		Identity: identitysvc.New(fs),
	}
}
