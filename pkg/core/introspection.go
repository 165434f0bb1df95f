package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	EventBufferSize int    `json:"event_buffer_size" yaml:"event_buffer_size"`
	RepositoryType  string `json:"repository_type" yaml:"repository_type"`
	Sections        int    `json:"sections" yaml:"sections"`
	Active          string `json:"active" yaml:"active"`
	Unsaved         int    `json:"unsaved" yaml:"unsaved"`
	Listeners       int    `json:"listeners" yaml:"listeners"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	return ServiceState{
		EventBufferSize: s.eventBufferSize,
		RepositoryType:  repoType,
		Sections:        len(s.doc.sections),
		Active:          s.active,
		Unsaved:         s.unsaved,
		Listeners:       s.relay.Len(),
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
