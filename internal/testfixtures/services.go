package testfixtures

import (
	"time"

	"github.com/example/household-roster/internal/application"
)

// ServiceFactory assembles application services over a shared MemoryStore
// with a deterministic clock and identifier sequence, so end-to-end tests can
// exercise the real service stack without a database.
type ServiceFactory struct {
	Store *MemoryStore
	Clock *Clock
	IDs   *IDGenerator
}

// ServiceFactoryOption configures the factory.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory builds a factory with fresh fixtures unless overridden.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Store: NewMemoryStore(),
		Clock: NewClock(time.Time{}),
		IDs:   NewIDGenerator("fixture"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	return factory
}

// WithClock overrides the factory clock.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(f *ServiceFactory) {
		f.Clock = clock
	}
}

// WithIDGenerator overrides the factory identifier sequence.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(f *ServiceFactory) {
		f.IDs = generator
	}
}

// NewClientService returns a ClientService over the shared store.
func (f *ServiceFactory) NewClientService() *application.ClientService {
	return application.NewClientService(f.Store, f.IDs.NextFunc(), f.Clock.NowFunc())
}

// NewHousekeeperService returns a HousekeeperService over the shared store.
func (f *ServiceFactory) NewHousekeeperService() *application.HousekeeperService {
	return application.NewHousekeeperService(f.Store, f.IDs.NextFunc(), f.Clock.NowFunc())
}

// NewLeadService returns a LeadService over the shared store. cacheTTL of
// zero selects the service default.
func (f *ServiceFactory) NewLeadService(cacheTTL time.Duration) *application.LeadService {
	return application.NewLeadService(f.Store, f.Clock.NowFunc(), cacheTTL)
}

// NewAuthService returns an AuthService over the shared store.
func (f *ServiceFactory) NewAuthService(sessionTTL time.Duration) *application.AuthService {
	return application.NewAuthService(f.Store, f.Store, nil, f.IDs.NextFunc(), f.IDs.NextFunc(), f.Clock.NowFunc(), sessionTTL)
}
