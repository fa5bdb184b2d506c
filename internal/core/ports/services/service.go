package services

// ServiceContainer holds instances of all the application services.
// Handlers receive this container and depend only on the facade interfaces.
type ServiceContainer struct {
	Account AccountSvcFacade
	Posting PostingSvcFacade
}
