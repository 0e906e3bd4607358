// Package services contains the application's business services. A service
// is anything with a start/stop lifecycle owned by a controller or by the
// application root.
package services

// Service is the common lifecycle contract.
type Service interface {
	Name() string
	Initialize() error
	Shutdown() error
}
