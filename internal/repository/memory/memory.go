// Package memory holds map-backed implementations of the repository
// interfaces. They return the same gorm sentinel errors as the postgres
// implementations so services stay storage-agnostic; the check-in rule
// tests run against them with no database.
package memory

import "github.com/jvmedeiros/gym-checkin-api/internal/repository"

func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		User:    NewUserRepository(),
		Session: NewSessionRepository(),
		Gym:     NewGymRepository(),
		CheckIn: NewCheckInRepository(),
	}
}
