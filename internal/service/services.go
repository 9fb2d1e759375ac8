package service

import (
	"github.com/jvmedeiros/gym-checkin-api/internal/config"
	"github.com/jvmedeiros/gym-checkin-api/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Gym     *GymService
	CheckIn *CheckInService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, repos.Session, cfg),
		Gym:     NewGymService(repos.Gym),
		CheckIn: NewCheckInService(repos.CheckIn, repos.Gym, nil),
	}
}
