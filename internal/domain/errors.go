package domain

import "errors"

// Check-in rule errors
var (
	ErrGymNotFound         = errors.New("gym not found")
	ErrCheckInNotFound     = errors.New("check-in not found")
	ErrGymTooFar           = errors.New("gym is too far away")
	ErrCheckInLimitReached = errors.New("user already checked in today")
	ErrLateValidation      = errors.New("check-in can only be validated within 20 minutes of its creation")
	ErrAlreadyValidated    = errors.New("check-in is already validated")
)
