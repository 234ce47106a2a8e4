package service

import (
	"time"

	"renttrack-backend/internal/domain"
)

// Clock supplies the calendar day used by status math. Injected so tests can
// pin "today".
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Today() time.Time {
	return domain.CivilDate(time.Now().UTC())
}

func NewClock() Clock {
	return systemClock{}
}
