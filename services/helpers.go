package services

import (
	"errors"

	"github.com/matchday/roster-system/repositories"
)

// mapRepositoryError translates repository sentinel errors into their service
// counterparts; anything unrecognized passes through for the generic 500 path.
func mapRepositoryError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrSchemaNotInitialized):
		return ErrSchemaNotInitialized
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	}
	return err
}

func notify(n Notifier, eventType string, payload interface{}) {
	if n != nil {
		n.Notify(eventType, payload)
	}
}
