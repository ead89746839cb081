package service

import (
	"errors"

	"github.com/go-arcade/edo/pkg/http"
	"gorm.io/gorm"
)

// repoErr converts store errors into coded errors. entity names the record in
// NotFound and Conflict messages. Anything else is returned as is and ends up
// as an unexpected error at the router.
func repoErr(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.NewNotFound(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.NewConflict(entity + " already exists")
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
