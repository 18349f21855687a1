package service

import (
	"errors"

	"investigacion/internal/apierror"

	"gorm.io/gorm"
)

// traducir maps storage errors onto the API taxonomy. Errors it does not
// recognize are returned unchanged and end up as 500s.
func traducir(err error, noEncontrado, conflicto string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apierror.NoEncontrado(noEncontrado)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apierror.Conflicto(conflicto)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apierror.Validacion("Referencia inexistente")
	}
	return err
}

func esNoEncontrado(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }
