package apperr

import "errors"

// Sentinel errors shared by every service. The HTTP layer maps them to
// status codes with errors.Is; nothing below the handlers knows about HTTP.
var (
	ErrUnauthenticated = errors.New("authentification requise")
	ErrForbidden       = errors.New("acces refuse")
	ErrNotFound        = errors.New("introuvable")
	ErrConflict        = errors.New("conflit")
	ErrInvalidArgument = errors.New("donnees invalides")
	ErrInvalidState    = errors.New("etat invalide")
)
