package apperror

import "errors"

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrSessionRequired   = errors.New("session id is required")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrUnknownAction     = errors.New("unknown action")
	ErrUnknownStorage    = errors.New("unknown storage driver")
	ErrRedisAddrNotFound = errors.New("redis address string is empty")
)
