package repositories

import "errors"

var (
	ErrCombinationNotFound = errors.New("pack combination not found")
)
