package domain

import "errors"

var (
	ErrBufferNotFound        = errors.New("buffer state not found")
	ErrProfileNotFound       = errors.New("buffer profile not found")
	ErrLocationNotFound      = errors.New("location not found")
	ErrBreachNotFound        = errors.New("breach event not found")
	ErrQualificationNotFound = errors.New("order qualification not found")
	ErrInvalidScope          = errors.New("invalid scope")
	ErrInvalidFactor         = errors.New("invalid decoupling factor")
	ErrInvalidTrigger        = errors.New("invalid recalculation trigger")
	ErrInvalidOrder          = errors.New("invalid sales order")
)
