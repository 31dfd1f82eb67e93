package probe

import "errors"

// DenialError marks an error as an access denial so callers can tell it apart
// from programming errors. Every failure kind (missing key file, bad JSON,
// auth rejection, quota, network) collapses into this one type; the wrapped
// error keeps the distinguishing text.
type DenialError struct {
	Err error
}

func (e *DenialError) Error() string {
	if e == nil || e.Err == nil {
		return "access denied"
	}
	return e.Err.Error()
}

func (e *DenialError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewDenialError(err error) error {
	if err == nil {
		return nil
	}
	return &DenialError{Err: err}
}

func IsDenialError(err error) bool {
	var denial *DenialError
	return errors.As(err, &denial)
}
