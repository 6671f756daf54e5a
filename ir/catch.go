package ir

import "github.com/wippyai/c0/errors"

// Catch runs fn and returns the *errors.Error it panicked with, if any.
// Other panics propagate.
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*errors.Error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	fn()
	return nil
}
