package roundlcd

import "errors"

// TransferError is reported when the transport to the display fails.
type TransferError struct {
	// Op is the operation that failed.
	Op string

	// Err is the underlying bus or pin error.
	Err error
}

func (e *TransferError) Error() string {
	return "roundlcd: " + e.Op + ": " + e.Err.Error()
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

func transferError(op string, err error) error {
	if err == nil {
		return nil
	}
	var te *TransferError
	if errors.As(err, &te) {
		return err
	}
	return &TransferError{Op: op, Err: err}
}
