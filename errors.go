package seqnet

// Error is a wrapper for specific types of errors for which there is no additional information
// necessary. These errors are defined as global variables.
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be returned.
var (
	ErrNotCompiled   = Error{"Model has not been compiled"}
	ErrCompiledTwice = Error{"Model has already been compiled"}
	ErrEmptyData     = Error{"Supplier has no sequences"}
)

// NilArgError documents errors resulting from certain arguments provided to a function being nil.
type NilArgError struct{ string }

func (err NilArgError) Error() string {
	return err.string + " is nil"
}

// SizeMismatchError documents errors where the dimensions of provided data do not match those of
// the Model.
type SizeMismatchError struct {
	Expected, Got int

	// the quantity that did not match, e.g. "inputs"
	Context string
}

func (err SizeMismatchError) Error() string {
	return "size mismatch for " + err.Context
}
