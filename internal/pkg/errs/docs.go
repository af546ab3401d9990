// Package errs holds the typed errors shared by the domain, application and adapter layers.
//
// Every error type pairs a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...) with a
// struct carrying the offending parameter, so callers can branch with errors.Is and still
// inspect details with errors.As:
//
//	err := order.Complete()
//	if errors.Is(err, errs.ErrValueIsInvalid) {
//	    // reject
//	}
//
// Constructors come in two flavours, New<Type>Error and New<Type>ErrorWithCause.
package errs
