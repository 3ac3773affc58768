package object

import "fmt"

// FaultCode identifies an internal consistency fault. Faults are
// programming errors (corrupted handle, tag mismatch), not part of the
// recoverable result-code taxonomy, and surface as panics.
type FaultCode int

// Stable fault codes - do not change values.
const (
	FaultInvalidHandle   FaultCode = 2001 // RT2001: invalid handle
	FaultUseAfterReclaim FaultCode = 2002 // RT2002: use after reclaim
	FaultImmediateDeref  FaultCode = 2003 // RT2003: dereference of immediate
	FaultTagMismatch     FaultCode = 2004 // RT2004: tag mismatch
	FaultBadArgument     FaultCode = 2005 // RT2005: malformed call
)

// String returns the code as "RT2001" format.
func (c FaultCode) String() string {
	return fmt.Sprintf("RT%d", int(c))
}

// Fault is a fatal internal consistency error.
type Fault struct {
	Code    FaultCode
	Message string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("fault %s: %s", f.Code, f.Message)
}
