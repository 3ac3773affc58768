// Package errcode defines the result codes returned by native routines.
// The interpreter maps every non-zero code to the exception it raises at
// the call boundary; the hardware layer reports failures with the same
// codes, negated.
package errcode

import "fmt"

// Code is a native routine result. OK is zero, every failure code is a
// small positive integer.
type Code int

// Stable result codes - do not change values.
const (
	OK                 Code = iota // success
	Type                           // TypeError
	ZeroDivision                   // ZeroDivisionError
	Attribute                      // AttributeError
	Runtime                        // RuntimeError
	Value                          // ValueError
	Index                          // IndexError
	Key                            // KeyError
	NotImplemented                 // NotImplementedError
	Unsupported                    // UnsupportedError
	Overflow                       // OverflowError
	StopIteration                  // StopIteration
	Name                           // NameError
	IO                             // IOError
	ConnectionRefused              // ConnectionRefusedError
	ConnectionReset                // ConnectionResetError
	ConnectionAborted              // ConnectionAbortedError
	Timeout                        // TimeoutError
	Peripheral                     // PeripheralError
	InvalidPin                     // InvalidPinError
	InvalidHardwareStatus          // InvalidHardwareStatusError
	HardwareInit                   // HardwareInitializationError
)

var exceptionNames = [...]string{
	OK:                    "",
	Type:                  "TypeError",
	ZeroDivision:          "ZeroDivisionError",
	Attribute:             "AttributeError",
	Runtime:               "RuntimeError",
	Value:                 "ValueError",
	Index:                 "IndexError",
	Key:                   "KeyError",
	NotImplemented:        "NotImplementedError",
	Unsupported:           "UnsupportedError",
	Overflow:              "OverflowError",
	StopIteration:         "StopIteration",
	Name:                  "NameError",
	IO:                    "IOError",
	ConnectionRefused:     "ConnectionRefusedError",
	ConnectionReset:       "ConnectionResetError",
	ConnectionAborted:     "ConnectionAbortedError",
	Timeout:               "TimeoutError",
	Peripheral:            "PeripheralError",
	InvalidPin:            "InvalidPinError",
	InvalidHardwareStatus: "InvalidHardwareStatusError",
	HardwareInit:          "HardwareInitializationError",
}

// String returns the code as "E<n>" format, or "OK" for success.
func (c Code) String() string {
	if c == OK {
		return "OK"
	}
	return fmt.Sprintf("E%d", int(c))
}

// Exception returns the name of the exception the interpreter raises for
// this code. Empty for OK and for codes outside the enumeration.
func (c Code) Exception() string {
	if c < OK || int(c) >= len(exceptionNames) {
		return ""
	}
	return exceptionNames[c]
}

// Valid reports whether the code belongs to the enumeration.
func (c Code) Valid() bool {
	return c >= OK && int(c) < len(exceptionNames)
}

// IsPeripheral reports whether the code belongs to the band reserved for
// the hardware abstraction layer.
func (c Code) IsPeripheral() bool {
	return c >= Peripheral && c <= HardwareInit
}

// HAL returns the code as the hardware layer transmits it: negated.
// Negating a peripheral code yields its stable exception index, so the
// same value works on every board.
func (c Code) HAL() int {
	return -int(c)
}

// FromHAL recovers a result code from a hardware-layer return value.
// Non-negative values are returned as codes unchanged; negative values
// are negated back into the enumeration. Values outside the enumeration
// map to Runtime.
func FromHAL(n int) Code {
	if n < 0 {
		n = -n
	}
	c := Code(n)
	if !c.Valid() {
		return Runtime
	}
	return c
}
