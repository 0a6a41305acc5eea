// Package errors provides coded errors for blocktext.
//
// Every contract violation a renderer detects (an unmatched EndBlock, a pre
// region left open, a column wider than its declared width, ...) is reported
// as an *Error carrying one of the ErrorCode constants, so callers and tests
// can match on the code instead of the message:
//
//	if errors.IsErrorCode(err, errors.ErrUnbalancedBlock) {
//		...
//	}
package errors
