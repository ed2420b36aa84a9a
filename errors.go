// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package itc

import "code.hybscloud.com/iox"

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Enqueue: the channel is full (backpressure)
// For Dequeue: the channel is empty (no data available)
//
// ErrWouldBlock is a control flow signal, not a failure. The caller
// should retry later (with backoff or yield) rather than propagating the
// error. The typed Chan façade reports the same conditions as a false
// return from TrySend/TryRecv; the error form is used by the
// ChanIndirect handle API.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := c.Enqueue(handle)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if itc.IsWouldBlock(err) {
//	        backoff.Wait() // Adaptive backpressure
//	        continue
//	    }
//	    return err // Unexpected error
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil or ErrWouldBlock.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
