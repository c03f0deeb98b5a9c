// File: engine/team/pin_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// CPU pinning is a no-op outside Linux.

//go:build !linux

package team

func pinThread(int) func() {
	return func() {}
}
