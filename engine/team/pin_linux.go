// File: engine/team/pin_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux CPU pinning for team members via sched_setaffinity.

//go:build linux

package team

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinThread binds the calling goroutine's OS thread to one CPU, chosen
// round-robin from the member index. The returned func releases the
// binding and the thread lock. Failures degrade to unpinned execution.
func pinThread(member int) func() {
	runtime.LockOSThread()
	cpu := member % runtime.NumCPU()
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		runtime.UnlockOSThread()
		return func() {}
	}
	return func() {
		var all unix.CPUSet
		all.Zero()
		for i := 0; i < runtime.NumCPU(); i++ {
			all.Set(i)
		}
		unix.SchedSetaffinity(0, &all)
		runtime.UnlockOSThread()
	}
}
