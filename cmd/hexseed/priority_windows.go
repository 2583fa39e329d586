//go:build windows

package main

import (
	"syscall"
	"unsafe"
)

const (
	highPriorityClass        = 0x00000080
	aboveNormalPriorityClass = 0x00008000

	processPowerThrottling               = 4
	processPowerThrottlingExecutionSpeed = 0x1
	processPowerThrottlingCurrentVersion = 1
)

var (
	kernel32                  = syscall.NewLazyDLL("kernel32.dll")
	procGetCurrentProcess     = kernel32.NewProc("GetCurrentProcess")
	procSetPriorityClass      = kernel32.NewProc("SetPriorityClass")
	procSetProcessInformation = kernel32.NewProc("SetProcessInformation")
)

type powerThrottlingState struct {
	Version     uint32
	ControlMask uint32
	StateMask   uint32
}

// raisePriority moves the search to the high priority class, falling back to
// above normal, and opts out of Efficiency Mode throttling.
func raisePriority() error {
	handle, _, _ := procGetCurrentProcess.Call()

	if ret, _, _ := procSetPriorityClass.Call(handle, highPriorityClass); ret == 0 {
		if ret, _, err := procSetPriorityClass.Call(handle, aboveNormalPriorityClass); ret == 0 {
			return err
		}
	}

	// Not available before Windows 10 1709.
	if procSetProcessInformation.Find() != nil {
		return nil
	}
	state := powerThrottlingState{
		Version:     processPowerThrottlingCurrentVersion,
		ControlMask: processPowerThrottlingExecutionSpeed,
	}
	ret, _, err := procSetProcessInformation.Call(
		handle,
		processPowerThrottling,
		uintptr(unsafe.Pointer(&state)),
		unsafe.Sizeof(state),
	)
	if ret == 0 {
		return err
	}
	return nil
}
