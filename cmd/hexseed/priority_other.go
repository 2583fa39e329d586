//go:build !windows

package main

// raisePriority is a no-op outside Windows. Run the binary under nice(1) for
// a larger share of the CPU.
func raisePriority() error {
	return nil
}
