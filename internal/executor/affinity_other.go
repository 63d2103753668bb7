//go:build !linux

package executor

import "errors"

var errPinUnsupported = errors.New("cpu pinning not supported on this platform")

func pinThread(cpu int) error {
	return errPinUnsupported
}

func allowedCPUs() []int {
	return nil
}

func currentThreadID() int {
	return -1
}
