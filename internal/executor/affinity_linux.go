//go:build linux

package executor

import (
	"golang.org/x/sys/unix"
)

// pinThread binds the calling OS thread to a single CPU
func pinThread(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}

// allowedCPUs returns the CPUs in the calling thread's affinity mask, in
// ascending order, or nil if the mask cannot be read
func allowedCPUs() []int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil
	}

	count := set.Count()
	cpus := make([]int, 0, count)
	for cpu := 0; len(cpus) < count && cpu < maxCPUs; cpu++ {
		if set.IsSet(cpu) {
			cpus = append(cpus, cpu)
		}
	}
	return cpus
}

// currentThreadID returns the kernel thread id of the calling thread
func currentThreadID() int {
	return unix.Gettid()
}
