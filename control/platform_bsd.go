//go:build darwin || dragonfly || freebsd || netbsd || openbsd

// control/platform_bsd.go
// Author: momentics <momentics@gmail.com>
//
// Debug probes for the kqueue platforms.

package control

import "runtime"

// RegisterPlatformProbes registers BSD and Darwin platform probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.selector", func() any {
		return "kqueue"
	})
}
