package telemetry

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// SystemInfo is the diagnostics snapshot printed by the doctor command. It
// is collected only on explicit request and is not part of the per-episode
// pipeline.
type SystemInfo struct {
	Hostname     string        `json:"hostname"`
	OS           string        `json:"os"`
	Arch         string        `json:"arch"`
	Kernel       string        `json:"kernel,omitempty"`
	Accelerators []Accelerator `json:"accelerators"`
	IP           *string       `json:"ip"`
}

// Accelerator describes one GPU reported by the local driver tooling.
type Accelerator struct {
	Name          string `json:"name"`
	TotalMemoryMB int    `json:"total_memory_mb"`
}

// CommandRunner executes a diagnostics command and returns its output.
// This abstraction allows mocking in tests.
type CommandRunner func(name string, args ...string) (string, error)

func defaultRunner(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return string(out), err
}

// CollectSystemInfo gathers host, accelerator, and public-IP diagnostics.
// Every probe is best-effort; missing tooling or network yields empty or
// nil fields rather than an error.
func CollectSystemInfo(ctx context.Context, ip IPResolver, run CommandRunner) SystemInfo {
	if run == nil {
		run = defaultRunner
	}

	info := SystemInfo{
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
		Accelerators: collectAccelerators(run),
	}
	if host, err := os.Hostname(); err == nil {
		info.Hostname = host
	}
	if out, err := run("uname", "-sr"); err == nil {
		info.Kernel = strings.TrimSpace(out)
	}
	if ip != nil {
		if addr, err := ip.PublicIP(ctx); err == nil {
			info.IP = &addr
		}
	}
	return info
}

// collectAccelerators queries nvidia-smi for the GPU inventory. Hosts
// without the tool report no accelerators.
func collectAccelerators(run CommandRunner) []Accelerator {
	out, err := run("nvidia-smi", "--query-gpu=name,memory.total", "--format=csv,noheader,nounits")
	if err != nil {
		return []Accelerator{}
	}

	accels := []Accelerator{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		acc := Accelerator{Name: strings.TrimSpace(parts[0])}
		if len(parts) == 2 {
			if mem, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
				acc.TotalMemoryMB = mem
			}
		}
		accels = append(accels, acc)
	}
	return accels
}
