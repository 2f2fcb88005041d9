package health

import (
	"context"
	"runtime"
	"time"
)

// Snapshot is a point-in-time report on the widget process and the
// assistant service it talks to.
type Snapshot struct {
	Status    string      `json:"status" yaml:"status"`
	Service   ServiceInfo `json:"service" yaml:"service"`
	Runtime   RuntimeInfo `json:"runtime" yaml:"runtime"`
	Memory    MemoryInfo  `json:"memory" yaml:"memory"`
	Paths     *PathsInfo  `json:"paths,omitempty" yaml:"paths,omitempty"`
	Timestamp string      `json:"timestamp" yaml:"timestamp"`
}

// ServiceInfo describes the assistant service as last observed.
type ServiceInfo struct {
	BaseURL   string `json:"baseUrl" yaml:"baseUrl"`
	Reachable bool   `json:"reachable" yaml:"reachable"`
	Ready     bool   `json:"ready" yaml:"ready"`
	Status    string `json:"status,omitempty" yaml:"status,omitempty"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
	LatencyMS int64  `json:"latencyMs" yaml:"latencyMs"`
}

type RuntimeInfo struct {
	Version    string `json:"version" yaml:"version"`
	OS         string `json:"os" yaml:"os"`
	Arch       string `json:"arch" yaml:"arch"`
	CPUs       int    `json:"cpus" yaml:"cpus"`
	Goroutines int    `json:"goroutines" yaml:"goroutines"`
}

type MemoryInfo struct {
	AllocMB      float64 `json:"allocMb" yaml:"allocMb"`
	TotalAllocMB float64 `json:"totalAllocMb" yaml:"totalAllocMb"`
	SysMB        float64 `json:"sysMb" yaml:"sysMb"`
	NumGC        uint32  `json:"numGc" yaml:"numGc"`
}

type PathsInfo struct {
	ConfigFile string `json:"configFile,omitempty" yaml:"configFile,omitempty"`
	LogFile    string `json:"logFile,omitempty" yaml:"logFile,omitempty"`
}

// Options selects what Collect reports on.
type Options struct {
	BaseURL    string
	Checker    Checker
	ConfigFile string
	LogFile    string
}

// Collect runs one readiness check and returns a snapshot for the current
// process. Status is "healthy" when the service is ready, "degraded" when it
// answers but is not ready, and "unreachable" otherwise.
func Collect(ctx context.Context, opts Options) Snapshot {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	s := Snapshot{
		Status:  "unreachable",
		Service: ServiceInfo{BaseURL: opts.BaseURL},
		Runtime: RuntimeInfo{
			Version:    runtime.Version(),
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			CPUs:       runtime.NumCPU(),
			Goroutines: runtime.NumGoroutine(),
		},
		Memory: MemoryInfo{
			AllocMB:      float64(mem.Alloc) / 1024 / 1024,
			TotalAllocMB: float64(mem.TotalAlloc) / 1024 / 1024,
			SysMB:        float64(mem.Sys) / 1024 / 1024,
			NumGC:        mem.NumGC,
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if opts.ConfigFile != "" || opts.LogFile != "" {
		s.Paths = &PathsInfo{ConfigFile: opts.ConfigFile, LogFile: opts.LogFile}
	}

	if opts.Checker == nil {
		return s
	}
	start := time.Now()
	h, err := opts.Checker.Health(ctx)
	s.Service.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		s.Service.Error = err.Error()
		return s
	}
	s.Service.Reachable = true
	s.Service.Ready = h.Ready
	s.Service.Status = h.Status
	s.Service.Message = h.Message
	if h.Ready {
		s.Status = "healthy"
	} else {
		s.Status = "degraded"
	}
	return s
}
