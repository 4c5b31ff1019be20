package dto

// HealthResponse is the basic liveness report.
type HealthResponse struct {
	Status    string  `json:"status" example:"OK"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
	Version   string  `json:"version" example:"1.0.0"`
}

// MemoryStats is a snapshot of the Go heap.
type MemoryStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"numGC"`
}

// DetailedHealthResponse adds runtime and dependency details.
type DetailedHealthResponse struct {
	HealthResponse
	Environment string      `json:"environment"`
	GoVersion   string      `json:"goVersion"`
	Platform    string      `json:"platform"`
	Arch        string      `json:"arch"`
	Goroutines  int         `json:"goroutines"`
	Memory      MemoryStats `json:"memory"`
	Cache       string      `json:"cache" example:"disabled"`
}

// PingResponse answers a ping.
type PingResponse struct {
	Message string `json:"message" example:"pong"`
}
