package health

// Response represents the health check response
type Response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}

// PingResponse is the trivial liveness reply
type PingResponse struct {
	Message string `json:"message"`
}
