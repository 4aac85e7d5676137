package dukascopy

import (
	"net/http"
	"time"
)

// baseTransportConfig returns the HTTP transport shared by datafeed clients.
func baseTransportConfig(workers int) *http.Transport {
	if workers < 1 {
		workers = 1
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ResponseHeaderTimeout: time.Minute,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConns:          workers,
		MaxIdleConnsPerHost:   workers,
	}
}
