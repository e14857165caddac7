package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient builds the shared client used for outbound calls such as
// the notification webhook.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}
