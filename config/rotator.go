package config

import (
	"math/rand/v2"
	"sync"
)

// UserAgentRotator hands out browser user agents for outbound page fetches.
type UserAgentRotator struct {
	config *HTTPConfig
	index  int
	mu     sync.Mutex
}

func NewUserAgentRotator(httpConfig *HTTPConfig) *UserAgentRotator {
	return &UserAgentRotator{config: httpConfig}
}

// Next returns the agents in round-robin order, or the fixed agent when rotation is off.
func (r *UserAgentRotator) Next() string {
	if !r.config.UserAgentRotation || len(r.config.UserAgents) == 0 {
		return r.config.UserAgent
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	agent := r.config.UserAgents[r.index]
	r.index = (r.index + 1) % len(r.config.UserAgents)
	return agent
}

func (r *UserAgentRotator) Random() string {
	if !r.config.UserAgentRotation || len(r.config.UserAgents) == 0 {
		return r.config.UserAgent
	}
	return r.config.UserAgents[rand.IntN(len(r.config.UserAgents))]
}
