package strategy

import (
	"sync/atomic"

	"github.com/multicloud-ai/inference-gateway/internal/provider"
)

type roundRobinStrategy struct {
	current uint64
}

func (s *roundRobinStrategy) SelectProvider(providers []*provider.Provider) *provider.Provider {
	if len(providers) == 0 {
		return nil
	}

	n := atomic.AddUint64(&s.current, 1)

	index := (n - 1) % uint64(len(providers))

	return providers[index]
}

func NewRoundRobinStrategy() Strategy {
	return &roundRobinStrategy{
		current: 0,
	}
}
