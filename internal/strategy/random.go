package strategy

import (
	"math/rand/v2"

	"github.com/multicloud-ai/inference-gateway/internal/provider"
)

type randomStrategy struct{}

func (s *randomStrategy) SelectProvider(providers []*provider.Provider) *provider.Provider {
	if len(providers) == 0 {
		return nil
	}

	index := rand.IntN(len(providers))
	return providers[index]
}

func NewRandomStrategy() Strategy {
	return &randomStrategy{}
}
