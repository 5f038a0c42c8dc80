package strategy

import (
	"github.com/multicloud-ai/inference-gateway/internal/provider"
)

type Strategy interface {
	SelectProvider(providers []*provider.Provider) *provider.Provider
}
