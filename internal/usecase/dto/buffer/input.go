package bufferdto

import "github.com/LavaJover/shvark-buffer-service/internal/domain"

type ScoreDecouplingInput struct {
	LocationID string
	Factors    []domain.DecouplingFactor
}
