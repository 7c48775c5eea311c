package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/checkin/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newTokenHasher),
	fx.Provide(newVerifier),
)

func newTokenHasher() TokenHasher {
	return NewBcryptHasher(0)
}

type verifierParams struct {
	fx.In

	Config *config.Config
	Hasher TokenHasher
}

func newVerifier(p verifierParams) *Verifier {
	return NewVerifier(p.Config.StatusTokenHash, p.Hasher)
}
