package model

// Platform identifies one of the remote services an account checks in to.
type Platform string

const (
	// PlatformPoints is the open-hardware community granting points.
	PlatformPoints Platform = "points"
	// PlatformCoins is the e-commerce platform granting gold coins.
	PlatformCoins Platform = "coins"
)

// Credential is an opaque token or cookie for one account on one platform.
// An empty credential means the platform is skipped for that account.
type Credential string

// Configured reports whether the credential is present.
func (c Credential) Configured() bool {
	return c != ""
}

// Account pairs the credentials processed together as one unit.
type Account struct {
	Index        int
	CoinsToken   Credential
	PointsCookie Credential
}
