package constant

// Token economics. Process-wide constants for now; making these
// merchant-configurable would require a migration of token_redemptions to
// record the unit value at redemption time.
const (
	// UnitTokenValue is the currency value of a single token in dollars.
	UnitTokenValue = 0.01

	// TokenExpiryDays is how long earned tokens stay redeemable.
	TokenExpiryDays = 365

	// RewardTokenSymbol is the reserved token type used for the one-time
	// new-user bonus.
	RewardTokenSymbol = "RWD"
)
