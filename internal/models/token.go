package models

// Caller roles carried in session token claims.
const (
	RoleDistributor = "distributor"
	RoleSubUser     = "subuser"
)

// TokenPair holds one minted session: a short-lived access token and a
// longer-lived refresh token. Neither is persisted.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// AuthSession is the login response payload shared by the OTP and password
// login flows.
type AuthSession struct {
	Message  string     `json:"message"`
	ShopName string     `json:"shop_name"`
	Email    string     `json:"email"`
	Tokens   *TokenPair `json:"tokens"`
}
