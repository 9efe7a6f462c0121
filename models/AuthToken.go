package models

// AuthToken holds a freshly minted access/refresh token pair together with
// the cache ids and expiry times used to register the session.
type AuthToken struct {
	AccessToken    string
	RefreshToken   string
	AccessID       string
	RefreshID      string
	AccessExpires  int64
	RefreshExpires int64
}

// OutboundToken is the JSON body returned to the operator after a successful
// login or refresh.
type OutboundToken struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AccessDetails is the metadata extracted from a request's bearer token,
// used to confirm the session against the Redis cache.
type AccessDetails struct {
	AccessID string
	UserID   string
}
