package model

// Principal is the identity attached to a request once access control passes.
type Principal struct {
	UserID    int64  `json:"userId,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	ExpiresAt int64  `json:"expiresAt,omitempty"`
	// MasterKey is set when the request used the admin API key; no user is attached then.
	MasterKey bool `json:"-"`
}
