package dto

// RegisterRequest payload for new accounts. Field casing matches the
// original client contract.
type RegisterRequest struct {
	Name     string `json:"Name"`
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"Email"`
	Password string `json:"Password"`
}
