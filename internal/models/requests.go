package models

type SignupRequest struct {
	Name       string `json:"name" validate:"required|minLen:2"`
	Email      string `json:"email" validate:"required|email"`
	Password   string `json:"password" validate:"required|minLen:8"`
	InviteCode string `json:"inviteCode,omitempty" validate:"-"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required|email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse covers both POST /api/signup and POST /api/login.
// InvitedGroup is only ever present on a signup that redeemed an invite.
type AuthResponse struct {
	Token        string        `json:"token"`
	User         Profile       `json:"user"`
	InvitedGroup *InvitedGroup `json:"invitedGroup,omitempty"`
}

type LinkGroupRequest struct {
	Code string `json:"code" validate:"required"`
}

type ToggleGroupRequest struct {
	ChatId string `json:"chatId"`
	Active bool   `json:"active"`
}

type SetLanguagesRequest struct {
	ChatId        string         `json:"chatId"`
	LanguagePairs []LanguagePair `json:"languagePairs"`
}

type CheckoutRequest struct {
	TierId string `json:"tierId"`
}

type CheckoutResponse struct {
	Url string `json:"url"`
}
