package models

type TargetView int

const (
	ViewLanding TargetView = iota
	ViewDashboard
	ViewSignup
	ViewInviteLanding
)

func (v TargetView) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewSignup:
		return "signup"
	case ViewInviteLanding:
		return "invite"
	default:
		return "landing"
	}
}

// Resolution is the outcome of inspecting the launch URL and the stored
// session: a target view plus the side effects to apply before anything
// renders. Computing it has no side effects of its own.
type Resolution struct {
	Target          TargetView
	Token           string // magic-login token to persist, empty if none
	InviteCode      string // pending invite discovered in the path
	PurchaseSuccess bool   // one-shot "payment went through" banner
	OpenPurchase    bool   // one-shot "open the purchase UI" flag
	CleanURL        string // URL to show after stripping one-shot params
}
