package models

// InviteTarget describes what an invite code points at, shown to an
// authenticated visitor before they commit to joining.
type InviteTarget struct {
	Name         string `json:"name"`
	OwnerName    string `json:"ownerName"`
	Members      int    `json:"members"`
	TelegramLink string `json:"telegramLink,omitempty"`
}

// InvitedGroup is the group a fresh signup landed in, if the invite code
// carried one.
type InvitedGroup struct {
	Name         string `json:"name"`
	TelegramLink string `json:"telegramLink,omitempty"`
}

type InviteFlowState int

const (
	FlowIdle InviteFlowState = iota
	FlowPending
	FlowInvalidInvite
	FlowAwaitingConfirmation
	FlowAwaitingSignup
	FlowJoined
)

func (s InviteFlowState) String() string {
	switch s {
	case FlowPending:
		return "pending"
	case FlowInvalidInvite:
		return "invalid-invite"
	case FlowAwaitingConfirmation:
		return "awaiting-confirmation"
	case FlowAwaitingSignup:
		return "awaiting-signup"
	case FlowJoined:
		return "joined"
	default:
		return "idle"
	}
}

func (s InviteFlowState) Terminal() bool {
	return s == FlowInvalidInvite || s == FlowJoined
}
