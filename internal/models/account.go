package models

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

const LowBalanceThreshold = 1000

type Profile struct {
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	InviteCode string    `json:"inviteCode"`
	CreatedAt  time.Time `json:"createdAt"`
}

type InviteStats struct {
	TotalInvites      int `json:"totalInvites"`
	TotalTokensEarned int `json:"totalTokensEarned"`
}

type UsageStats struct {
	TotalMessages int `json:"totalMessages"`
	TotalTokens   int `json:"totalTokens"`
}

type PricingTier struct {
	Id         string `json:"id"`
	Label      string `json:"label"`
	PriceLabel string `json:"priceLabel"`
}

type Purchase struct {
	Amount float64   `json:"amount"`
	Tokens int       `json:"tokens"`
	Date   time.Time `json:"date"`
}

type LanguagePair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Group struct {
	ChatId        string         `json:"chatId"`
	Name          string         `json:"name"`
	Active        bool           `json:"active"`
	InviteCode    string         `json:"inviteCode"`
	Members       int            `json:"members"`
	Messages      int            `json:"messages"`
	HoursEarned   int            `json:"hoursEarned"`
	LanguagePairs []LanguagePair `json:"languagePairs"`
}

// AccountSnapshot is the complete account state as returned by the backend.
// It is replaced wholesale after every successful fetch and never patched
// field by field.
type AccountSnapshot struct {
	Profile         Profile       `json:"profile"`
	Balance         int           `json:"balance"`
	TokensUsed      int           `json:"tokensUsed"`
	InviteStats     InviteStats   `json:"inviteStats"`
	UsageStats      UsageStats    `json:"usageStats"`
	PricingTiers    []PricingTier `json:"pricing"`
	PurchaseHistory []Purchase    `json:"purchases"`
	Groups          []Group       `json:"groups"`
}

// accountPayload mirrors the wire shape of GET /api/me, where balance and
// token usage ride inside the user record.
type accountPayload struct {
	User struct {
		Profile
		Balance    int `json:"balance"`
		TokensUsed int `json:"tokensUsed"`
	} `json:"user"`
	InviteStats InviteStats   `json:"inviteStats"`
	UsageStats  UsageStats    `json:"usageStats"`
	Pricing     []PricingTier `json:"pricing"`
	Purchases   []Purchase    `json:"purchases"`
	Groups      []Group       `json:"groups"`
}

// DecodeAccountSnapshot is the single translation point between the loosely
// shaped remote payload and the typed snapshot the rest of the client reads.
func DecodeAccountSnapshot(data []byte) (*AccountSnapshot, error) {
	var payload accountPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode account payload: %w", err)
	}
	snap := &AccountSnapshot{
		Profile:         payload.User.Profile,
		Balance:         payload.User.Balance,
		TokensUsed:      payload.User.TokensUsed,
		InviteStats:     payload.InviteStats,
		UsageStats:      payload.UsageStats,
		PricingTiers:    payload.Pricing,
		PurchaseHistory: payload.Purchases,
		Groups:          payload.Groups,
	}
	if snap.PricingTiers == nil {
		snap.PricingTiers = []PricingTier{}
	}
	if snap.PurchaseHistory == nil {
		snap.PurchaseHistory = []Purchase{}
	}
	if snap.Groups == nil {
		snap.Groups = []Group{}
	}
	return snap, nil
}

func (s *AccountSnapshot) LowBalance() bool {
	return s.Balance < LowBalanceThreshold
}

// BotInviteURL builds the referral deep link shown on the dashboard.
func (s *AccountSnapshot) BotInviteURL(botName string) string {
	return fmt.Sprintf("https://t.me/%s?start=ref_%s", botName, s.Profile.InviteCode)
}

func (s *AccountSnapshot) GroupByChatId(chatId string) (*Group, bool) {
	for i := range s.Groups {
		if s.Groups[i].ChatId == chatId {
			return &s.Groups[i], true
		}
	}
	return nil, false
}

// FormatTokens renders token counts the way the dashboard does (1.2k, 3.4M).
func FormatTokens(n int) string {
	switch {
	case n <= 0:
		return "0"
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
