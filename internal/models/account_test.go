package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTokens(t *testing.T) {
	assert.Equal(t, "0", FormatTokens(0))
	assert.Equal(t, "0", FormatTokens(-5))
	assert.Equal(t, "999", FormatTokens(999))
	assert.Equal(t, "1.0k", FormatTokens(1000))
	assert.Equal(t, "9.5k", FormatTokens(9500))
	assert.Equal(t, "1.0M", FormatTokens(1000000))
	assert.Equal(t, "2.5M", FormatTokens(2500000))
}

const mePayload = `{
	"user": {
		"id": "u1",
		"name": "Sarah",
		"email": "sarah@example.com",
		"inviteCode": "INV42",
		"balance": 800,
		"tokensUsed": 9200
	},
	"inviteStats": {"totalInvites": 3, "totalTokensEarned": 30000},
	"usageStats": {"totalMessages": 120, "totalTokens": 9200},
	"pricing": [{"id": "small", "label": "100k tokens", "priceLabel": "$5"}],
	"purchases": [{"amount": 5, "tokens": 100000, "date": "2026-08-01T10:00:00Z"}],
	"groups": [{
		"chatId": "-100", "name": "Trip Planning", "active": true,
		"inviteCode": "G1", "members": 4, "messages": 57, "hoursEarned": 2,
		"languagePairs": [{"from": "vi", "to": "en"}, {"from": "en", "to": "vi"}]
	}]
}`

func TestDecodeAccountSnapshot_LiftsUserFields(t *testing.T) {
	snap, err := DecodeAccountSnapshot([]byte(mePayload))
	require.NoError(t, err)

	assert.Equal(t, "Sarah", snap.Profile.Name)
	assert.Equal(t, "INV42", snap.Profile.InviteCode)
	assert.Equal(t, 800, snap.Balance)
	assert.Equal(t, 9200, snap.TokensUsed)
	assert.Equal(t, 3, snap.InviteStats.TotalInvites)
	assert.Equal(t, 120, snap.UsageStats.TotalMessages)
	require.Len(t, snap.Groups, 1)
	assert.Equal(t, []LanguagePair{{From: "vi", To: "en"}, {From: "en", To: "vi"}}, snap.Groups[0].LanguagePairs)
}

func TestDecodeAccountSnapshot_MissingCollectionsBecomeEmpty(t *testing.T) {
	snap, err := DecodeAccountSnapshot([]byte(`{"user":{"id":"u1","name":"A","inviteCode":"X","balance":10}}`))
	require.NoError(t, err)

	assert.NotNil(t, snap.Groups)
	assert.NotNil(t, snap.PricingTiers)
	assert.NotNil(t, snap.PurchaseHistory)
	assert.Empty(t, snap.Groups)
}

func TestDecodeAccountSnapshot_Malformed(t *testing.T) {
	_, err := DecodeAccountSnapshot([]byte(`{"user":`))
	assert.Error(t, err)
}

func TestAccountSnapshot_LowBalance(t *testing.T) {
	assert.True(t, (&AccountSnapshot{Balance: 999}).LowBalance())
	assert.False(t, (&AccountSnapshot{Balance: 1000}).LowBalance())
}

func TestAccountSnapshot_BotInviteURL(t *testing.T) {
	snap := &AccountSnapshot{Profile: Profile{InviteCode: "INV42"}}
	assert.Equal(t, "https://t.me/linguaxyz_bot?start=ref_INV42", snap.BotInviteURL("linguaxyz_bot"))
}

func TestAccountSnapshot_GroupByChatId(t *testing.T) {
	snap := &AccountSnapshot{Groups: []Group{{ChatId: "-1", Name: "a"}, {ChatId: "-2", Name: "b"}}}

	g, ok := snap.GroupByChatId("-2")
	require.True(t, ok)
	assert.Equal(t, "b", g.Name)

	_, ok = snap.GroupByChatId("-3")
	assert.False(t, ok)
}
