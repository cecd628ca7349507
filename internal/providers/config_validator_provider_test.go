package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"linguactl/internal/models"
	"linguactl/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		Api: structures.ApiConfig{
			BaseUrl: "https://api.nhomnhom.com",
			Timeout: 10 * time.Second,
			BotName: "linguaxyz_bot",
		},
		Session: structures.SessionConfig{
			FilePath: "/tmp/lingua_session",
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyBaseUrl(t *testing.T) {
	c := validConfig()
	c.Api.BaseUrl = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_NotAUrl(t *testing.T) {
	c := validConfig()
	c.Api.BaseUrl = "not a url"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroTimeout(t *testing.T) {
	c := validConfig()
	c.Api.Timeout = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_SnapshotEnabledNeedsPathAndInterval(t *testing.T) {
	c := validConfig()
	c.Snapshot.Enabled = true
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())

	c.Snapshot.FilePath = "/tmp/lingua_snapshot"
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Snapshot.Interval = 30 * time.Second
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_CacheEnabledNeedsSize(t *testing.T) {
	c := validConfig()
	c.Cache.Enabled = true
	c.Cache.Size = 0
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Cache.Size = 8
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_MetricsEnabledNeedsAddr(t *testing.T) {
	c := validConfig()
	c.Metrics.Enabled = true
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Metrics.Addr = "127.0.0.1:9124"
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestValidateStruct_SignupRequest(t *testing.T) {
	ok := models.SignupRequest{Name: "Sarah", Email: "sarah@example.com", Password: "longenough"}
	assert.NoError(t, ValidateStruct(&ok))

	badEmail := ok
	badEmail.Email = "not-an-email"
	assert.Error(t, ValidateStruct(&badEmail))

	shortPassword := ok
	shortPassword.Password = "short"
	assert.Error(t, ValidateStruct(&shortPassword))
}

func TestValidateStruct_LoginRequest(t *testing.T) {
	assert.NoError(t, ValidateStruct(&models.LoginRequest{Email: "a@b.co", Password: "x"}))
	assert.Error(t, ValidateStruct(&models.LoginRequest{Email: "", Password: "x"}))
}
