package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("INVENTORY_API_URL", "http://inventory.local/api.php")
	t.Setenv("SCREEN_DEBOUNCE", "")
	t.Setenv("SCREEN_PAGE_SIZE", "")
	t.Setenv("GOOGLE_SHEET_EXPORT_ID", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("WHATSAPP_TOKEN", "")
	t.Setenv("TIMEZONE", "")

	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Screens.PageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Screens.Debounce)
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.MongoDB.Enabled())
	assert.False(t, cfg.Alerts.Enabled())
}

func TestLoadRequiresInventoryURL(t *testing.T) {
	t.Setenv("INVENTORY_API_URL", "")

	_, err := Load("does-not-exist.env")
	require.EqualError(t, err, "INVENTORY_API_URL must be provided")
}

func TestValidateAlertsNeedRecipient(t *testing.T) {
	t.Setenv("INVENTORY_API_URL", "http://inventory.local/api.php")
	t.Setenv("GOOGLE_SHEET_EXPORT_ID", "")
	t.Setenv("WHATSAPP_TOKEN", "token")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "12345")
	t.Setenv("WHATSAPP_ALERT_RECIPIENT", "")

	_, err := Load("does-not-exist.env")
	require.EqualError(t, err, "WHATSAPP_ALERT_RECIPIENT must be provided")
}

func TestValidateRejectsBadTimezone(t *testing.T) {
	t.Setenv("INVENTORY_API_URL", "http://inventory.local/api.php")
	t.Setenv("WHATSAPP_TOKEN", "")
	t.Setenv("TIMEZONE", "Nowhere/Atlantis")

	_, err := Load("does-not-exist.env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TIMEZONE is invalid")
}
