package store

import (
	"encoding/json"

	"fyne.io/fyne/v2"
	"github.com/borgmon/break-reminder/pkg/models"
)

// ConfigStore handles configuration persistence using Fyne preferences
type ConfigStore struct {
	prefs fyne.Preferences
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(app fyne.App) *ConfigStore {
	return &ConfigStore{prefs: app.Preferences()}
}

// Load loads configuration from preferences, falling back to defaults
func (cs *ConfigStore) Load() *models.Config {
	defaults := models.DefaultConfig()

	config := &models.Config{
		AutoStart:           cs.prefs.BoolWithFallback("auto_start", defaults.AutoStart),
		BreakInterval:       cs.prefs.IntWithFallback("break_interval_minutes", defaults.BreakInterval),
		InitialDelay:        cs.prefs.IntWithFallback("initial_delay_seconds", defaults.InitialDelay),
		ChimeEnabled:        cs.prefs.BoolWithFallback("chime_enabled", defaults.ChimeEnabled),
		CalendarSyncMinutes: cs.prefs.IntWithFallback("calendar_sync_minutes", defaults.CalendarSyncMinutes),
	}

	// Load quiet time ranges from JSON string
	quietTimeJSON := cs.prefs.String("quiet_time_ranges")
	if quietTimeJSON != "" {
		if err := json.Unmarshal([]byte(quietTimeJSON), &config.QuietTimeRanges); err != nil {
			config.QuietTimeRanges = []models.TimeRange{}
		}
	} else {
		config.QuietTimeRanges = []models.TimeRange{}
	}

	// Load iCal sources from JSON string
	icalSourcesJSON := cs.prefs.String("ical_sources")
	if icalSourcesJSON != "" {
		if err := json.Unmarshal([]byte(icalSourcesJSON), &config.ICalSources); err != nil {
			config.ICalSources = []models.ICalSource{}
		}
	} else {
		config.ICalSources = []models.ICalSource{}
	}

	return config
}

// Save saves configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	cs.prefs.SetBool("auto_start", config.AutoStart)
	cs.prefs.SetInt("break_interval_minutes", config.BreakInterval)
	cs.prefs.SetInt("initial_delay_seconds", config.InitialDelay)
	cs.prefs.SetBool("chime_enabled", config.ChimeEnabled)
	cs.prefs.SetInt("calendar_sync_minutes", config.CalendarSyncMinutes)

	// Save quiet time ranges as JSON string
	if quietTimeJSON, err := json.Marshal(config.QuietTimeRanges); err == nil {
		cs.prefs.SetString("quiet_time_ranges", string(quietTimeJSON))
	}

	// Save iCal sources as JSON string
	if icalSourcesJSON, err := json.Marshal(config.ICalSources); err == nil {
		cs.prefs.SetString("ical_sources", string(icalSourcesJSON))
	}
}
