package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyHookRadius     = "match.hook_radius_m"
	keyProgressEvery  = "match.progress_every"
	keyOutputDir      = "output.dir"
	keyOutputReport   = "output.report"
	keyHistoryEnabled = "history.enabled"
	keyHistoryKeep    = "history.keep"
	keyPublishBucket  = "publish.bucket"
	keyPublishPrefix  = "publish.prefix"
	keyPublishRegion  = "publish.region"
	keyPublishEnd     = "publish.endpoint"
)

// setting binds a config key to a field of domain.Settings.
type setting struct {
	key   string
	value func(s *domain.Settings) any
	parse func(s *domain.Settings, raw string) error
}

var settingsTable = []setting{
	{
		key:   keyHookRadius,
		value: func(s *domain.Settings) any { return s.Match.HookRadiusMeters },
		parse: func(s *domain.Settings, raw string) error {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return err
			}
			s.Match.HookRadiusMeters = v
			return nil
		},
	},
	{
		key:   keyProgressEvery,
		value: func(s *domain.Settings) any { return s.Match.ProgressEvery },
		parse: func(s *domain.Settings, raw string) error {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return err
			}
			s.Match.ProgressEvery = v
			return nil
		},
	},
	{
		key:   keyOutputDir,
		value: func(s *domain.Settings) any { return s.Output.Dir },
		parse: func(s *domain.Settings, raw string) error {
			s.Output.Dir = raw
			return nil
		},
	},
	{
		key:   keyOutputReport,
		value: func(s *domain.Settings) any { return s.Output.Report.String() },
		parse: func(s *domain.Settings, raw string) error {
			s.Output.Report = domain.ReportFormat(strings.ToLower(raw))
			return nil
		},
	},
	{
		key:   keyHistoryEnabled,
		value: func(s *domain.Settings) any { return s.History.Enabled },
		parse: func(s *domain.Settings, raw string) error {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return err
			}
			s.History.Enabled = v
			return nil
		},
	},
	{
		key:   keyHistoryKeep,
		value: func(s *domain.Settings) any { return s.History.Keep },
		parse: func(s *domain.Settings, raw string) error {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return err
			}
			s.History.Keep = v
			return nil
		},
	},
	{
		key:   keyPublishBucket,
		value: func(s *domain.Settings) any { return s.Publish.Bucket },
		parse: func(s *domain.Settings, raw string) error {
			s.Publish.Bucket = raw
			return nil
		},
	},
	{
		key:   keyPublishPrefix,
		value: func(s *domain.Settings) any { return s.Publish.Prefix },
		parse: func(s *domain.Settings, raw string) error {
			s.Publish.Prefix = raw
			return nil
		},
	},
	{
		key:   keyPublishRegion,
		value: func(s *domain.Settings) any { return s.Publish.Region },
		parse: func(s *domain.Settings, raw string) error {
			s.Publish.Region = raw
			return nil
		},
	},
	{
		key:   keyPublishEnd,
		value: func(s *domain.Settings) any { return s.Publish.Endpoint },
		parse: func(s *domain.Settings, raw string) error {
			s.Publish.Endpoint = raw
			return nil
		},
	},
}

func lookupSetting(key string) (setting, bool) {
	for _, s := range settingsTable {
		if s.key == key {
			return s, true
		}
	}
	return setting{}, false
}

// SettingsService reads and writes typed settings over a ConfigStore.
// Unset or mistyped keys fall back to domain.DefaultSettings.
type SettingsService struct {
	store driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(store driven.ConfigStore) *SettingsService {
	return &SettingsService{store: store}
}

// Get returns the current settings. Stored values that fail validation are
// reported so a merge never runs with them.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := s.load()
	if err := validateSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// GetValue returns one setting as text, even when the stored value is invalid.
func (s *SettingsService) GetValue(key string) (string, error) {
	st, ok := lookupSetting(key)
	if !ok {
		return "", unknownKey(key)
	}
	return fmt.Sprint(st.value(s.load())), nil
}

// SetValue parses, validates and stores one setting.
func (s *SettingsService) SetValue(key, value string) error {
	st, ok := lookupSetting(key)
	if !ok {
		return unknownKey(key)
	}

	settings := s.load()
	value = strings.TrimSpace(value)
	if err := st.parse(settings, value); err != nil {
		return domain.NewValidationError(key, fmt.Sprintf("cannot parse %q", value))
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	if err := s.store.Set(key, st.value(settings)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Reset removes a stored value so its default applies again.
func (s *SettingsService) Reset(key string) error {
	if _, ok := lookupSetting(key); !ok {
		return unknownKey(key)
	}
	if err := s.store.Unset(key); err != nil {
		return fmt.Errorf("reset %s: %w", key, err)
	}
	return nil
}

// Keys returns every settable key.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingsTable))
	for i, st := range settingsTable {
		keys[i] = st.key
	}
	return keys
}

// Path returns where settings are stored.
func (s *SettingsService) Path() string {
	return s.store.Path()
}

func (s *SettingsService) load() *domain.Settings {
	def := domain.DefaultSettings()
	return &domain.Settings{
		Match: domain.MatchSettings{
			HookRadiusMeters: s.lookupFloat(keyHookRadius, def.Match.HookRadiusMeters),
			ProgressEvery:    s.lookupInt(keyProgressEvery, def.Match.ProgressEvery),
		},
		Output: domain.OutputSettings{
			Dir:    s.lookupString(keyOutputDir, def.Output.Dir),
			Report: s.reportFormat(def.Output.Report),
		},
		History: domain.HistorySettings{
			Enabled: s.lookupBool(keyHistoryEnabled, def.History.Enabled),
			Keep:    s.lookupInt(keyHistoryKeep, def.History.Keep),
		},
		Publish: domain.PublishSettings{
			Bucket:   s.lookupString(keyPublishBucket, def.Publish.Bucket),
			Prefix:   s.lookupString(keyPublishPrefix, def.Publish.Prefix),
			Region:   s.lookupString(keyPublishRegion, def.Publish.Region),
			Endpoint: s.lookupString(keyPublishEnd, def.Publish.Endpoint),
		},
	}
}

func validateSettings(settings *domain.Settings) error {
	if settings.Match.HookRadiusMeters <= 0 {
		return domain.NewValidationError(keyHookRadius, "must be greater than zero")
	}
	if settings.Match.ProgressEvery <= 0 {
		return domain.NewValidationError(keyProgressEvery, "must be greater than zero")
	}
	if !settings.Output.Report.IsValid() {
		return domain.NewValidationError(keyOutputReport, "must be one of none, xlsx, csv")
	}
	if settings.History.Keep < 0 {
		return domain.NewValidationError(keyHistoryKeep, "must not be negative")
	}
	return nil
}

func unknownKey(key string) error {
	return domain.NewValidationError("key", fmt.Sprintf("unknown setting %q", key))
}

func (s *SettingsService) lookupString(key, def string) string {
	if v, ok := s.store.Lookup(key); ok {
		if str, ok := v.(string); ok && str != "" {
			return str
		}
	}
	return def
}

// lookupInt accepts int64 from TOML and whole float64 values.
func (s *SettingsService) lookupInt(key string, def int) int {
	v, ok := s.store.Lookup(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	}
	return def
}

func (s *SettingsService) lookupFloat(key string, def float64) float64 {
	v, ok := s.store.Lookup(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return def
}

func (s *SettingsService) lookupBool(key string, def bool) bool {
	if v, ok := s.store.Lookup(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

func (s *SettingsService) reportFormat(def domain.ReportFormat) domain.ReportFormat {
	format := domain.ReportFormat(strings.ToLower(s.lookupString(keyOutputReport, "")))
	if format == "" || !format.IsValid() {
		return def
	}
	return format
}
