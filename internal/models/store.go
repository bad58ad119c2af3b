package models

import "time"

const (
	MoodHappy = "happy"
	MoodCalm  = "calm"
	MoodSad   = "sad"
	MoodTired = "tired"
	MoodAngry = "angry"
	MoodUnset = "unset"
)

const (
	FlowNone   = "none"
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

const (
	// DefaultCycleLength is the prior used until two intervals exist.
	DefaultCycleLength = 28

	// StoreSchemaVersion is the current serialized document version.
	StoreSchemaVersion = 1
)

func Moods() []string {
	return []string{MoodHappy, MoodCalm, MoodSad, MoodTired, MoodAngry, MoodUnset}
}

func Flows() []string {
	return []string{FlowNone, FlowLight, FlowMedium, FlowHeavy}
}

// DefaultProfileColors is the palette new profiles rotate through.
var DefaultProfileColors = []string{
	"#E91E63",
	"#9B59B6",
	"#3498DB",
	"#26A69A",
	"#FF7043",
	"#5C6BC0",
}

// CycleInterval is one recorded bleeding episode. A nil End means the
// period is still ongoing.
type CycleInterval struct {
	Start Day  `json:"start"`
	End   *Day `json:"end"`
}

func (interval CycleInterval) Open() bool {
	return interval.End == nil
}

// DailyLog is the per-date entry for a profile. Re-saving a date replaces
// the whole entry, fields are never merged.
type DailyLog struct {
	Mood     string   `json:"mood"`
	Flow     string   `json:"flow"`
	Symptoms []string `json:"symptoms"`
}

type Profile struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Color     string              `json:"color"`
	Intervals []CycleInterval     `json:"intervals"`
	Logs      map[string]DailyLog `json:"logs"`
}

// Store is the whole persisted document: every profile plus the active
// index. A nil ActiveIndex means no profiles exist yet.
type Store struct {
	SchemaVersion int       `json:"schema_version"`
	ActiveIndex   *int      `json:"active_index"`
	Profiles      []Profile `json:"profiles"`
}

func NewStore() Store {
	return Store{
		SchemaVersion: StoreSchemaVersion,
		Profiles:      make([]Profile, 0),
	}
}

func (store Store) ActiveProfile() (Profile, bool) {
	if store.ActiveIndex == nil {
		return Profile{}, false
	}
	index := *store.ActiveIndex
	if index < 0 || index >= len(store.Profiles) {
		return Profile{}, false
	}
	return store.Profiles[index], true
}

// Clone deep-copies the store so callers can hand out or keep snapshots
// without sharing interval slices or log maps.
func (store Store) Clone() Store {
	cloned := Store{
		SchemaVersion: store.SchemaVersion,
		Profiles:      make([]Profile, 0, len(store.Profiles)),
	}
	if store.ActiveIndex != nil {
		index := *store.ActiveIndex
		cloned.ActiveIndex = &index
	}
	for _, profile := range store.Profiles {
		cloned.Profiles = append(cloned.Profiles, profile.Clone())
	}
	return cloned
}

func (profile Profile) Clone() Profile {
	cloned := Profile{
		ID:        profile.ID,
		Name:      profile.Name,
		Color:     profile.Color,
		Intervals: make([]CycleInterval, 0, len(profile.Intervals)),
		Logs:      make(map[string]DailyLog, len(profile.Logs)),
	}
	for _, interval := range profile.Intervals {
		copied := CycleInterval{Start: interval.Start}
		if interval.End != nil {
			end := *interval.End
			copied.End = &end
		}
		cloned.Intervals = append(cloned.Intervals, copied)
	}
	for date, entry := range profile.Logs {
		symptoms := make([]string, len(entry.Symptoms))
		copy(symptoms, entry.Symptoms)
		cloned.Logs[date] = DailyLog{Mood: entry.Mood, Flow: entry.Flow, Symptoms: symptoms}
	}
	return cloned
}

// StoreSnapshot is the single-row table the serialized document is
// write-through persisted into.
type StoreSnapshot struct {
	ID        uint   `gorm:"primaryKey"`
	Document  string `gorm:"not null"`
	UpdatedAt time.Time
}

func (StoreSnapshot) TableName() string { return "store_snapshots" }

// AppSettings holds instance-level secrets: the access passcode hash and
// the JWT signing secret generated on first boot.
type AppSettings struct {
	ID            uint   `gorm:"primaryKey"`
	PasscodeHash  string `gorm:"not null;default:''"`
	SigningSecret string `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (AppSettings) TableName() string { return "app_settings" }
