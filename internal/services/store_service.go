package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/wrenbird/cycla/internal/models"
)

var (
	ErrNoActiveProfile = errors.New("no active profile")
	ErrPersistFailed   = errors.New("persist store failed")
)

// StorePersister is the durable-storage port. Every mutation writes the
// whole document through it before returning; there is no batching and no
// partial persistence.
type StorePersister interface {
	Persist(document models.Store) error
}

// StoreService owns the in-memory store document and is the sole mutation
// path. Collaborators never touch intervals or logs directly, which is
// what keeps the write-through invariant honest. The mutex makes each
// operation run to completion, persistence write included, before the
// next one starts.
type StoreService struct {
	mu        sync.Mutex
	store     models.Store
	persister StorePersister
}

// DailyLogInput carries one day's entry as submitted by a collaborator.
type DailyLogInput struct {
	Mood     string
	Flow     string
	Symptoms []string
}

func NewStoreService(document models.Store, persister StorePersister) *StoreService {
	normalizeStore(&document)
	return &StoreService{store: document, persister: persister}
}

// Snapshot returns a deep copy of the current document, which is also the
// export payload: the persisted shape verbatim, no transformation.
func (service *StoreService) Snapshot() models.Store {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.store.Clone()
}

func (service *StoreService) ActiveProfile() (models.Profile, bool) {
	service.mu.Lock()
	defer service.mu.Unlock()
	profile, ok := service.store.ActiveProfile()
	if !ok {
		return models.Profile{}, false
	}
	return profile.Clone(), true
}

func (service *StoreService) Profiles() []models.Profile {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.store.Clone().Profiles
}

func (service *StoreService) ActiveIndex() (int, bool) {
	service.mu.Lock()
	defer service.mu.Unlock()
	if service.store.ActiveIndex == nil {
		return 0, false
	}
	return *service.store.ActiveIndex, true
}

// AddProfile creates a profile and makes it active. An empty name is a
// silent no-op: callers validate input, this is the defensive backstop.
// When a last period start is supplied the profile is seeded with one open
// interval so predictions work from day one.
func (service *StoreService) AddProfile(name string, lastPeriodStart *models.Day) (bool, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return false, nil
	}

	profile := models.Profile{
		ID:        uuid.NewString(),
		Name:      cleaned,
		Color:     models.DefaultProfileColors[len(service.store.Profiles)%len(models.DefaultProfileColors)],
		Intervals: make([]models.CycleInterval, 0, 1),
		Logs:      make(map[string]models.DailyLog),
	}
	if lastPeriodStart != nil {
		profile.Intervals = append(profile.Intervals, models.CycleInterval{Start: *lastPeriodStart})
	}

	service.store.Profiles = append(service.store.Profiles, profile)
	active := len(service.store.Profiles) - 1
	service.store.ActiveIndex = &active
	return true, service.persist()
}

// SwitchActive sets the active profile. Out-of-range indices are rejected
// even though callers are expected to pass valid ones.
func (service *StoreService) SwitchActive(index int) (bool, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	if index < 0 || index >= len(service.store.Profiles) {
		return false, nil
	}
	service.store.ActiveIndex = &index
	return true, service.persist()
}

// DeleteProfile removes a profile and re-anchors the active index: a
// deletion before the active profile shifts it down one, deleting the
// active profile resets to the first remaining one, and an empty store
// goes back to having no active profile at all.
func (service *StoreService) DeleteProfile(index int) (bool, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	if index < 0 || index >= len(service.store.Profiles) {
		return false, nil
	}

	service.store.Profiles = append(service.store.Profiles[:index], service.store.Profiles[index+1:]...)

	switch {
	case len(service.store.Profiles) == 0:
		service.store.ActiveIndex = nil
	case service.store.ActiveIndex == nil || *service.store.ActiveIndex == index:
		zero := 0
		service.store.ActiveIndex = &zero
	case *service.store.ActiveIndex > index:
		shifted := *service.store.ActiveIndex - 1
		service.store.ActiveIndex = &shifted
	}
	return true, service.persist()
}

// LogPeriodStart closes any currently open interval at the given date and
// opens a new interval starting there. Retroactive dates are accepted
// as-is; display order is recomputed on read, so out-of-order entry
// self-corrects.
func (service *StoreService) LogPeriodStart(date models.Day) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	profile, err := service.activeProfileRef()
	if err != nil {
		return err
	}

	for i := range profile.Intervals {
		if profile.Intervals[i].End == nil {
			end := date
			profile.Intervals[i].End = &end
		}
	}
	profile.Intervals = append(profile.Intervals, models.CycleInterval{Start: date})
	return service.persist()
}

// LogPeriodEnd closes the most-recent-by-start interval, but only if it is
// still open. Anything else is a no-op.
func (service *StoreService) LogPeriodEnd(date models.Day) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	profile, err := service.activeProfileRef()
	if err != nil {
		return err
	}

	latestIndex := -1
	for i := range profile.Intervals {
		if latestIndex == -1 || !profile.Intervals[i].Start.Before(profile.Intervals[latestIndex].Start.Time) {
			latestIndex = i
		}
	}
	if latestIndex == -1 || profile.Intervals[latestIndex].End != nil {
		return nil
	}

	end := date
	profile.Intervals[latestIndex].End = &end
	return service.persist()
}

// SaveDailyLog upserts the entry for the date, fully replacing any prior
// entry rather than merging fields.
func (service *StoreService) SaveDailyLog(date models.Day, input DailyLogInput) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	profile, err := service.activeProfileRef()
	if err != nil {
		return err
	}

	if profile.Logs == nil {
		profile.Logs = make(map[string]models.DailyLog)
	}
	profile.Logs[date.String()] = models.DailyLog{
		Mood:     NormalizeMood(input.Mood),
		Flow:     NormalizeFlow(input.Flow),
		Symptoms: NormalizeSymptoms(input.Symptoms),
	}
	return service.persist()
}

// ReplaceAll swaps the whole store for the candidate document atomically.
// The candidate must carry a profile collection; on any failure, including
// the persistence write, the previous state is restored untouched.
func (service *StoreService) ReplaceAll(candidate models.Store) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if candidate.Profiles == nil {
		return ErrImportInvalid
	}

	previous := service.store
	service.store = candidate.Clone()
	normalizeStore(&service.store)
	if err := service.persist(); err != nil {
		service.store = previous
		return err
	}
	return nil
}

func (service *StoreService) activeProfileRef() (*models.Profile, error) {
	if service.store.ActiveIndex == nil {
		return nil, ErrNoActiveProfile
	}
	index := *service.store.ActiveIndex
	if index < 0 || index >= len(service.store.Profiles) {
		return nil, ErrNoActiveProfile
	}
	return &service.store.Profiles[index], nil
}

func (service *StoreService) persist() error {
	if service.persister == nil {
		return nil
	}
	if err := service.persister.Persist(service.store.Clone()); err != nil {
		return errors.Join(ErrPersistFailed, err)
	}
	return nil
}

// normalizeStore backfills document fields that older or hand-edited
// imports may lack: schema version, profile ids and colors, log maps, and
// an active index that actually points at a profile.
func normalizeStore(store *models.Store) {
	if store.SchemaVersion == 0 {
		store.SchemaVersion = models.StoreSchemaVersion
	}
	if store.Profiles == nil {
		store.Profiles = make([]models.Profile, 0)
	}
	for i := range store.Profiles {
		if strings.TrimSpace(store.Profiles[i].ID) == "" {
			store.Profiles[i].ID = uuid.NewString()
		}
		if strings.TrimSpace(store.Profiles[i].Color) == "" {
			store.Profiles[i].Color = models.DefaultProfileColors[i%len(models.DefaultProfileColors)]
		}
		if store.Profiles[i].Intervals == nil {
			store.Profiles[i].Intervals = make([]models.CycleInterval, 0)
		}
		if store.Profiles[i].Logs == nil {
			store.Profiles[i].Logs = make(map[string]models.DailyLog)
		}
	}

	switch {
	case len(store.Profiles) == 0:
		store.ActiveIndex = nil
	case store.ActiveIndex == nil || *store.ActiveIndex < 0 || *store.ActiveIndex >= len(store.Profiles):
		zero := 0
		store.ActiveIndex = &zero
	}
}
