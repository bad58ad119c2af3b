package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/wrenbird/cycla/internal/models"
)

var (
	ErrImportInvalid            = errors.New("import document invalid")
	ErrImportUnsupportedVersion = errors.New("import document version unsupported")
)

// importEnvelope mirrors the serialized document with enough indirection
// to tell a missing profile list apart from an empty one.
type importEnvelope struct {
	SchemaVersion int              `json:"schema_version"`
	ActiveIndex   *int             `json:"active_index"`
	Profiles      *[]importProfile `json:"profiles" validate:"required,dive"`
}

type importProfile struct {
	ID        string               `json:"id"`
	Name      string               `json:"name" validate:"required"`
	Color     string               `json:"color" validate:"omitempty,hexcolor"`
	Intervals []importInterval     `json:"intervals" validate:"dive"`
	Logs      map[string]importLog `json:"logs" validate:"dive"`
}

type importInterval struct {
	Start string  `json:"start" validate:"required,calendarday"`
	End   *string `json:"end" validate:"omitempty,calendarday"`
}

type importLog struct {
	Mood     string   `json:"mood" validate:"omitempty,oneof=happy calm sad tired angry unset"`
	Flow     string   `json:"flow" validate:"omitempty,oneof=none light medium heavy"`
	Symptoms []string `json:"symptoms"`
}

var importValidate = newImportValidator()

func newImportValidator() *validator.Validate {
	validate := validator.New()
	// Registration only fails for a blank tag, which would be a
	// programming error here.
	if err := validate.RegisterValidation("calendarday", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDay(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return validate
}

// envelopeValidators is keyed by schema version; version 0 is a document
// written before the version field existed and validates as version 1.
var envelopeValidators = map[int]func(envelope importEnvelope) error{
	0: validateEnvelopeV1,
	1: validateEnvelopeV1,
}

// DecodeImportDocument parses and validates a raw import blob. Any
// failure returns an error wrapping ErrImportInvalid (or the unsupported-
// version sentinel) and no document, so callers can leave existing state
// untouched.
func DecodeImportDocument(raw []byte) (models.Store, error) {
	var envelope importEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return models.Store{}, fmt.Errorf("%w: %w", ErrImportInvalid, err)
	}

	validateEnvelope, supported := envelopeValidators[envelope.SchemaVersion]
	if !supported {
		return models.Store{}, fmt.Errorf("%w: version %d", ErrImportUnsupportedVersion, envelope.SchemaVersion)
	}
	if err := validateEnvelope(envelope); err != nil {
		return models.Store{}, fmt.Errorf("%w: %w", ErrImportInvalid, err)
	}

	return envelopeToStore(envelope), nil
}

func validateEnvelopeV1(envelope importEnvelope) error {
	return importValidate.Struct(envelope)
}

func envelopeToStore(envelope importEnvelope) models.Store {
	store := models.Store{
		SchemaVersion: models.StoreSchemaVersion,
		ActiveIndex:   envelope.ActiveIndex,
		Profiles:      make([]models.Profile, 0, len(*envelope.Profiles)),
	}

	for _, profile := range *envelope.Profiles {
		converted := models.Profile{
			ID:        profile.ID,
			Name:      profile.Name,
			Color:     profile.Color,
			Intervals: make([]models.CycleInterval, 0, len(profile.Intervals)),
			Logs:      make(map[string]models.DailyLog, len(profile.Logs)),
		}
		for _, interval := range profile.Intervals {
			// Dates already passed the calendarday rule.
			start, _ := models.ParseDay(interval.Start)
			converted.Intervals = append(converted.Intervals, models.CycleInterval{Start: start})
			if interval.End != nil {
				end, _ := models.ParseDay(*interval.End)
				converted.Intervals[len(converted.Intervals)-1].End = &end
			}
		}
		for date, entry := range profile.Logs {
			if _, err := models.ParseDay(date); err != nil {
				continue
			}
			converted.Logs[date] = models.DailyLog{
				Mood:     NormalizeMood(entry.Mood),
				Flow:     NormalizeFlow(entry.Flow),
				Symptoms: NormalizeSymptoms(entry.Symptoms),
			}
		}
		store.Profiles = append(store.Profiles, converted)
	}
	return store
}
