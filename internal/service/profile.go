package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/smartcanteen/backend/config"
	"github.com/pageza/smartcanteen/backend/internal/logging"
	"github.com/pageza/smartcanteen/backend/internal/metrics"
	"github.com/pageza/smartcanteen/backend/internal/models"
	"github.com/pageza/smartcanteen/backend/internal/risk"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

var (
	ErrProfileNotFound = errors.New("health profile not found")
	ErrStepOrder       = errors.New("onboarding step out of order")
	ErrProfileConflict = errors.New("health profile was modified concurrently")
	ErrInvalidProfile  = errors.New("invalid health profile data")
)

// ProfileService handles health profile onboarding. Writes for one user are
// serialized in-process; across processes every write is a compare-and-swap
// on the profile version and a stale write fails with ErrProfileConflict.
type ProfileService struct {
	db       *gorm.DB
	weights  risk.SeverityWeights
	strict   bool
	validate *validator.Validate
	locks    *userLocks
	logger   zerolog.Logger
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance. A nil scoring
// config uses the defaults.
func NewProfileService(db *gorm.DB, scoring *config.ScoringConfig) *ProfileService {
	if scoring == nil {
		def := config.DefaultScoringConfig()
		scoring = &def
	}
	v := validator.New()
	v.SetTagName("binding")
	return &ProfileService{
		db:       db,
		weights:  scoring.Weights(),
		strict:   scoring.StrictHealthValues,
		validate: v,
		locks:    newUserLocks(),
		logger:   logging.Component("profile"),
	}
}

// SaveStep1 records body measurements and diet, creating the profile if needed.
func (s *ProfileService) SaveStep1(ctx context.Context, userID uuid.UUID, req *types.Step1Request) (*models.HealthProfile, error) {
	return s.write(ctx, userID, models.StepBasics, true, func(rec *models.HealthProfile) error {
		return s.applyStep1(rec, req)
	})
}

// SaveStep2 records medical history. Step 1 must have been saved.
func (s *ProfileService) SaveStep2(ctx context.Context, userID uuid.UUID, req *types.Step2Request) (*models.HealthProfile, error) {
	return s.write(ctx, userID, models.StepMedical, false, func(rec *models.HealthProfile) error {
		if rec.Step < models.StepBasics {
			return ErrStepOrder
		}
		return s.applyStep2(ctx, rec, req)
	})
}

// Finalize computes the overall risk score and marks onboarding complete.
func (s *ProfileService) Finalize(ctx context.Context, userID uuid.UUID) (*models.HealthProfile, error) {
	return s.write(ctx, userID, models.StepFinalized, false, func(rec *models.HealthProfile) error {
		if rec.Step < models.StepBasics {
			return ErrStepOrder
		}
		s.applyFinalize(rec)
		return nil
	})
}

// CreateProfile runs all onboarding steps as a single write.
func (s *ProfileService) CreateProfile(ctx context.Context, userID uuid.UUID, req *types.CreateProfileRequest) (*models.HealthProfile, error) {
	return s.write(ctx, userID, models.StepFinalized, true, func(rec *models.HealthProfile) error {
		if err := s.applyStep1(rec, &req.Step1Request); err != nil {
			return err
		}
		if err := s.applyStep2(ctx, rec, &req.Step2Request); err != nil {
			return err
		}
		s.applyFinalize(rec)
		return nil
	})
}

// GetProfile returns the stored profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.HealthProfile, error) {
	var rec models.HealthProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load health profile: %w", err)
	}
	return &rec, nil
}

// LoadProfile returns the typed profile used for scoring.
func (s *ProfileService) LoadProfile(ctx context.Context, userID uuid.UUID) (types.HealthProfile, error) {
	rec, err := s.GetProfile(ctx, userID)
	if err != nil {
		return types.HealthProfile{}, err
	}
	return rec.ToDomain(), nil
}

// Report builds the health report of a finalized profile.
func (s *ProfileService) Report(ctx context.Context, userID uuid.UUID) (*risk.HealthReport, error) {
	rec, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !rec.Completed {
		return nil, fmt.Errorf("%w: onboarding not completed", ErrProfileNotFound)
	}
	report := risk.Report(rec.ToDomain())
	return &report, nil
}

// History lists the onboarding writes of a user, oldest first.
func (s *ProfileService) History(ctx context.Context, userID uuid.UUID) ([]models.ProfileHistory, error) {
	var history []models.ProfileHistory
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("version ASC").Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to load profile history: %w", err)
	}
	return history, nil
}

func (s *ProfileService) applyStep1(rec *models.HealthProfile, req *types.Step1Request) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	diet, err := types.ParseDietaryPreference(req.DietaryPreference)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	rec.Age = req.Age
	rec.Gender = strings.TrimSpace(req.Gender)
	rec.WeightKg = req.WeightKg
	rec.HeightCm = req.HeightCm
	rec.BMI = risk.BMI(req.WeightKg, req.HeightCm)
	rec.BMICategory = string(risk.BMICategory(rec.BMI))
	rec.DietaryPreference = string(diet)
	if rec.Step < models.StepBasics {
		rec.Step = models.StepBasics
	}
	if rec.Completed {
		s.applyFinalize(rec)
	}
	return nil
}

func (s *ProfileService) applyStep2(ctx context.Context, rec *models.HealthProfile, req *types.Step2Request) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	rec.Diseases = types.SanitizeDiseases(req.Diseases)

	severity := models.JSONMap[string, string]{}
	for name, label := range req.DiseaseSeverity {
		if clean := types.SanitizeDisease(name); clean != "" {
			severity[clean] = string(types.ParseSeverity(label))
		}
	}
	rec.DiseaseSeverity = severity

	raw := map[types.Condition]string{}
	for key, v := range req.HealthValues {
		cond, ok := types.ConditionFromDisease(key)
		if !ok {
			s.logger.Debug().Str("key", key).Msg("ignoring health value for unknown condition")
			continue
		}
		raw[cond] = string(v)
	}

	values := models.JSONMap[string, float64]{}
	statuses := models.JSONMap[string, string]{}
	for _, cond := range types.Conditions {
		status, value, err := risk.ClassifyReading(cond, raw[cond])
		if err != nil {
			if s.strict {
				return err
			}
			logger := zerolog.Ctx(ctx)
			if logger.GetLevel() == zerolog.Disabled {
				logger = &s.logger
			}
			logger.Warn().Err(err).
				Str("condition", string(cond)).
				Str("raw", raw[cond]).
				Msg("unparseable health value treated as Normal")
		}
		if _, given := raw[cond]; given && err == nil {
			values[string(cond)] = value
		}
		statuses[string(cond)] = string(status)
	}
	rec.HealthValues = values
	rec.ConditionStatus = statuses

	allergies := models.JSONList[types.Allergy]{}
	for _, a := range req.Allergies {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}
		allergies = append(allergies, types.Allergy{Name: name, Severity: types.ParseSeverity(a.Severity)})
	}
	rec.Allergies = allergies

	if rec.Step < models.StepMedical {
		rec.Step = models.StepMedical
	}
	if rec.Completed {
		s.applyFinalize(rec)
	}
	return nil
}

func (s *ProfileService) applyFinalize(rec *models.HealthProfile) {
	score, level := risk.OverallRisk(rec.ToDomain(), s.weights)
	rec.RiskScore = score
	rec.RiskCategory = string(level)
	rec.Completed = true
	rec.Step = models.StepFinalized
}

// write loads the user's profile, applies mutate and stores the result under
// the per-user lock. create allows a missing profile to be created.
func (s *ProfileService) write(ctx context.Context, userID uuid.UUID, step int, create bool, mutate func(*models.HealthProfile) error) (*models.HealthProfile, error) {
	label := strconv.Itoa(step)
	unlock := s.locks.lock(userID)
	defer unlock()

	var rec models.HealthProfile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found := true
		if err := tx.Where("user_id = ?", userID).First(&rec).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to load health profile: %w", err)
			}
			if !create {
				return ErrStepOrder
			}
			found = false
			rec = models.HealthProfile{UserID: userID, DietaryPreference: string(types.DietNonVeg)}
		}

		before := snapshot(&rec, found)
		if err := mutate(&rec); err != nil {
			return err
		}

		if found {
			if err := saveVersioned(tx, &rec, rec.Version); err != nil {
				return err
			}
		} else {
			rec.Version = 1
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoNothing: true,
			}).Create(&rec)
			if res.Error != nil {
				return fmt.Errorf("failed to create health profile: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrProfileConflict
			}
		}

		entry := models.ProfileHistory{
			UserID:    userID,
			Step:      step,
			Version:   rec.Version,
			OldValue:  before,
			NewValue:  snapshot(&rec, true),
			ChangedAt: time.Now().UTC(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to record profile history: %w", err)
		}
		return nil
	})
	if err != nil {
		metrics.ProfileWrites.WithLabelValues(label, writeResult(err)).Inc()
		return nil, err
	}

	metrics.ProfileWrites.WithLabelValues(label, "ok").Inc()
	s.logger.Info().Str("user_id", userID.String()).Int("step", step).Int("version", rec.Version).Msg("health profile saved")
	return &rec, nil
}

// saveVersioned stores rec if its stored version still equals prev and bumps
// the version. A mismatch means another writer got there first.
func saveVersioned(tx *gorm.DB, rec *models.HealthProfile, prev int) error {
	rec.Version = prev + 1
	res := tx.Model(rec).
		Where("version = ?", prev).
		Select("*").
		Omit("ID", "UserID", "CreatedAt", "DeletedAt").
		Updates(rec)
	if res.Error != nil {
		rec.Version = prev
		return fmt.Errorf("failed to update health profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		rec.Version = prev
		return ErrProfileConflict
	}
	return nil
}

func snapshot(rec *models.HealthProfile, exists bool) string {
	if !exists {
		return ""
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return ""
	}
	return string(b)
}

func writeResult(err error) string {
	switch {
	case errors.Is(err, ErrStepOrder):
		return "step_order"
	case errors.Is(err, ErrProfileConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidProfile), errors.Is(err, types.ErrInvalidHealthValue):
		return "invalid"
	}
	return "error"
}

// userLocks hands out one mutex per user id and drops it once unused.
type userLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*userLock
}

type userLock struct {
	sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uuid.UUID]*userLock)}
}

func (u *userLocks) lock(id uuid.UUID) func() {
	u.mu.Lock()
	l, ok := u.locks[id]
	if !ok {
		l = &userLock{}
		u.locks[id] = l
	}
	l.refs++
	u.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		u.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(u.locks, id)
		}
		u.mu.Unlock()
	}
}
