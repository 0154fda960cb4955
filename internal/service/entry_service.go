package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"caltrack/internal/authz"
	apperrors "caltrack/internal/errors"
	"caltrack/internal/model"
	"caltrack/internal/nutrition"
	"caltrack/internal/repository"
)

const (
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04:05"
	shortTimeLayout = "15:04"
)

// EntryInput carries the fields of an entry submission. Date and Time default
// to the current moment when nil. OwnerID is honored for admins only;
// everyone else creates entries for themselves.
type EntryInput struct {
	Date     *string
	Time     *string
	Text     string
	Calories *int
	OwnerID  *uuid.UUID
}

// EntryPatch carries the optional fields of an entry update. Nil Date, Time
// and Text leave the stored value untouched. Calories is applied verbatim: an
// omitted calories field clears the stored value to null, and no lookup runs
// on the update path. The next serialization backfills it lazily.
type EntryPatch struct {
	Date     *string
	Time     *string
	Text     *string
	Calories *int
}

// EntryResponse is the serialized form of an entry, including the derived
// under-budget flag.
type EntryResponse struct {
	ID                              uuid.UUID `json:"id"`
	Date                            string    `json:"date"`
	Time                            string    `json:"time"`
	Text                            string    `json:"text"`
	Calories                        *int      `json:"calories"`
	IsCalorieIntakeLessThanExpected bool      `json:"is_calorie_intake_less_than_expected"`
	UserID                          uuid.UUID `json:"user_id"`
}

// EntryPage is one page of serialized entries plus pagination metadata.
type EntryPage struct {
	Entries      []EntryResponse `json:"entries"`
	TotalEntries int64           `json:"total_entries"`
	CurrentPage  int             `json:"current_page"`
	PerPage      int             `json:"per_page"`
	HasNext      bool            `json:"has_next"`
	HasPrev      bool            `json:"has_prev"`
}

// EntryService owns the entry lifecycle: calorie auto-fill on create, the
// asymmetric update contract, scoped reads and the derived budget flag.
type EntryService interface {
	Create(ctx context.Context, actor *model.User, in EntryInput) (*EntryResponse, error)
	Get(ctx context.Context, actor *model.User, id uuid.UUID) (*EntryResponse, error)
	List(ctx context.Context, actor *model.User, filter repository.EntryFilter) (*EntryPage, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, patch EntryPatch) (*EntryResponse, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) error
}

type entryService struct {
	entryRepo repository.EntryRepository
	userRepo  repository.UserRepository
	lookup    nutrition.Lookup
}

// NewEntryService builds an EntryService.
func NewEntryService(entryRepo repository.EntryRepository, userRepo repository.UserRepository, lookup nutrition.Lookup) EntryService {
	return &entryService{
		entryRepo: entryRepo,
		userRepo:  userRepo,
		lookup:    lookup,
	}
}

// Create persists a new entry. When calories is absent the lookup runs exactly
// once; a user-supplied value, zero included, is never overwritten. A lookup
// failure leaves calories null rather than failing the save.
func (s *entryService) Create(ctx context.Context, actor *model.User, in EntryInput) (*EntryResponse, error) {
	if in.Text == "" {
		return nil, apperrors.ErrInvalidInput
	}

	ownerID := actor.ID
	if in.OwnerID != nil && *in.OwnerID != actor.ID {
		if !authz.CanCreateEntryFor(actor.Role, actor.ID, *in.OwnerID) {
			return nil, apperrors.ErrUnauthorized
		}
		ownerID = *in.OwnerID
	}

	owner, err := s.findOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	date := now.Format(dateLayout)
	if in.Date != nil {
		if date, err = normalizeDate(*in.Date); err != nil {
			return nil, err
		}
	}
	clock := now.Format(timeLayout)
	if in.Time != nil {
		if clock, err = normalizeTime(*in.Time); err != nil {
			return nil, err
		}
	}

	entry := &model.Entry{
		Date:     date,
		Time:     clock,
		Text:     in.Text,
		Calories: in.Calories,
		UserID:   ownerID,
	}

	if entry.Calories == nil {
		if calories, err := s.lookup.ResolveCalories(ctx, entry.Text); err == nil {
			entry.Calories = &calories
		}
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	// The save path already ran the lookup; don't retry it while serializing.
	return s.serialize(ctx, entry, owner, false)
}

func (s *entryService) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*EntryResponse, error) {
	entry, err := s.scopedFind(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.serialize(ctx, entry, nil, true)
}

// List returns one page of entries visible to the actor. The ownership scope
// is applied before the name and food filters.
func (s *entryService) List(ctx context.Context, actor *model.User, filter repository.EntryFilter) (*EntryPage, error) {
	if authz.EntryScope(actor.Role) == authz.ScopeOwn {
		filter.OwnerID = &actor.ID
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 10
	}

	entries, total, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	owners := make(map[uuid.UUID]*model.User)
	serialized := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		owner := owners[entries[i].UserID]
		if owner == nil {
			if owner, err = s.findOwner(ctx, entries[i].UserID); err != nil {
				return nil, err
			}
			owners[owner.ID] = owner
		}
		resp, err := s.serialize(ctx, &entries[i], owner, true)
		if err != nil {
			return nil, err
		}
		serialized = append(serialized, *resp)
	}

	return &EntryPage{
		Entries:      serialized,
		TotalEntries: total,
		CurrentPage:  filter.Page,
		PerPage:      filter.PerPage,
		HasNext:      int64(filter.Page)*int64(filter.PerPage) < total,
		HasPrev:      filter.Page > 1,
	}, nil
}

// Update applies the patch to an entry in the actor's scope. Calories is
// always taken from the patch, so omitting it clears the stored value; the
// lookup is deliberately not invoked here, unlike on create.
func (s *entryService) Update(ctx context.Context, actor *model.User, id uuid.UUID, patch EntryPatch) (*EntryResponse, error) {
	entry, err := s.scopedFind(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if patch.Date != nil {
		if entry.Date, err = normalizeDate(*patch.Date); err != nil {
			return nil, err
		}
	}
	if patch.Time != nil {
		if entry.Time, err = normalizeTime(*patch.Time); err != nil {
			return nil, err
		}
	}
	if patch.Text != nil {
		if *patch.Text == "" {
			return nil, apperrors.ErrInvalidInput
		}
		entry.Text = *patch.Text
	}
	entry.Calories = patch.Calories

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}

	return s.serialize(ctx, entry, nil, true)
}

func (s *entryService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	entry, err := s.scopedFind(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.entryRepo.Delete(ctx, entry.ID); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// scopedFind loads an entry honoring the actor's visibility scope. An entry
// outside an own-only scope is indistinguishable from a missing one.
func (s *entryService) scopedFind(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Entry, error) {
	var entry *model.Entry
	var err error
	if authz.EntryScope(actor.Role) == authz.ScopeOwn {
		entry, err = s.entryRepo.FindByIDAndOwner(ctx, id, actor.ID)
	} else {
		entry, err = s.entryRepo.FindByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}
	return entry, nil
}

func (s *entryService) findOwner(ctx context.Context, id uuid.UUID) (*model.User, error) {
	owner, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}
	return owner, nil
}

// serialize builds the response form, resolving still-null calories first
// (when resolve is set) and then computing the under-budget flag from the
// owner's same-day total. The resolve step is idempotent: once a value is
// persisted the lookup never runs again for this entry.
func (s *entryService) serialize(ctx context.Context, entry *model.Entry, owner *model.User, resolve bool) (*EntryResponse, error) {
	if resolve && entry.Calories == nil {
		if calories, err := s.lookup.ResolveCalories(ctx, entry.Text); err == nil {
			if err := s.entryRepo.UpdateCalories(ctx, entry.ID, calories); err != nil {
				return nil, fmt.Errorf("persist calories: %w", err)
			}
			entry.Calories = &calories
		}
	}

	if owner == nil {
		var err error
		if owner, err = s.findOwner(ctx, entry.UserID); err != nil {
			return nil, err
		}
	}

	total, err := s.entryRepo.SumCaloriesForDay(ctx, entry.UserID, entry.Date)
	if err != nil {
		return nil, fmt.Errorf("sum calories: %w", err)
	}

	return &EntryResponse{
		ID:                              entry.ID,
		Date:                            entry.Date,
		Time:                            entry.Time,
		Text:                            entry.Text,
		Calories:                        entry.Calories,
		IsCalorieIntakeLessThanExpected: total <= int64(owner.ExpectedDailyCalories),
		UserID:                          entry.UserID,
	}, nil
}

func normalizeDate(s string) (string, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", apperrors.ErrInvalidInput
	}
	return t.Format(dateLayout), nil
}

func normalizeTime(s string) (string, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t.Format(timeLayout), nil
	}
	t, err := time.Parse(shortTimeLayout, s)
	if err != nil {
		return "", apperrors.ErrInvalidInput
	}
	return t.Format(timeLayout), nil
}
