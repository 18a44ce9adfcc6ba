package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/models"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock EventRepository ---

type mockEventRepo struct {
	upsertFn   func(ctx context.Context, event *models.EventConfig) error
	findByIDFn func(ctx context.Context, id string) (*models.EventConfig, error)
	findAllFn  func(ctx context.Context) ([]models.EventConfig, error)
}

func (m *mockEventRepo) Upsert(ctx context.Context, event *models.EventConfig) error {
	return m.upsertFn(ctx, event)
}
func (m *mockEventRepo) FindByID(ctx context.Context, id string) (*models.EventConfig, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindAll(ctx context.Context) ([]models.EventConfig, error) {
	return m.findAllFn(ctx)
}

// --- Tests ---

func TestSetEventConfig_Success(t *testing.T) {
	svc := NewEventService(repository.NewMemoryEventRepository(), discardLogger())

	saved, err := svc.SetEventConfig(context.Background(), clubEvent())

	require.NoError(t, err)
	assert.Equal(t, "evt-club", saved.ID)
	assert.Len(t, saved.Tiers, 3)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestSetEventConfig_ReplacesTiers(t *testing.T) {
	svc := NewEventService(repository.NewMemoryEventRepository(), discardLogger())
	ctx := context.Background()

	_, err := svc.SetEventConfig(ctx, clubEvent())
	require.NoError(t, err)

	updated := clubEvent()
	updated.Tiers = append(updated.Tiers, models.PriceTier{Name: "Closing", StartTime: tod(23, 30), Price: 1000})
	_, err = svc.SetEventConfig(ctx, updated)
	require.NoError(t, err)

	tier, err := svc.PreviewTier(ctx, "evt-club", tod(23, 45))
	require.NoError(t, err)
	assert.Equal(t, "Closing", tier.Name)
}

func TestSetEventConfig_Validation(t *testing.T) {
	svc := NewEventService(repository.NewMemoryEventRepository(), discardLogger())

	cases := map[string]func(e *models.EventConfig){
		"missing id":          func(e *models.EventConfig) { e.ID = "" },
		"missing name":        func(e *models.EventConfig) { e.Name = "" },
		"unknown cover type":  func(e *models.EventConfig) { e.CoverChargeType = "vip" },
		"free without cutoff": func(e *models.EventConfig) { e.CoverChargeType = models.CoverChargeFreeBefore },
		"negative grace":      func(e *models.EventConfig) { e.GracePeriodMinutes = -1 },
		"zero group size":     func(e *models.EventConfig) { e.MaxGroupSize = 0 },
		"negative price":      func(e *models.EventConfig) { e.Tiers[1].Price = -5 },
		"tier out of range":   func(e *models.EventConfig) { e.Tiers[2].StartTime = models.TimeOfDay(24 * 60) },
		"unnamed tier":        func(e *models.EventConfig) { e.Tiers[0].Name = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			e := clubEvent()
			mutate(e)
			_, err := svc.SetEventConfig(context.Background(), e)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestSetEventConfig_RepoError(t *testing.T) {
	repo := &mockEventRepo{
		upsertFn: func(ctx context.Context, event *models.EventConfig) error {
			return errors.New("db connection failed")
		},
	}
	svc := NewEventService(repo, discardLogger())

	_, err := svc.SetEventConfig(context.Background(), clubEvent())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db connection failed")
}

func TestGetEventConfig_NotFound(t *testing.T) {
	repo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.EventConfig, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewEventService(repo, discardLogger())

	event, err := svc.GetEventConfig(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.Nil(t, event)
}

func TestListEventConfigs(t *testing.T) {
	repo := &mockEventRepo{
		findAllFn: func(ctx context.Context) ([]models.EventConfig, error) {
			return []models.EventConfig{{ID: "a"}, {ID: "b"}}, nil
		},
	}
	svc := NewEventService(repo, discardLogger())

	events, err := svc.ListEventConfigs(context.Background())

	assert.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestPreviewTier_ConfigurationError(t *testing.T) {
	repo := repository.NewMemoryEventRepository()
	svc := NewEventService(repo, discardLogger())
	event := clubEvent()
	event.Tiers = nil
	require.NoError(t, repo.Upsert(context.Background(), event))

	_, err := svc.PreviewTier(context.Background(), "evt-club", tod(22, 0))
	assert.ErrorIs(t, err, ErrConfiguration)
}
