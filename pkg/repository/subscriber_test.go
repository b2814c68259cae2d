package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojoconmipisto/superbot/pkg/domain"
)

func TestSubscriberRepository_CreateAndGet(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	sub := &domain.Subscriber{
		Phone:       "50255501234",
		Name:        "María López",
		Departments: []string{"Escuintla", "Chimaltenango"},
		Topics:      []string{"movilidad", "acceso a la información"},
		Status:      domain.StatusActive,
	}

	err := repos.Subscriber.Create(context.Background(), sub)
	require.NoError(t, err)
	assert.NotZero(t, sub.ID)

	got, err := repos.Subscriber.GetByPhone(context.Background(), "50255501234")
	require.NoError(t, err)
	assert.Equal(t, "María López", got.Name)
	assert.Equal(t, []string{"Escuintla", "Chimaltenango"}, got.Departments)
	assert.Equal(t, []string{"movilidad", "acceso a la información"}, got.Topics)
	assert.Equal(t, domain.StatusActive, got.Status)
	assert.False(t, got.SubscribedAt.IsZero())
}

func TestSubscriberRepository_GetByPhone_NotFound(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repos.Subscriber.GetByPhone(context.Background(), "50200000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubscriberRepository_DuplicatePhoneRejected(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	sub := &domain.Subscriber{Phone: "50255501234", Name: "a", Status: domain.StatusActive}
	require.NoError(t, repos.Subscriber.Create(context.Background(), sub))

	dup := &domain.Subscriber{Phone: "50255501234", Name: "b", Status: domain.StatusActive}
	assert.Error(t, repos.Subscriber.Create(context.Background(), dup))
}

func TestSubscriberRepository_Update(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	sub := &domain.Subscriber{
		Phone:       "50255501234",
		Name:        "María",
		Departments: []string{"Jalapa"},
		Topics:      []string{"congreso"},
		Status:      domain.StatusInactive,
	}
	require.NoError(t, repos.Subscriber.Create(context.Background(), sub))

	sub.Name = "María López"
	sub.Departments = []string{"Petén"}
	sub.Topics = []string{"ambiente", "movilidad"}
	sub.Status = domain.StatusActive
	require.NoError(t, repos.Subscriber.Update(context.Background(), sub))

	got, err := repos.Subscriber.GetByPhone(context.Background(), "50255501234")
	require.NoError(t, err)
	assert.Equal(t, "María López", got.Name)
	assert.Equal(t, []string{"Petén"}, got.Departments)
	assert.Equal(t, []string{"ambiente", "movilidad"}, got.Topics)
	assert.Equal(t, domain.StatusActive, got.Status)
}

func TestSubscriberRepository_Update_NotFound(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	err := repos.Subscriber.Update(context.Background(), &domain.Subscriber{Phone: "50200000000"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSubscriberRepository_SetStatus(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	sub := &domain.Subscriber{Phone: "50255501234", Name: "x", Status: domain.StatusActive}
	require.NoError(t, repos.Subscriber.Create(context.Background(), sub))

	require.NoError(t, repos.Subscriber.SetStatus(context.Background(), "50255501234", domain.StatusInactive))

	got, err := repos.Subscriber.GetByPhone(context.Background(), "50255501234")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, got.Status)
}

func TestSubscriberRepository_GetActive(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	subs := []*domain.Subscriber{
		{Phone: "1", Name: "deptos y temas", Departments: []string{"Guatemala"}, Topics: []string{"congreso"}, Status: domain.StatusActive},
		{Phone: "2", Name: "solo deptos", Departments: []string{"Izabal"}, Status: domain.StatusActive},
		{Phone: "3", Name: "solo temas", Topics: []string{"ambiente"}, Status: domain.StatusActive},
		{Phone: "4", Name: "inactivo", Departments: []string{"Zacapa"}, Topics: []string{"movilidad"}, Status: domain.StatusInactive},
	}
	for _, s := range subs {
		require.NoError(t, repos.Subscriber.Create(context.Background(), s))
	}

	t.Run("with departments for the daily run", func(t *testing.T) {
		active, err := repos.Subscriber.GetActiveWithDepartments(context.Background())
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, "1", active[0].Phone)
		assert.Equal(t, "2", active[1].Phone)
	})

	t.Run("with topics for the weekly run", func(t *testing.T) {
		active, err := repos.Subscriber.GetActiveWithTopics(context.Background())
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, "1", active[0].Phone)
		assert.Equal(t, "3", active[1].Phone)
	})
}

func TestSubscriberRepository_MalformedListsScanEmpty(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	sub := &domain.Subscriber{Phone: "50255501234", Name: "x", Status: domain.StatusActive}
	require.NoError(t, repos.Subscriber.Create(context.Background(), sub))

	// corrupt the stored list directly
	_, err := repos.DB.Exec("UPDATE suscriptores SET departamentos = 'not json' WHERE telefono = ?", "50255501234")
	require.NoError(t, err)

	got, err := repos.Subscriber.GetByPhone(context.Background(), "50255501234")
	require.NoError(t, err)
	assert.Empty(t, got.Departments)
}
