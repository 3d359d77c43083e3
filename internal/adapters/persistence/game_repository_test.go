package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlorenz/robotgame-go/internal/adapters/persistence"
	"github.com/mlorenz/robotgame-go/internal/adapters/worldgen"
	domain "github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
	"github.com/mlorenz/robotgame-go/test/helpers"
)

func newStoredGame(t *testing.T) *domain.Game {
	t.Helper()
	m, err := worldgen.NewSeededGenerator(1).NewWorld(5)
	require.NoError(t, err)
	return domain.NewGame(shared.NewGameID(), 50, 4, m)
}

func TestGameRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormGameRepository(db)

	g := newStoredGame(t)
	require.NoError(t, g.AddPlayer("alice", 500))

	// Act
	err := repo.Save(context.Background(), g)
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), g.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, g.ID, found.ID)
	assert.Equal(t, domain.StatusCreated, found.Status)
	assert.Equal(t, []string{"alice"}, found.Players)
	assert.Len(t, found.Rounds, 1)
	assert.Len(t, found.CurrentState().Map.Planets, len(g.CurrentState().Map.Planets))

	alice, ok := found.CurrentState().Player("alice")
	require.True(t, ok)
	assert.Equal(t, 500, alice.Money)
}

func TestGameRepository_SaveIsUpsert(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormGameRepository(db)

	g := newStoredGame(t)
	require.NoError(t, repo.Save(context.Background(), g))

	// Act
	require.NoError(t, g.AddPlayer("bob", 500))
	require.NoError(t, repo.Save(context.Background(), g))

	// Assert
	found, err := repo.FindByID(context.Background(), g.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, found.Players)

	ids, err := repo.ListIDs(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestGameRepository_NotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormGameRepository(db)

	// Act
	_, err := repo.FindByID(context.Background(), shared.NewGameID())

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}

func TestGameRepository_EmptyIDIsNotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormGameRepository(db)

	// Act
	_, err := repo.FindByID(context.Background(), shared.GameID(""))

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}

func TestGameRepository_Delete(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormGameRepository(db)

	g := newStoredGame(t)
	require.NoError(t, repo.Save(context.Background(), g))

	// Act
	err := repo.Delete(context.Background(), g.ID)
	require.NoError(t, err)

	// Assert
	_, err = repo.FindByID(context.Background(), g.ID)
	assert.True(t, shared.IsNotFound(err))

	err = repo.Delete(context.Background(), g.ID)
	assert.True(t, shared.IsNotFound(err))
}

func TestGameRepository_ListIDs(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormGameRepository(db)

	first := newStoredGame(t)
	second := newStoredGame(t)
	require.NoError(t, repo.Save(context.Background(), first))
	require.NoError(t, repo.Save(context.Background(), second))

	// Act
	ids, err := repo.ListIDs(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}
