package service

import (
	"context"
	"testing"

	"winetour-be/internal/dto"
	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminVineyardCrudFlushesCatalogCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.admin.CreateVineyard(ctx, &dto.CreateVineyardRequest{
		Name:    "Chateau Neuf",
		Region:  "rhone",
		Address: "3 Hill Road",
		Offers:  []dto.OfferRequest{{Name: "Cellar Tour", Price: 35}},
	})
	require.NoError(t, err)
	require.Len(t, created.Offers, 1)

	// Prime the explore cache.
	list, err := f.catalog.ListVineyards(ctx, &dto.ExploreQuery{Region: "rhone"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Chateau Neuf", list[0].Name)

	_, err = f.admin.UpdateVineyard(ctx, &dto.UpdateVineyardRequest{
		Id:      created.Id,
		Name:    "Chateau Vieux",
		Region:  "rhone",
		Address: "3 Hill Road",
	})
	require.NoError(t, err)

	// The rename is visible immediately; the admin write flushed the cache.
	list, err = f.catalog.ListVineyards(ctx, &dto.ExploreQuery{Region: "rhone"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Chateau Vieux", list[0].Name)

	require.NoError(t, f.admin.DeleteVineyard(ctx, created.Id))
	list, err = f.catalog.ListVineyards(ctx, &dto.ExploreQuery{Region: "rhone"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeactivatedVineyardHiddenFromExplore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.seedVineyard(t, "Fading Estate", "loire")

	inactive := false
	_, err := f.admin.UpdateVineyard(ctx, &dto.UpdateVineyardRequest{
		Id:       v.Id,
		Name:     v.Name,
		Region:   v.Region,
		Address:  v.Address,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	list, err := f.catalog.ListVineyards(ctx, &dto.ExploreQuery{Region: "loire"})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.catalog.GetVineyard(ctx, v.Id)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound), "got %v", err)
}

func TestAdminRestaurantCrud(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.admin.CreateRestaurant(ctx, &dto.CreateRestaurantRequest{
		Name:    "Auberge du Pont",
		Region:  "bordeaux",
		Address: "5 River Walk",
		Cuisine: "bistro",
	})
	require.NoError(t, err)

	got, err := f.catalog.GetRestaurant(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "bistro", got.Cuisine)

	require.NoError(t, f.admin.DeleteRestaurant(ctx, created.Id))
	_, err = f.catalog.GetRestaurant(ctx, created.Id)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound), "got %v", err)
}

func TestListUsersSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "alice@example.com")
	f.seedUser(t, "bob@example.com")

	all, err := f.admin.ListUsers(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)

	found, err := f.admin.ListUsers(ctx, "alice", 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, found.Total)
	assert.Equal(t, "alice@example.com", found.Users[0].Email)
}

func TestUpdateUserStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "trouble@example.com")

	require.NoError(t, f.admin.UpdateUserStatus(ctx, &dto.UpdateUserStatusRequest{
		Id: user.Id, Status: "blocked",
	}))

	// Blocked accounts cannot log in anymore.
	_, err := f.auth.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "secret123"}, "", "")
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized), "got %v", err)

	require.NoError(t, f.admin.UpdateUserStatus(ctx, &dto.UpdateUserStatusRequest{
		Id: user.Id, Status: "active",
	}))
	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "secret123"}, "", "")
	require.NoError(t, err)
}

func TestCannotBlockAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.seedUser(t, "root@example.com")
	admin.Role = entity.UserRoleAdmin
	require.NoError(t, f.repos.Users.Update(ctx, admin))

	err := f.admin.UpdateUserStatus(ctx, &dto.UpdateUserStatusRequest{Id: admin.Id, Status: "blocked"})
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "got %v", err)
}
