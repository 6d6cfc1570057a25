package service

import (
	"context"
	"testing"

	"winetour-be/internal/dto"
	"winetour-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "me@example.com")
	f.seedUser(t, "taken@example.com")

	profile, err := f.users.UpdateProfile(ctx, user.Id, &dto.UpdateProfileRequest{
		FullName: "Renamed Taster",
		Email:    "fresh@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Taster", profile.FullName)
	assert.Equal(t, "fresh@example.com", profile.Email)

	// Another account already owns this address.
	_, err = f.users.UpdateProfile(ctx, user.Id, &dto.UpdateProfileRequest{
		FullName: "Renamed Taster",
		Email:    "taken@example.com",
	})
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "got %v", err)

	got, err := f.users.GetProfile(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, "fresh@example.com", got.Email)
}
