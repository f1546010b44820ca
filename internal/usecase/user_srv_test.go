package usecase

import (
	"context"
	"testing"

	"kickstreet/internal/data/entity"
	"kickstreet/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_UpdateProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	registerVerified(t, f, "asha@example.com", "9876543210")
	registerVerified(t, f, "ravi@example.com", "9123456789")

	asha, _ := f.repo.User.FindByEmail(ctx, "asha@example.com")

	name := "Asha K"
	updated, err := f.svc.User.UpdateProfile(ctx, asha.ID, &request.UpdateProfileRequest{
		Name:            &name,
		ShippingAddress: &request.AddressRequest{Line1: "1 MG Road", City: "Pune"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", updated.Name)
	assert.Equal(t, "IN", updated.ShippingAddress.Country)

	taken := "9123456789"
	_, err = f.svc.User.UpdateProfile(ctx, asha.ID, &request.UpdateProfileRequest{Phone: &taken})
	assert.ErrorIs(t, err, ErrConflict)

	profile, err := f.svc.User.GetProfile(ctx, asha.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pune", profile.ShippingAddress.City)
	assert.Equal(t, "9876543210", profile.Phone)
}

func TestUser_EnsureAdminCreatesThenPromotes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	admin, err := f.svc.User.EnsureAdmin(ctx, "Root", "root@example.com", "9000000000", "rootpass1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.True(t, admin.IsVerified)

	registerVerified(t, f, "asha@example.com", "9876543210")
	promoted, err := f.svc.User.EnsureAdmin(ctx, "", "Asha@example.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, promoted.Role)

	// admins cannot be removed through the API
	assert.ErrorIs(t, f.svc.User.DeleteUser(ctx, mustUUID(t, admin.ID)), ErrForbidden)
}

func TestUser_DeleteAndList(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	registerVerified(t, f, "asha@example.com", "9876543210")
	asha, _ := f.repo.User.FindByEmail(ctx, "asha@example.com")

	page, err := f.svc.User.GetAllUsers(ctx, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Pagination.Total)

	require.NoError(t, f.svc.User.DeleteUser(ctx, asha.ID))
	assert.ErrorIs(t, f.svc.User.DeleteUser(ctx, asha.ID), ErrNotFound)
	assert.ErrorIs(t, f.svc.User.DeleteUser(ctx, uuid.New()), ErrNotFound)
}
