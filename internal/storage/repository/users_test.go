package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/product-hunt/internal/models"
	"github.com/magabrotheeeer/product-hunt/internal/storage"
)

func TestStorage_CreateUser(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, models.User{Email: "a@x.com"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, models.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = s.GetUserByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_UserUpdates(t *testing.T) {
	s := setupTestDatabase(t)
	factory := NewTestDataFactory(s)
	ctx := context.Background()

	id := uuid.MustParse(factory.CreateUser(t, "a@x.com", false))
	factory.CreateUser(t, "b@x.com", false)

	now := time.Now().UTC().Truncate(time.Second)
	res, err := s.UpdateSubscription(ctx, id, models.SubscriptionUpdate{
		IsSubscribed:     true,
		SubscriptionDate: &now,
		PaymentVerified:  true,
		Status:           "verified",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)

	res, err = s.UpdateRole(ctx, id, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)

	u, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, u.IsSubscribed)
	assert.Equal(t, models.RoleAdmin, u.Role)
	require.NotNil(t, u.SubscriptionDate)
	assert.True(t, now.Equal(*u.SubscriptionDate))

	others, err := s.ListUsersExcept(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, "b@x.com", others[0].Email)

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
