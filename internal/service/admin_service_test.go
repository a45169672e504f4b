package service

import (
	"context"
	"testing"
	"time"

	"heartgift-be/internal/dto"
	"heartgift-be/internal/entity"
	"heartgift-be/internal/repository/memory"
	"heartgift-be/pkg/qrserver"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const adminTestSecret = "test-jwt-secret"

func storedGift(sender string, status entity.PaymentStatus) *entity.GiftConfiguration {
	return &entity.GiftConfiguration{
		Theme:         entity.ThemeCouple,
		RecipientName: "Maria",
		SenderName:    sender,
		Message:       "Te amo!",
		SpecialDate:   time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC),
		PlanTier:      entity.TierPremium,
		PaymentStatus: status,
	}
}

func newTestAdminService(t *testing.T) (IAdminService, *memory.Factory) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	factory := memory.NewFactory()
	qr := qrserver.NewClient("https://heartgift.app")
	return NewAdminService(factory, qr, "admin@heartgift.app", string(hash), adminTestSecret), factory
}

func TestAdminLogin(t *testing.T) {
	svc, _ := newTestAdminService(t)

	resp, err := svc.Login(context.Background(), &dto.AdminLoginRequest{
		Email:    "admin@heartgift.app",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte(adminTestSecret), nil
	})
	require.NoError(t, err)
	sub, err := token.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "admin@heartgift.app", sub)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestAdminService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &dto.AdminLoginRequest{Email: "admin@heartgift.app", Password: "wrong"})
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.AdminLoginRequest{Email: "intruder@heartgift.app", Password: "s3cret"})
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestAdminListGifts(t *testing.T) {
	svc, factory := newTestAdminService(t)
	ctx := context.Background()

	repo := factory.NewUnitOfWork(ctx).GiftRepository()
	for _, g := range []struct {
		sender string
		status entity.PaymentStatus
	}{
		{"João", entity.PaymentStatusApproved},
		{"João", entity.PaymentStatusPending},
		{"Ana", entity.PaymentStatusApproved},
	} {
		require.NoError(t, repo.Create(ctx, storedGift(g.sender, g.status)))
	}

	all, err := svc.ListGifts(ctx, "", "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	assert.Len(t, all.Gifts, 3)

	approved, err := svc.ListGifts(ctx, "approved", "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, approved.Total)

	joaoApproved, err := svc.ListGifts(ctx, "approved", "João", 1, 20)
	require.NoError(t, err)
	require.Equal(t, 1, joaoApproved.Total)
	assert.Equal(t, "João", joaoApproved.Gifts[0].SenderName)
	assert.Contains(t, joaoApproved.Gifts[0].ShareURL, "/presente/")
}

func TestAdminListGiftsPagination(t *testing.T) {
	svc, factory := newTestAdminService(t)
	ctx := context.Background()

	repo := factory.NewUnitOfWork(ctx).GiftRepository()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, storedGift("João", entity.PaymentStatusPending)))
	}

	page, err := svc.ListGifts(ctx, "", "", 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total, "total counts every match, not the page")
	assert.Len(t, page.Gifts, 1)

	// Out-of-range paging values fall back to defaults.
	fallback, err := svc.ListGifts(ctx, "", "", 0, 1000)
	require.NoError(t, err)
	assert.Len(t, fallback.Gifts, 5)
}
