package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/smallbiznis/recibo/internal/clock"
	"github.com/smallbiznis/recibo/internal/config"
	settingscache "github.com/smallbiznis/recibo/internal/settings/cache"
	"github.com/smallbiznis/recibo/internal/settings/domain"
	"github.com/smallbiznis/recibo/internal/settings/repository"
	"github.com/smallbiznis/recibo/internal/visibility"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Settings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB, cache domain.Cache) *Service {
	t.Helper()
	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Cfg:   config.Config{SettingsCacheTTL: time.Minute},
		Clock: clock.NewFakeClock(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(),
		Cache: cache,
	})
	return svc.(*Service)
}

func strPtr(s string) *string { return &s }

func TestGetInitializesDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db, settingscache.NewMemory())

	view, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCompanyName, view.Profile.CompanyName)
	assert.Equal(t, domain.DefaultCompanyInfo, view.Profile.CompanyInfo)
	assert.Equal(t, visibility.Defaults(), view.FieldVisibility)

	var count int64
	require.NoError(t, db.Model(&domain.Settings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetResolvesStaleStoredConfig(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&domain.Settings{
		ID:              domain.SingletonID,
		CompanyName:     "ACME",
		FieldVisibility: datatypes.JSONMap{"customer_name": true, "removed_field": false},
	}).Error)
	svc := newTestService(t, db, settingscache.NewMemory())

	view, err := svc.Get(context.Background())
	require.NoError(t, err)
	// keys added after the row was written resolve to their defaults
	assert.True(t, view.FieldVisibility.Visible(visibility.AuthorizedSignature))
	assert.True(t, view.FieldVisibility.Visible(visibility.ShowCompanyInfoInHeader))
	assert.False(t, view.FieldVisibility.Visible(visibility.InstitutionUseCompanyName))
}

func TestUpdateMergesPartialVisibility(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newTestService(t, db, settingscache.NewMemory())

	_, err := svc.Update(ctx, domain.UpdateSettingsRequest{
		FieldVisibility: map[string]bool{"notes": false},
	})
	require.NoError(t, err)

	view, err := svc.Update(ctx, domain.UpdateSettingsRequest{
		CompanyName:     strPtr("  Librería Central "),
		ReceiptTitle:    strPtr("COMPROBANTE"),
		FieldVisibility: map[string]bool{"signature": false, "nonsense": true},
	})
	require.NoError(t, err)
	assert.Equal(t, "Librería Central", view.Profile.CompanyName)
	assert.Equal(t, "COMPROBANTE", view.Profile.ReceiptTitle)
	assert.False(t, view.FieldVisibility.Visible(visibility.Notes))
	assert.False(t, view.FieldVisibility.Visible(visibility.Signature))

	stored, err := repository.Provide().Find(ctx, db)
	require.NoError(t, err)
	require.NotNil(t, stored)
	_, hasNonsense := stored.FieldVisibility["nonsense"]
	assert.False(t, hasNonsense)
}

func TestUpdateRejectsBlankCompanyName(t *testing.T) {
	svc := newTestService(t, setupTestDB(t), settingscache.NewMemory())
	_, err := svc.Update(context.Background(), domain.UpdateSettingsRequest{CompanyName: strPtr(" ")})
	assert.ErrorIs(t, err, domain.ErrInvalidCompanyName)
}

func TestCacheReadThroughWriteThrough(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	cache := settingscache.NewMemory()
	svc := newTestService(t, db, cache)

	_, err := svc.Get(ctx)
	require.NoError(t, err)

	// a write behind the service's back is not visible until the entry goes stale
	require.NoError(t, db.Model(&domain.Settings{}).Where("id = ?", domain.SingletonID).Update("company_name", "ELSEWHERE").Error)
	view, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCompanyName, view.Profile.CompanyName)

	_, err = svc.Update(ctx, domain.UpdateSettingsRequest{CompanyName: strPtr("NUEVA")})
	require.NoError(t, err)
	cached, ok := cache.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "NUEVA", cached.Profile.CompanyName)
}
