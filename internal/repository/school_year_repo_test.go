package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-go-api/internal/models"
)

func TestSchoolYearSetActiveDeactivatesOthers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSchoolYearRepository(db)

	y1 := models.SchoolYear{Name: "2024-2025", StartDate: time.Now().AddDate(-1, 0, 0), EndDate: time.Now(), IsActive: true}
	y2 := models.SchoolYear{Name: "2025-2026", StartDate: time.Now(), EndDate: time.Now().AddDate(1, 0, 0)}
	require.NoError(t, db.Create(&y1).Error)
	require.NoError(t, db.Create(&y2).Error)

	activated, err := repo.SetActive(context.Background(), y2.ID)
	require.NoError(t, err)
	require.True(t, activated.IsActive)

	var previous models.SchoolYear
	require.NoError(t, db.First(&previous, y1.ID).Error)
	require.False(t, previous.IsActive, "activating one year deactivates all others")

	var activeCount int64
	require.NoError(t, db.Model(&models.SchoolYear{}).Where("is_active = ?", true).Count(&activeCount).Error)
	require.Equal(t, int64(1), activeCount)
}

func TestSchoolYearCreateActiveDeactivatesOthers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSchoolYearRepository(db)

	existing := models.SchoolYear{Name: "2024-2025", IsActive: true}
	require.NoError(t, db.Create(&existing).Error)

	year := models.SchoolYear{Name: "2025-2026", StartDate: time.Now(), EndDate: time.Now().AddDate(1, 0, 0), IsActive: true}
	require.NoError(t, repo.Create(context.Background(), &year))

	var activeCount int64
	require.NoError(t, db.Model(&models.SchoolYear{}).Where("is_active = ?", true).Count(&activeCount).Error)
	require.Equal(t, int64(1), activeCount)

	active, err := repo.GetActive(context.Background())
	require.NoError(t, err)
	require.Equal(t, year.ID, active.ID)
}
