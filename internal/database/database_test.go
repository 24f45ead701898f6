package database_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartcanteen/backend/internal/database"
	"github.com/pageza/smartcanteen/backend/internal/models"
	"github.com/pageza/smartcanteen/backend/internal/testhelpers"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

func TestAutoMigrateSQLite(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)

	for _, m := range database.Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}

	rec := models.HealthProfile{
		UserID:    uuid.New(),
		Diseases:  models.JSONList[string]{"Diabetes"},
		Allergies: models.JSONList[types.Allergy]{{Name: "Peanuts", Severity: types.SeveritySevere}},
	}
	require.NoError(t, db.Create(&rec).Error)
	assert.NotEqual(t, uuid.Nil, rec.ID)

	var loaded models.HealthProfile
	require.NoError(t, db.First(&loaded, "user_id = ?", rec.UserID).Error)
	assert.Equal(t, []string{"Diabetes"}, []string(loaded.Diseases))
	assert.Equal(t, "Peanuts", loaded.Allergies[0].Name)
}

func TestMalformedJSONColumnScansEmpty(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)

	rec := models.HealthProfile{UserID: uuid.New()}
	require.NoError(t, db.Create(&rec).Error)
	require.NoError(t, db.Exec("UPDATE health_profiles SET diseases = ?, allergies = ? WHERE id = ?", "{broken", "None", rec.ID).Error)

	var loaded models.HealthProfile
	require.NoError(t, db.First(&loaded, "id = ?", rec.ID).Error)
	assert.Empty(t, loaded.Diseases)
	assert.Empty(t, loaded.Allergies)
}

func TestPostgresMigrations(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	item := models.FoodItemFromDomain(types.FoodItem{Name: "Quinoa Bowl", Price: 230, Calories: 320, Sugar: 2, Protein: 14, Sodium: 200, Carbs: 45})
	require.NoError(t, db.Create(&item).Error)

	var found models.FoodItem
	require.NoError(t, db.Order("embedding <-> '[300,2,14,200,45]'").First(&found).Error)
	assert.Equal(t, "Quinoa Bowl", found.Name)

	// Migrations are idempotent.
	require.NoError(t, database.RunMigrations(db, testhelpers.MigrationsDir()))
}
