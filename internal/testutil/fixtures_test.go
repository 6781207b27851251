package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestItem_UniqueIDsAndOptions(t *testing.T) {
	a := NewTestItem("09:00", "朝食")
	b := NewTestItem("10:00", "散歩", WithURL("https://x.test"), WithID("fixed"))

	assert.NotEqual(t, a.ID, NewTestItem("09:00", "朝食").ID)
	assert.Equal(t, "fixed", b.ID)
	assert.Equal(t, "https://x.test", b.URL)
}

func TestSeedStore_SortsAndAssignsPredictableIDs(t *testing.T) {
	store := NewTestStore()
	items := SeedStore(t, store,
		NewTestItem("12:00", "昼食"),
		NewTestItem("8:00", "出発"),
	)

	require.Len(t, items, 2)
	assert.Equal(t, "08:00", items[0].Time)
	assert.Equal(t, "id-2", items[0].ID)
	assert.Equal(t, "id-1", items[1].ID)
}

func TestKyotoDay_IsSorted(t *testing.T) {
	day := KyotoDay()
	for i := 1; i < len(day); i++ {
		assert.LessOrEqual(t, day[i-1].Time, day[i].Time)
	}
}
