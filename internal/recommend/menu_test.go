package recommend

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartcanteen/backend/internal/estimator"
	"github.com/pageza/smartcanteen/backend/internal/risk"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

func TestComposeSkipsOutOfStock(t *testing.T) {
	catalog := []types.FoodItem{
		{ID: 1, Name: "Fresh Green Salad", Sugar: 2, Carbs: 10, StockQuantity: types.IntPtr(0)},
		{ID: 2, Name: "Quinoa Bowl", Sugar: 2, Carbs: 45, StockQuantity: types.IntPtr(4)},
	}
	c := NewComposer(newTestEngine(0.5), 4)

	menu := c.Compose(context.Background(), catalog, types.DefaultProfile())
	require.Len(t, menu, 1)
	assert.Equal(t, uint(2), menu[0].ID)
	assert.Equal(t, "Low GI", menu[0].Tag)
}

func TestComposeSkipsUnavailableAndKeepsOrder(t *testing.T) {
	var catalog []types.FoodItem
	for i := 1; i <= 40; i++ {
		item := types.FoodItem{ID: uint(i), Name: fmt.Sprintf("Dish %d", i), Sugar: float64(i)}
		if i%5 == 0 {
			item.IsAvailable = types.BoolPtr(false)
		}
		catalog = append(catalog, item)
	}

	c := NewComposer(newTestEngine(0.5), 3)
	menu := c.Compose(context.Background(), catalog, types.DefaultProfile())

	require.Len(t, menu, 32)
	prev := uint(0)
	for _, it := range menu {
		assert.NotZero(t, it.ID%5)
		assert.Greater(t, it.ID, prev)
		prev = it.ID
	}
	assert.LessOrEqual(t, len(menu), len(catalog))
}

func TestComposeIsIdempotent(t *testing.T) {
	engine := NewEngine(estimator.StandIn{Min: 0.4, Max: 0.95}, risk.DefaultSeverityWeights(), 0.6)
	c := NewComposer(engine, 8)
	catalog := DefaultCatalog()
	p := types.DefaultProfile()
	p.Diseases = []string{"Diabetes"}

	first := c.Compose(context.Background(), catalog, p)
	second := c.Compose(context.Background(), catalog, p)
	assert.Equal(t, first, second)
}

func TestComposeDoesNotMutateCatalog(t *testing.T) {
	catalog := []types.FoodItem{{ID: 1, Name: "Grilled Salmon", Protein: 42}}
	c := NewComposer(newTestEngine(0.5), 1)
	menu := c.Compose(context.Background(), catalog, types.DefaultProfile())

	menu[0].Name = "changed"
	assert.Equal(t, "Grilled Salmon", catalog[0].Name)
}

func TestMenuFilter(t *testing.T) {
	items := []types.ScoredItem{
		{FoodItem: types.FoodItem{ID: 1}, MatchScore: 60, RiskLevel: types.RiskCaution, Tag: "Low Carb"},
		{FoodItem: types.FoodItem{ID: 2}, MatchScore: 90, RiskLevel: types.RiskSafe, Tag: "Sugar Free"},
		{FoodItem: types.FoodItem{ID: 3}, MatchScore: 0, RiskLevel: types.RiskDanger, Tag: "Danger"},
		{FoodItem: types.FoodItem{ID: 4}, MatchScore: 85, RiskLevel: types.RiskSafe, Tag: "Low Carb"},
	}

	caution := types.RiskCaution
	got := MenuFilter{MaxRisk: &caution}.Apply(items)
	assert.Len(t, got, 3)

	got = MenuFilter{Tag: "Low Carb", SortByScore: true}.Apply(items)
	require.Len(t, got, 2)
	assert.Equal(t, uint(4), got[0].ID)
	assert.Equal(t, uint(1), got[1].ID)

	got = MenuFilter{SortByScore: true, Limit: 2}.Apply(items)
	require.Len(t, got, 2)
	assert.Equal(t, []uint{2, 4}, []uint{got[0].ID, got[1].ID})

	assert.Equal(t, uint(1), items[0].ID, "input order untouched")
	assert.Len(t, MenuFilter{}.Apply(items), 4)
}
