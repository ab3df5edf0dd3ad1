package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientJSON(t *testing.T) {
	var ings []Ingredient
	err := json.Unmarshal([]byte(`["1 cup rice", {"name": "beans", "amount": 1.5, "unit": "cup"}]`), &ings)
	require.NoError(t, err)
	assert.Equal(t, []Ingredient{Line("1 cup rice"), Measured("beans", 1.5, "cup")}, ings)

	out, err := json.Marshal(ings)
	require.NoError(t, err)
	assert.JSONEq(t, `["1 cup rice", {"name": "beans", "amount": 1.5, "unit": "cup"}]`, string(out))
}

func TestIngredientJSON_Invalid(t *testing.T) {
	var ing Ingredient
	assert.Error(t, json.Unmarshal([]byte(`42`), &ing))
	assert.Error(t, json.Unmarshal([]byte(`{"name": "x", "amount": -1, "unit": "g"}`), &ing))
}

func TestIngredientString(t *testing.T) {
	assert.Equal(t, "2 large eggs", Line("2 large eggs").String())
	assert.Equal(t, "1.5 cup beans", Measured("beans", 1.5, "cup").String())
	assert.Equal(t, "3 eggs", Measured("eggs", 3, "").String())
}

func TestClone(t *testing.T) {
	r := sample()
	c := r.Clone()
	c.Ingredients[0].Amount = 99
	*c.Macros.Sugar = 99
	c.Tips = append(c.Tips, "new")

	assert.Equal(t, 2.0, r.Ingredients[0].Amount)
	assert.Equal(t, 6.0, *r.Macros.Sugar)
	assert.Empty(t, r.Tips)
}
