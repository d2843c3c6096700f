package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePatch struct {
	Name        Field[string] `json:"name"`
	Description Field[string] `json:"description"`
	Amount      Field[int]    `json:"amount"`
}

func TestField_DistinguishesOmittedNullAndValue(t *testing.T) {
	var p samplePatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Reunion","description":null}`), &p))

	assert.True(t, p.Name.Set)
	assert.True(t, p.Name.Present())
	assert.Equal(t, "Reunion", p.Name.Value)

	assert.True(t, p.Description.Set)
	assert.True(t, p.Description.Null)
	assert.Nil(t, p.Description.Ptr())

	assert.False(t, p.Amount.Set)
	assert.False(t, p.Amount.Present())
}

func TestField_EmptyObjectLeavesEverythingUnset(t *testing.T) {
	var p samplePatch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))

	assert.False(t, p.Name.Set)
	assert.False(t, p.Description.Set)
	assert.False(t, p.Amount.Set)
}

func TestField_TypeMismatchFails(t *testing.T) {
	var p samplePatch
	err := json.Unmarshal([]byte(`{"amount":"ten"}`), &p)
	assert.Error(t, err)
}

func TestField_Constructors(t *testing.T) {
	v := Of(42)
	require.NotNil(t, v.Ptr())
	assert.Equal(t, 42, *v.Ptr())

	n := Null[int]()
	assert.True(t, n.Set)
	assert.Nil(t, n.Ptr())

	out, err := json.Marshal(samplePatch{Name: Of("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","description":null,"amount":null}`, string(out))
}
