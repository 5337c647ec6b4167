package user

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessUnitFirst(t *testing.T) {
	unitID, ok := BusinessUnit{BusinessUnitIDs: []int64{5, 9}}.First()
	assert.True(t, ok)
	assert.Equal(t, int64(5), unitID)

	_, ok = BusinessUnit{}.First()
	assert.False(t, ok)
}

func TestBusinessUnitJSON(t *testing.T) {
	var bu BusinessUnit
	require.NoError(t, json.Unmarshal([]byte(`{"business_unit_ids": [3, 7]}`), &bu))
	assert.Equal(t, []int64{3, 7}, bu.BusinessUnitIDs)

	encoded, err := json.Marshal(bu)
	require.NoError(t, err)
	assert.JSONEq(t, `{"business_unit_ids": [3, 7]}`, string(encoded))
}
