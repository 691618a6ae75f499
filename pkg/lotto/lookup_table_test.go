package lotto

import (
	"context"
	"crypto/ed25519"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeLookupTable(deactivationSlot uint64, addresses ...ed25519.PublicKey) []byte {
	data := make([]byte, 56)
	binary.LittleEndian.PutUint32(data, 1)
	binary.LittleEndian.PutUint64(data[4:], deactivationSlot)
	for _, address := range addresses {
		data = append(data, address...)
	}
	return data
}

func TestGetLookupTable(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	address := newKey(t)
	entries := []ed25519.PublicKey{newKey(t), newKey(t)}
	env.rpc.accounts[string(address)] = encodeLookupTable(math.MaxUint64, entries...)

	table, err := env.client.GetLookupTable(ctx, address)
	require.NoError(t, err)
	assert.EqualValues(t, address, table.PublicKey)
	assert.Equal(t, entries, table.Addresses)

	_, err = env.client.GetLookupTable(ctx, newKey(t))
	assert.Equal(t, ErrLookupTableNotFound, err)

	inactive := newKey(t)
	env.rpc.accounts[string(inactive)] = encodeLookupTable(100, entries...)
	_, err = env.client.GetLookupTable(ctx, inactive)
	assert.Equal(t, ErrLookupTableInactive, err)

	invalid := newKey(t)
	env.rpc.accounts[string(invalid)] = []byte{1, 2, 3}
	_, err = env.client.GetLookupTable(ctx, invalid)
	assert.Error(t, err)
}
