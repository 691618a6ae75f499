package main

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solotto/solotto-go/pkg/lotto"
	"github.com/solotto/solotto-go/pkg/solana/lottery"
)

func execute(t *testing.T, args ...string) (string, error) {
	cmd, c := newRootCmd()
	defer c.teardown()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(append(args, "--config", ""))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDerivePrizePool(t *testing.T) {
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	t.Setenv(lotto.ProgramIdConfigEnvName, encodeKey(program))

	out, err := execute(t, "derive", "prize-pool")
	require.NoError(t, err)

	var view derivedView
	require.NoError(t, json.Unmarshal([]byte(out), &view))

	expected, bump, err := lottery.GetPrizePoolAddress(&lottery.GetPrizePoolAddressArgs{Program: program})
	require.NoError(t, err)
	assert.Equal(t, encodeKey(expected), view.Address)
	assert.Equal(t, bump, view.Bump)
}

func TestInvalidProgram(t *testing.T) {
	t.Setenv(lotto.ProgramIdConfigEnvName, "not-a-key")

	_, err := execute(t, "derive", "prize-pool")
	assert.Error(t, err)
}

func TestTeardownAfterFailedCommand(t *testing.T) {
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	t.Setenv(lotto.ProgramIdConfigEnvName, encodeKey(program))

	cmd, c := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"derive", "lottery", "--config", ""})

	err = cmd.ExecuteContext(context.Background())
	assert.EqualError(t, err, "--authority is required")
	require.NotNil(t, c.client)
	require.NotNil(t, c.endTxn)

	c.teardown()
	assert.Nil(t, c.endTxn)
	assert.Nil(t, c.nr)
}

func TestParseKey(t *testing.T) {
	_, err := parseKey("authority", "")
	assert.EqualError(t, err, "--authority is required")

	_, err = parseKey("authority", "abc")
	assert.Error(t, err)

	key, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	parsed, err := parseKey("authority", encodeKey(key))
	require.NoError(t, err)
	assert.EqualValues(t, key, parsed)
}

func TestNewLotteryView(t *testing.T) {
	winner := uint64(3)
	state := &lottery.LotteryState{
		LotteryAccount: lottery.LotteryAccount{
			LotteryId:          2,
			TicketPrice:        1_500_000_000,
			WinnerTicketNumber: &winner,
			PrizePool:          3_000_000_000,
		},
		PrizePoolBalance: decimal.NewFromBigInt(big.NewInt(2_700_000_000), 0),
	}

	view := newLotteryView(state)
	assert.Equal(t, "1.5", view.TicketPrice)
	assert.Equal(t, "2.7", view.PrizePoolBalance)
	assert.EqualValues(t, 3_000_000_000, view.PrizePool)
	assert.Equal(t, &winner, view.WinnerTicketNumber)
	assert.Empty(t, view.WinnerAddress)
	assert.Empty(t, view.Authority)
}
