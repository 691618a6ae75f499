package network

import (
	"context"
	"crypto/ed25519"
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/solotto/solotto-go/pkg/metrics"
	"github.com/solotto/solotto-go/pkg/solana"
	compute_budget "github.com/solotto/solotto-go/pkg/solana/computebudget"
)

// EstimateComputeUnits simulates instructions under the maximum compute budget
// and returns the consumed units scaled by tolerance, rounded up.
//
// The simulation runs with a nominal unit price and the protocol ceiling as
// its limit so the dry run is never cut short by a low budget. The node swaps
// in a fresh blockhash and skips signature verification, so the transaction
// is never signed. A failed execution is returned as a *SimulationError.
func (n *Network) EstimateComputeUnits(
	ctx context.Context,
	payer ed25519.PublicKey,
	instructions []solana.Instruction,
	tolerance float64,
	blockhash solana.Blockhash,
	lookupTables []solana.AddressLookupTable,
) (uint64, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "EstimateComputeUnits")
	defer tracer.End()

	if !isFinite(tolerance) {
		return 0, &ValidationError{Err: ErrInvalidTolerance}
	}

	simulated := make([]solana.Instruction, 0, len(instructions)+2)
	simulated = append(simulated,
		compute_budget.SetComputeUnitPrice(simulationComputeUnitPrice),
		compute_budget.SetComputeUnitLimit(compute_budget.MaxComputeUnitLimit),
	)
	simulated = append(simulated, instructions...)

	txn := solana.NewV0Transaction(payer, lookupTables, simulated)
	txn.SetBlockhash(blockhash)

	res, err := n.client.SimulateTransaction(txn, solana.SimulateTransactionConfig{
		Commitment:             solana.CommitmentConfirmed,
		ReplaceRecentBlockhash: true,
		SigVerify:              false,
	})
	if err != nil {
		tracer.OnError(err)
		return 0, errors.Wrap(err, "error simulating transaction")
	}

	if res.Err != nil {
		simErr := &SimulationError{
			Err:    res.Err,
			RawErr: string(res.RawErr),
			Logs:   res.Logs,
		}
		tracer.OnError(simErr)
		return 0, simErr
	}

	if res.UnitsConsumed == nil {
		return 0, solana.ErrNoUnitsConsumed
	}

	units := scaleComputeUnits(*res.UnitsConsumed, tolerance)
	tracer.AddAttribute("units", units)
	return units, nil
}

func scaleComputeUnits(consumed uint64, tolerance float64) uint64 {
	scaled := decimal.NewFromBigInt(new(big.Int).SetUint64(consumed), 0).
		Mul(decimal.NewFromFloat(tolerance)).
		Ceil()
	if scaled.IsNegative() {
		return 0
	}
	return scaled.BigInt().Uint64()
}

// computeUnitLimit bounds units to what a SetComputeUnitLimit instruction can
// request.
func computeUnitLimit(units uint64) uint32 {
	if units > compute_budget.MaxComputeUnitLimit {
		return compute_budget.MaxComputeUnitLimit
	}
	return uint32(units)
}
