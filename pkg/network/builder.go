package network

import (
	"context"
	"encoding/base64"
	"math"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/solotto/solotto-go/pkg/metrics"
	"github.com/solotto/solotto-go/pkg/solana"
	compute_budget "github.com/solotto/solotto-go/pkg/solana/computebudget"
	"github.com/solotto/solotto-go/pkg/solana/memo"
)

const computeLimitErrorMessage = "there was an error when optimizing compute limit"

// Build assembles a v0 transaction from req.
//
// The request is validated before any network call. Instructions are copied,
// so the caller's slice is never modified. When enabled, the memo is appended,
// a compute unit limit sized from a simulation is prepended and a priority fee
// price is prepended ahead of it, giving [price, limit, instructions..., memo].
func (n *Network) Build(ctx context.Context, req *TransactionRequest) (*BuiltTransaction, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Build")
	defer tracer.End()

	if req == nil || len(req.Payer) == 0 {
		return nil, &ValidationError{Err: ErrMissingAccount}
	}
	if len(req.Instructions) == 0 {
		return nil, &ValidationError{Err: ErrMissingInstructions}
	}
	if !isFinite(req.Tolerance) {
		return nil, &ValidationError{Err: ErrInvalidTolerance}
	}

	log := n.log.WithFields(map[string]interface{}{
		"method":  "Build",
		"request": uuid.NewString(),
		"payer":   base58.Encode(req.Payer),
	})

	blockhash, err := n.client.GetLatestBlockhash()
	if err != nil {
		log.WithError(err).Warn("failure getting latest blockhash")
		tracer.OnError(err)
		return nil, &BuilderError{Message: "error getting latest blockhash", Err: err}
	}

	priority := req.Priority.normalize()
	lookupTables := req.lookupTables()

	instructions := make([]solana.Instruction, 0, len(req.Instructions)+3)
	for _, ix := range req.Instructions {
		instructions = append(instructions, ix.Clone())
	}

	if len(req.Memo) > 0 {
		instructions = append(instructions, memo.Instruction(req.Memo, req.Payer))
	}

	if !req.DisableCompute {
		units, err := n.EstimateComputeUnits(ctx, req.Payer, instructions, req.tolerance(), blockhash, lookupTables)
		if err != nil {
			tracer.OnError(err)

			var simErr *SimulationError
			if errors.As(err, &simErr) {
				log.WithError(err).Info("transaction simulation failed")
				return nil, simErr
			}

			log.WithError(err).Warn("failure estimating compute units")
			return nil, &BuilderError{Message: computeLimitErrorMessage, Err: err}
		}

		instructions = append([]solana.Instruction{compute_budget.SetComputeUnitLimit(computeUnitLimit(units))}, instructions...)
		log = log.WithField("compute_units", units)
	}

	if !req.DisableFees {
		fee := n.EstimatePriorityFee(ctx, req.Payer, priority, instructions, blockhash, lookupTables)
		instructions = append([]solana.Instruction{compute_budget.SetComputeUnitPrice(fee)}, instructions...)
		log = log.WithField("priority_fee", fee)
	}

	txn := solana.NewV0Transaction(req.Payer, lookupTables, instructions)
	txn.SetBlockhash(blockhash)

	if len(req.Signers) > 0 {
		if err := txn.Sign(req.Signers...); err != nil {
			tracer.OnError(err)
			return nil, &BuilderError{Message: "error signing transaction", Err: err}
		}
	}

	built := &BuiltTransaction{
		Form:        FormTransaction,
		Transaction: txn,
	}

	if req.Serialize || req.Encode {
		built.Form = FormSerialized
		built.Raw = txn.Marshal()

		if len(built.Raw) > solana.MaxTransactionSize {
			log.WithField("size", len(built.Raw)).Warn("transaction exceeds the maximum size")
		}
	}

	if req.Encode {
		built.Form = FormEncoded
		built.Encoded = base64.StdEncoding.EncodeToString(built.Raw)
	}

	log.WithField("form", built.Form).Debug("built transaction")
	return built, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
