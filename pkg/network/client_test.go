package network

import (
	"crypto/ed25519"
	"sync"

	"github.com/pkg/errors"

	"github.com/solotto/solotto-go/pkg/solana"
)

type fakeClient struct {
	sync.Mutex

	blockhash    solana.Blockhash
	blockhashErr error

	simulateResult *solana.SimulationResult
	simulateErr    error
	simulated      []solana.Transaction
	simulateConfig []solana.SimulateTransactionConfig

	feeEstimate float64
	feeErr      error
	estimated   []solana.Transaction
	feePriority []string

	sendSig    solana.Signature
	sendErr    error
	sent       [][]byte
	sendConfig []solana.SendTransactionConfig

	statuses    []*solana.SignatureStatus
	statusErrs  []error
	statusCalls int
}

func newFakeClient() *fakeClient {
	units := uint64(1000)
	return &fakeClient{
		blockhash:      solana.Blockhash{1, 2, 3},
		simulateResult: &solana.SimulationResult{UnitsConsumed: &units},
		feeEstimate:    50_000,
	}
}

func (c *fakeClient) GetAccountInfo(ed25519.PublicKey, solana.Commitment) (solana.AccountInfo, error) {
	return solana.AccountInfo{}, solana.ErrNoAccountInfo
}

func (c *fakeClient) GetMinimumBalanceForRentExemption(uint64) (uint64, error) {
	return 890_880, nil
}

func (c *fakeClient) GetLatestBlockhash() (solana.Blockhash, error) {
	return c.blockhash, c.blockhashErr
}

func (c *fakeClient) GetSignatureStatus(solana.Signature) (*solana.SignatureStatus, error) {
	c.Lock()
	defer c.Unlock()

	i := c.statusCalls
	c.statusCalls++

	if i < len(c.statusErrs) && c.statusErrs[i] != nil {
		return nil, c.statusErrs[i]
	}
	if i < len(c.statuses) {
		return c.statuses[i], nil
	}
	return nil, nil
}

func (c *fakeClient) GetSignatureStatuses([]solana.Signature) ([]*solana.SignatureStatus, error) {
	return nil, errors.New("not implemented")
}

func (c *fakeClient) GetProgramAccounts(ed25519.PublicKey, solana.Commitment, ...solana.ProgramAccountFilter) ([]solana.ProgramAccount, error) {
	return nil, errors.New("not implemented")
}

func (c *fakeClient) GetPriorityFeeEstimate(txn solana.Transaction, priorityLevel string) (float64, error) {
	c.Lock()
	defer c.Unlock()

	c.estimated = append(c.estimated, txn)
	c.feePriority = append(c.feePriority, priorityLevel)
	return c.feeEstimate, c.feeErr
}

func (c *fakeClient) SimulateTransaction(txn solana.Transaction, config solana.SimulateTransactionConfig) (*solana.SimulationResult, error) {
	c.Lock()
	defer c.Unlock()

	c.simulated = append(c.simulated, txn)
	c.simulateConfig = append(c.simulateConfig, config)
	return c.simulateResult, c.simulateErr
}

func (c *fakeClient) SendRawTransaction(raw []byte, config solana.SendTransactionConfig) (solana.Signature, error) {
	c.Lock()
	defer c.Unlock()

	c.sent = append(c.sent, raw)
	c.sendConfig = append(c.sendConfig, config)
	return c.sendSig, c.sendErr
}
