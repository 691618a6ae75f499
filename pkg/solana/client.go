package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"

	"github.com/solotto/solotto-go/pkg/rate"
	"github.com/solotto/solotto-go/pkg/retry"
	"github.com/solotto/solotto-go/pkg/retry/backoff"
)

const (
	// Reference: https://github.com/solana-labs/solana/blob/71e9958e061493d7545bd28d4ac7a85aaed6ffbb/client/src/rpc_custom_error.rs#L11
	rpcNodeUnhealthyCode            = -32005
	rpcBlockNotAvailableCode        = -32004
	rpcMinContextSlotNotReachedCode = -32016

	// Refresh window for the cached blockhash, before jitter is applied
	blockhashCacheWindow = 2 * time.Second
)

type Commitment struct {
	Commitment string `json:"commitment"`
}

const (
	ConfirmationStatusProcessed = "processed"
	ConfirmationStatusConfirmed = "confirmed"
	ConfirmationStatusFinalized = "finalized"
)

var (
	CommitmentProcessed = Commitment{Commitment: ConfirmationStatusProcessed}
	CommitmentConfirmed = Commitment{Commitment: ConfirmationStatusConfirmed}
	CommitmentFinalized = Commitment{Commitment: ConfirmationStatusFinalized}
)

var (
	ErrNoAccountInfo         = errors.New("no account info")
	ErrNoPriorityFeeEstimate = errors.New("no priority fee estimate")
	ErrNoUnitsConsumed       = errors.New("simulation did not report units consumed")
)

// AccountInfo contains the Solana account information (not to be confused with a TokenAccount)
type AccountInfo struct {
	Data       []byte
	Owner      ed25519.PublicKey
	Lamports   uint64
	Executable bool
}

// ProgramAccount is an account owned by a program, as returned by getProgramAccounts
type ProgramAccount struct {
	PublicKey ed25519.PublicKey
	Account   AccountInfo
}

type SignatureStatus struct {
	Slot        uint64
	ErrorResult *TransactionError

	// Confirmations will be nil if the transaction has been rooted.
	Confirmations      *int
	ConfirmationStatus string
}

func (s SignatureStatus) Confirmed() bool {
	if s.Finalized() {
		return true
	}

	if s.ConfirmationStatus == ConfirmationStatusConfirmed {
		return true
	}

	return s.Confirmations != nil && *s.Confirmations >= 1
}

func (s SignatureStatus) Finalized() bool {
	return s.ConfirmationStatus == ConfirmationStatusFinalized
}

// SimulateTransactionConfig controls how a transaction is simulated.
type SimulateTransactionConfig struct {
	Commitment             Commitment
	ReplaceRecentBlockhash bool
	SigVerify              bool
}

// SimulationResult is the outcome of simulateTransaction. Err is nil when the
// simulated execution succeeded.
type SimulationResult struct {
	Err           *TransactionError
	RawErr        json.RawMessage
	Logs          []string
	UnitsConsumed *uint64
}

// SendTransactionConfig controls how a transaction is submitted.
type SendTransactionConfig struct {
	SkipPreflight       bool
	PreflightCommitment Commitment
	MaxRetries          *uint
}

// ProgramAccountFilter is a getProgramAccounts filter. Exactly one of DataSize
// or Memcmp is expected to be set.
type ProgramAccountFilter struct {
	DataSize *uint64
	Memcmp   *MemcmpFilter
}

type MemcmpFilter struct {
	Offset uint
	Bytes  []byte
}

// DataSizeFilter matches accounts whose data is exactly size bytes.
func DataSizeFilter(size uint64) ProgramAccountFilter {
	return ProgramAccountFilter{DataSize: &size}
}

// MemcmpFilterAt matches accounts whose data contains value at offset.
func MemcmpFilterAt(offset uint, value []byte) ProgramAccountFilter {
	return ProgramAccountFilter{Memcmp: &MemcmpFilter{Offset: offset, Bytes: value}}
}

// Client provides an interaction with the Solana JSON RPC API.
//
// Reference: https://docs.solana.com/apps/jsonrpc-api
type Client interface {
	GetAccountInfo(ed25519.PublicKey, Commitment) (AccountInfo, error)
	GetMinimumBalanceForRentExemption(size uint64) (lamports uint64, err error)
	GetLatestBlockhash() (Blockhash, error)
	GetSignatureStatus(Signature) (*SignatureStatus, error)
	GetSignatureStatuses([]Signature) ([]*SignatureStatus, error)
	GetProgramAccounts(program ed25519.PublicKey, commitment Commitment, filters ...ProgramAccountFilter) ([]ProgramAccount, error)
	GetPriorityFeeEstimate(txn Transaction, priorityLevel string) (float64, error)
	SimulateTransaction(txn Transaction, config SimulateTransactionConfig) (*SimulationResult, error)
	SendRawTransaction(raw []byte, config SendTransactionConfig) (Signature, error)
}

var (
	errRateLimited  = errors.New("rate limited")
	errServiceError = errors.New("service error")
)

// ClientOption configures a client
type ClientOption func(*client)

// WithRPCClientOpts sets the underlying JSON RPC client options, such as a
// custom http.Client or headers.
func WithRPCClientOpts(opts *jsonrpc.RPCClientOpts) ClientOption {
	return func(c *client) {
		c.rpcOpts = opts
	}
}

// WithRateLimiter throttles outbound requests. Requests over the limit are
// treated like a remote 429 and go through the retry policy.
func WithRateLimiter(limiter rate.Limiter) ClientOption {
	return func(c *client) {
		c.limiter = limiter
	}
}

type client struct {
	log     *logrus.Entry
	client  jsonrpc.RPCClient
	rpcOpts *jsonrpc.RPCClientOpts
	limiter rate.Limiter
	retrier retry.Retrier
	id      string

	blockMu   sync.RWMutex
	blockhash Blockhash
	lastWrite time.Time
}

// New returns a client using the specified endpoint.
func New(endpoint string, opts ...ClientOption) Client {
	c := &client{
		limiter: &rate.NoLimiter{},
		retrier: newRetrier(backoff.BinaryExponential(time.Second)),
		id:      uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.log = logrus.StandardLogger().WithFields(logrus.Fields{
		"type":   "solana/client",
		"client": c.id,
	})
	c.client = jsonrpc.NewClientWithOpts(endpoint, c.rpcOpts)
	return c
}

// newRetrier retries rate limits, service errors and the node errors that
// clear up once the node catches up, at most three times.
func newRetrier(delay backoff.Strategy) retry.Retrier {
	return retry.NewRetrier(
		retry.Any(
			retry.RetriableErrors(errRateLimited, errServiceError),
			retry.RetriableRPCCodes(rpcBlockNotAvailableCode, rpcMinContextSlotNotReachedCode),
		),
		retry.Limit(3),
		retry.BackoffWithJitter(delay, 10*time.Second, 0.1),
	)
}

// NewWithRPCOptions returns a client configured with the specified RPC options.
func NewWithRPCOptions(endpoint string, opts *jsonrpc.RPCClientOpts) Client {
	return New(endpoint, WithRPCClientOpts(opts))
}

func (c *client) call(out interface{}, method string, params ...interface{}) error {
	attempts, err := c.retrier.Retry(func() error {
		return c.callOnce(out, method, params...)
	})
	if attempts > 1 {
		log := c.log.WithFields(logrus.Fields{
			"method":   method,
			"attempts": attempts,
		})
		if err != nil {
			log.WithError(err).Warn("rpc call failed after retries")
		} else {
			log.Debug("rpc call succeeded after retries")
		}
	}

	return err
}

func (c *client) callOnce(out interface{}, method string, params ...interface{}) error {
	allowed, err := c.limiter.Allow(method)
	if err != nil {
		return err
	}
	if !allowed {
		c.log.WithField("method", method).Debug("local rate limit reached")
		return errRateLimited
	}

	err = c.client.CallFor(out, method, params...)
	if err == nil {
		return nil
	}

	return c.handleRpcError(method, err)
}

func (c *client) handleRpcError(method string, err error) error {
	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		return err
	}
	if rpcErr.Code == 429 {
		c.log.WithField("method", method).Error("rate limited")
		return errRateLimited
	}
	if rpcErr.Code >= 500 || rpcErr.Code == rpcNodeUnhealthyCode {
		return errServiceError
	}

	return err
}

func (c *client) GetMinimumBalanceForRentExemption(dataSize uint64) (lamports uint64, err error) {
	if err := c.call(&lamports, "getMinimumBalanceForRentExemption", dataSize); err != nil {
		return 0, errors.Wrapf(err, "getMinimumBalanceForRentExemption() failed to send request")
	}

	return lamports, nil
}

func (c *client) GetLatestBlockhash() (hash Blockhash, err error) {
	// Randomize the refresh so callers building many transactions in parallel
	// don't all hit the node on the same tick.
	window := time.Duration(float64(blockhashCacheWindow) * (0.8 + rand.Float64()))

	c.blockMu.RLock()
	if time.Since(c.lastWrite) < window {
		hash = c.blockhash
	}
	c.blockMu.RUnlock()

	if hash != (Blockhash{}) {
		return hash, nil
	}

	type response struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}

	// note: we have to wrap the commitment in an []interface{} otherwise the
	//       request is sent with the object as the params value.
	var resp response
	if err := c.call(&resp, "getLatestBlockhash", []interface{}{CommitmentConfirmed}); err != nil {
		return hash, errors.Wrapf(err, "getLatestBlockhash() failed to send request")
	}

	hashBytes, err := base58.Decode(resp.Value.Blockhash)
	if err != nil {
		return hash, errors.Wrap(err, "invalid base58 encoded hash in response")
	}
	if len(hashBytes) != len(hash) {
		return hash, errors.Errorf("invalid blockhash length: %d", len(hashBytes))
	}

	copy(hash[:], hashBytes)

	c.blockMu.Lock()
	c.blockhash = hash
	c.lastWrite = time.Now()
	c.blockMu.Unlock()

	return hash, nil
}

func (c *client) GetAccountInfo(account ed25519.PublicKey, commitment Commitment) (accountInfo AccountInfo, err error) {
	type rpcResponse struct {
		Value *struct {
			Lamports   uint64   `json:"lamports"`
			Owner      string   `json:"owner"`
			Data       []string `json:"data"`
			Executable bool     `json:"executable"`
		} `json:"value"`
	}

	rpcConfig := struct {
		Commitment string `json:"commitment"`
		Encoding   string `json:"encoding"`
	}{
		Commitment: commitment.Commitment,
		Encoding:   "base64",
	}

	var resp rpcResponse
	if err := c.call(&resp, "getAccountInfo", base58.Encode(account[:]), rpcConfig); err != nil {
		return accountInfo, errors.Wrap(err, "getAccountInfo() failed to send request")
	}

	if resp.Value == nil {
		return accountInfo, ErrNoAccountInfo
	}

	return decodeAccountInfo(resp.Value.Owner, resp.Value.Data, resp.Value.Lamports, resp.Value.Executable)
}

func decodeAccountInfo(owner string, data []string, lamports uint64, executable bool) (accountInfo AccountInfo, err error) {
	accountInfo.Owner, err = base58.Decode(owner)
	if err != nil {
		return accountInfo, errors.Wrap(err, "invalid base58 encoded owner")
	}

	if len(data) == 0 {
		return accountInfo, errors.New("missing account data")
	}

	accountInfo.Data, err = base64.StdEncoding.DecodeString(data[0])
	if err != nil {
		return accountInfo, errors.Wrap(err, "invalid base64 encoded data")
	}

	accountInfo.Lamports = lamports
	accountInfo.Executable = executable

	return accountInfo, nil
}

func (c *client) GetSignatureStatus(sig Signature) (*SignatureStatus, error) {
	statuses, err := c.GetSignatureStatuses([]Signature{sig})
	if err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return nil, nil
	}

	return statuses[0], nil
}

func (c *client) GetSignatureStatuses(sigs []Signature) ([]*SignatureStatus, error) {
	b58Sigs := make([]string, len(sigs))
	for i := range sigs {
		b58Sigs[i] = base58.Encode(sigs[i][:])
	}

	req := struct {
		SearchTransactionHistory bool `json:"searchTransactionHistory"`
	}{
		SearchTransactionHistory: true,
	}

	type signatureStatus struct {
		Slot               uint64          `json:"slot"`
		Confirmations      *int            `json:"confirmations"`
		ConfirmationStatus string          `json:"confirmationStatus"`
		Err                json.RawMessage `json:"err"`
	}

	type rpcResp struct {
		Context struct {
			Slot int `json:"slot"`
		} `json:"context"`
		Value []*signatureStatus `json:"value"`
	}

	var resp rpcResp
	if err := c.call(&resp, "getSignatureStatuses", b58Sigs, req); err != nil {
		return nil, errors.Wrap(err, "getSignatureStatuses() failed to send request")
	}

	statuses := make([]*SignatureStatus, len(sigs))
	for i, v := range resp.Value {
		if v == nil || i >= len(statuses) {
			continue
		}

		statuses[i] = &SignatureStatus{}
		statuses[i].Confirmations = v.Confirmations
		statuses[i].ConfirmationStatus = v.ConfirmationStatus
		statuses[i].Slot = v.Slot

		txErr, err := parseRawTransactionError(v.Err)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse transaction result")
		}
		statuses[i].ErrorResult = txErr
	}

	return statuses, nil
}

func (c *client) GetProgramAccounts(program ed25519.PublicKey, commitment Commitment, filters ...ProgramAccountFilter) ([]ProgramAccount, error) {
	type memcmpFilter struct {
		Offset uint   `json:"offset"`
		Bytes  string `json:"bytes"`
	}

	type filter struct {
		DataSize *uint64      `json:"dataSize,omitempty"`
		Memcmp   *memcmpFilter `json:"memcmp,omitempty"`
	}

	rpcFilters := make([]filter, 0, len(filters))
	for _, f := range filters {
		var rpcFilter filter
		if f.DataSize != nil {
			rpcFilter.DataSize = f.DataSize
		}
		if f.Memcmp != nil {
			rpcFilter.Memcmp = &memcmpFilter{
				Offset: f.Memcmp.Offset,
				Bytes:  base58.Encode(f.Memcmp.Bytes),
			}
		}
		rpcFilters = append(rpcFilters, rpcFilter)
	}

	config := struct {
		Commitment  string   `json:"commitment"`
		Encoding    string   `json:"encoding"`
		Filters     []filter `json:"filters,omitempty"`
		WithContext bool     `json:"withContext"`
	}{
		Commitment:  commitment.Commitment,
		Encoding:    "base64",
		Filters:     rpcFilters,
		WithContext: true,
	}

	var resp struct {
		Context struct {
			Slot int64 `json:"slot"`
		} `json:"context"`
		Value []struct {
			PubKey  string `json:"pubkey"`
			Account struct {
				Lamports   uint64   `json:"lamports"`
				Owner      string   `json:"owner"`
				Data       []string `json:"data"`
				Executable bool     `json:"executable"`
			} `json:"account"`
		} `json:"value"`
	}
	if err := c.call(&resp, "getProgramAccounts", base58.Encode(program), config); err != nil {
		return nil, errors.Wrap(err, "getProgramAccounts() failed to send request")
	}

	res := make([]ProgramAccount, 0, len(resp.Value))
	for _, result := range resp.Value {
		address, err := base58.Decode(result.PubKey)
		if err != nil {
			return nil, errors.Wrap(err, "invalid base58 encoded account address")
		}

		info, err := decodeAccountInfo(result.Account.Owner, result.Account.Data, result.Account.Lamports, result.Account.Executable)
		if err != nil {
			return nil, err
		}

		res = append(res, ProgramAccount{
			PublicKey: address,
			Account:   info,
		})
	}
	return res, nil
}

// GetPriorityFeeEstimate calls the getPriorityFeeEstimate extension offered by
// some RPC providers (for example, Helius). The estimate is in micro-lamports
// per compute unit.
func (c *client) GetPriorityFeeEstimate(txn Transaction, priorityLevel string) (float64, error) {
	type options struct {
		PriorityLevel string `json:"priorityLevel"`
	}

	req := struct {
		Transaction string  `json:"transaction"`
		Options     options `json:"options"`
	}{
		Transaction: base58.Encode(txn.Marshal()),
		Options: options{
			PriorityLevel: priorityLevel,
		},
	}

	var resp struct {
		PriorityFeeEstimate *float64 `json:"priorityFeeEstimate"`
	}
	if err := c.call(&resp, "getPriorityFeeEstimate", []interface{}{req}); err != nil {
		return 0, errors.Wrap(err, "getPriorityFeeEstimate() failed to send request")
	}

	if resp.PriorityFeeEstimate == nil {
		return 0, ErrNoPriorityFeeEstimate
	}

	return *resp.PriorityFeeEstimate, nil
}

func (c *client) SimulateTransaction(txn Transaction, config SimulateTransactionConfig) (*SimulationResult, error) {
	rpcConfig := struct {
		Encoding               string `json:"encoding"`
		Commitment             string `json:"commitment,omitempty"`
		ReplaceRecentBlockhash bool   `json:"replaceRecentBlockhash"`
		SigVerify              bool   `json:"sigVerify"`
	}{
		Encoding:               "base64",
		Commitment:             config.Commitment.Commitment,
		ReplaceRecentBlockhash: config.ReplaceRecentBlockhash,
		SigVerify:              config.SigVerify,
	}

	var resp struct {
		Value struct {
			Err           json.RawMessage `json:"err"`
			Logs          []string        `json:"logs"`
			UnitsConsumed *uint64         `json:"unitsConsumed"`
		} `json:"value"`
	}

	encoded := base64.StdEncoding.EncodeToString(txn.Marshal())
	if err := c.call(&resp, "simulateTransaction", encoded, rpcConfig); err != nil {
		return nil, errors.Wrap(err, "simulateTransaction() failed to send request")
	}

	txErr, err := parseRawTransactionError(resp.Value.Err)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse simulation result")
	}

	result := &SimulationResult{
		Err:           txErr,
		Logs:          resp.Value.Logs,
		UnitsConsumed: resp.Value.UnitsConsumed,
	}
	if txErr != nil {
		result.RawErr = resp.Value.Err
	}
	return result, nil
}

// SendRawTransaction submits an already serialized transaction. The request is
// issued exactly once; retrying a submission is left to the caller.
func (c *client) SendRawTransaction(raw []byte, config SendTransactionConfig) (Signature, error) {
	var sig Signature

	rpcConfig := struct {
		Encoding            string `json:"encoding"`
		SkipPreflight       bool   `json:"skipPreflight"`
		PreflightCommitment string `json:"preflightCommitment,omitempty"`
		MaxRetries          *uint  `json:"maxRetries,omitempty"`
	}{
		Encoding:            "base64",
		SkipPreflight:       config.SkipPreflight,
		PreflightCommitment: config.PreflightCommitment.Commitment,
		MaxRetries:          config.MaxRetries,
	}

	var sigStr string
	err := c.callOnce(&sigStr, "sendTransaction", base64.StdEncoding.EncodeToString(raw), rpcConfig)
	if err != nil {
		jsonRPCErr, ok := err.(*jsonrpc.RPCError)
		if !ok {
			return sig, errors.Wrap(err, "sendTransaction() failed to send request")
		}

		txErr, parseErr := ParseRPCError(jsonRPCErr)
		if parseErr != nil || txErr == nil {
			return sig, errors.Wrap(err, "sendTransaction() failed")
		}
		return sig, txErr
	}

	sigBytes, err := base58.Decode(sigStr)
	if err != nil {
		return sig, errors.Wrap(err, "invalid base58 encoded signature in response")
	}
	if len(sigBytes) != len(sig) {
		return sig, errors.Errorf("invalid signature length: %d", len(sigBytes))
	}

	copy(sig[:], sigBytes)
	return sig, nil
}

func parseRawTransactionError(raw json.RawMessage) (*TransactionError, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var txError interface{}
	if err := json.NewDecoder(bytes.NewBuffer(raw)).Decode(&txError); err != nil {
		return nil, err
	}

	return ParseTransactionError(txError)
}
