package wallet

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/deepbook"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/suirpc"
	"github.com/sirupsen/logrus"
)

// Config holds wallet configuration
type Config struct {
	RPCURL       string
	PrivateKey   string // base64 ed25519 seed or full key
	GasBudget    uint64
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	Logger       *logrus.Logger
}

// Wallet owns a keypair and signs and broadcasts swap orders through a Sui
// fullnode. It also enumerates owned coin objects for funding selection.
type Wallet struct {
	rpc       *suirpc.Client
	priv      ed25519.PrivateKey
	pub       ed25519.PublicKey
	address   string
	gasBudget uint64
	logger    *logrus.Logger
}

// Receipt is the interpreted result of a successful submission.
type Receipt struct {
	Digest    string    `json:"digest"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// SubmissionError wraps signing declines, node rejections and on-chain
// execution failures. The attempt is terminal; the caller never retries.
type SubmissionError struct {
	Stage   string // "build", "sign", "execute", "effects"
	Message string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed (%s): %s", e.Stage, e.Message)
}

func NewWallet(cfg Config) (*Wallet, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("wallet private key is required")
	}
	if cfg.GasBudget == 0 {
		cfg.GasBudget = 10_000_000
	}

	priv, pub, err := keypairFromBase64(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet key: %w", err)
	}

	rpc := suirpc.NewClient(suirpc.ClientConfig{
		BaseURL:      cfg.RPCURL,
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		Logger:       cfg.Logger,
	})

	return &Wallet{
		rpc:       rpc,
		priv:      priv,
		pub:       pub,
		address:   addressFromPublicKey(pub),
		gasBudget: cfg.GasBudget,
		logger:    cfg.Logger,
	}, nil
}

// Address returns the wallet's Sui address.
func (w *Wallet) Address() string {
	return w.address
}

// GetCoins lists the wallet's owned coin objects of the given type.
func (w *Wallet) GetCoins(ctx context.Context, coinType string) ([]suirpc.Coin, error) {
	return w.rpc.GetCoins(ctx, w.address, coinType)
}

// SignAndExecute builds the transaction for a swap order, signs it and
// submits it. Atomicity is the ledger's: either the whole order lands or
// nothing does.
func (w *Wallet) SignAndExecute(ctx context.Context, order *deepbook.Order) (*Receipt, error) {
	if order == nil {
		return nil, &SubmissionError{Stage: "build", Message: "order is nil"}
	}

	pkg, module, function, err := splitTarget(order.Target)
	if err != nil {
		return nil, &SubmissionError{Stage: "build", Message: err.Error()}
	}

	txb, err := w.rpc.MoveCall(ctx, suirpc.MoveCallParams{
		Signer:          w.address,
		PackageObjectID: pkg,
		Module:          module,
		Function:        function,
		TypeArguments:   order.TypeArguments[:],
		Arguments: []interface{}{
			order.PoolObject,
			order.InputCoin,
			order.FeeCoin,
			strconv.FormatUint(order.MinAmountOut, 10),
			order.ClockObject,
		},
		Gas:       nil,
		GasBudget: strconv.FormatUint(w.gasBudget, 10),
	})
	if err != nil {
		return nil, &SubmissionError{Stage: "build", Message: err.Error()}
	}

	sig, err := signTransactionBytes(w.priv, w.pub, txb.TxBytes)
	if err != nil {
		return nil, &SubmissionError{Stage: "sign", Message: err.Error()}
	}

	localDigest, err := transactionDigest(txb.TxBytes)
	if err != nil {
		return nil, &SubmissionError{Stage: "sign", Message: err.Error()}
	}

	res, err := w.rpc.ExecuteTransactionBlock(ctx, txb.TxBytes, []string{sig})
	if err != nil {
		return nil, &SubmissionError{Stage: "execute", Message: err.Error()}
	}

	if res.Digest != "" && res.Digest != localDigest {
		w.logger.WithFields(logrus.Fields{
			"local": localDigest,
			"node":  res.Digest,
		}).Warn("node digest differs from locally computed digest")
	}

	if res.Effects == nil {
		return nil, &SubmissionError{Stage: "effects", Message: "no execution effects returned"}
	}
	if !res.Effects.Status.Succeeded() {
		msg := res.Effects.Status.Error
		if msg == "" {
			msg = "execution failed"
		}
		return nil, &SubmissionError{Stage: "effects", Message: msg}
	}

	return &Receipt{
		Digest:    res.Digest,
		Status:    res.Effects.Status.Status,
		Timestamp: time.Now().UTC(),
	}, nil
}

// splitTarget splits "<package>::<module>::<function>" into its parts.
func splitTarget(target string) (pkg, module, function string, err error) {
	parts := strings.Split(target, "::")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("malformed call target %q", target)
	}
	return parts[0], parts[1], parts[2], nil
}
