package swapengine

import (
	"context"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/deepbook"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/suirpc"
)

// CoinLister enumerates the connected account's owned coin objects of a
// given type. Implemented by the wallet.
type CoinLister interface {
	GetCoins(ctx context.Context, coinType string) ([]suirpc.Coin, error)
}

// SelectFunding picks the coin objects that fund the swap input and the
// protocol fee. Read-then-choose only; no on-chain effects.
//
// Input selection prefers the first object whose balance covers the required
// atomic amount (single-object funding, no merge/split). When none does, it
// falls back to the first available object even though that can under-fund
// the order and fail at execution time. TODO(funding): confirm with the
// protocol owners whether the fallback should become a clean
// InsufficientFundsError instead.
func SelectFunding(ctx context.Context, coins CoinLister, inputType, feeType string, requiredAtomic uint64) (*deepbook.Funding, error) {
	inputCoins, err := coins.GetCoins(ctx, inputType)
	if err != nil {
		return nil, err
	}
	if len(inputCoins) == 0 {
		return nil, &InsufficientFundsError{AssetType: inputType}
	}

	input := inputCoins[0]
	for _, c := range inputCoins {
		if c.BalanceUint64() >= requiredAtomic {
			input = c
			break
		}
	}

	feeCoins, err := coins.GetCoins(ctx, feeType)
	if err != nil {
		return nil, err
	}
	if len(feeCoins) == 0 {
		return nil, &InsufficientFundsError{AssetType: feeType, Fee: true}
	}

	return &deepbook.Funding{
		InputCoinID:  input.CoinObjectID,
		InputBalance: input.BalanceUint64(),
		FeeCoinID:    feeCoins[0].CoinObjectID,
	}, nil
}
