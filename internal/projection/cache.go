package projection

import (
	"context"
	"fmt"
	"time"
)

const walletTTL = 5 * time.Minute

// UpdateWallet caches an account's wallet view.
func UpdateWallet(ctx context.Context, store Store, v WalletView) error {
	v.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	key := fmt.Sprintf("projection:wallet:%s", v.AccountID)
	return SetJSON(ctx, store, key, v, walletTTL)
}

// GetWallet retrieves a cached wallet view.
func GetWallet(ctx context.Context, store Store, accountID string) (*WalletView, error) {
	key := fmt.Sprintf("projection:wallet:%s", accountID)
	var v WalletView
	if err := GetJSON(ctx, store, key, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// InvalidateWallet removes an account's cached wallet view.
func InvalidateWallet(ctx context.Context, store Store, accountID string) error {
	key := fmt.Sprintf("projection:wallet:%s", accountID)
	return store.Delete(ctx, key)
}
