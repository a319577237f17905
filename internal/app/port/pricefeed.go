package port

import "context"

// PriceFeed defines the external quote service used to price the secondary synth.
type PriceFeed interface {
	// SecondaryToNativeRate returns how much native currency one unit of the secondary synth is worth.
	SecondaryToNativeRate(ctx context.Context) (float64, error)
}
