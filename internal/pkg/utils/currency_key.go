package utils

// CurrencyKey encodes a currency symbol (e.g. "sUSD") into the bytes32 key used by the contracts.
// Symbols longer than 32 bytes are truncated.
func CurrencyKey(symbol string) [32]byte {
	var key [32]byte
	copy(key[:], symbol)
	return key
}

// CurrencyKeys encodes every symbol with CurrencyKey, preserving order.
func CurrencyKeys(symbols []string) [][32]byte {
	keys := make([][32]byte, len(symbols))
	for i, symbol := range symbols {
		keys[i] = CurrencyKey(symbol)
	}
	return keys
}
