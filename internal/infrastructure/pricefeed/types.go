package pricefeed

// Ticker is the Uniswap exchange ticker returned by the quote service.
// Only InvPrice is used; the rest is kept for debug logging.
type Ticker struct {
	Symbol          string   `json:"symbol"`
	ExchangeAddress string   `json:"exchangeAddress"`
	TokenAddress    string   `json:"tokenAddress"`
	Price           *float64 `json:"price"`
	InvPrice        *float64 `json:"invPrice"`
	LastTradePrice  *float64 `json:"lastTradePrice"`
	EthLiquidity    string   `json:"ethLiquidity"`
	Erc20Liquidity  string   `json:"erc20Liquidity"`
	Count           int64    `json:"count"`
}
