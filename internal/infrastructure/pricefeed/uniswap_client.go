package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"synth_dashboard/internal/app/port"
	"synth_dashboard/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrPriceFeedUnavailable wraps every failure of the external quote service.
var ErrPriceFeedUnavailable = errors.New("price feed unavailable")

// uniswapTickerClient implements port.PriceFeed using the Uniswap ticker API.
type uniswapTickerClient struct {
	client          *fasthttp.Client
	baseURL         string
	exchangeAddress string
	timeout         time.Duration
	logger          *zap.Logger
}

// NewUniswapTickerClient creates a price feed that quotes the given Uniswap exchange.
func NewUniswapTickerClient(baseURL, exchangeAddress string, timeout time.Duration, logger *zap.Logger) port.PriceFeed {
	return &uniswapTickerClient{
		client:          &fasthttp.Client{},
		baseURL:         strings.TrimRight(baseURL, "/"),
		exchangeAddress: exchangeAddress,
		timeout:         timeout,
		logger:          logger.Named("UniswapTickerClient"),
	}
}

// SecondaryToNativeRate returns the exchange's inverse price (ETH per sETH).
func (c *uniswapTickerClient) SecondaryToNativeRate(ctx context.Context) (float64, error) {
	rate, err := c.fetchInvPrice(ctx)
	metrics.ObservePriceFeed(err)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPriceFeedUnavailable, err)
	}
	return rate, nil
}

func (c *uniswapTickerClient) fetchInvPrice(ctx context.Context) (float64, error) {
	requestURL := fmt.Sprintf("%s/v1/ticker?exchangeAddress=%s", c.baseURL, url.QueryEscape(c.exchangeAddress))

	c.logger.Debug("Requesting ticker from price feed", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request to price feed", zap.String("url", requestURL), zap.Error(err))
			return 0, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute request to price feed (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return 0, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Price feed request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody),
		)
		return 0, fmt.Errorf("price feed request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var ticker Ticker
	if err := json.Unmarshal(rawBody, &ticker); err != nil {
		c.logger.Error("Failed to unmarshal price feed response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err),
		)
		return 0, fmt.Errorf("failed to unmarshal price feed response from %s: %w", requestURL, err)
	}

	if ticker.InvPrice == nil {
		return 0, fmt.Errorf("price feed response from %s has no invPrice", requestURL)
	}
	if *ticker.InvPrice <= 0 {
		return 0, fmt.Errorf("price feed response from %s has non-positive invPrice %v", requestURL, *ticker.InvPrice)
	}

	c.logger.Debug("Received ticker from price feed",
		zap.String("symbol", ticker.Symbol),
		zap.Float64("invPrice", *ticker.InvPrice))
	return *ticker.InvPrice, nil
}
