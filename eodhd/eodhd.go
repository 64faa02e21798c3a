// Package eodhd reads end of day prices from https://eodhd.com.
package eodhd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/etnz/stockdata"
	"github.com/etnz/stockdata/date"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the EODHD API server.
const DefaultBaseURL = "https://eodhd.com"

// DemoKey is the public key of EODHD, it gives access to a few tickers like "MCD.US".
const DemoKey = "demo"

// Client is an EODHD API client.
type Client struct {
	APIKey  string
	BaseURL string // defaults to DefaultBaseURL
	HTTP    *http.Client
}

// NewClient returns a Client whose responses are cached on disk until the end of the cache period.
func NewClient(apiKey string, cache date.Period) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		HTTP:    newCachingClient(os.TempDir(), cache),
	}
}

func (c *Client) base() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c *Client) client() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// DailyCloses returns the daily closes of an EODHD ticker ("SYMBOL.EXCHANGE") between from and to, included.
//
// A zero from or to leaves that bound open.
func (c *Client) DailyCloses(ctx context.Context, ticker string, from, to date.Date) ([]stockdata.DailyClose, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("api_token", c.APIKey)
	if !from.IsZero() {
		q.Set("from", from.String())
	}
	if !to.IsZero() {
		q.Set("to", to.String())
	}
	addr := fmt.Sprintf("%s/api/eod/%s?%s", c.base(), url.PathEscape(ticker), q.Encode())

	content, err := get(ctx, c.client(), addr)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch %s prices: %w", ticker, err)
	}
	closes, err := stockdata.DecodeJSON(bytes.NewReader(content), stockdata.EODQuery)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s prices: %w", ticker, err)
	}
	return closes, nil
}

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code              string          `json:"Code"`
	Exchange          string          `json:"Exchange"`
	Name              string          `json:"Name"`
	Type              string          `json:"Type"`
	Country           string          `json:"Country"`
	Currency          string          `json:"Currency"`
	ISIN              string          `json:"ISIN"`
	PreviousClose     decimal.Decimal `json:"previousClose"`
	PreviousCloseDate date.Date       `json:"previousCloseDate"`
}

// Ticker returns the ticker to use with DailyCloses.
func (r SearchResult) Ticker() string { return r.Code + "." + r.Exchange }

// Search searches for securities matching a ticker, a name or an ISIN.
func (c *Client) Search(ctx context.Context, searchTerm string) ([]SearchResult, error) {
	addr := fmt.Sprintf("%s/api/search/%s?api_token=%s&fmt=json", c.base(), url.PathEscape(searchTerm), url.QueryEscape(c.APIKey))

	var results []SearchResult
	if err := jwget(ctx, c.client(), addr, &results); err != nil {
		return nil, fmt.Errorf("cannot search %q: %w", searchTerm, err)
	}
	return results, nil
}
