package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"StockLens/internal/model"
)

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage REST API.
type AlphaVantageFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAlphaVantageFetcher creates a new fetcher with optional proxy support.
func NewAlphaVantageFetcher(apiKey, proxyURL string) *AlphaVantageFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AlphaVantageFetcher{
		BaseURL: "https://www.alphavantage.co",
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// avDay is a single day's entry in the Alpha Vantage time series. All values
// arrive as strings.
type avDay struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

type avResponse struct {
	Series       map[string]avDay `json:"Time Series (Daily)"`
	ErrorMessage string           `json:"Error Message"`
	Note         string           `json:"Note"`
}

func (f *AlphaVantageFetcher) FetchDailyBars(ctx context.Context, ticker string, days int) ([]model.Bar, error) {
	size := "compact"
	if days > 100 {
		size = "full"
	}
	endpoint := fmt.Sprintf("%s/query?function=TIME_SERIES_DAILY&symbol=%s&outputsize=%s&apikey=%s",
		f.BaseURL, url.QueryEscape(ticker), size, f.APIKey)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("alphavantage: status %d, body: %s", resp.StatusCode, string(body))
	}

	var av avResponse
	if err := json.NewDecoder(resp.Body).Decode(&av); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if av.ErrorMessage != "" {
		return nil, fmt.Errorf("alphavantage api error: %s", av.ErrorMessage)
	}
	if av.Note != "" {
		// Rate limit notices come back as 200 with a "Note" field.
		return nil, fmt.Errorf("alphavantage rate limited: %s", av.Note)
	}
	if len(av.Series) == 0 {
		return nil, fmt.Errorf("alphavantage: no data returned")
	}

	bars := make([]model.Bar, 0, len(av.Series))
	for day, v := range av.Series {
		date, err := time.ParseInLocation("2006-01-02", day, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("alphavantage: bad date %q: %w", day, err)
		}
		bar, err := v.toBar(date)
		if err != nil {
			return nil, fmt.Errorf("alphavantage: bad bar for %s: %w", day, err)
		}
		bars = append(bars, bar)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

func (d avDay) toBar(date time.Time) (model.Bar, error) {
	o, err := strconv.ParseFloat(d.Open, 64)
	if err != nil {
		return model.Bar{}, err
	}
	h, err := strconv.ParseFloat(d.High, 64)
	if err != nil {
		return model.Bar{}, err
	}
	l, err := strconv.ParseFloat(d.Low, 64)
	if err != nil {
		return model.Bar{}, err
	}
	c, err := strconv.ParseFloat(d.Close, 64)
	if err != nil {
		return model.Bar{}, err
	}
	vol, err := strconv.ParseInt(d.Volume, 10, 64)
	if err != nil {
		return model.Bar{}, err
	}
	return model.Bar{Date: date, Open: o, High: h, Low: l, Close: c, Volume: vol}, nil
}
