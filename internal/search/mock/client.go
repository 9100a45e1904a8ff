package mock

import (
	"context"
	"sync"

	"github.com/kitbuilder587/webagent/internal/search"
)

// Client - подменный провайдер для тестов сервиса.
type Client struct {
	Results []search.Result
	Error   error

	CallCount   int
	LastRequest search.Request
	AllRequests []search.Request

	mu sync.Mutex
}

func New() *Client {
	return &Client{}
}

func (c *Client) WithResults(results []search.Result) *Client {
	c.Results = results
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) Search(ctx context.Context, req search.Request) (*search.Response, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastRequest = req
	c.AllRequests = append(c.AllRequests, req)
	err := c.Error
	results := c.Results
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, search.ErrEmptyResults
	}

	return &search.Response{
		Mode:    req.Mode,
		Results: results,
	}, nil
}

func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CallCount = 0
	c.LastRequest = search.Request{}
	c.AllRequests = nil
}
