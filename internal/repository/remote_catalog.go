package repository

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/go-faster/errors"
)

var gzipMagic = []byte{0x1f, 0x8b}

// feedResult holds the result of loading a single catalog feed
type feedResult struct {
	index    int
	products []models.Product
	err      error
}

// NewFeedClient returns the HTTP client used for catalog feeds
func NewFeedClient() *http.Client {
	return &http.Client{Timeout: 2 * time.Minute}
}

// LoadProductsURLs downloads catalog feeds concurrently and concatenates them
// in the order of urls. Each feed is a JSON product array, optionally gzipped.
// Returns error if any feed fails to load.
func LoadProductsURLs(ctx context.Context, client *http.Client, urls []string) ([]models.Product, error) {
	if len(urls) == 0 {
		return nil, errors.New("no catalog URLs provided")
	}

	resultChan := make(chan feedResult, len(urls))

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(index int, feedURL string) {
			defer wg.Done()

			products, err := loadFeed(ctx, client, feedURL)
			resultChan <- feedResult{
				index:    index,
				products: products,
				err:      err,
			}
		}(i, url)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect results maintaining order
	results := make([]feedResult, len(urls))
	for result := range resultChan {
		results[result.index] = result
	}

	var products []models.Product
	for i, result := range results {
		if result.err != nil {
			return nil, errors.Wrapf(result.err, "catalog feed %d", i+1)
		}
		products = append(products, result.products...)
	}

	return products, nil
}

func loadFeed(ctx context.Context, client *http.Client, url string) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "download feed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := maybeGunzip(bufio.NewReader(resp.Body))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return DecodeProducts(body)
}

// maybeGunzip unwraps r when it starts with the gzip magic number
func maybeGunzip(r *bufio.Reader) (io.ReadCloser, error) {
	head, err := r.Peek(len(gzipMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "read feed")
	}
	if !bytes.Equal(head, gzipMagic) {
		return io.NopCloser(r), nil
	}

	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "create gzip reader")
	}
	return gz, nil
}
