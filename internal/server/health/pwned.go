package health

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/securepass/internal/logging"
)

const defaultPwnedBaseURL = "https://api.pwnedpasswords.com"

// PwnedChecker queries the Have I Been Pwned range API using k-anonymity:
// only the first five hex characters of the password's SHA-1 leave the
// process, the full hash is matched locally against the returned suffixes.
type PwnedChecker struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

func NewPwnedChecker(logger logging.Logger) *PwnedChecker {
	return &PwnedChecker{
		baseURL: defaultPwnedBaseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logger,
	}
}

// NewPwnedCheckerWithBaseURL exists for tests pointing at a local server.
func NewPwnedCheckerWithBaseURL(baseURL string, client *http.Client, logger logging.Logger) *PwnedChecker {
	return &PwnedChecker{baseURL: strings.TrimRight(baseURL, "/"), client: client, logger: logger}
}

// BreachCount returns how many times the password appears in known breach
// corpora. Lookup failures are not fatal to the caller: the checker logs
// the error and reports zero, so an API outage never blocks vault use.
func (c *PwnedChecker) BreachCount(ctx context.Context, password string) int {
	sum := sha1.Sum([]byte(password))
	hash := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := hash[:5], hash[5:]

	count, err := c.queryRange(ctx, prefix, suffix)
	if err != nil {
		c.logger.Warn(ctx, "breach lookup failed", "error", err)
		return 0
	}
	return count
}

func (c *PwnedChecker) queryRange(ctx context.Context, prefix, suffix string) (int, error) {
	url := fmt.Sprintf("%s/range/%s", c.baseURL, prefix)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Add-Padding", "true")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}

	// Response lines look like "0018A45C4D1DEF81644B54AB7F969B88D65:3".
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		rest, ok := strings.CutPrefix(line, suffix+":")
		if !ok {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return 0, fmt.Errorf("malformed range line: %w", err)
		}
		return count, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}

	return 0, nil
}
