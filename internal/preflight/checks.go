package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"movielog/internal/omdb"
)

// knownIMDbID is looked up to prove the key works. A not-found answer still
// means the service accepted the key.
const knownIMDbID = "tt0133093"

// CheckOMDb verifies that the OMDb API is reachable and the key is valid.
// It uses a 10-second timeout and a single request.
func CheckOMDb(ctx context.Context, baseURL, apiKey string) Result {
	const name = "OMDb"

	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "missing api key"}
	}
	if strings.TrimSpace(baseURL) == "" {
		return Result{Name: name, Detail: "missing url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := omdb.New(apiKey, baseURL, omdb.WithLimiter(nil), omdb.WithTimeout(10*time.Second))
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("client setup failed (%v)", err)}
	}

	_, err = client.ByID(checkCtx, knownIMDbID)
	switch {
	case err == nil, errors.Is(err, omdb.ErrNotFound):
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	case errors.Is(err, omdb.ErrUnauthorized):
		return Result{Name: name, Detail: "auth failed (invalid api key)"}
	case errors.Is(err, omdb.ErrRateLimited):
		return Result{Name: name, Detail: "daily request limit reached"}
	default:
		return Result{Name: name, Detail: summarizeError(err)}
	}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkAccess(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (OMDb unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "check timed out (OMDb unreachable)"
	}
	return fmt.Sprintf("check failed (%v)", err)
}
