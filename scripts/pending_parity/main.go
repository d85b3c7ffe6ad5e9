// Command pending_parity checks that the legacy pending endpoint and the
// general list endpoint filtered by status=pending agree for every role.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/noah-isme/sma-leave-gateway/pkg/credentials"
	"github.com/noah-isme/sma-leave-gateway/pkg/descriptor"
)

type comparison struct {
	Role            descriptor.RoleFilter
	LegacyURL       string
	GeneralURL      string
	LegacyStatus    int
	GeneralStatus   int
	StatusMatch     bool
	BodyMatch       bool
	Error           error
	DurationLegacy  time.Duration
	DurationGeneral time.Duration
}

func main() {
	var (
		backend   string
		credsPath string
		timeout   time.Duration
	)

	flag.StringVar(&backend, "backend", os.Getenv("BACKEND_URL"), "Leave backend base URL")
	flag.StringVar(&credsPath, "credentials", "", "Optional JSON/YAML credential slot file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	var store credentials.Store
	if credsPath != "" {
		fileStore, err := credentials.NewFileStore(credsPath, nil)
		if err != nil {
			log.Fatalf("failed to load credentials: %v", err)
		}
		store = fileStore
	}

	apiBase := descriptor.ResolveAPIBase(descriptor.ResolveBackendBase(descriptor.BackendSources{Env: backend}))
	if apiBase == descriptor.ResolveAPIBase("") {
		log.Fatalf("a backend URL is required (-backend or BACKEND_URL)")
	}

	client := &http.Client{Timeout: timeout}
	ctx := context.Background()

	var (
		comparisons []comparison
		diffs       int
	)
	for _, role := range descriptor.Roles {
		comp := compareRole(ctx, client, apiBase, role, store)
		if comp.Error != nil || !comp.StatusMatch || !comp.BodyMatch {
			diffs++
		}
		comparisons = append(comparisons, comp)
	}

	printReport(comparisons)

	fmt.Printf("Roles with differences: %d\n", diffs)
	if diffs > 0 {
		os.Exit(1)
	}
}

func compareRole(ctx context.Context, client *http.Client, apiBase string, role descriptor.RoleFilter, store credentials.Store) comparison {
	legacy := descriptor.BuildListDescriptor(ctx, apiBase, role, descriptor.StatusPending, store)
	general, err := generalPendingURL(apiBase, role)
	comp := comparison{Role: role, LegacyURL: legacy.URL(), GeneralURL: general}
	if err != nil {
		comp.Error = err
		return comp
	}

	legacyBody, legacyStatus, legacyDur, err := fetch(ctx, client, legacy.URL(), legacy.Headers())
	if err != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", err)
		return comp
	}
	generalBody, generalStatus, generalDur, err := fetch(ctx, client, general, legacy.Headers())
	if err != nil {
		comp.Error = fmt.Errorf("general request failed: %w", err)
		return comp
	}

	comp.LegacyStatus = legacyStatus
	comp.GeneralStatus = generalStatus
	comp.DurationLegacy = legacyDur
	comp.DurationGeneral = generalDur
	comp.StatusMatch = legacyStatus == generalStatus
	comp.BodyMatch = bodiesEqual(legacyBody, generalBody)
	return comp
}

// generalPendingURL builds the status-filtered form the descriptor builder never
// emits for pending requests.
func generalPendingURL(apiBase string, role descriptor.RoleFilter) (string, error) {
	u, err := url.Parse(descriptor.BuildListURL(apiBase, role, descriptor.StatusAll))
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("status", string(descriptor.StatusPending))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func fetch(ctx context.Context, client *http.Client, target string, headers http.Header) ([]byte, int, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, 0, err
	}
	req.Header = headers
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, time.Since(start), nil
}

func printReport(results []comparison) {
	fmt.Println("Pending Parity Report")
	fmt.Println("=====================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] role=%s\n", status, res.Role)
		fmt.Printf("  Legacy:  %s -> %d (%s)\n", res.LegacyURL, res.LegacyStatus, res.DurationLegacy)
		fmt.Printf("  General: %s -> %d (%s)\n", res.GeneralURL, res.GeneralStatus, res.DurationGeneral)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
		} else {
			fmt.Printf("  Status match: %t | Body match: %t\n", res.StatusMatch, res.BodyMatch)
		}
	}
}
