package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/scope3-tracker/backend/internal/application/adapter"
	domainerror "github.com/scope3-tracker/backend/internal/domain/error"
)

// emissionsLedgerFeature is the feature key the billing service knows the
// ledger by.
const emissionsLedgerFeature = "emissions_ledger"

// entitlementResponse is the billing service's answer for a feature check.
type entitlementResponse struct {
	Feature  string `json:"feature"`
	Unlocked bool   `json:"unlocked"`
}

// entitlementService implements adapter.EntitlementService against the
// billing HTTP API, with a Redis cache in front so repeated gate checks
// do not hammer billing.
type entitlementService struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewEntitlementService creates a new entitlement service instance.
func NewEntitlementService(baseURL, apiKey string, timeout time.Duration, cache *redis.Client, cacheTTL time.Duration) adapter.EntitlementService {
	return &entitlementService{
		baseURL:  baseURL,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// IsFeatureUnlocked reports whether the company has unlocked the emissions
// ledger feature. Cache hits short-circuit the billing call; billing
// failures surface as errors so callers can fail closed.
func (s *entitlementService) IsFeatureUnlocked(ctx context.Context, companyID uuid.UUID) (bool, error) {
	cacheKey := fmt.Sprintf("entitlement:%s:%s", companyID, emissionsLedgerFeature)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			return cached == "1", nil
		}
		// Cache misses and cache outages both fall through to billing.
	}

	unlocked, err := s.fetchEntitlement(ctx, companyID)
	if err != nil {
		return false, err
	}

	if s.cache != nil {
		value := "0"
		if unlocked {
			value = "1"
		}
		// Best effort; a failed cache write must not fail the check.
		_ = s.cache.Set(ctx, cacheKey, value, s.cacheTTL).Err()
	}

	return unlocked, nil
}

// fetchEntitlement asks the billing service whether the feature is unlocked.
func (s *entitlementService) fetchEntitlement(ctx context.Context, companyID uuid.UUID) (bool, error) {
	url := fmt.Sprintf("%s/v1/companies/%s/entitlements/%s", s.baseURL, companyID, emissionsLedgerFeature)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build entitlement request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return false, domainerror.ErrEntitlementCheckFailed
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body entitlementResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return false, domainerror.ErrEntitlementCheckFailed
		}
		return body.Unlocked, nil
	case http.StatusNotFound:
		// Unknown company or feature means no entitlement.
		return false, nil
	default:
		return false, domainerror.ErrEntitlementCheckFailed
	}
}
