package entities

// APITier is an API access tier controlling rate limits
type APITier string

// API tiers
const (
	TierFree       APITier = "free"
	TierBasic      APITier = "basic"
	TierPro        APITier = "pro"
	TierEnterprise APITier = "enterprise"
)

// IsValid reports whether the tier is known
func (t APITier) IsValid() bool {
	switch t {
	case TierFree, TierBasic, TierPro, TierEnterprise:
		return true
	}
	return false
}

// APIKey is an issued API credential. Key is the full secret; it is only
// returned in the create response.
type APIKey struct {
	ID             string   `json:"id"`
	Key            string   `json:"key,omitempty"`
	Name           string   `json:"name"`
	Tier           APITier  `json:"tier"`
	CreatedAt      int64    `json:"createdAt"`
	ExpiresAt      int64    `json:"expiresAt,omitempty"`
	Revoked        bool     `json:"revoked"`
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
}

// AllowsOrigin reports whether a browser origin may use this key. Keys with
// no origin list accept any caller.
func (k *APIKey) AllowsOrigin(origin string) bool {
	if len(k.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range k.AllowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}
