package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	oauthStateTTL       = 10 * time.Minute
	oauthStateKeyPrefix = "oauth_state:"
)

// ErrStateNotFound means the state parameter is unknown, expired, or was
// already consumed.
var ErrStateNotFound = errors.New("oauth state not found")

// LoginState is the short-lived record behind an OAuth state parameter.
type LoginState struct {
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}

// OAuthStateStore keeps one-time OAuth login state in Redis. The state
// parameter doubles as the CSRF token for the federated flow.
type OAuthStateStore struct {
	client redis.UniversalClient
}

func NewOAuthStateStore(client redis.UniversalClient) *OAuthStateStore {
	return &OAuthStateStore{client: client}
}

// Create stores a fresh state record and returns the state parameter.
func (s *OAuthStateStore) Create(ctx context.Context, provider string) (string, error) {
	state := uuid.NewString()
	payload, err := json.Marshal(LoginState{Provider: provider, CreatedAt: time.Now()})
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, oauthStateKeyPrefix+state, payload, oauthStateTTL).Err(); err != nil {
		return "", err
	}
	return state, nil
}

// Consume loads and deletes the state record. A state can only be consumed
// once; replays return ErrStateNotFound.
func (s *OAuthStateStore) Consume(ctx context.Context, state string) (*LoginState, error) {
	payload, err := s.client.GetDel(ctx, oauthStateKeyPrefix+state).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	var ls LoginState
	if err := json.Unmarshal(payload, &ls); err != nil {
		return nil, err
	}
	return &ls, nil
}
