package verify

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

const tokenKeyPrefix = "activation:"

// RedisTokenStore keeps activation tokens in redis with a TTL so they
// expire server-side and survive process restarts.
type RedisTokenStore struct {
	client rueidis.Client
}

func NewRedisTokenStore(client rueidis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Issue(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	err = s.client.Do(
		ctx,
		s.client.B().Set().
			Key(tokenKeyPrefix+token).
			Value(userID).
			Nx().
			ExSeconds(int64(ttl.Seconds())).
			Build(),
	).Error()
	if err != nil {
		return "", err
	}

	return token, nil
}

func (s *RedisTokenStore) Consume(ctx context.Context, token string) (string, error) {
	resp := s.client.Do(
		ctx,
		s.client.B().Getdel().Key(tokenKeyPrefix+token).Build(),
	)

	userID, err := resp.ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrTokenInvalid
		}
		return "", err
	}

	return userID, nil
}
