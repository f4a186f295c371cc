package conversation

import (
	"time"

	"ShopAssistAI/app/common/snowflake"

	"github.com/zeromicro/go-zero/core/collection"
)

const defaultSessionTTL = time.Hour

// Store holds live sessions keyed by ID, aging out abandoned ones.
type Store struct {
	cache *collection.Cache
}

func NewStore(ttl time.Duration) (*Store, error) {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	cache, err := collection.NewCache(ttl, collection.WithName("advisor-sessions"))
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache}, nil
}

// FetchOrCreate returns the session for id, minting a fresh one (with a new
// snowflake ID when id is empty) if none is live. An expired id yields a new
// session under the same key so the client keeps a stable handle.
func (st *Store) FetchOrCreate(id string) *Session {
	if id == "" {
		id = snowflake.NextString()
	}
	v, err := st.cache.Take(id, func() (any, error) {
		return NewSession(id), nil
	})
	if err != nil || v == nil {
		return NewSession(id)
	}
	sess, ok := v.(*Session)
	if !ok {
		return NewSession(id)
	}
	return sess
}

// Fetch returns the live session for id, if any.
func (st *Store) Fetch(id string) (*Session, bool) {
	v, ok := st.cache.Get(id)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*Session)
	return sess, ok
}

// Drop removes a session outright.
func (st *Store) Drop(id string) {
	st.cache.Del(id)
}
