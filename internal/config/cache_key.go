package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ExtractResultKey returns the cache key for an extraction result of a document digest
func (r *CacheKeyStruct) ExtractResultKey(digest string) string {
	return fmt.Sprintf("quizdoc:extract:%s", digest)
}

var CacheKey = NewCacheKeyStruct()
