package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type Memory struct {
	lru *expirable.LRU[string, string]
}

var _ Store = (*Memory)(nil)

func NewMemory(size int, ttl time.Duration) *Memory {
	return &Memory{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	v, _ := m.lru.Get(key)
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, val string) error {
	m.lru.Add(key, val)
	return nil
}
