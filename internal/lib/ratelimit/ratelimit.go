// Package ratelimit реализует хранилище лимитеров по ключу (имя пользователя,
// адрес клиента) с вытеснением простаивающих записей. Хранилище внедряется в
// middleware зависимостью, а не живёт глобальной переменной процесса — это
// позволяет тестировать лимиты и держать по экземпляру на сервер.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Store хранит лимитеры по ключу и создает их лениво.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry

	limit rate.Limit
	burst int
	ttl   time.Duration
}

// New создает Store: limit — событий в секунду, burst — разрешенный всплеск,
// ttl — срок простоя, после которого запись ключа вытесняется.
func New(limit rate.Limit, burst int, ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]*entry),
		limit:   limit,
		burst:   burst,
		ttl:     ttl,
	}
}

// Allow сообщает, разрешено ли ключу ещё одно событие сейчас.
func (s *Store) Allow(key string) bool {
	return s.allow(key, time.Now())
}

func (s *Store) allow(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evict(now)

	e, ok := s.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.Allow()
}

// evict вызывается под mu.
func (s *Store) evict(now time.Time) {
	for key, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, key)
		}
	}
}

// Len возвращает количество отслеживаемых ключей.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
