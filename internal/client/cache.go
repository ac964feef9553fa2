package client

import "sync"

type cacheEntry struct {
	group Group
	body  []byte
}

// stamp identifies the cache state a request started from. A response may
// only be stored while its group's stamp is unchanged.
type stamp struct {
	epoch uint64
	gen   uint64
}

// queryCache holds raw GET bodies keyed by path and query.
type queryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	gens    map[Group]uint64
	epoch   uint64
}

func newQueryCache() *queryCache {
	return &queryCache{entries: map[string]cacheEntry{}, gens: map[Group]uint64{}}
}

func (q *queryCache) get(key string) ([]byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[key]
	return e.body, ok
}

func (q *queryCache) stamp(group Group) stamp {
	q.mu.Lock()
	defer q.mu.Unlock()
	return stamp{epoch: q.epoch, gen: q.gens[group]}
}

// put stores body unless group was invalidated or the cache cleared after
// since was taken. It reports whether the body was stored.
func (q *queryCache) put(group Group, key string, body []byte, since stamp) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.epoch != since.epoch || q.gens[group] != since.gen {
		return false
	}
	q.entries[key] = cacheEntry{group: group, body: body}
	return true
}

func (q *queryCache) invalidate(groups ...Group) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, g := range groups {
		q.gens[g]++
	}
	for key, e := range q.entries {
		for _, g := range groups {
			if e.group == g {
				delete(q.entries, key)
				break
			}
		}
	}
}

func (q *queryCache) clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.epoch++
	q.entries = map[string]cacheEntry{}
}
