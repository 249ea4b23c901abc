package catalog

import (
	"encoding/binary"

	"github.com/coocood/freecache"
)

// countCache guarda a última contagem por loja; freecache descarta as entradas vencidas.
type countCache interface {
	Get(key string) (int, bool)
	Set(key string, count int)
	Del(key string)
}

type freeCountCache struct {
	cache *freecache.Cache
	ttl   int
}

func newCountCache(sizeMB, ttlSeconds int) countCache {
	if sizeMB <= 0 || ttlSeconds <= 0 {
		return noopCache{}
	}

	return &freeCountCache{
		cache: freecache.NewCache(sizeMB * 1024 * 1024),
		ttl:   ttlSeconds,
	}
}

func (c *freeCountCache) Get(key string) (int, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil || len(val) != 8 {
		return 0, false
	}
	return int(binary.BigEndian.Uint64(val)), true
}

func (c *freeCountCache) Set(key string, count int) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(count))
	_ = c.cache.Set([]byte(key), buf, c.ttl)
}

func (c *freeCountCache) Del(key string) {
	c.cache.Del([]byte(key))
}

type noopCache struct{}

func (noopCache) Get(string) (int, bool) { return 0, false }
func (noopCache) Set(string, int)        {}
func (noopCache) Del(string)             {}
