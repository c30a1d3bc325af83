package semantic

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketVectors = []byte("embeddings")
	bucketMeta    = []byte("meta")
	metaKey       = []byte("index")
)

// Meta describes the cached index for the coarse staleness check: a cache is
// reused only when the corpus size and model match the current build. Corpus
// changes that preserve size are not detected; corpus edits are rare and
// operator-triggered, so this stays cheap on purpose.
type Meta struct {
	CorpusSize int    `json:"corpus_size"`
	Dimension  int    `json:"dimension"`
	Model      string `json:"model"`
}

// Cache persists entry embeddings across process restarts in a bbolt file.
type Cache struct {
	db *bbolt.DB
}

// OpenCache opens (or creates) the embedding cache at path.
func OpenCache(path string) (*Cache, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening embedding cache %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketVectors); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketMeta); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing embedding cache: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the cache file.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Meta returns the stored index metadata, or ok=false when no index has been
// cached yet.
func (c *Cache) Meta() (Meta, bool, error) {
	var meta Meta
	found := false
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(metaKey)
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &meta)
	})
	if err != nil {
		return Meta{}, false, fmt.Errorf("reading cache meta: %w", err)
	}
	return meta, found, nil
}

// Load returns the cached vector for each requested entry ID. The second
// return is false when any ID is missing.
func (c *Cache) Load(ids []string) ([][]float32, bool, error) {
	vectors := make([][]float32, len(ids))
	complete := true
	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVectors)
		for i, id := range ids {
			data := b.Get([]byte(id))
			if data == nil {
				complete = false
				return nil
			}
			vectors[i] = decodeVector(data)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("loading cached vectors: %w", err)
	}
	if !complete {
		return nil, false, nil
	}
	return vectors, true, nil
}

// Store replaces the cached index with the given vectors and metadata.
func (c *Cache) Store(meta Meta, ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("storing cache: %d ids but %d vectors", len(ids), len(vectors))
	}

	err := c.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketVectors); err != nil {
			return err
		}
		b, err := tx.CreateBucket(bucketVectors)
		if err != nil {
			return err
		}
		for i, id := range ids {
			if err := b.Put([]byte(id), encodeVector(vectors[i])); err != nil {
				return err
			}
		}

		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(metaKey, data)
	})
	if err != nil {
		return fmt.Errorf("storing embedding cache: %w", err)
	}
	return nil
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(x))
	}
	return buf
}

func decodeVector(data []byte) []float32 {
	v := make([]float32, len(data)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return v
}
