package core

import (
	"sort"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for persisted types. Provider keys are written in sorted
// order so identical chunks always serialize to identical bytes.
var (
	IDMUS    = idMUS{}
	ChunkMUS = chunkMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

type chunkMUS struct{}

func (chunkMUS) Marshal(c Chunk, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(c.Id), bs)
	n += varint.Uint64.Marshal(uint64(c.DocumentId), bs[n:])
	n += varint.Int.Marshal(c.Ordinal, bs[n:])
	n += ord.String.Marshal(c.Text, bs[n:])
	n += varint.Int.Marshal(len(c.Embeddings), bs[n:])
	for _, provider := range sortedProviders(c.Embeddings) {
		n += ord.String.Marshal(provider, bs[n:])
		vec := c.Embeddings[provider]
		n += varint.Int.Marshal(len(vec), bs[n:])
		for _, v := range vec {
			n += varint.Float32.Marshal(v, bs[n:])
		}
	}
	n += ord.String.Marshal(c.Canonical, bs[n:])
	n += varint.Int64.Marshal(c.InsertedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(c.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (chunkMUS) Unmarshal(bs []byte) (c Chunk, n int, err error) {
	var (
		n1  int
		num uint64
	)
	num, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	c.Id = ID(num)

	num, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.DocumentId = ID(num)

	c.Ordinal, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	c.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	var count int
	count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if count > 0 {
		c.Embeddings = make(map[string][]float32, count)
	}
	for i := 0; i < count; i++ {
		var provider string
		provider, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		var dim int
		dim, n1, err = varint.Int.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		vec := make([]float32, dim)
		for j := 0; j < dim; j++ {
			vec[j], n1, err = varint.Float32.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return
			}
		}
		c.Embeddings[provider] = vec
	}

	c.Canonical, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.InsertedAt = time.UnixMicro(micros).UTC()

	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.UpdatedAt = time.UnixMicro(micros).UTC()

	return c, n, nil
}

func (chunkMUS) Size(c Chunk) (size int) {
	size = varint.Uint64.Size(uint64(c.Id))
	size += varint.Uint64.Size(uint64(c.DocumentId))
	size += varint.Int.Size(c.Ordinal)
	size += ord.String.Size(c.Text)
	size += varint.Int.Size(len(c.Embeddings))
	for provider, vec := range c.Embeddings {
		size += ord.String.Size(provider)
		size += varint.Int.Size(len(vec))
		for _, v := range vec {
			size += varint.Float32.Size(v)
		}
	}
	size += ord.String.Size(c.Canonical)
	size += varint.Int64.Size(c.InsertedAt.UnixMicro())
	size += varint.Int64.Size(c.UpdatedAt.UnixMicro())
	return size
}

func sortedProviders(embeddings map[string][]float32) []string {
	providers := make([]string, 0, len(embeddings))
	for provider := range embeddings {
		providers = append(providers, provider)
	}
	sort.Strings(providers)
	return providers
}
