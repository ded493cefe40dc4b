package flatvec_test

import (
	"context"
	"fmt"
	"log"

	"github.com/flatvec/flatvec"
	"github.com/flatvec/flatvec/blobstore"
	"github.com/flatvec/flatvec/codec"
	"github.com/flatvec/flatvec/metadata"
)

// Example demonstrates basic insertion and top-k search.
func Example() {
	vi, err := flatvec.New(3)
	if err != nil {
		log.Fatal(err)
	}

	_ = vi.Add([]float32{1, 0, 0}, metadata.Metadata{"id": 1})
	_ = vi.Add([]float32{0, 1, 0}, metadata.Metadata{"id": 2})

	results, err := vi.Search([]float32{1, 0, 0}, 1)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("index=%d score=%.1f id=%v\n",
		results[0].Index, results[0].Score, results[0].Metadata["id"])
	// Output: index=0 score=1.0 id=1
}

// Example_persistence demonstrates saving an index and restoring it into a
// fresh instance.
func Example_persistence() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	vi, err := flatvec.New(2,
		flatvec.WithStore(store),
		flatvec.WithCodec(codec.Zstd(codec.JSON{})),
	)
	if err != nil {
		log.Fatal(err)
	}

	_ = vi.Add([]float32{3, 4}, metadata.Metadata{"doc": "a"})
	if err := vi.Save(ctx, "notes"); err != nil {
		log.Fatal(err)
	}

	restored, _ := flatvec.New(2,
		flatvec.WithStore(store),
		flatvec.WithCodec(codec.Zstd(codec.JSON{})),
	)
	loaded, err := restored.Load(ctx, "notes")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("loaded=%v size=%d\n", loaded, restored.Size())
	// Output: loaded=true size=1
}

// Example_filteredQuery demonstrates the fluent query builder with metadata
// filtering.
func Example_filteredQuery() {
	vi, err := flatvec.New(2)
	if err != nil {
		log.Fatal(err)
	}

	_ = vi.Add([]float32{1, 0}, metadata.Metadata{"category": "tech"})
	_ = vi.Add([]float32{0.9, 0.1}, metadata.Metadata{"category": "sports"})

	results, err := vi.Query([]float32{1, 0}).
		KNN(1).
		Filter(metadata.Eq("category", "sports")).
		Execute(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("category=%v\n", results[0].Metadata["category"])
	// Output: category=sports
}
