// Package blobstore provides the durable key-value storage abstraction used
// for index snapshots.
//
// Store is a narrow interface: whole snapshots travel as single byte blobs
// keyed by a caller-chosen name, with upsert writes and idempotent deletes.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: process-local map, the default (tests, ephemeral use)
//   - LocalStore: one file per key under a lazily created root directory
//   - s3.Store: Amazon S3 objects
//   - dynamo.Store: DynamoDB items with lazy table provisioning
//   - minio.Store: MinIO and other S3-compatible object storage
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends:
//
//	type Store interface {
//	    Put(ctx, name, data) error          // Upsert
//	    Get(ctx, name) ([]byte, error)      // ErrNotFound if absent
//	    Delete(ctx, name) error             // No-op if absent
//	}
package blobstore
