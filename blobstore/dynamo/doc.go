// Package dynamo provides a DynamoDB implementation of the blobstore.Store
// interface. Each snapshot key maps to one item keyed by "name", with the
// serialized snapshot held in a binary attribute.
//
// The table is provisioned lazily: the first write creates it (on-demand
// billing, "name" as the partition key) if it does not exist yet. Reads
// against a missing table report blobstore.ErrNotFound, so a load before the
// first save behaves like a missing key rather than a storage fault.
//
// # Usage
//
//	store, err := dynamo.New(ctx, "flatvec-snapshots")
//
//	vi, err := flatvec.New(384, flatvec.WithStore(store))
//
// Or with an existing client:
//
//	store := dynamo.NewStore(client, "flatvec-snapshots")
//
// DynamoDB items are limited to 400KB; snapshots beyond a few hundred vectors
// should use a compressing codec or an object-store backend instead.
package dynamo
