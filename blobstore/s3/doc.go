// Package s3 provides an Amazon S3 implementation of the blobstore.Store
// interface. Each snapshot key maps to one S3 object.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("indexes/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	vi, err := flatvec.New(384, flatvec.WithStore(store))
//
// Or with an existing client:
//
//	store := s3.NewStore(client, "my-bucket", "indexes/")
//
// Uploads go through the s3 transfer manager, so large snapshots are written
// as multipart uploads automatically.
package s3
