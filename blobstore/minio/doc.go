// Package minio provides a blobstore.Store implementation using the MinIO
// client, compatible with MinIO and other S3-compatible storage systems like
// Ceph, SeaweedFS and Garage.
//
// The bucket is provisioned lazily on the first write.
//
// # Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "indexes/")
//	vi, err := flatvec.New(384, flatvec.WithStore(store))
package minio
