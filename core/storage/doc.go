// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so journal feeds (Medline dumps, PMC CSV lists)
// can be read straight from an S3 or MinIO bucket instead of the local disk.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the source bucket.
//   - StatObject: Verifies a source object exists before a run starts.
//   - GetObject: Retrieves content as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	reader, err := client.GetObject(ctx, "feeds", "J_Medline.txt", minio.GetObjectOptions{})
package storage
