package ports

type S3Client interface {
	GetPublicURL(fileID string) string
	GetBucket() string
}
