package redis

const (
	// KeyPrefix namespaces every key this process writes.
	KeyPrefix = "buckets:"
	// KeyBucketNav holds the JSON-encoded bucket navigation list.
	KeyBucketNav = KeyPrefix + "nav"
)

// BucketNavKey returns the key of the cached navigation list.
func BucketNavKey() string {
	return KeyBucketNav
}
