// Package dto provides data transfer objects for S3 operations
package dto

import "time"

// S3Object is the structure to store the S3 object metadata.
type S3Object struct {
	ETag         string    `json:"etag"`
	Key          string    `json:"key"`
	LastModified time.Time `json:"lastmodified"`
	Size         int64     `json:"size"`
	StorageClass string    `json:"storageclass"`
}

// Folder represents a common prefix (a pseudo-directory) within the bucket.
type Folder struct {
	// Name is the last path segment, without the trailing slash.
	Name string `json:"name"`
	// Prefix is the full prefix, with the trailing slash.
	Prefix string `json:"prefix"`
}

// IsDirectoryMarker reports whether the object is a zero-byte directory
// placeholder (a key ending in "/"). Markers are hidden from file listings.
func (o S3Object) IsDirectoryMarker() bool {
	n := len(o.Key)
	return n > 0 && o.Key[n-1] == '/'
}
