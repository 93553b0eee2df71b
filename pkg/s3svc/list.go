package s3svc

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mfco/spacewatch/pkg/dto"
)

// ListAllObjects returns the complete flat listing of the configured bucket
// under the configured prefix. This is the listing the bucket monitor diffs;
// directory markers are included so their lifecycle is tracked like any other
// key.
func (s *Service) ListAllObjects(ctx context.Context) ([]dto.S3Object, error) {
	result := []dto.S3Object{}

	paginator := s3.NewListObjectsV2Paginator(s.awsS3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Bucket),
		Prefix: aws.String(s.cfg.Prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ListAllObjects: error of paginator.NextPage: %w", err)
		}
		for _, obj := range page.Contents {
			result = append(result, dto.S3Object{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
				ETag:         aws.ToString(obj.ETag),
				StorageClass: string(obj.StorageClass),
			})
		}
	}
	return result, nil
}

// GetObjects returns the folders and files directly under parentFolder.
// Folders come from the listing's common prefixes; the directory marker of
// parentFolder itself is skipped. Both lists are sorted case-insensitively.
func (s *Service) GetObjects(ctx context.Context, parentFolder string) ([]dto.Folder, []dto.S3Object, error) {
	if parentFolder != "" && !strings.HasSuffix(parentFolder, "/") {
		parentFolder += "/"
	}

	folders := []dto.Folder{}
	files := []dto.S3Object{}
	var delimiter = "/"

	paginator := s3.NewListObjectsV2Paginator(s.awsS3Client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.cfg.Bucket),
		Prefix:    aws.String(parentFolder),
		Delimiter: aws.String(delimiter),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("GetObjects: error of paginator.NextPage: %w", err)
		}
		for _, prefix := range page.CommonPrefixes {
			full := aws.ToString(prefix.Prefix)
			folders = append(folders, dto.Folder{
				Name:   strings.TrimSuffix(strings.TrimPrefix(full, parentFolder), "/"),
				Prefix: full,
			})
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == parentFolder {
				// The directory marker itself, skip.
				continue
			}
			files = append(files, dto.S3Object{
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
				ETag:         aws.ToString(obj.ETag),
				StorageClass: string(obj.StorageClass),
			})
		}
	}

	sort.Slice(folders, func(i, j int) bool {
		return strings.ToLower(folders[i].Name) < strings.ToLower(folders[j].Name)
	})
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i].Key) < strings.ToLower(files[j].Key)
	})
	return folders, files, nil
}
