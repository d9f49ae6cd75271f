package awss3

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"awsmcp/internal/mcp"
	"awsmcp/internal/schema"
)

func (a *Adapter) listBuckets(ctx context.Context, args schema.Args) (any, error) {
	out, err := a.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, err
	}
	buckets := make([]map[string]any, 0, len(out.Buckets))
	for _, bucket := range out.Buckets {
		entry := map[string]any{"name": aws.ToString(bucket.Name)}
		if bucket.CreationDate != nil {
			entry["createdAt"] = bucket.CreationDate.UTC().Format(time.RFC3339)
		}
		buckets = append(buckets, entry)
	}
	return map[string]any{"buckets": buckets, "count": len(buckets)}, nil
}

func (a *Adapter) createBucket(ctx context.Context, args schema.Args) (any, error) {
	bucket := args.String("bucket_name")
	region := args.StringOr("region", a.region)
	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	// us-east-1 rejects an explicit location constraint.
	if region != "" && region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(region),
		}
	}
	out, err := a.s3.CreateBucket(ctx, input)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"bucket":   bucket,
		"location": aws.ToString(out.Location),
	}, nil
}

func (a *Adapter) deleteBucket(ctx context.Context, args schema.Args) (any, error) {
	bucket := args.String("bucket_name")
	if _, err := a.s3.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(bucket)}); err != nil {
		if mcp.IsNotFound(err) {
			return map[string]any{"bucket": bucket, "deleted": true, "alreadyAbsent": true}, nil
		}
		return nil, err
	}
	return map[string]any{"bucket": bucket, "deleted": true}, nil
}

func (a *Adapter) listObjects(ctx context.Context, args schema.Args) (any, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(args.String("bucket_name"))}
	if prefix := args.String("prefix"); prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	var objects []map[string]any
	for page := 0; page < mcp.MaxListPages; page++ {
		out, err := a.s3.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, object := range out.Contents {
			entry := map[string]any{
				"key":  aws.ToString(object.Key),
				"size": aws.ToInt64(object.Size),
				"etag": aws.ToString(object.ETag),
			}
			if object.LastModified != nil {
				entry["lastModified"] = object.LastModified.UTC().Format(time.RFC3339)
			}
			objects = append(objects, entry)
		}
		if !aws.ToBool(out.IsTruncated) || aws.ToString(out.NextContinuationToken) == "" {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}
	return map[string]any{"objects": objects, "count": len(objects)}, nil
}

func (a *Adapter) uploadObject(ctx context.Context, args schema.Args) (any, error) {
	bucket := args.String("bucket_name")
	key := args.String("object_key")
	filePath := args.String("file_path")
	hasContent := args.Has("content")
	if filePath == "" && !hasContent {
		return nil, mcp.InvalidRequestf("either file_path or content is required")
	}

	var body io.Reader
	if filePath != "" {
		file, err := os.Open(filePath)
		if err != nil {
			return nil, mcp.InvalidRequestf("open %s: %v", filePath, err)
		}
		defer file.Close()
		body = file
	} else {
		data := []byte(args.String("content"))
		if args.Bool("is_base64") {
			decoded, err := base64.StdEncoding.DecodeString(args.String("content"))
			if err != nil {
				return nil, mcp.InvalidRequestf("content is not valid base64: %v", err)
			}
			data = decoded
		}
		body = bytes.NewReader(data)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType := args.String("content_type"); contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := a.s3.PutObject(ctx, input); err != nil {
		return nil, err
	}
	return map[string]any{"bucket": bucket, "key": key}, nil
}

func (a *Adapter) downloadObject(ctx context.Context, args schema.Args) (any, error) {
	bucket := args.String("bucket_name")
	key := args.String("object_key")
	destination := args.String("destination_path")

	out, err := a.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return nil, mcp.InvalidRequestf("create destination directory: %v", err)
	}
	file, err := os.Create(destination)
	if err != nil {
		return nil, mcp.InvalidRequestf("create %s: %v", destination, err)
	}
	defer file.Close()

	written, err := io.Copy(file, out.Body)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"bucket":      bucket,
		"key":         key,
		"destination": destination,
		"bytes":       written,
	}, nil
}

func (a *Adapter) deleteObject(ctx context.Context, args schema.Args) (any, error) {
	bucket := args.String("bucket_name")
	key := args.String("object_key")
	if _, err := a.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		if mcp.IsNotFound(err) {
			return map[string]any{"bucket": bucket, "key": key, "deleted": true, "alreadyAbsent": true}, nil
		}
		return nil, err
	}
	return map[string]any{"bucket": bucket, "key": key, "deleted": true}, nil
}

// getBucketPolicy treats a missing policy as an empty result; only a
// missing bucket surfaces as a failure.
func (a *Adapter) getBucketPolicy(ctx context.Context, args schema.Args) (any, error) {
	bucket := args.String("bucket_name")
	out, err := a.s3.GetBucketPolicy(ctx, &s3.GetBucketPolicyInput{Bucket: aws.String(bucket)})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchBucketPolicy" {
			return map[string]any{"bucket": bucket, "hasPolicy": false}, nil
		}
		return nil, err
	}
	var policy any
	if raw := aws.ToString(out.Policy); raw != "" {
		if err := json.Unmarshal([]byte(raw), &policy); err != nil {
			policy = raw
		}
	}
	return map[string]any{"bucket": bucket, "hasPolicy": true, "policy": policy}, nil
}

func (a *Adapter) setBucketPolicy(ctx context.Context, args schema.Args) (any, error) {
	bucket := args.String("bucket_name")
	policy := args.String("policy_json")
	if !json.Valid([]byte(policy)) {
		return nil, mcp.InvalidRequestf("policy_json is not valid JSON")
	}
	if _, err := a.s3.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucket),
		Policy: aws.String(policy),
	}); err != nil {
		return nil, err
	}
	return map[string]any{"bucket": bucket, "policyApplied": true}, nil
}
