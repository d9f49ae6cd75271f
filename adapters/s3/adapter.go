// Package awss3 exposes S3 bucket and object tools.
package awss3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"awsmcp/adapters/identity"
	"awsmcp/internal/awsconf"
	"awsmcp/internal/config"
	"awsmcp/internal/mcp"
)

const (
	adapterID      = "s3"
	adapterVersion = "1.0.0"
)

func init() {
	mcp.MustRegisterAdapter(adapterID, func() mcp.Adapter { return &Adapter{} })
}

type Adapter struct {
	s3     *s3.Client
	sts    *sts.Client
	region string
}

func (a *Adapter) ID() string      { return adapterID }
func (a *Adapter) Version() string { return adapterVersion }

func (a *Adapter) Init(ctx context.Context, cfg *config.Config) error {
	awsCfg, err := awsconf.Load(ctx, cfg.Region, cfg.Profile)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	a.s3 = s3.NewFromConfig(awsCfg)
	a.sts = sts.NewFromConfig(awsCfg)
	a.region = awsCfg.Region
	return nil
}

func (a *Adapter) Register(reg mcp.Registry) error {
	specs := []mcp.ToolSpec{
		{
			Name:        "list_buckets",
			Description: "List all buckets in the account.",
			AdapterID:   adapterID,
			Schema:      listBucketsSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.listBuckets,
		},
		{
			Name:        "create_bucket",
			Description: "Create a new bucket.",
			AdapterID:   adapterID,
			Schema:      createBucketSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.createBucket,
		},
		{
			Name:        "delete_bucket",
			Description: "Delete an empty bucket.",
			AdapterID:   adapterID,
			Schema:      bucketNameSchema,
			Safety:      mcp.SafetyDestructive,
			Handler:     a.deleteBucket,
		},
		{
			Name:        "list_objects",
			Description: "List objects within a bucket.",
			AdapterID:   adapterID,
			Schema:      listObjectsSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.listObjects,
		},
		{
			Name:        "upload_object",
			Description: "Upload an object from a file or inline content.",
			AdapterID:   adapterID,
			Schema:      uploadObjectSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.uploadObject,
		},
		{
			Name:        "download_object",
			Description: "Download an object to the local filesystem.",
			AdapterID:   adapterID,
			Schema:      downloadObjectSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.downloadObject,
		},
		{
			Name:        "delete_object",
			Description: "Delete an object.",
			AdapterID:   adapterID,
			Schema:      objectKeySchema,
			Safety:      mcp.SafetyDestructive,
			Handler:     a.deleteObject,
		},
		{
			Name:        "get_bucket_policy",
			Description: "Retrieve the policy attached to a bucket.",
			AdapterID:   adapterID,
			Schema:      bucketNameSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.getBucketPolicy,
		},
		{
			Name:        "set_bucket_policy",
			Description: "Attach a policy document to a bucket.",
			AdapterID:   adapterID,
			Schema:      setBucketPolicySchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.setBucketPolicy,
		},
		identity.Tool(adapterID, a.sts),
	}
	for _, spec := range specs {
		if err := reg.Add(spec); err != nil {
			return err
		}
	}
	return nil
}
