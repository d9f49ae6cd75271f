package awss3

import "awsmcp/internal/schema"

var bucketNamePattern = `^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`

var listBucketsSchema = schema.Schema{}

var createBucketSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "bucket_name", Type: schema.String, Required: true, Pattern: bucketNamePattern},
		{Name: "region", Type: schema.String, Description: "Bucket region; defaults to the adapter region."},
	},
}

var bucketNameSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "bucket_name", Type: schema.String, Required: true, Pattern: bucketNamePattern},
	},
}

var listObjectsSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "bucket_name", Type: schema.String, Required: true, Pattern: bucketNamePattern},
		{Name: "prefix", Type: schema.String},
	},
}

var uploadObjectSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "bucket_name", Type: schema.String, Required: true, Pattern: bucketNamePattern},
		{Name: "object_key", Type: schema.String, Required: true},
		{Name: "file_path", Type: schema.String, Description: "Local file to upload."},
		{Name: "content", Type: schema.String, Description: "Inline body; used when file_path is absent."},
		{Name: "is_base64", Type: schema.Boolean, Description: "Decode content as base64 before upload."},
		{Name: "content_type", Type: schema.String},
	},
}

var downloadObjectSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "bucket_name", Type: schema.String, Required: true, Pattern: bucketNamePattern},
		{Name: "object_key", Type: schema.String, Required: true},
		{Name: "destination_path", Type: schema.String, Required: true},
	},
}

var objectKeySchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "bucket_name", Type: schema.String, Required: true, Pattern: bucketNamePattern},
		{Name: "object_key", Type: schema.String, Required: true},
	},
}

var setBucketPolicySchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "bucket_name", Type: schema.String, Required: true, Pattern: bucketNamePattern},
		{Name: "policy_json", Type: schema.String, Required: true},
	},
}
