package awsvpc

import "awsmcp/internal/schema"

var listVpcsSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "vpc_ids", Type: schema.StringList, Description: "Restrict the listing to these VPC ids."},
	},
}

var describeVpcSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "vpc_id", Type: schema.String, Required: true, Pattern: `^vpc-[0-9a-f]+$`},
	},
}

var createVpcSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "cidr_block", Type: schema.String, Required: true, Description: "IPv4 CIDR block, e.g. 10.0.0.0/16."},
		{Name: "ipv6_support", Type: schema.Boolean, Description: "Associate an Amazon-provided IPv6 CIDR block."},
		{Name: "instance_tenancy", Type: schema.String, Enum: []string{"default", "dedicated"}},
		{Name: "tags", Type: schema.StringMap, Description: "Tags applied after creation."},
	},
}

var deleteVpcSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "vpc_id", Type: schema.String, Required: true, Pattern: `^vpc-[0-9a-f]+$`},
	},
}

var modifyVpcAttributeSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "vpc_id", Type: schema.String, Required: true, Pattern: `^vpc-[0-9a-f]+$`},
		{Name: "enable_dns_support", Type: schema.Boolean},
		{Name: "enable_dns_hostnames", Type: schema.Boolean},
	},
}

var listSubnetsSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "vpc_id", Type: schema.String, Pattern: `^vpc-[0-9a-f]+$`},
	},
}

var createSubnetSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "vpc_id", Type: schema.String, Required: true, Pattern: `^vpc-[0-9a-f]+$`},
		{Name: "cidr_block", Type: schema.String, Required: true},
		{Name: "availability_zone", Type: schema.String},
		{Name: "tags", Type: schema.StringMap},
	},
}

var deleteSubnetSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "subnet_id", Type: schema.String, Required: true, Pattern: `^subnet-[0-9a-f]+$`},
	},
}

var createTagsSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "resource_ids", Type: schema.StringList, Required: true, MinItems: 1},
		{Name: "tags", Type: schema.StringMap, Required: true},
	},
}
