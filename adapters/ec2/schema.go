package awsec2

import "awsmcp/internal/schema"

var instanceStates = []string{"pending", "running", "shutting-down", "terminated", "stopping", "stopped"}

var listInstancesSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "state", Type: schema.String, Enum: instanceStates, Description: "Only return instances in this state."},
	},
}

var describeInstanceSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "instance_id", Type: schema.String, Required: true, Pattern: `^i-[0-9a-f]+$`},
	},
}

var instanceIDSchema = describeInstanceSchema

var stopInstanceSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "instance_id", Type: schema.String, Required: true, Pattern: `^i-[0-9a-f]+$`},
		{Name: "force", Type: schema.Boolean},
	},
}

var runInstancesSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "image_id", Type: schema.String, Required: true, Pattern: `^ami-[0-9a-f]+$`},
		{Name: "instance_type", Type: schema.String, Required: true},
		{Name: "key_name", Type: schema.String},
		{Name: "min_count", Type: schema.Integer},
		{Name: "max_count", Type: schema.Integer},
		{Name: "subnet_id", Type: schema.String, Pattern: `^subnet-[0-9a-f]+$`},
		{Name: "security_group_ids", Type: schema.StringList},
		{Name: "user_data", Type: schema.String},
		{Name: "iam_instance_profile", Type: schema.String},
		{Name: "tags", Type: schema.StringMap, Description: "Tags applied to the launched instances."},
		{Name: "wait_until_running", Type: schema.Boolean, Description: "Block until every instance reports running."},
	},
}

var createImageSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "instance_id", Type: schema.String, Required: true, Pattern: `^i-[0-9a-f]+$`},
		{Name: "name", Type: schema.String, Required: true},
		{Name: "description", Type: schema.String},
		{Name: "no_reboot", Type: schema.Boolean},
	},
}

var createTagsSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "resource_ids", Type: schema.StringList, Required: true, MinItems: 1},
		{Name: "tags", Type: schema.StringMap, Required: true},
	},
}
