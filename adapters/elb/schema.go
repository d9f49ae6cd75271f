package awselb

import (
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"awsmcp/internal/schema"
)

var listLoadBalancersSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "names", Type: schema.StringList, Description: "Restrict the listing to these load balancer names."},
	},
}

var loadBalancerArnSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "load_balancer_arn", Type: schema.String, Required: true},
	},
}

func createLoadBalancerSchema(kind elbtypes.LoadBalancerTypeEnum) schema.Schema {
	fields := []schema.Field{
		{Name: "name", Type: schema.String, Required: true},
		{Name: "subnets", Type: schema.StringList, Required: true, MinItems: 1},
		{Name: "scheme", Type: schema.String, Enum: []string{"internet-facing", "internal"}},
		{Name: "ip_address_type", Type: schema.String, Enum: []string{"ipv4", "dualstack"}},
		{Name: "tags", Type: schema.StringMap},
		{Name: "wait_until_available", Type: schema.Boolean, Description: "Block until the load balancer reports active."},
	}
	if kind == elbtypes.LoadBalancerTypeEnumApplication {
		fields = append(fields, schema.Field{Name: "security_groups", Type: schema.StringList})
	}
	return schema.Schema{Fields: fields}
}

var modifyAttributesSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "load_balancer_arn", Type: schema.String, Required: true},
		{Name: "attributes", Type: schema.StringMap, Required: true},
	},
}

var listTargetGroupsSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "load_balancer_arn", Type: schema.String},
	},
}

func createTargetGroupSchema(protocols []string) schema.Schema {
	return schema.Schema{Fields: []schema.Field{
		{Name: "name", Type: schema.String, Required: true},
		{Name: "protocol", Type: schema.String, Required: true, Enum: protocols},
		{Name: "port", Type: schema.Integer, Required: true},
		{Name: "vpc_id", Type: schema.String, Required: true, Pattern: `^vpc-[0-9a-f]+$`},
		{Name: "target_type", Type: schema.String, Enum: []string{"instance", "ip", "lambda", "alb"}},
		{Name: "health_check_protocol", Type: schema.String},
		{Name: "health_check_port", Type: schema.String},
		{Name: "tags", Type: schema.StringMap},
	}}
}

var targetGroupArnSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "target_group_arn", Type: schema.String, Required: true},
	},
}

var targetsSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "target_group_arn", Type: schema.String, Required: true},
		{Name: "targets", Type: schema.RecordList, Required: true, MinItems: 1, Fields: []schema.Field{
			{Name: "id", Type: schema.String, Required: true},
			{Name: "port", Type: schema.Integer},
		}},
	},
}

var listenerActionFields = []schema.Field{
	{Name: "type", Type: schema.String, Enum: []string{"forward"}},
	{Name: "target_group_arn", Type: schema.String, Required: true},
}

func createListenerSchema(protocols []string) schema.Schema {
	return schema.Schema{Fields: []schema.Field{
		{Name: "load_balancer_arn", Type: schema.String},
		{Name: "load_balancer_name", Type: schema.String, Description: "Resolved to an ARN when load_balancer_arn is absent."},
		{Name: "protocol", Type: schema.String, Required: true, Enum: protocols},
		{Name: "port", Type: schema.Integer, Required: true},
		{Name: "default_actions", Type: schema.RecordList, Required: true, MinItems: 1, Fields: listenerActionFields},
	}}
}

var listenerArnSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "listener_arn", Type: schema.String, Required: true},
	},
}

func modifyListenerSchema(protocols []string) schema.Schema {
	return schema.Schema{Fields: []schema.Field{
		{Name: "listener_arn", Type: schema.String, Required: true},
		{Name: "protocol", Type: schema.String, Enum: protocols},
		{Name: "port", Type: schema.Integer},
		{Name: "default_actions", Type: schema.RecordList, Fields: listenerActionFields},
	}}
}

var createRuleSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "listener_arn", Type: schema.String, Required: true},
		{Name: "priority", Type: schema.Integer, Required: true},
		{Name: "conditions", Type: schema.RecordList, Required: true, MinItems: 1, Fields: []schema.Field{
			{Name: "field", Type: schema.String, Required: true, Enum: []string{"path-pattern", "host-header", "http-request-method", "source-ip"}},
			{Name: "values", Type: schema.StringList, Required: true, MinItems: 1},
		}},
		{Name: "actions", Type: schema.RecordList, Required: true, MinItems: 1, Fields: listenerActionFields},
	},
}

var ruleArnSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "rule_arn", Type: schema.String, Required: true},
	},
}
