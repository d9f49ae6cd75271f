package awstgw

import "awsmcp/internal/schema"

var enableDisable = []string{"enable", "disable"}

var listGatewaysSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "transit_gateway_ids", Type: schema.StringList},
	},
}

var gatewayIDSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "transit_gateway_id", Type: schema.String, Required: true, Pattern: `^tgw-[0-9a-f]+$`},
	},
}

var createGatewaySchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "description", Type: schema.String},
		{Name: "amazon_side_asn", Type: schema.Integer},
		{Name: "auto_accept_shared_attachments", Type: schema.String, Enum: enableDisable},
		{Name: "default_route_table_association", Type: schema.String, Enum: enableDisable},
		{Name: "default_route_table_propagation", Type: schema.String, Enum: enableDisable},
		{Name: "dns_support", Type: schema.String, Enum: enableDisable},
		{Name: "vpn_ecmp_support", Type: schema.String, Enum: enableDisable},
		{Name: "tags", Type: schema.StringMap},
	},
}

var modifyGatewaySchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "transit_gateway_id", Type: schema.String, Required: true, Pattern: `^tgw-[0-9a-f]+$`},
		{Name: "description", Type: schema.String},
		{Name: "auto_accept_shared_attachments", Type: schema.String, Enum: enableDisable},
		{Name: "default_route_table_association", Type: schema.String, Enum: enableDisable},
		{Name: "default_route_table_propagation", Type: schema.String, Enum: enableDisable},
		{Name: "dns_support", Type: schema.String, Enum: enableDisable},
		{Name: "vpn_ecmp_support", Type: schema.String, Enum: enableDisable},
	},
}

var listAttachmentsSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "transit_gateway_id", Type: schema.String, Pattern: `^tgw-[0-9a-f]+$`},
		{Name: "attachment_ids", Type: schema.StringList},
	},
}

var createAttachmentSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "transit_gateway_id", Type: schema.String, Required: true, Pattern: `^tgw-[0-9a-f]+$`},
		{Name: "vpc_id", Type: schema.String, Required: true, Pattern: `^vpc-[0-9a-f]+$`},
		{Name: "subnet_ids", Type: schema.StringList, Required: true, MinItems: 1},
		{Name: "options", Type: schema.Record, Fields: []schema.Field{
			{Name: "dns_support", Type: schema.String, Enum: enableDisable},
			{Name: "ipv6_support", Type: schema.String, Enum: enableDisable},
			{Name: "appliance_mode_support", Type: schema.String, Enum: enableDisable},
		}},
		{Name: "tags", Type: schema.StringMap},
	},
}

var attachmentIDSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "transit_gateway_attachment_id", Type: schema.String, Required: true, Pattern: `^tgw-attach-[0-9a-f]+$`},
	},
}

var listRouteTablesSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "transit_gateway_id", Type: schema.String, Pattern: `^tgw-[0-9a-f]+$`},
	},
}

var createRouteTableSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "transit_gateway_id", Type: schema.String, Required: true, Pattern: `^tgw-[0-9a-f]+$`},
		{Name: "tags", Type: schema.StringMap},
	},
}

var routeTableIDSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "transit_gateway_route_table_id", Type: schema.String, Required: true, Pattern: `^tgw-rtb-[0-9a-f]+$`},
	},
}

var associationSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "transit_gateway_route_table_id", Type: schema.String, Required: true, Pattern: `^tgw-rtb-[0-9a-f]+$`},
		{Name: "transit_gateway_attachment_id", Type: schema.String, Required: true, Pattern: `^tgw-attach-[0-9a-f]+$`},
	},
}

var createRouteSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "transit_gateway_route_table_id", Type: schema.String, Required: true, Pattern: `^tgw-rtb-[0-9a-f]+$`},
		{Name: "destination_cidr_block", Type: schema.String, Required: true},
		{Name: "transit_gateway_attachment_id", Type: schema.String, Pattern: `^tgw-attach-[0-9a-f]+$`},
		{Name: "blackhole", Type: schema.Boolean},
	},
}

var deleteRouteSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "transit_gateway_route_table_id", Type: schema.String, Required: true, Pattern: `^tgw-rtb-[0-9a-f]+$`},
		{Name: "destination_cidr_block", Type: schema.String, Required: true},
	},
}
