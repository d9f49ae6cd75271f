// Package awstgw exposes Transit Gateway lifecycle and routing tools.
package awstgw

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"awsmcp/adapters/identity"
	"awsmcp/internal/awsconf"
	"awsmcp/internal/config"
	"awsmcp/internal/mcp"
)

const (
	adapterID      = "tgw"
	adapterVersion = "1.0.0"
)

func init() {
	mcp.MustRegisterAdapter(adapterID, func() mcp.Adapter { return &Adapter{} })
}

type Adapter struct {
	ec2 *ec2.Client
	sts *sts.Client
}

func (a *Adapter) ID() string      { return adapterID }
func (a *Adapter) Version() string { return adapterVersion }

func (a *Adapter) Init(ctx context.Context, cfg *config.Config) error {
	awsCfg, err := awsconf.Load(ctx, cfg.Region, cfg.Profile)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	a.ec2 = ec2.NewFromConfig(awsCfg)
	a.sts = sts.NewFromConfig(awsCfg)
	return nil
}

func (a *Adapter) Register(reg mcp.Registry) error {
	specs := []mcp.ToolSpec{
		{
			Name:        "list_transit_gateways",
			Description: "List Transit Gateways.",
			AdapterID:   adapterID,
			Schema:      listGatewaysSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.listGateways,
		},
		{
			Name:        "describe_transit_gateway",
			Description: "Describe a Transit Gateway.",
			AdapterID:   adapterID,
			Schema:      gatewayIDSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.describeGateway,
		},
		{
			Name:        "create_transit_gateway",
			Description: "Create a Transit Gateway.",
			AdapterID:   adapterID,
			Schema:      createGatewaySchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.createGateway,
		},
		{
			Name:        "delete_transit_gateway",
			Description: "Delete a Transit Gateway.",
			AdapterID:   adapterID,
			Schema:      gatewayIDSchema,
			Safety:      mcp.SafetyDestructive,
			Handler:     a.deleteGateway,
		},
		{
			Name:        "modify_transit_gateway",
			Description: "Modify Transit Gateway options.",
			AdapterID:   adapterID,
			Schema:      modifyGatewaySchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.modifyGateway,
		},
		{
			Name:        "list_transit_gateway_attachments",
			Description: "List Transit Gateway attachments.",
			AdapterID:   adapterID,
			Schema:      listAttachmentsSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.listAttachments,
		},
		{
			Name:        "create_vpc_attachment",
			Description: "Attach a VPC to a Transit Gateway.",
			AdapterID:   adapterID,
			Schema:      createAttachmentSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.createVpcAttachment,
		},
		{
			Name:        "delete_vpc_attachment",
			Description: "Delete a VPC attachment.",
			AdapterID:   adapterID,
			Schema:      attachmentIDSchema,
			Safety:      mcp.SafetyDestructive,
			Handler:     a.deleteVpcAttachment,
		},
		{
			Name:        "accept_vpc_attachment",
			Description: "Accept a shared VPC attachment.",
			AdapterID:   adapterID,
			Schema:      attachmentIDSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.acceptVpcAttachment,
		},
		{
			Name:        "list_route_tables",
			Description: "List Transit Gateway route tables.",
			AdapterID:   adapterID,
			Schema:      listRouteTablesSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.listRouteTables,
		},
		{
			Name:        "create_route_table",
			Description: "Create a Transit Gateway route table.",
			AdapterID:   adapterID,
			Schema:      createRouteTableSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.createRouteTable,
		},
		{
			Name:        "delete_route_table",
			Description: "Delete a Transit Gateway route table.",
			AdapterID:   adapterID,
			Schema:      routeTableIDSchema,
			Safety:      mcp.SafetyDestructive,
			Handler:     a.deleteRouteTable,
		},
		{
			Name:        "associate_route_table",
			Description: "Associate an attachment with a route table.",
			AdapterID:   adapterID,
			Schema:      associationSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.associateRouteTable,
		},
		{
			Name:        "disassociate_route_table",
			Description: "Disassociate an attachment from a route table.",
			AdapterID:   adapterID,
			Schema:      associationSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.disassociateRouteTable,
		},
		{
			Name:        "create_route",
			Description: "Create a Transit Gateway route.",
			AdapterID:   adapterID,
			Schema:      createRouteSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.createRoute,
		},
		{
			Name:        "delete_route",
			Description: "Delete a Transit Gateway route.",
			AdapterID:   adapterID,
			Schema:      deleteRouteSchema,
			Safety:      mcp.SafetyDestructive,
			Handler:     a.deleteRoute,
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
