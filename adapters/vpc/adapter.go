// Package awsvpc exposes VPC and subnet lifecycle tools.
package awsvpc

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
	adapterID      = "vpc"
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
			Name:        "list_vpcs",
			Description: "List all VPCs.",
			AdapterID:   adapterID,
			Schema:      listVpcsSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.listVpcs,
		},
		{
			Name:        "describe_vpc",
			Description: "Describe a specific VPC.",
			AdapterID:   adapterID,
			Schema:      describeVpcSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.describeVpc,
		},
		{
			Name:        "create_vpc",
			Description: "Create a new VPC.",
			AdapterID:   adapterID,
			Schema:      createVpcSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.createVpc,
		},
		{
			Name:        "delete_vpc",
			Description: "Delete a VPC.",
			AdapterID:   adapterID,
			Schema:      deleteVpcSchema,
			Safety:      mcp.SafetyDestructive,
			Handler:     a.deleteVpc,
		},
		{
			Name:        "modify_vpc_attribute",
			Description: "Modify DNS attributes of a VPC.",
			AdapterID:   adapterID,
			Schema:      modifyVpcAttributeSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.modifyVpcAttribute,
		},
		{
			Name:        "list_subnets",
			Description: "List subnets, optionally filtered by VPC.",
			AdapterID:   adapterID,
			Schema:      listSubnetsSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.listSubnets,
		},
		{
			Name:        "create_subnet",
			Description: "Create a subnet within a VPC.",
			AdapterID:   adapterID,
			Schema:      createSubnetSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.createSubnet,
		},
		{
			Name:        "delete_subnet",
			Description: "Delete a subnet.",
			AdapterID:   adapterID,
			Schema:      deleteSubnetSchema,
			Safety:      mcp.SafetyDestructive,
			Handler:     a.deleteSubnet,
		},
		{
			Name:        "create_tags",
			Description: "Apply tags to VPC resources.",
			AdapterID:   adapterID,
			Schema:      createTagsSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.createTags,
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
