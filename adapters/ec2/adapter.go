// Package awsec2 exposes EC2 instance lifecycle tools.
package awsec2

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
	adapterID      = "ec2"
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
			Name:        "list_instances",
			Description: "List EC2 instances, optionally filtered by state.",
			AdapterID:   adapterID,
			Schema:      listInstancesSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.listInstances,
		},
		{
			Name:        "describe_instance",
			Description: "Describe an EC2 instance.",
			AdapterID:   adapterID,
			Schema:      describeInstanceSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.describeInstance,
		},
		{
			Name:        "start_instance",
			Description: "Start a stopped EC2 instance.",
			AdapterID:   adapterID,
			Schema:      instanceIDSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.startInstance,
		},
		{
			Name:        "stop_instance",
			Description: "Stop a running EC2 instance.",
			AdapterID:   adapterID,
			Schema:      stopInstanceSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.stopInstance,
		},
		{
			Name:        "reboot_instance",
			Description: "Reboot an EC2 instance.",
			AdapterID:   adapterID,
			Schema:      instanceIDSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.rebootInstance,
		},
		{
			Name:        "terminate_instance",
			Description: "Terminate an EC2 instance.",
			AdapterID:   adapterID,
			Schema:      instanceIDSchema,
			Safety:      mcp.SafetyDestructive,
			Handler:     a.terminateInstance,
		},
		{
			Name:        "run_instances",
			Description: "Launch new EC2 instances.",
			AdapterID:   adapterID,
			Schema:      runInstancesSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.runInstances,
		},
		{
			Name:        "create_image",
			Description: "Create an AMI from an instance.",
			AdapterID:   adapterID,
			Schema:      createImageSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.createImage,
		},
		{
			Name:        "create_tags",
			Description: "Apply tags to EC2 resources.",
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
