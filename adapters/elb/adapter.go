// Package awselb exposes Elastic Load Balancing v2 tools. One
// implementation serves both load balancer kinds; the network and
// application adapters differ only in the protocols they accept and
// in the listener-rule tools the application kind adds.
package awselb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"awsmcp/adapters/identity"
	"awsmcp/internal/awsconf"
	"awsmcp/internal/config"
	"awsmcp/internal/mcp"
)

const adapterVersion = "1.0.0"

func init() {
	mcp.MustRegisterAdapter("nlb", func() mcp.Adapter { return New(elbtypes.LoadBalancerTypeEnumNetwork) })
	mcp.MustRegisterAdapter("alb", func() mcp.Adapter { return New(elbtypes.LoadBalancerTypeEnumApplication) })
}

type Adapter struct {
	kind      elbtypes.LoadBalancerTypeEnum
	protocols []string
	elb       *elasticloadbalancingv2.Client
	sts       *sts.Client
}

func New(kind elbtypes.LoadBalancerTypeEnum) *Adapter {
	protocols := []string{"TCP", "TLS", "UDP", "TCP_UDP"}
	if kind == elbtypes.LoadBalancerTypeEnumApplication {
		protocols = []string{"HTTP", "HTTPS"}
	}
	return &Adapter{kind: kind, protocols: protocols}
}

func (a *Adapter) ID() string {
	if a.kind == elbtypes.LoadBalancerTypeEnumApplication {
		return "alb"
	}
	return "nlb"
}

func (a *Adapter) Version() string { return adapterVersion }

func (a *Adapter) Init(ctx context.Context, cfg *config.Config) error {
	awsCfg, err := awsconf.Load(ctx, cfg.Region, cfg.Profile)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	a.elb = elasticloadbalancingv2.NewFromConfig(awsCfg)
	a.sts = sts.NewFromConfig(awsCfg)
	return nil
}

func (a *Adapter) Register(reg mcp.Registry) error {
	specs := []mcp.ToolSpec{
		{
			Name:        "list_load_balancers",
			Description: fmt.Sprintf("List %s load balancers.", a.kind),
			AdapterID:   a.ID(),
			Schema:      listLoadBalancersSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.listLoadBalancers,
		},
		{
			Name:        "describe_load_balancer",
			Description: "Describe a load balancer by ARN.",
			AdapterID:   a.ID(),
			Schema:      loadBalancerArnSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.describeLoadBalancer,
		},
		{
			Name:        "create_load_balancer",
			Description: fmt.Sprintf("Create a %s load balancer.", a.kind),
			AdapterID:   a.ID(),
			Schema:      createLoadBalancerSchema(a.kind),
			Safety:      mcp.SafetyWrite,
			Handler:     a.createLoadBalancer,
		},
		{
			Name:        "delete_load_balancer",
			Description: "Delete a load balancer.",
			AdapterID:   a.ID(),
			Schema:      loadBalancerArnSchema,
			Safety:      mcp.SafetyDestructive,
			Handler:     a.deleteLoadBalancer,
		},
		{
			Name:        "modify_load_balancer_attributes",
			Description: "Update load balancer attributes.",
			AdapterID:   a.ID(),
			Schema:      modifyAttributesSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.modifyLoadBalancerAttributes,
		},
		{
			Name:        "list_target_groups",
			Description: "List target groups, optionally scoped to a load balancer.",
			AdapterID:   a.ID(),
			Schema:      listTargetGroupsSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.listTargetGroups,
		},
		{
			Name:        "create_target_group",
			Description: "Create a target group.",
			AdapterID:   a.ID(),
			Schema:      createTargetGroupSchema(a.protocols),
			Safety:      mcp.SafetyWrite,
			Handler:     a.createTargetGroup,
		},
		{
			Name:        "delete_target_group",
			Description: "Delete a target group.",
			AdapterID:   a.ID(),
			Schema:      targetGroupArnSchema,
			Safety:      mcp.SafetyDestructive,
			Handler:     a.deleteTargetGroup,
		},
		{
			Name:        "register_targets",
			Description: "Register targets with a target group.",
			AdapterID:   a.ID(),
			Schema:      targetsSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.registerTargets,
		},
		{
			Name:        "deregister_targets",
			Description: "Deregister targets from a target group.",
			AdapterID:   a.ID(),
			Schema:      targetsSchema,
			Safety:      mcp.SafetyWrite,
			Handler:     a.deregisterTargets,
		},
		{
			Name:        "describe_target_health",
			Description: "Report health of the targets in a target group.",
			AdapterID:   a.ID(),
			Schema:      targetGroupArnSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.describeTargetHealth,
		},
		{
			Name:        "list_listeners",
			Description: "List listeners for a load balancer.",
			AdapterID:   a.ID(),
			Schema:      loadBalancerArnSchema,
			Safety:      mcp.SafetyReadOnly,
			Handler:     a.listListeners,
		},
		{
			Name:        "create_listener",
			Description: "Create a listener on a load balancer.",
			AdapterID:   a.ID(),
			Schema:      createListenerSchema(a.protocols),
			Safety:      mcp.SafetyWrite,
			Handler:     a.createListener,
		},
		{
			Name:        "delete_listener",
			Description: "Delete a listener.",
			AdapterID:   a.ID(),
			Schema:      listenerArnSchema,
			Safety:      mcp.SafetyDestructive,
			Handler:     a.deleteListener,
		},
		{
			Name:        "modify_listener",
			Description: "Modify a listener.",
			AdapterID:   a.ID(),
			Schema:      modifyListenerSchema(a.protocols),
			Safety:      mcp.SafetyWrite,
			Handler:     a.modifyListener,
		},
		identity.Tool(a.ID(), a.sts),
	}
	if a.kind == elbtypes.LoadBalancerTypeEnumApplication {
		specs = append(specs,
			mcp.ToolSpec{
				Name:        "list_rules",
				Description: "List routing rules on a listener.",
				AdapterID:   a.ID(),
				Schema:      listenerArnSchema,
				Safety:      mcp.SafetyReadOnly,
				Handler:     a.listRules,
			},
			mcp.ToolSpec{
				Name:        "create_rule",
				Description: "Create a routing rule on a listener.",
				AdapterID:   a.ID(),
				Schema:      createRuleSchema,
				Safety:      mcp.SafetyWrite,
				Handler:     a.createRule,
			},
			mcp.ToolSpec{
				Name:        "delete_rule",
				Description: "Delete a routing rule.",
				AdapterID:   a.ID(),
				Schema:      ruleArnSchema,
				Safety:      mcp.SafetyDestructive,
				Handler:     a.deleteRule,
			},
		)
	}
	for _, spec := range specs {
		if err := reg.Add(spec); err != nil {
			return err
		}
	}
	return nil
}
