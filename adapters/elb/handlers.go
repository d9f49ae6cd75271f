package awselb

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"awsmcp/internal/mcp"
	"awsmcp/internal/schema"
)

// waitAvailableTimeout bounds the optional post-create waiter.
// Provisioning a load balancer routinely takes a few minutes.
const waitAvailableTimeout = 10 * time.Minute

func (a *Adapter) listLoadBalancers(ctx context.Context, args schema.Args) (any, error) {
	input := &elasticloadbalancingv2.DescribeLoadBalancersInput{}
	if names := args.StringSlice("names"); len(names) > 0 {
		input.Names = names
	}
	var balancers []map[string]any
	for page := 0; page < mcp.MaxListPages; page++ {
		out, err := a.elb.DescribeLoadBalancers(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, lb := range out.LoadBalancers {
			if lb.Type != a.kind {
				continue
			}
			balancers = append(balancers, summarizeLoadBalancer(lb))
		}
		if aws.ToString(out.NextMarker) == "" {
			break
		}
		input.Marker = out.NextMarker
	}
	return map[string]any{"loadBalancers": balancers, "count": len(balancers)}, nil
}

func (a *Adapter) describeLoadBalancer(ctx context.Context, args schema.Args) (any, error) {
	arn := args.String("load_balancer_arn")
	out, err := a.elb.DescribeLoadBalancers(ctx, &elasticloadbalancingv2.DescribeLoadBalancersInput{
		LoadBalancerArns: []string{arn},
	})
	if err != nil {
		return nil, err
	}
	if len(out.LoadBalancers) == 0 {
		return nil, mcp.NotFoundf("load balancer %s not found", arn)
	}
	return map[string]any{"loadBalancer": summarizeLoadBalancer(out.LoadBalancers[0])}, nil
}

func (a *Adapter) createLoadBalancer(ctx context.Context, args schema.Args) (any, error) {
	input := &elasticloadbalancingv2.CreateLoadBalancerInput{
		Name:    aws.String(args.String("name")),
		Subnets: args.StringSlice("subnets"),
		Type:    a.kind,
	}
	if scheme := args.String("scheme"); scheme != "" {
		input.Scheme = elbtypes.LoadBalancerSchemeEnum(scheme)
	}
	if ipType := args.String("ip_address_type"); ipType != "" {
		input.IpAddressType = elbtypes.IpAddressType(ipType)
	}
	if groups := args.StringSlice("security_groups"); len(groups) > 0 {
		input.SecurityGroups = groups
	}
	if tags := args.StringMap("tags"); len(tags) > 0 {
		input.Tags = elbTags(tags)
	}
	out, err := a.elb.CreateLoadBalancer(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(out.LoadBalancers) == 0 {
		return nil, mcp.InvalidRequestf("provider returned no load balancer for %s", args.String("name"))
	}
	lb := out.LoadBalancers[0]
	arn := aws.ToString(lb.LoadBalancerArn)

	if args.Bool("wait_until_available") {
		waiter := elasticloadbalancingv2.NewLoadBalancerAvailableWaiter(a.elb)
		err := waiter.Wait(ctx, &elasticloadbalancingv2.DescribeLoadBalancersInput{
			LoadBalancerArns: []string{arn},
		}, waitAvailableTimeout)
		if err != nil {
			return nil, &mcp.PartialFailureError{Step: "wait_until_available", ResourceID: arn, Err: err}
		}
	}
	return map[string]any{"loadBalancer": summarizeLoadBalancer(lb)}, nil
}

func (a *Adapter) deleteLoadBalancer(ctx context.Context, args schema.Args) (any, error) {
	arn := args.String("load_balancer_arn")
	_, err := a.elb.DeleteLoadBalancer(ctx, &elasticloadbalancingv2.DeleteLoadBalancerInput{
		LoadBalancerArn: aws.String(arn),
	})
	if err != nil {
		if mcp.IsNotFound(err) {
			return map[string]any{"loadBalancerArn": arn, "deleted": true, "alreadyAbsent": true}, nil
		}
		return nil, err
	}
	return map[string]any{"loadBalancerArn": arn, "deleted": true}, nil
}

func (a *Adapter) modifyLoadBalancerAttributes(ctx context.Context, args schema.Args) (any, error) {
	attributes := args.StringMap("attributes")
	if len(attributes) == 0 {
		return nil, mcp.InvalidRequestf("attributes must not be empty")
	}
	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	attrList := make([]elbtypes.LoadBalancerAttribute, 0, len(keys))
	for _, key := range keys {
		attrList = append(attrList, elbtypes.LoadBalancerAttribute{
			Key:   aws.String(key),
			Value: aws.String(attributes[key]),
		})
	}
	out, err := a.elb.ModifyLoadBalancerAttributes(ctx, &elasticloadbalancingv2.ModifyLoadBalancerAttributesInput{
		LoadBalancerArn: aws.String(args.String("load_balancer_arn")),
		Attributes:      attrList,
	})
	if err != nil {
		return nil, err
	}
	applied := map[string]string{}
	for _, attr := range out.Attributes {
		applied[aws.ToString(attr.Key)] = aws.ToString(attr.Value)
	}
	return map[string]any{"attributes": applied}, nil
}

func (a *Adapter) listTargetGroups(ctx context.Context, args schema.Args) (any, error) {
	input := &elasticloadbalancingv2.DescribeTargetGroupsInput{}
	if arn := args.String("load_balancer_arn"); arn != "" {
		input.LoadBalancerArn = aws.String(arn)
	}
	allowed := map[string]bool{}
	for _, protocol := range a.protocols {
		allowed[protocol] = true
	}
	var groups []map[string]any
	for page := 0; page < mcp.MaxListPages; page++ {
		out, err := a.elb.DescribeTargetGroups(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, group := range out.TargetGroups {
			if !allowed[string(group.Protocol)] {
				continue
			}
			groups = append(groups, summarizeTargetGroup(group))
		}
		if aws.ToString(out.NextMarker) == "" {
			break
		}
		input.Marker = out.NextMarker
	}
	return map[string]any{"targetGroups": groups, "count": len(groups)}, nil
}

func (a *Adapter) createTargetGroup(ctx context.Context, args schema.Args) (any, error) {
	input := &elasticloadbalancingv2.CreateTargetGroupInput{
		Name:     aws.String(args.String("name")),
		Protocol: elbtypes.ProtocolEnum(args.String("protocol")),
		Port:     aws.Int32(int32(args.Int("port", 0))),
		VpcId:    aws.String(args.String("vpc_id")),
	}
	if targetType := args.String("target_type"); targetType != "" {
		input.TargetType = elbtypes.TargetTypeEnum(targetType)
	}
	if hcProtocol := args.String("health_check_protocol"); hcProtocol != "" {
		input.HealthCheckProtocol = elbtypes.ProtocolEnum(hcProtocol)
	}
	if hcPort := args.String("health_check_port"); hcPort != "" {
		input.HealthCheckPort = aws.String(hcPort)
	}
	out, err := a.elb.CreateTargetGroup(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(out.TargetGroups) == 0 {
		return nil, mcp.InvalidRequestf("provider returned no target group for %s", args.String("name"))
	}
	group := out.TargetGroups[0]
	arn := aws.ToString(group.TargetGroupArn)

	if tags := args.StringMap("tags"); len(tags) > 0 {
		_, err := a.elb.AddTags(ctx, &elasticloadbalancingv2.AddTagsInput{
			ResourceArns: []string{arn},
			Tags:         elbTags(tags),
		})
		if err != nil {
			return nil, &mcp.PartialFailureError{Step: "add_tags", ResourceID: arn, Err: err}
		}
	}
	return map[string]any{"targetGroup": summarizeTargetGroup(group)}, nil
}

func (a *Adapter) deleteTargetGroup(ctx context.Context, args schema.Args) (any, error) {
	arn := args.String("target_group_arn")
	_, err := a.elb.DeleteTargetGroup(ctx, &elasticloadbalancingv2.DeleteTargetGroupInput{
		TargetGroupArn: aws.String(arn),
	})
	if err != nil {
		if mcp.IsNotFound(err) {
			return map[string]any{"targetGroupArn": arn, "deleted": true, "alreadyAbsent": true}, nil
		}
		return nil, err
	}
	return map[string]any{"targetGroupArn": arn, "deleted": true}, nil
}

func (a *Adapter) registerTargets(ctx context.Context, args schema.Args) (any, error) {
	arn := args.String("target_group_arn")
	targets, err := targetDescriptions(args.Records("targets"))
	if err != nil {
		return nil, err
	}
	_, err = a.elb.RegisterTargets(ctx, &elasticloadbalancingv2.RegisterTargetsInput{
		TargetGroupArn: aws.String(arn),
		Targets:        targets,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"targetGroupArn": arn, "registered": len(targets)}, nil
}

func (a *Adapter) deregisterTargets(ctx context.Context, args schema.Args) (any, error) {
	arn := args.String("target_group_arn")
	targets, err := targetDescriptions(args.Records("targets"))
	if err != nil {
		return nil, err
	}
	_, err = a.elb.DeregisterTargets(ctx, &elasticloadbalancingv2.DeregisterTargetsInput{
		TargetGroupArn: aws.String(arn),
		Targets:        targets,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"targetGroupArn": arn, "deregistered": len(targets)}, nil
}

func (a *Adapter) describeTargetHealth(ctx context.Context, args schema.Args) (any, error) {
	out, err := a.elb.DescribeTargetHealth(ctx, &elasticloadbalancingv2.DescribeTargetHealthInput{
		TargetGroupArn: aws.String(args.String("target_group_arn")),
	})
	if err != nil {
		return nil, err
	}
	health := make([]map[string]any, 0, len(out.TargetHealthDescriptions))
	for _, description := range out.TargetHealthDescriptions {
		entry := map[string]any{}
		if description.Target != nil {
			entry["id"] = aws.ToString(description.Target.Id)
			if description.Target.Port != nil {
				entry["port"] = int(aws.ToInt32(description.Target.Port))
			}
		}
		if description.TargetHealth != nil {
			entry["state"] = description.TargetHealth.State
			entry["reason"] = description.TargetHealth.Reason
			entry["description"] = aws.ToString(description.TargetHealth.Description)
		}
		health = append(health, entry)
	}
	return map[string]any{"targets": health, "count": len(health)}, nil
}

func (a *Adapter) listListeners(ctx context.Context, args schema.Args) (any, error) {
	input := &elasticloadbalancingv2.DescribeListenersInput{
		LoadBalancerArn: aws.String(args.String("load_balancer_arn")),
	}
	var listeners []map[string]any
	for page := 0; page < mcp.MaxListPages; page++ {
		out, err := a.elb.DescribeListeners(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, listener := range out.Listeners {
			listeners = append(listeners, summarizeListener(listener))
		}
		if aws.ToString(out.NextMarker) == "" {
			break
		}
		input.Marker = out.NextMarker
	}
	return map[string]any{"listeners": listeners, "count": len(listeners)}, nil
}

func (a *Adapter) createListener(ctx context.Context, args schema.Args) (any, error) {
	arn := args.String("load_balancer_arn")
	if arn == "" {
		name := args.String("load_balancer_name")
		if name == "" {
			return nil, mcp.InvalidRequestf("either load_balancer_arn or load_balancer_name is required")
		}
		resolved, err := a.resolveLoadBalancerArn(ctx, name)
		if err != nil {
			return nil, err
		}
		arn = resolved
	}
	actions, err := listenerActions(args.Records("default_actions"))
	if err != nil {
		return nil, err
	}
	out, err := a.elb.CreateListener(ctx, &elasticloadbalancingv2.CreateListenerInput{
		LoadBalancerArn: aws.String(arn),
		Protocol:        elbtypes.ProtocolEnum(args.String("protocol")),
		Port:            aws.Int32(int32(args.Int("port", 0))),
		DefaultActions:  actions,
	})
	if err != nil {
		return nil, err
	}
	if len(out.Listeners) == 0 {
		return nil, mcp.InvalidRequestf("provider returned no listener for %s", arn)
	}
	return map[string]any{"listener": summarizeListener(out.Listeners[0])}, nil
}

func (a *Adapter) deleteListener(ctx context.Context, args schema.Args) (any, error) {
	arn := args.String("listener_arn")
	_, err := a.elb.DeleteListener(ctx, &elasticloadbalancingv2.DeleteListenerInput{
		ListenerArn: aws.String(arn),
	})
	if err != nil {
		if mcp.IsNotFound(err) {
			return map[string]any{"listenerArn": arn, "deleted": true, "alreadyAbsent": true}, nil
		}
		return nil, err
	}
	return map[string]any{"listenerArn": arn, "deleted": true}, nil
}

func (a *Adapter) modifyListener(ctx context.Context, args schema.Args) (any, error) {
	input := &elasticloadbalancingv2.ModifyListenerInput{
		ListenerArn: aws.String(args.String("listener_arn")),
	}
	changed := false
	if protocol := args.String("protocol"); protocol != "" {
		input.Protocol = elbtypes.ProtocolEnum(protocol)
		changed = true
	}
	if args.Has("port") {
		input.Port = aws.Int32(int32(args.Int("port", 0)))
		changed = true
	}
	if records := args.Records("default_actions"); len(records) > 0 {
		actions, err := listenerActions(records)
		if err != nil {
			return nil, err
		}
		input.DefaultActions = actions
		changed = true
	}
	if !changed {
		return nil, mcp.InvalidRequestf("at least one of protocol, port or default_actions is required")
	}
	out, err := a.elb.ModifyListener(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(out.Listeners) == 0 {
		return nil, mcp.NotFoundf("listener %s not found", args.String("listener_arn"))
	}
	return map[string]any{"listener": summarizeListener(out.Listeners[0])}, nil
}

func (a *Adapter) listRules(ctx context.Context, args schema.Args) (any, error) {
	out, err := a.elb.DescribeRules(ctx, &elasticloadbalancingv2.DescribeRulesInput{
		ListenerArn: aws.String(args.String("listener_arn")),
	})
	if err != nil {
		return nil, err
	}
	rules := make([]map[string]any, 0, len(out.Rules))
	for _, rule := range out.Rules {
		rules = append(rules, summarizeRule(rule))
	}
	return map[string]any{"rules": rules, "count": len(rules)}, nil
}

func (a *Adapter) createRule(ctx context.Context, args schema.Args) (any, error) {
	actions, err := listenerActions(args.Records("actions"))
	if err != nil {
		return nil, err
	}
	conditions := make([]elbtypes.RuleCondition, 0)
	for _, record := range args.Records("conditions") {
		field, _ := record["field"].(string)
		values, _ := record["values"].([]string)
		conditions = append(conditions, elbtypes.RuleCondition{
			Field:  aws.String(field),
			Values: values,
		})
	}
	out, err := a.elb.CreateRule(ctx, &elasticloadbalancingv2.CreateRuleInput{
		ListenerArn: aws.String(args.String("listener_arn")),
		Priority:    aws.Int32(int32(args.Int("priority", 0))),
		Conditions:  conditions,
		Actions:     actions,
	})
	if err != nil {
		return nil, err
	}
	if len(out.Rules) == 0 {
		return nil, mcp.InvalidRequestf("provider returned no rule")
	}
	return map[string]any{"rule": summarizeRule(out.Rules[0])}, nil
}

func (a *Adapter) deleteRule(ctx context.Context, args schema.Args) (any, error) {
	arn := args.String("rule_arn")
	_, err := a.elb.DeleteRule(ctx, &elasticloadbalancingv2.DeleteRuleInput{RuleArn: aws.String(arn)})
	if err != nil {
		if mcp.IsNotFound(err) {
			return map[string]any{"ruleArn": arn, "deleted": true, "alreadyAbsent": true}, nil
		}
		return nil, err
	}
	return map[string]any{"ruleArn": arn, "deleted": true}, nil
}

func (a *Adapter) resolveLoadBalancerArn(ctx context.Context, name string) (string, error) {
	out, err := a.elb.DescribeLoadBalancers(ctx, &elasticloadbalancingv2.DescribeLoadBalancersInput{
		Names: []string{name},
	})
	if err != nil {
		return "", err
	}
	if len(out.LoadBalancers) == 0 {
		return "", mcp.NotFoundf("load balancer %s not found", name)
	}
	return aws.ToString(out.LoadBalancers[0].LoadBalancerArn), nil
}

func targetDescriptions(records []map[string]any) ([]elbtypes.TargetDescription, error) {
	targets := make([]elbtypes.TargetDescription, 0, len(records))
	for _, record := range records {
		id, _ := record["id"].(string)
		if id == "" {
			return nil, mcp.InvalidRequestf("every target requires an id")
		}
		target := elbtypes.TargetDescription{Id: aws.String(id)}
		if port, ok := record["port"].(int); ok {
			target.Port = aws.Int32(int32(port))
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func listenerActions(records []map[string]any) ([]elbtypes.Action, error) {
	if len(records) == 0 {
		return nil, mcp.InvalidRequestf("at least one action is required")
	}
	actions := make([]elbtypes.Action, 0, len(records))
	for _, record := range records {
		arn, _ := record["target_group_arn"].(string)
		if arn == "" {
			return nil, mcp.InvalidRequestf("every action requires a target_group_arn")
		}
		actionType := elbtypes.ActionTypeEnumForward
		if kind, ok := record["type"].(string); ok && kind != "" {
			actionType = elbtypes.ActionTypeEnum(kind)
		}
		actions = append(actions, elbtypes.Action{
			Type:           actionType,
			TargetGroupArn: aws.String(arn),
		})
	}
	return actions, nil
}

func summarizeLoadBalancer(lb elbtypes.LoadBalancer) map[string]any {
	out := map[string]any{
		"arn":           aws.ToString(lb.LoadBalancerArn),
		"name":          aws.ToString(lb.LoadBalancerName),
		"dnsName":       aws.ToString(lb.DNSName),
		"scheme":        lb.Scheme,
		"type":          lb.Type,
		"vpcId":         aws.ToString(lb.VpcId),
		"ipAddressType": lb.IpAddressType,
	}
	if lb.State != nil {
		out["state"] = lb.State.Code
	}
	var zones []string
	for _, zone := range lb.AvailabilityZones {
		zones = append(zones, aws.ToString(zone.ZoneName))
	}
	if len(zones) > 0 {
		out["availabilityZones"] = zones
	}
	return out
}

func summarizeTargetGroup(group elbtypes.TargetGroup) map[string]any {
	return map[string]any{
		"arn":        aws.ToString(group.TargetGroupArn),
		"name":       aws.ToString(group.TargetGroupName),
		"protocol":   group.Protocol,
		"port":       int(aws.ToInt32(group.Port)),
		"vpcId":      aws.ToString(group.VpcId),
		"targetType": group.TargetType,
	}
}

func summarizeListener(listener elbtypes.Listener) map[string]any {
	actions := make([]map[string]any, 0, len(listener.DefaultActions))
	for _, action := range listener.DefaultActions {
		actions = append(actions, map[string]any{
			"type":           action.Type,
			"targetGroupArn": aws.ToString(action.TargetGroupArn),
		})
	}
	return map[string]any{
		"arn":             aws.ToString(listener.ListenerArn),
		"loadBalancerArn": aws.ToString(listener.LoadBalancerArn),
		"protocol":        listener.Protocol,
		"port":            int(aws.ToInt32(listener.Port)),
		"defaultActions":  actions,
	}
}

func summarizeRule(rule elbtypes.Rule) map[string]any {
	conditions := make([]map[string]any, 0, len(rule.Conditions))
	for _, condition := range rule.Conditions {
		conditions = append(conditions, map[string]any{
			"field":  aws.ToString(condition.Field),
			"values": condition.Values,
		})
	}
	actions := make([]map[string]any, 0, len(rule.Actions))
	for _, action := range rule.Actions {
		actions = append(actions, map[string]any{
			"type":           action.Type,
			"targetGroupArn": aws.ToString(action.TargetGroupArn),
		})
	}
	return map[string]any{
		"arn":        aws.ToString(rule.RuleArn),
		"priority":   aws.ToString(rule.Priority),
		"isDefault":  rule.IsDefault,
		"conditions": conditions,
		"actions":    actions,
	}
}

func elbTags(tags map[string]string) []elbtypes.Tag {
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]elbtypes.Tag, 0, len(keys))
	for _, key := range keys {
		out = append(out, elbtypes.Tag{Key: aws.String(key), Value: aws.String(tags[key])})
	}
	return out
}
