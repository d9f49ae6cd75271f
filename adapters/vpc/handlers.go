package awsvpc

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"awsmcp/internal/mcp"
	"awsmcp/internal/schema"
)

func (a *Adapter) listVpcs(ctx context.Context, args schema.Args) (any, error) {
	input := &ec2.DescribeVpcsInput{}
	if ids := args.StringSlice("vpc_ids"); len(ids) > 0 {
		input.VpcIds = ids
	}
	var vpcs []map[string]any
	for page := 0; page < mcp.MaxListPages; page++ {
		out, err := a.ec2.DescribeVpcs(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, vpc := range out.Vpcs {
			vpcs = append(vpcs, summarizeVpc(vpc))
		}
		if aws.ToString(out.NextToken) == "" {
			break
		}
		input.NextToken = out.NextToken
	}
	return map[string]any{"vpcs": vpcs, "count": len(vpcs)}, nil
}

func (a *Adapter) describeVpc(ctx context.Context, args schema.Args) (any, error) {
	vpcID := args.String("vpc_id")
	out, err := a.ec2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{VpcIds: []string{vpcID}})
	if err != nil {
		return nil, err
	}
	if len(out.Vpcs) == 0 {
		return nil, mcp.NotFoundf("VPC %s not found", vpcID)
	}
	return map[string]any{"vpc": summarizeVpc(out.Vpcs[0])}, nil
}

// createVpc runs the followup steps after the VPC exists; a followup
// failure surfaces as a partial failure carrying the new VPC id so the
// caller does not lose the resource.
func (a *Adapter) createVpc(ctx context.Context, args schema.Args) (any, error) {
	input := &ec2.CreateVpcInput{CidrBlock: aws.String(args.String("cidr_block"))}
	if tenancy := args.String("instance_tenancy"); tenancy != "" {
		input.InstanceTenancy = ec2types.Tenancy(tenancy)
	}
	out, err := a.ec2.CreateVpc(ctx, input)
	if err != nil {
		return nil, err
	}
	vpcID := aws.ToString(out.Vpc.VpcId)

	if args.Bool("ipv6_support") {
		_, err := a.ec2.AssociateVpcCidrBlock(ctx, &ec2.AssociateVpcCidrBlockInput{
			VpcId:                       aws.String(vpcID),
			AmazonProvidedIpv6CidrBlock: aws.Bool(true),
		})
		if err != nil {
			return nil, &mcp.PartialFailureError{Step: "associate_ipv6_cidr_block", ResourceID: vpcID, Err: err}
		}
	}
	if tags := args.StringMap("tags"); len(tags) > 0 {
		_, err := a.ec2.CreateTags(ctx, &ec2.CreateTagsInput{
			Resources: []string{vpcID},
			Tags:      ec2Tags(tags),
		})
		if err != nil {
			return nil, &mcp.PartialFailureError{Step: "create_tags", ResourceID: vpcID, Err: err}
		}
	}
	return map[string]any{"vpc": summarizeVpc(*out.Vpc)}, nil
}

func (a *Adapter) deleteVpc(ctx context.Context, args schema.Args) (any, error) {
	vpcID := args.String("vpc_id")
	if _, err := a.ec2.DeleteVpc(ctx, &ec2.DeleteVpcInput{VpcId: aws.String(vpcID)}); err != nil {
		if mcp.IsNotFound(err) {
			return map[string]any{"vpcId": vpcID, "deleted": true, "alreadyAbsent": true}, nil
		}
		return nil, err
	}
	return map[string]any{"vpcId": vpcID, "deleted": true}, nil
}

// modifyVpcAttribute issues one provider call per attribute; the API
// accepts a single attribute per request.
func (a *Adapter) modifyVpcAttribute(ctx context.Context, args schema.Args) (any, error) {
	vpcID := args.String("vpc_id")
	if !args.Has("enable_dns_support") && !args.Has("enable_dns_hostnames") {
		return nil, mcp.InvalidRequestf("at least one of enable_dns_support or enable_dns_hostnames is required")
	}
	var modified []string
	if args.Has("enable_dns_support") {
		_, err := a.ec2.ModifyVpcAttribute(ctx, &ec2.ModifyVpcAttributeInput{
			VpcId:            aws.String(vpcID),
			EnableDnsSupport: &ec2types.AttributeBooleanValue{Value: aws.Bool(args.Bool("enable_dns_support"))},
		})
		if err != nil {
			return nil, err
		}
		modified = append(modified, "enableDnsSupport")
	}
	if args.Has("enable_dns_hostnames") {
		_, err := a.ec2.ModifyVpcAttribute(ctx, &ec2.ModifyVpcAttributeInput{
			VpcId:              aws.String(vpcID),
			EnableDnsHostnames: &ec2types.AttributeBooleanValue{Value: aws.Bool(args.Bool("enable_dns_hostnames"))},
		})
		if err != nil {
			return nil, err
		}
		modified = append(modified, "enableDnsHostnames")
	}
	return map[string]any{"vpcId": vpcID, "modified": modified}, nil
}

func (a *Adapter) listSubnets(ctx context.Context, args schema.Args) (any, error) {
	input := &ec2.DescribeSubnetsInput{}
	if vpcID := args.String("vpc_id"); vpcID != "" {
		input.Filters = []ec2types.Filter{{Name: aws.String("vpc-id"), Values: []string{vpcID}}}
	}
	var subnets []map[string]any
	for page := 0; page < mcp.MaxListPages; page++ {
		out, err := a.ec2.DescribeSubnets(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, subnet := range out.Subnets {
			subnets = append(subnets, summarizeSubnet(subnet))
		}
		if aws.ToString(out.NextToken) == "" {
			break
		}
		input.NextToken = out.NextToken
	}
	return map[string]any{"subnets": subnets, "count": len(subnets)}, nil
}

func (a *Adapter) createSubnet(ctx context.Context, args schema.Args) (any, error) {
	input := &ec2.CreateSubnetInput{
		VpcId:     aws.String(args.String("vpc_id")),
		CidrBlock: aws.String(args.String("cidr_block")),
	}
	if az := args.String("availability_zone"); az != "" {
		input.AvailabilityZone = aws.String(az)
	}
	out, err := a.ec2.CreateSubnet(ctx, input)
	if err != nil {
		return nil, err
	}
	subnetID := aws.ToString(out.Subnet.SubnetId)
	if tags := args.StringMap("tags"); len(tags) > 0 {
		_, err := a.ec2.CreateTags(ctx, &ec2.CreateTagsInput{
			Resources: []string{subnetID},
			Tags:      ec2Tags(tags),
		})
		if err != nil {
			return nil, &mcp.PartialFailureError{Step: "create_tags", ResourceID: subnetID, Err: err}
		}
	}
	return map[string]any{"subnet": summarizeSubnet(*out.Subnet)}, nil
}

func (a *Adapter) deleteSubnet(ctx context.Context, args schema.Args) (any, error) {
	subnetID := args.String("subnet_id")
	if _, err := a.ec2.DeleteSubnet(ctx, &ec2.DeleteSubnetInput{SubnetId: aws.String(subnetID)}); err != nil {
		if mcp.IsNotFound(err) {
			return map[string]any{"subnetId": subnetID, "deleted": true, "alreadyAbsent": true}, nil
		}
		return nil, err
	}
	return map[string]any{"subnetId": subnetID, "deleted": true}, nil
}

func (a *Adapter) createTags(ctx context.Context, args schema.Args) (any, error) {
	resourceIDs := args.StringSlice("resource_ids")
	tags := args.StringMap("tags")
	if len(tags) == 0 {
		return nil, mcp.InvalidRequestf("tags must not be empty")
	}
	_, err := a.ec2.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: resourceIDs,
		Tags:      ec2Tags(tags),
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"resources": resourceIDs, "tagged": true}, nil
}

func summarizeVpc(vpc ec2types.Vpc) map[string]any {
	return map[string]any{
		"id":        aws.ToString(vpc.VpcId),
		"cidrBlock": aws.ToString(vpc.CidrBlock),
		"state":     vpc.State,
		"isDefault": vpc.IsDefault,
		"tenancy":   vpc.InstanceTenancy,
		"ownerId":   aws.ToString(vpc.OwnerId),
		"tags":      tagMap(vpc.Tags),
	}
}

func summarizeSubnet(subnet ec2types.Subnet) map[string]any {
	return map[string]any{
		"id":                  aws.ToString(subnet.SubnetId),
		"vpcId":               aws.ToString(subnet.VpcId),
		"cidrBlock":           aws.ToString(subnet.CidrBlock),
		"availabilityZone":    aws.ToString(subnet.AvailabilityZone),
		"state":               subnet.State,
		"mapPublicIpOnLaunch": subnet.MapPublicIpOnLaunch,
		"tags":                tagMap(subnet.Tags),
	}
}

func tagMap(tags []ec2types.Tag) map[string]string {
	out := map[string]string{}
	for _, tag := range tags {
		key := aws.ToString(tag.Key)
		if key == "" {
			continue
		}
		out[key] = aws.ToString(tag.Value)
	}
	return out
}

// ec2Tags renders a tag map in key order so request bodies are stable.
func ec2Tags(tags map[string]string) []ec2types.Tag {
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]ec2types.Tag, 0, len(keys))
	for _, key := range keys {
		out = append(out, ec2types.Tag{Key: aws.String(key), Value: aws.String(tags[key])})
	}
	return out
}
