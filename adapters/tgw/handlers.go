package awstgw

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"awsmcp/internal/mcp"
	"awsmcp/internal/schema"
)

func (a *Adapter) listGateways(ctx context.Context, args schema.Args) (any, error) {
	input := &ec2.DescribeTransitGatewaysInput{}
	if ids := args.StringSlice("transit_gateway_ids"); len(ids) > 0 {
		input.TransitGatewayIds = ids
	}
	var gateways []map[string]any
	for page := 0; page < mcp.MaxListPages; page++ {
		out, err := a.ec2.DescribeTransitGateways(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, gw := range out.TransitGateways {
			gateways = append(gateways, summarizeGateway(gw))
		}
		if aws.ToString(out.NextToken) == "" {
			break
		}
		input.NextToken = out.NextToken
	}
	return map[string]any{"transitGateways": gateways, "count": len(gateways)}, nil
}

func (a *Adapter) describeGateway(ctx context.Context, args schema.Args) (any, error) {
	gatewayID := args.String("transit_gateway_id")
	out, err := a.ec2.DescribeTransitGateways(ctx, &ec2.DescribeTransitGatewaysInput{
		TransitGatewayIds: []string{gatewayID},
	})
	if err != nil {
		return nil, err
	}
	if len(out.TransitGateways) == 0 {
		return nil, mcp.NotFoundf("transit gateway %s not found", gatewayID)
	}
	return map[string]any{"transitGateway": summarizeGateway(out.TransitGateways[0])}, nil
}

func (a *Adapter) createGateway(ctx context.Context, args schema.Args) (any, error) {
	input := &ec2.CreateTransitGatewayInput{}
	if description := args.String("description"); description != "" {
		input.Description = aws.String(description)
	}
	options := &ec2types.TransitGatewayRequestOptions{}
	hasOptions := false
	if args.Has("amazon_side_asn") {
		options.AmazonSideAsn = aws.Int64(int64(args.Int("amazon_side_asn", 0)))
		hasOptions = true
	}
	if v := args.String("auto_accept_shared_attachments"); v != "" {
		options.AutoAcceptSharedAttachments = ec2types.AutoAcceptSharedAttachmentsValue(v)
		hasOptions = true
	}
	if v := args.String("default_route_table_association"); v != "" {
		options.DefaultRouteTableAssociation = ec2types.DefaultRouteTableAssociationValue(v)
		hasOptions = true
	}
	if v := args.String("default_route_table_propagation"); v != "" {
		options.DefaultRouteTablePropagation = ec2types.DefaultRouteTablePropagationValue(v)
		hasOptions = true
	}
	if v := args.String("dns_support"); v != "" {
		options.DnsSupport = ec2types.DnsSupportValue(v)
		hasOptions = true
	}
	if v := args.String("vpn_ecmp_support"); v != "" {
		options.VpnEcmpSupport = ec2types.VpnEcmpSupportValue(v)
		hasOptions = true
	}
	if hasOptions {
		input.Options = options
	}
	if tags := args.StringMap("tags"); len(tags) > 0 {
		input.TagSpecifications = tagSpecifications(ec2types.ResourceTypeTransitGateway, tags)
	}
	out, err := a.ec2.CreateTransitGateway(ctx, input)
	if err != nil {
		return nil, err
	}
	return map[string]any{"transitGateway": summarizeGateway(*out.TransitGateway)}, nil
}

func (a *Adapter) deleteGateway(ctx context.Context, args schema.Args) (any, error) {
	gatewayID := args.String("transit_gateway_id")
	out, err := a.ec2.DeleteTransitGateway(ctx, &ec2.DeleteTransitGatewayInput{
		TransitGatewayId: aws.String(gatewayID),
	})
	if err != nil {
		if mcp.IsNotFound(err) {
			return map[string]any{"transitGatewayId": gatewayID, "deleted": true, "alreadyAbsent": true}, nil
		}
		return nil, err
	}
	return map[string]any{"transitGateway": summarizeGateway(*out.TransitGateway), "deleted": true}, nil
}

func (a *Adapter) modifyGateway(ctx context.Context, args schema.Args) (any, error) {
	input := &ec2.ModifyTransitGatewayInput{
		TransitGatewayId: aws.String(args.String("transit_gateway_id")),
	}
	if description := args.String("description"); description != "" {
		input.Description = aws.String(description)
	}
	options := &ec2types.ModifyTransitGatewayOptions{}
	hasOptions := false
	if v := args.String("auto_accept_shared_attachments"); v != "" {
		options.AutoAcceptSharedAttachments = ec2types.AutoAcceptSharedAttachmentsValue(v)
		hasOptions = true
	}
	if v := args.String("default_route_table_association"); v != "" {
		options.DefaultRouteTableAssociation = ec2types.DefaultRouteTableAssociationValue(v)
		hasOptions = true
	}
	if v := args.String("default_route_table_propagation"); v != "" {
		options.DefaultRouteTablePropagation = ec2types.DefaultRouteTablePropagationValue(v)
		hasOptions = true
	}
	if v := args.String("dns_support"); v != "" {
		options.DnsSupport = ec2types.DnsSupportValue(v)
		hasOptions = true
	}
	if v := args.String("vpn_ecmp_support"); v != "" {
		options.VpnEcmpSupport = ec2types.VpnEcmpSupportValue(v)
		hasOptions = true
	}
	if hasOptions {
		input.Options = options
	}
	if !hasOptions && input.Description == nil {
		return nil, mcp.InvalidRequestf("at least one option or a description is required")
	}
	out, err := a.ec2.ModifyTransitGateway(ctx, input)
	if err != nil {
		return nil, err
	}
	return map[string]any{"transitGateway": summarizeGateway(*out.TransitGateway)}, nil
}

func (a *Adapter) listAttachments(ctx context.Context, args schema.Args) (any, error) {
	input := &ec2.DescribeTransitGatewayAttachmentsInput{}
	if gatewayID := args.String("transit_gateway_id"); gatewayID != "" {
		input.Filters = []ec2types.Filter{{Name: aws.String("transit-gateway-id"), Values: []string{gatewayID}}}
	}
	if ids := args.StringSlice("attachment_ids"); len(ids) > 0 {
		input.TransitGatewayAttachmentIds = ids
	}
	var attachments []map[string]any
	for page := 0; page < mcp.MaxListPages; page++ {
		out, err := a.ec2.DescribeTransitGatewayAttachments(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, attachment := range out.TransitGatewayAttachments {
			attachments = append(attachments, summarizeAttachment(attachment))
		}
		if aws.ToString(out.NextToken) == "" {
			break
		}
		input.NextToken = out.NextToken
	}
	return map[string]any{"attachments": attachments, "count": len(attachments)}, nil
}

func (a *Adapter) createVpcAttachment(ctx context.Context, args schema.Args) (any, error) {
	input := &ec2.CreateTransitGatewayVpcAttachmentInput{
		TransitGatewayId: aws.String(args.String("transit_gateway_id")),
		VpcId:            aws.String(args.String("vpc_id")),
		SubnetIds:        args.StringSlice("subnet_ids"),
	}
	if options := args.AnyMap("options"); len(options) > 0 {
		attachOptions := &ec2types.CreateTransitGatewayVpcAttachmentRequestOptions{}
		if v, ok := options["dns_support"].(string); ok && v != "" {
			attachOptions.DnsSupport = ec2types.DnsSupportValue(v)
		}
		if v, ok := options["ipv6_support"].(string); ok && v != "" {
			attachOptions.Ipv6Support = ec2types.Ipv6SupportValue(v)
		}
		if v, ok := options["appliance_mode_support"].(string); ok && v != "" {
			attachOptions.ApplianceModeSupport = ec2types.ApplianceModeSupportValue(v)
		}
		input.Options = attachOptions
	}
	if tags := args.StringMap("tags"); len(tags) > 0 {
		input.TagSpecifications = tagSpecifications(ec2types.ResourceTypeTransitGatewayAttachment, tags)
	}
	out, err := a.ec2.CreateTransitGatewayVpcAttachment(ctx, input)
	if err != nil {
		return nil, err
	}
	return map[string]any{"attachment": summarizeVpcAttachment(*out.TransitGatewayVpcAttachment)}, nil
}

func (a *Adapter) deleteVpcAttachment(ctx context.Context, args schema.Args) (any, error) {
	attachmentID := args.String("transit_gateway_attachment_id")
	out, err := a.ec2.DeleteTransitGatewayVpcAttachment(ctx, &ec2.DeleteTransitGatewayVpcAttachmentInput{
		TransitGatewayAttachmentId: aws.String(attachmentID),
	})
	if err != nil {
		if mcp.IsNotFound(err) {
			return map[string]any{"attachmentId": attachmentID, "deleted": true, "alreadyAbsent": true}, nil
		}
		return nil, err
	}
	return map[string]any{"attachment": summarizeVpcAttachment(*out.TransitGatewayVpcAttachment), "deleted": true}, nil
}

func (a *Adapter) acceptVpcAttachment(ctx context.Context, args schema.Args) (any, error) {
	out, err := a.ec2.AcceptTransitGatewayVpcAttachment(ctx, &ec2.AcceptTransitGatewayVpcAttachmentInput{
		TransitGatewayAttachmentId: aws.String(args.String("transit_gateway_attachment_id")),
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"attachment": summarizeVpcAttachment(*out.TransitGatewayVpcAttachment)}, nil
}

func (a *Adapter) listRouteTables(ctx context.Context, args schema.Args) (any, error) {
	input := &ec2.DescribeTransitGatewayRouteTablesInput{}
	if gatewayID := args.String("transit_gateway_id"); gatewayID != "" {
		input.Filters = []ec2types.Filter{{Name: aws.String("transit-gateway-id"), Values: []string{gatewayID}}}
	}
	var tables []map[string]any
	for page := 0; page < mcp.MaxListPages; page++ {
		out, err := a.ec2.DescribeTransitGatewayRouteTables(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, table := range out.TransitGatewayRouteTables {
			tables = append(tables, summarizeRouteTable(table))
		}
		if aws.ToString(out.NextToken) == "" {
			break
		}
		input.NextToken = out.NextToken
	}
	return map[string]any{"routeTables": tables, "count": len(tables)}, nil
}

func (a *Adapter) createRouteTable(ctx context.Context, args schema.Args) (any, error) {
	input := &ec2.CreateTransitGatewayRouteTableInput{
		TransitGatewayId: aws.String(args.String("transit_gateway_id")),
	}
	if tags := args.StringMap("tags"); len(tags) > 0 {
		input.TagSpecifications = tagSpecifications(ec2types.ResourceTypeTransitGatewayRouteTable, tags)
	}
	out, err := a.ec2.CreateTransitGatewayRouteTable(ctx, input)
	if err != nil {
		return nil, err
	}
	return map[string]any{"routeTable": summarizeRouteTable(*out.TransitGatewayRouteTable)}, nil
}

func (a *Adapter) deleteRouteTable(ctx context.Context, args schema.Args) (any, error) {
	tableID := args.String("transit_gateway_route_table_id")
	out, err := a.ec2.DeleteTransitGatewayRouteTable(ctx, &ec2.DeleteTransitGatewayRouteTableInput{
		TransitGatewayRouteTableId: aws.String(tableID),
	})
	if err != nil {
		if mcp.IsNotFound(err) {
			return map[string]any{"routeTableId": tableID, "deleted": true, "alreadyAbsent": true}, nil
		}
		return nil, err
	}
	return map[string]any{"routeTable": summarizeRouteTable(*out.TransitGatewayRouteTable), "deleted": true}, nil
}

func (a *Adapter) associateRouteTable(ctx context.Context, args schema.Args) (any, error) {
	out, err := a.ec2.AssociateTransitGatewayRouteTable(ctx, &ec2.AssociateTransitGatewayRouteTableInput{
		TransitGatewayRouteTableId: aws.String(args.String("transit_gateway_route_table_id")),
		TransitGatewayAttachmentId: aws.String(args.String("transit_gateway_attachment_id")),
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"association": summarizeAssociation(out.Association)}, nil
}

func (a *Adapter) disassociateRouteTable(ctx context.Context, args schema.Args) (any, error) {
	out, err := a.ec2.DisassociateTransitGatewayRouteTable(ctx, &ec2.DisassociateTransitGatewayRouteTableInput{
		TransitGatewayRouteTableId: aws.String(args.String("transit_gateway_route_table_id")),
		TransitGatewayAttachmentId: aws.String(args.String("transit_gateway_attachment_id")),
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"association": summarizeAssociation(out.Association)}, nil
}

func (a *Adapter) createRoute(ctx context.Context, args schema.Args) (any, error) {
	attachmentID := args.String("transit_gateway_attachment_id")
	blackhole := args.Bool("blackhole")
	if attachmentID == "" && !blackhole {
		return nil, mcp.InvalidRequestf("transit_gateway_attachment_id is required unless blackhole is set")
	}
	input := &ec2.CreateTransitGatewayRouteInput{
		TransitGatewayRouteTableId: aws.String(args.String("transit_gateway_route_table_id")),
		DestinationCidrBlock:       aws.String(args.String("destination_cidr_block")),
	}
	if attachmentID != "" {
		input.TransitGatewayAttachmentId = aws.String(attachmentID)
	}
	if blackhole {
		input.Blackhole = aws.Bool(true)
	}
	out, err := a.ec2.CreateTransitGatewayRoute(ctx, input)
	if err != nil {
		return nil, err
	}
	return map[string]any{"route": summarizeRoute(out.Route)}, nil
}

func (a *Adapter) deleteRoute(ctx context.Context, args schema.Args) (any, error) {
	out, err := a.ec2.DeleteTransitGatewayRoute(ctx, &ec2.DeleteTransitGatewayRouteInput{
		TransitGatewayRouteTableId: aws.String(args.String("transit_gateway_route_table_id")),
		DestinationCidrBlock:       aws.String(args.String("destination_cidr_block")),
	})
	if err != nil {
		if mcp.IsNotFound(err) {
			return map[string]any{
				"destinationCidrBlock": args.String("destination_cidr_block"),
				"deleted":              true,
				"alreadyAbsent":        true,
			}, nil
		}
		return nil, err
	}
	return map[string]any{"route": summarizeRoute(out.Route), "deleted": true}, nil
}

func summarizeGateway(gw ec2types.TransitGateway) map[string]any {
	out := map[string]any{
		"id":          aws.ToString(gw.TransitGatewayId),
		"arn":         aws.ToString(gw.TransitGatewayArn),
		"state":       gw.State,
		"ownerId":     aws.ToString(gw.OwnerId),
		"description": aws.ToString(gw.Description),
		"tags":        tagMap(gw.Tags),
	}
	if gw.Options != nil {
		out["options"] = map[string]any{
			"amazonSideAsn":                aws.ToInt64(gw.Options.AmazonSideAsn),
			"autoAcceptSharedAttachments":  gw.Options.AutoAcceptSharedAttachments,
			"defaultRouteTableAssociation": gw.Options.DefaultRouteTableAssociation,
			"defaultRouteTablePropagation": gw.Options.DefaultRouteTablePropagation,
			"dnsSupport":                   gw.Options.DnsSupport,
			"vpnEcmpSupport":               gw.Options.VpnEcmpSupport,
		}
	}
	return out
}

func summarizeAttachment(attachment ec2types.TransitGatewayAttachment) map[string]any {
	return map[string]any{
		"id":               aws.ToString(attachment.TransitGatewayAttachmentId),
		"transitGatewayId": aws.ToString(attachment.TransitGatewayId),
		"resourceId":       aws.ToString(attachment.ResourceId),
		"resourceType":     attachment.ResourceType,
		"state":            attachment.State,
		"tags":             tagMap(attachment.Tags),
	}
}

func summarizeVpcAttachment(attachment ec2types.TransitGatewayVpcAttachment) map[string]any {
	return map[string]any{
		"id":               aws.ToString(attachment.TransitGatewayAttachmentId),
		"transitGatewayId": aws.ToString(attachment.TransitGatewayId),
		"vpcId":            aws.ToString(attachment.VpcId),
		"subnetIds":        attachment.SubnetIds,
		"state":            attachment.State,
		"tags":             tagMap(attachment.Tags),
	}
}

func summarizeRouteTable(table ec2types.TransitGatewayRouteTable) map[string]any {
	return map[string]any{
		"id":                           aws.ToString(table.TransitGatewayRouteTableId),
		"transitGatewayId":             aws.ToString(table.TransitGatewayId),
		"state":                        table.State,
		"defaultAssociationRouteTable": table.DefaultAssociationRouteTable,
		"defaultPropagationRouteTable": table.DefaultPropagationRouteTable,
		"tags":                         tagMap(table.Tags),
	}
}

func summarizeAssociation(association *ec2types.TransitGatewayAssociation) map[string]any {
	if association == nil {
		return map[string]any{}
	}
	return map[string]any{
		"routeTableId": aws.ToString(association.TransitGatewayRouteTableId),
		"attachmentId": aws.ToString(association.TransitGatewayAttachmentId),
		"resourceId":   aws.ToString(association.ResourceId),
		"resourceType": association.ResourceType,
		"state":        association.State,
	}
}

func summarizeRoute(route *ec2types.TransitGatewayRoute) map[string]any {
	if route == nil {
		return map[string]any{}
	}
	out := map[string]any{
		"destinationCidrBlock": aws.ToString(route.DestinationCidrBlock),
		"type":                 route.Type,
		"state":                route.State,
	}
	var attachmentIDs []string
	for _, attachment := range route.TransitGatewayAttachments {
		attachmentIDs = append(attachmentIDs, aws.ToString(attachment.TransitGatewayAttachmentId))
	}
	if len(attachmentIDs) > 0 {
		out["attachmentIds"] = attachmentIDs
	}
	return out
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

func tagSpecifications(resourceType ec2types.ResourceType, tags map[string]string) []ec2types.TagSpecification {
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	specTags := make([]ec2types.Tag, 0, len(keys))
	for _, key := range keys {
		specTags = append(specTags, ec2types.Tag{Key: aws.String(key), Value: aws.String(tags[key])})
	}
	return []ec2types.TagSpecification{{ResourceType: resourceType, Tags: specTags}}
}
