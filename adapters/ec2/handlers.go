package awsec2

import (
	"context"
	"encoding/base64"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"awsmcp/internal/mcp"
	"awsmcp/internal/schema"
)

// waitRunningTimeout bounds the optional post-launch waiter. Long
// enough for cold AMIs, short enough to stay inside tool timeouts
// configured for launch flows.
const waitRunningTimeout = 5 * time.Minute

func (a *Adapter) listInstances(ctx context.Context, args schema.Args) (any, error) {
	input := &ec2.DescribeInstancesInput{}
	if state := args.String("state"); state != "" {
		input.Filters = []ec2types.Filter{{Name: aws.String("instance-state-name"), Values: []string{state}}}
	}
	var instances []map[string]any
	for page := 0; page < mcp.MaxListPages; page++ {
		out, err := a.ec2.DescribeInstances(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, reservation := range out.Reservations {
			for _, instance := range reservation.Instances {
				instances = append(instances, summarizeInstance(instance))
			}
		}
		if aws.ToString(out.NextToken) == "" {
			break
		}
		input.NextToken = out.NextToken
	}
	return map[string]any{"instances": instances, "count": len(instances)}, nil
}

func (a *Adapter) describeInstance(ctx context.Context, args schema.Args) (any, error) {
	instanceID := args.String("instance_id")
	out, err := a.ec2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{InstanceIds: []string{instanceID}})
	if err != nil {
		return nil, err
	}
	for _, reservation := range out.Reservations {
		for _, instance := range reservation.Instances {
			return map[string]any{"instance": summarizeInstance(instance)}, nil
		}
	}
	return nil, mcp.NotFoundf("instance %s not found", instanceID)
}

func (a *Adapter) startInstance(ctx context.Context, args schema.Args) (any, error) {
	instanceID := args.String("instance_id")
	out, err := a.ec2.StartInstances(ctx, &ec2.StartInstancesInput{InstanceIds: []string{instanceID}})
	if err != nil {
		return nil, err
	}
	return map[string]any{"transitions": summarizeStateChanges(out.StartingInstances)}, nil
}

func (a *Adapter) stopInstance(ctx context.Context, args schema.Args) (any, error) {
	instanceID := args.String("instance_id")
	input := &ec2.StopInstancesInput{InstanceIds: []string{instanceID}}
	if args.Bool("force") {
		input.Force = aws.Bool(true)
	}
	out, err := a.ec2.StopInstances(ctx, input)
	if err != nil {
		return nil, err
	}
	return map[string]any{"transitions": summarizeStateChanges(out.StoppingInstances)}, nil
}

func (a *Adapter) rebootInstance(ctx context.Context, args schema.Args) (any, error) {
	instanceID := args.String("instance_id")
	if _, err := a.ec2.RebootInstances(ctx, &ec2.RebootInstancesInput{InstanceIds: []string{instanceID}}); err != nil {
		return nil, err
	}
	return map[string]any{"instanceId": instanceID, "rebooted": true}, nil
}

func (a *Adapter) terminateInstance(ctx context.Context, args schema.Args) (any, error) {
	instanceID := args.String("instance_id")
	out, err := a.ec2.TerminateInstances(ctx, &ec2.TerminateInstancesInput{InstanceIds: []string{instanceID}})
	if err != nil {
		if mcp.IsNotFound(err) {
			return map[string]any{"instanceId": instanceID, "terminated": true, "alreadyAbsent": true}, nil
		}
		return nil, err
	}
	return map[string]any{"transitions": summarizeStateChanges(out.TerminatingInstances)}, nil
}

// runInstances launches, then tags and optionally waits. The launch is
// never rolled back; followup failures carry the instance ids.
func (a *Adapter) runInstances(ctx context.Context, args schema.Args) (any, error) {
	input := &ec2.RunInstancesInput{
		ImageId:      aws.String(args.String("image_id")),
		InstanceType: ec2types.InstanceType(args.String("instance_type")),
		MinCount:     aws.Int32(int32(args.Int("min_count", 1))),
		MaxCount:     aws.Int32(int32(args.Int("max_count", 1))),
	}
	if keyName := args.String("key_name"); keyName != "" {
		input.KeyName = aws.String(keyName)
	}
	if subnetID := args.String("subnet_id"); subnetID != "" {
		input.SubnetId = aws.String(subnetID)
	}
	if groups := args.StringSlice("security_group_ids"); len(groups) > 0 {
		input.SecurityGroupIds = groups
	}
	if userData := args.String("user_data"); userData != "" {
		input.UserData = aws.String(base64.StdEncoding.EncodeToString([]byte(userData)))
	}
	if profile := args.String("iam_instance_profile"); profile != "" {
		input.IamInstanceProfile = &ec2types.IamInstanceProfileSpecification{Name: aws.String(profile)}
	}

	out, err := a.ec2.RunInstances(ctx, input)
	if err != nil {
		return nil, err
	}
	instanceIDs := make([]string, 0, len(out.Instances))
	instances := make([]map[string]any, 0, len(out.Instances))
	for _, instance := range out.Instances {
		instanceIDs = append(instanceIDs, aws.ToString(instance.InstanceId))
		instances = append(instances, summarizeInstance(instance))
	}

	if tags := args.StringMap("tags"); len(tags) > 0 {
		_, err := a.ec2.CreateTags(ctx, &ec2.CreateTagsInput{Resources: instanceIDs, Tags: ec2Tags(tags)})
		if err != nil {
			return nil, &mcp.PartialFailureError{Step: "create_tags", ResourceID: strings.Join(instanceIDs, ","), Err: err}
		}
	}
	if args.Bool("wait_until_running") {
		waiter := ec2.NewInstanceRunningWaiter(a.ec2)
		err := waiter.Wait(ctx, &ec2.DescribeInstancesInput{InstanceIds: instanceIDs}, waitRunningTimeout)
		if err != nil {
			return nil, &mcp.PartialFailureError{Step: "wait_until_running", ResourceID: strings.Join(instanceIDs, ","), Err: err}
		}
	}
	return map[string]any{"instances": instances, "instanceIds": instanceIDs}, nil
}

func (a *Adapter) createImage(ctx context.Context, args schema.Args) (any, error) {
	input := &ec2.CreateImageInput{
		InstanceId: aws.String(args.String("instance_id")),
		Name:       aws.String(args.String("name")),
	}
	if description := args.String("description"); description != "" {
		input.Description = aws.String(description)
	}
	if args.Bool("no_reboot") {
		input.NoReboot = aws.Bool(true)
	}
	out, err := a.ec2.CreateImage(ctx, input)
	if err != nil {
		return nil, err
	}
	return map[string]any{"imageId": aws.ToString(out.ImageId)}, nil
}

func (a *Adapter) createTags(ctx context.Context, args schema.Args) (any, error) {
	resourceIDs := args.StringSlice("resource_ids")
	tags := args.StringMap("tags")
	if len(tags) == 0 {
		return nil, mcp.InvalidRequestf("tags must not be empty")
	}
	_, err := a.ec2.CreateTags(ctx, &ec2.CreateTagsInput{Resources: resourceIDs, Tags: ec2Tags(tags)})
	if err != nil {
		return nil, err
	}
	return map[string]any{"resources": resourceIDs, "tagged": true}, nil
}

func summarizeInstance(instance ec2types.Instance) map[string]any {
	out := map[string]any{
		"id":               aws.ToString(instance.InstanceId),
		"imageId":          aws.ToString(instance.ImageId),
		"type":             instance.InstanceType,
		"privateIp":        aws.ToString(instance.PrivateIpAddress),
		"publicIp":         aws.ToString(instance.PublicIpAddress),
		"subnetId":         aws.ToString(instance.SubnetId),
		"vpcId":            aws.ToString(instance.VpcId),
		"keyName":          aws.ToString(instance.KeyName),
		"availabilityZone": "",
		"tags":             tagMap(instance.Tags),
	}
	if instance.State != nil {
		out["state"] = instance.State.Name
	}
	if instance.Placement != nil {
		out["availabilityZone"] = aws.ToString(instance.Placement.AvailabilityZone)
	}
	if instance.LaunchTime != nil {
		out["launchTime"] = instance.LaunchTime.UTC().Format(time.RFC3339)
	}
	return out
}

func summarizeStateChanges(changes []ec2types.InstanceStateChange) []map[string]any {
	out := make([]map[string]any, 0, len(changes))
	for _, change := range changes {
		entry := map[string]any{"instanceId": aws.ToString(change.InstanceId)}
		if change.PreviousState != nil {
			entry["previousState"] = change.PreviousState.Name
		}
		if change.CurrentState != nil {
			entry["currentState"] = change.CurrentState.Name
		}
		out = append(out, entry)
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
