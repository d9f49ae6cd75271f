// Package identity exposes the caller-identity tool every adapter
// registers alongside its own catalog.
package identity

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"awsmcp/internal/mcp"
	"awsmcp/internal/schema"
)

type CallerIdentityClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

func Tool(adapterID string, client CallerIdentityClient) mcp.ToolSpec {
	return mcp.ToolSpec{
		Name:        "get_caller_identity",
		Description: "Return the account, ARN and user id of the active credentials.",
		AdapterID:   adapterID,
		Schema:      schema.Schema{},
		Safety:      mcp.SafetyReadOnly,
		Handler: func(ctx context.Context, args schema.Args) (any, error) {
			out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"account": aws.ToString(out.Account),
				"arn":     aws.ToString(out.Arn),
				"userId":  aws.ToString(out.UserId),
			}, nil
		},
	}
}
