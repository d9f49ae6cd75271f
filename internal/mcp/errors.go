package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/smithy-go"

	"awsmcp/internal/schema"
)

// providerCodeKinds is the static mapping from provider fault codes to
// the outcome taxonomy. It is the only resource-specific knowledge the
// normalizer carries; unlisted codes fall through to suffix matching
// and finally to Unknown.
var providerCodeKinds = map[string]OutcomeKind{
	// Not found.
	"InvalidInstanceID.NotFound":       KindNotFound,
	"InvalidVpcID.NotFound":            KindNotFound,
	"InvalidSubnetID.NotFound":         KindNotFound,
	"InvalidTransitGatewayID.NotFound": KindNotFound,
	"InvalidRouteTableID.NotFound":     KindNotFound,
	"InvalidAMIID.NotFound":            KindNotFound,
	"LoadBalancerNotFound":             KindNotFound,
	"TargetGroupNotFound":              KindNotFound,
	"ListenerNotFound":                 KindNotFound,
	"RuleNotFound":                     KindNotFound,
	"NoSuchBucket":                     KindNotFound,
	"NoSuchKey":                        KindNotFound,
	"NoSuchBucketPolicy":               KindNotFound,
	"NotFound":                         KindNotFound,
	"NotFoundException":                KindNotFound,
	"ResourceNotFoundException":        KindNotFound,

	// Already exists.
	"DuplicateLoadBalancerName": KindAlreadyExists,
	"DuplicateTargetGroupName":  KindAlreadyExists,
	"DuplicateListener":         KindAlreadyExists,
	"DuplicateTagKey":           KindAlreadyExists,
	"BucketAlreadyExists":       KindAlreadyExists,
	"BucketAlreadyOwnedByYou":   KindAlreadyExists,
	"AlreadyExistsException":    KindAlreadyExists,

	// State disallows the operation.
	"ResourceInUse":             KindConflict,
	"ResourceInUseException":    KindConflict,
	"DependencyViolation":       KindConflict,
	"IncorrectState":            KindConflict,
	"IncorrectInstanceState":    KindConflict,
	"InvalidState":              KindConflict,
	"OperationNotPermitted":     KindConflict,
	"ConflictException":         KindConflict,
	"TransitGatewayLimitExceeded": KindConflict,

	// Permission.
	"UnauthorizedOperation":  KindPermissionDenied,
	"AccessDenied":           KindPermissionDenied,
	"AccessDeniedException":  KindPermissionDenied,
	"AuthFailure":            KindPermissionDenied,
	"InvalidClientTokenId":   KindPermissionDenied,
	"ExpiredToken":           KindPermissionDenied,
	"SignatureDoesNotMatch":  KindPermissionDenied,

	// Throttling.
	"Throttling":               KindThrottled,
	"ThrottlingException":      KindThrottled,
	"RequestLimitExceeded":     KindThrottled,
	"TooManyRequestsException": KindThrottled,
	"SlowDown":                 KindThrottled,

	// Provider-side semantic validation.
	"ValidationError":               KindInvalidRequest,
	"ValidationException":           KindInvalidRequest,
	"InvalidParameterValue":         KindInvalidRequest,
	"InvalidParameterCombination":   KindInvalidRequest,
	"InvalidParameter":              KindInvalidRequest,
	"MissingParameter":              KindInvalidRequest,
	"MalformedPolicy":               KindInvalidRequest,
	"MalformedPolicyDocument":       KindInvalidRequest,
	"InvalidConfigurationRequest":   KindInvalidRequest,
	"InvalidConfigurationException": KindInvalidRequest,

	// Transient infrastructure faults.
	"ServiceUnavailable":   KindUnavailable,
	"InternalError":        KindUnavailable,
	"InternalFailure":      KindUnavailable,
	"InternalServiceError": KindUnavailable,
	"RequestTimeout":       KindUnavailable,
	"Unavailable":          KindUnavailable,
}

// Normalize translates an executor failure into the uniform failure
// envelope. This is the single boundary between provider fault objects
// and the closed taxonomy.
func Normalize(err error) Envelope {
	var partial *PartialFailureError
	if errors.As(err, &partial) {
		details := map[string]any{
			"failed_step": partial.Step,
			"resource_id": partial.ResourceID,
		}
		if code := providerCode(partial.Err); code != "" {
			details["provider_code"] = code
		}
		return Failure(KindPartialFailure, partial.Error(), details)
	}

	var kindErr *KindError
	if errors.As(err, &kindErr) {
		return Failure(kindErr.Kind, kindErr.Message, nil)
	}

	var validationErr *schema.Error
	if errors.As(err, &validationErr) {
		return validationFailure(validationErr)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Failure(KindUnavailable, err.Error(), nil)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		details := map[string]any{"provider_code": code}
		if kind, ok := providerCodeKinds[code]; ok {
			return Failure(kind, apiErr.ErrorMessage(), details)
		}
		if kind, ok := kindBySuffix(code); ok {
			return Failure(kind, apiErr.ErrorMessage(), details)
		}
		return Failure(KindUnknown, apiErr.ErrorMessage(), details)
	}

	if err != nil {
		// Transport-level failure before any provider fault code was
		// produced; treated as transient.
		return Failure(KindUnavailable, err.Error(), nil)
	}
	return Failure(KindUnknown, "unknown failure", nil)
}

// kindBySuffix catches the EC2 code families that encode the fault
// class in a dotted suffix, e.g. InvalidGatewayID.NotFound.
func kindBySuffix(code string) (OutcomeKind, bool) {
	switch {
	case strings.HasSuffix(code, ".NotFound"):
		return KindNotFound, true
	case strings.HasSuffix(code, ".Duplicate"), strings.HasSuffix(code, "AlreadyExists"):
		return KindAlreadyExists, true
	case strings.HasSuffix(code, ".InUse"), strings.HasSuffix(code, ".Conflict"):
		return KindConflict, true
	case strings.HasSuffix(code, ".Malformed"), strings.HasSuffix(code, ".Range"):
		return KindInvalidRequest, true
	default:
		return "", false
	}
}

func validationFailure(err *schema.Error) Envelope {
	details := map[string]any{
		"kind":  string(err.Kind),
		"field": err.Field,
	}
	if err.Expected != "" {
		details["expected"] = err.Expected
	}
	if err.Actual != "" {
		details["actual"] = err.Actual
	}
	if len(err.Allowed) > 0 {
		details["allowed"] = err.Allowed
	}
	return Failure(KindValidation, err.Error(), details)
}

// IsNotFound reports whether an executor error maps to the NotFound
// class. Delete handlers use this to fold a missing resource into
// success.
func IsNotFound(err error) bool {
	var kindErr *KindError
	if errors.As(err, &kindErr) {
		return kindErr.Kind == KindNotFound
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if kind, ok := providerCodeKinds[code]; ok {
			return kind == KindNotFound
		}
		if kind, ok := kindBySuffix(code); ok {
			return kind == KindNotFound
		}
	}
	return false
}

func providerCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
