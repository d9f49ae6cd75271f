package awsconf

import "testing"

func TestResolveRegionExplicitWins(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_DEFAULT_REGION", "eu-central-1")
	if got := ResolveRegion("us-west-2"); got != "us-west-2" {
		t.Fatalf("expected us-west-2, got %q", got)
	}
}

func TestResolveRegionEnvFallback(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "ap-southeast-2")
	if got := ResolveRegion("  "); got != "ap-southeast-2" {
		t.Fatalf("expected ap-southeast-2, got %q", got)
	}
}

func TestResolveProfileEnvFallback(t *testing.T) {
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_DEFAULT_PROFILE", "ops")
	if got := ResolveProfile(""); got != "ops" {
		t.Fatalf("expected ops, got %q", got)
	}
}
