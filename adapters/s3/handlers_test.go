package awss3

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"awsmcp/internal/mcp"
	"awsmcp/internal/schema"
)

type wireResponse struct {
	status int
	body   string
}

func okResponse(body string) wireResponse {
	return wireResponse{status: http.StatusOK, body: body}
}

func faultResponse(status int, code, message string) wireResponse {
	return wireResponse{
		status: status,
		body: `<Error><Code>` + code + `</Code><Message>` + message +
			`</Message><RequestId>req-1</RequestId></Error>`,
	}
}

// restRoundTripper routes by HTTP method and path because the REST-XML
// protocol has no Action parameter. Subresource requests such as the
// bucket policy carry the subresource name in the routing key.
type restRoundTripper struct {
	mu        sync.Mutex
	responses map[string][]wireResponse
	index     map[string]int
	calls     map[string]int
	bodies    map[string][]string
}

func routeKey(req *http.Request) string {
	key := req.Method + " " + req.URL.Path
	if req.URL.Query().Has("policy") {
		key += "?policy"
	}
	return key
}

func (rt *restRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}
	key := routeKey(req)
	rt.mu.Lock()
	if rt.index == nil {
		rt.index = map[string]int{}
	}
	if rt.calls == nil {
		rt.calls = map[string]int{}
	}
	if rt.bodies == nil {
		rt.bodies = map[string][]string{}
	}
	rt.calls[key]++
	rt.bodies[key] = append(rt.bodies[key], string(body))
	respList := rt.responses[key]
	if len(respList) == 0 {
		rt.mu.Unlock()
		return &http.Response{
			StatusCode: http.StatusNotImplemented,
			Body:       io.NopCloser(strings.NewReader("unexpected request " + key)),
			Header:     http.Header{"Content-Type": []string{"text/plain"}},
			Request:    req,
		}, nil
	}
	idx := rt.index[key]
	if idx >= len(respList) {
		idx = len(respList) - 1
	}
	rt.index[key] = idx + 1
	resp := respList[idx]
	rt.mu.Unlock()
	return &http.Response{
		StatusCode: resp.status,
		Body:       io.NopCloser(strings.NewReader(strings.TrimSpace(resp.body))),
		Header:     http.Header{"Content-Type": []string{"application/xml"}},
		Request:    req,
	}, nil
}

func (rt *restRoundTripper) callCount(key string) int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.calls[key]
}

func (rt *restRoundTripper) lastBody(key string) string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	bodies := rt.bodies[key]
	if len(bodies) == 0 {
		return ""
	}
	return bodies[len(bodies)-1]
}

func newTestAdapter(t *testing.T, responses map[string][]wireResponse) (*Adapter, *restRoundTripper) {
	t.Helper()
	transport := &restRoundTripper{responses: responses}
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		HTTPClient:  &http.Client{Transport: transport},
	}
	cfg.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{URL: "https://s3.test", SigningRegion: region, HostnameImmutable: true}, nil
		},
	)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return &Adapter{s3: client, region: "us-east-1"}, transport
}

func TestListBucketsSummarizes(t *testing.T) {
	adapter, _ := newTestAdapter(t, map[string][]wireResponse{
		"GET /": {
			okResponse(`<ListAllMyBucketsResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Owner><ID>owner-1</ID></Owner>
  <Buckets>
    <Bucket><Name>alpha</Name><CreationDate>2024-01-01T00:00:00.000Z</CreationDate></Bucket>
    <Bucket><Name>beta</Name><CreationDate>2024-02-01T00:00:00.000Z</CreationDate></Bucket>
  </Buckets>
</ListAllMyBucketsResult>`),
		},
	})

	data, err := adapter.listBuckets(context.Background(), schema.Args{})
	if err != nil {
		t.Fatalf("list buckets: %v", err)
	}
	result := data.(map[string]any)
	if result["count"] != 2 {
		t.Fatalf("expected 2 buckets, got %v", result["count"])
	}
	first := result["buckets"].([]map[string]any)[0]
	if first["name"] != "alpha" || first["createdAt"] != "2024-01-01T00:00:00Z" {
		t.Fatalf("unexpected bucket summary %v", first)
	}
}

func TestCreateBucketOutsideUSEast1SendsLocationConstraint(t *testing.T) {
	adapter, transport := newTestAdapter(t, map[string][]wireResponse{
		"PUT /my-bucket": {okResponse("")},
	})

	_, err := adapter.createBucket(context.Background(), schema.Args{
		"bucket_name": "my-bucket",
		"region":      "eu-west-1",
	})
	if err != nil {
		t.Fatalf("create bucket: %v", err)
	}
	body := transport.lastBody("PUT /my-bucket")
	if !strings.Contains(body, "<LocationConstraint>eu-west-1</LocationConstraint>") {
		t.Fatalf("expected location constraint in request body, got %q", body)
	}
}

func TestCreateBucketInUSEast1OmitsLocationConstraint(t *testing.T) {
	adapter, transport := newTestAdapter(t, map[string][]wireResponse{
		"PUT /my-bucket": {okResponse("")},
	})

	_, err := adapter.createBucket(context.Background(), schema.Args{"bucket_name": "my-bucket"})
	if err != nil {
		t.Fatalf("create bucket: %v", err)
	}
	if body := transport.lastBody("PUT /my-bucket"); strings.Contains(body, "LocationConstraint") {
		t.Fatalf("us-east-1 create must not send a location constraint, got %q", body)
	}
}

func TestDeleteBucketAbsentFoldsToOK(t *testing.T) {
	adapter, _ := newTestAdapter(t, map[string][]wireResponse{
		"DELETE /gone-bucket": {
			faultResponse(http.StatusNotFound, "NoSuchBucket", "the bucket does not exist"),
		},
	})

	data, err := adapter.deleteBucket(context.Background(), schema.Args{"bucket_name": "gone-bucket"})
	if err != nil {
		t.Fatalf("expected absent bucket to fold into success, got %v", err)
	}
	result := data.(map[string]any)
	if result["deleted"] != true || result["alreadyAbsent"] != true {
		t.Fatalf("unexpected payload %v", result)
	}
}

func TestListObjectsDrainsContinuationTokens(t *testing.T) {
	adapter, transport := newTestAdapter(t, map[string][]wireResponse{
		"GET /my-bucket": {
			okResponse(`<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>my-bucket</Name>
  <IsTruncated>true</IsTruncated>
  <NextContinuationToken>tok-1</NextContinuationToken>
  <Contents><Key>a.txt</Key><Size>3</Size><LastModified>2024-01-01T00:00:00.000Z</LastModified><ETag>"e1"</ETag></Contents>
</ListBucketResult>`),
			okResponse(`<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>my-bucket</Name>
  <IsTruncated>false</IsTruncated>
  <Contents><Key>b.txt</Key><Size>5</Size><LastModified>2024-01-02T00:00:00.000Z</LastModified><ETag>"e2"</ETag></Contents>
</ListBucketResult>`),
		},
	})

	data, err := adapter.listObjects(context.Background(), schema.Args{"bucket_name": "my-bucket"})
	if err != nil {
		t.Fatalf("list objects: %v", err)
	}
	result := data.(map[string]any)
	if result["count"] != 2 {
		t.Fatalf("expected 2 objects across pages, got %v", result["count"])
	}
	if got := transport.callCount("GET /my-bucket"); got != 2 {
		t.Fatalf("expected 2 provider calls, got %d", got)
	}
}

func TestUploadObjectRequiresFileOrContent(t *testing.T) {
	adapter, transport := newTestAdapter(t, nil)

	_, err := adapter.uploadObject(context.Background(), schema.Args{
		"bucket_name": "my-bucket",
		"object_key":  "notes.txt",
	})
	if env := mcp.Normalize(err); env.Kind != mcp.KindInvalidRequest {
		t.Fatalf("expected InvalidRequest, got %v", err)
	}
	if got := transport.callCount("PUT /my-bucket/notes.txt"); got != 0 {
		t.Fatalf("expected no provider calls, got %d", got)
	}
}

func TestUploadObjectDecodesBase64Content(t *testing.T) {
	adapter, transport := newTestAdapter(t, map[string][]wireResponse{
		"PUT /my-bucket/notes.txt": {okResponse("")},
	})

	_, err := adapter.uploadObject(context.Background(), schema.Args{
		"bucket_name": "my-bucket",
		"object_key":  "notes.txt",
		"content":     "aGVsbG8=",
		"is_base64":   true,
	})
	if err != nil {
		t.Fatalf("upload object: %v", err)
	}
	if body := transport.lastBody("PUT /my-bucket/notes.txt"); body != "hello" {
		t.Fatalf("expected decoded body, got %q", body)
	}
}

func TestUploadObjectRejectsBadBase64(t *testing.T) {
	adapter, transport := newTestAdapter(t, nil)

	_, err := adapter.uploadObject(context.Background(), schema.Args{
		"bucket_name": "my-bucket",
		"object_key":  "notes.txt",
		"content":     "%%% not base64 %%%",
		"is_base64":   true,
	})
	if env := mcp.Normalize(err); env.Kind != mcp.KindInvalidRequest {
		t.Fatalf("expected InvalidRequest, got %v", err)
	}
	if got := transport.callCount("PUT /my-bucket/notes.txt"); got != 0 {
		t.Fatalf("expected no provider calls, got %d", got)
	}
}

func TestUploadObjectFromFile(t *testing.T) {
	adapter, transport := newTestAdapter(t, map[string][]wireResponse{
		"PUT /my-bucket/notes.txt": {okResponse("")},
	})
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("from disk"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := adapter.uploadObject(context.Background(), schema.Args{
		"bucket_name": "my-bucket",
		"object_key":  "notes.txt",
		"file_path":   path,
	})
	if err != nil {
		t.Fatalf("upload object: %v", err)
	}
	if body := transport.lastBody("PUT /my-bucket/notes.txt"); body != "from disk" {
		t.Fatalf("expected file contents in request body, got %q", body)
	}
}

func TestDownloadObjectWritesDestination(t *testing.T) {
	adapter, _ := newTestAdapter(t, map[string][]wireResponse{
		"GET /my-bucket/notes.txt": {okResponse("stored bytes")},
	})
	destination := filepath.Join(t.TempDir(), "nested", "notes.txt")

	data, err := adapter.downloadObject(context.Background(), schema.Args{
		"bucket_name":      "my-bucket",
		"object_key":       "notes.txt",
		"destination_path": destination,
	})
	if err != nil {
		t.Fatalf("download object: %v", err)
	}
	written, readErr := os.ReadFile(destination)
	if readErr != nil {
		t.Fatalf("read destination: %v", readErr)
	}
	if string(written) != "stored bytes" {
		t.Fatalf("unexpected file contents %q", written)
	}
	if data.(map[string]any)["bytes"] != int64(len("stored bytes")) {
		t.Fatalf("unexpected payload %v", data)
	}
}

func TestGetBucketPolicyMissingPolicyIsOK(t *testing.T) {
	adapter, _ := newTestAdapter(t, map[string][]wireResponse{
		"GET /my-bucket?policy": {
			faultResponse(http.StatusNotFound, "NoSuchBucketPolicy", "the bucket policy does not exist"),
		},
	})

	data, err := adapter.getBucketPolicy(context.Background(), schema.Args{"bucket_name": "my-bucket"})
	if err != nil {
		t.Fatalf("expected missing policy to fold into success, got %v", err)
	}
	if data.(map[string]any)["hasPolicy"] != false {
		t.Fatalf("unexpected payload %v", data)
	}
}

func TestGetBucketPolicyMissingBucketSurfaces(t *testing.T) {
	adapter, _ := newTestAdapter(t, map[string][]wireResponse{
		"GET /gone-bucket?policy": {
			faultResponse(http.StatusNotFound, "NoSuchBucket", "the bucket does not exist"),
		},
	})

	_, err := adapter.getBucketPolicy(context.Background(), schema.Args{"bucket_name": "gone-bucket"})
	if !mcp.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestSetBucketPolicyRejectsInvalidJSON(t *testing.T) {
	adapter, transport := newTestAdapter(t, nil)

	_, err := adapter.setBucketPolicy(context.Background(), schema.Args{
		"bucket_name": "my-bucket",
		"policy_json": "{not json",
	})
	if env := mcp.Normalize(err); env.Kind != mcp.KindInvalidRequest {
		t.Fatalf("expected InvalidRequest, got %v", err)
	}
	if got := transport.callCount("PUT /my-bucket?policy"); got != 0 {
		t.Fatalf("expected no provider calls, got %d", got)
	}
}
