package schema

import (
	"encoding/json"
	"testing"
)

func vpcSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "vpc_id", Type: String, Required: true},
		{Name: "cidr_block", Type: String, Required: true},
	}}
}

func TestValidateMissingRequiredField(t *testing.T) {
	_, err := Validate(vpcSchema(), map[string]any{"vpc_id": "vpc-1"})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Kind != MissingField || err.Field != "cidr_block" {
		t.Fatalf("unexpected error: %#v", err)
	}
	if err.Error() != "cidr_block is required" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	s := Schema{Fields: []Field{{Name: "port", Type: Integer, Required: true}}}
	_, err := Validate(s, map[string]any{"port": "80"})
	if err == nil || err.Kind != TypeMismatch {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if err.Expected != "integer" || err.Actual != "string" {
		t.Fatalf("unexpected detail: %#v", err)
	}
}

func TestValidateIntegerEncodings(t *testing.T) {
	s := Schema{Fields: []Field{{Name: "port", Type: Integer}}}
	for _, value := range []any{80, int64(80), float64(80), json.Number("80")} {
		args, err := Validate(s, map[string]any{"port": value})
		if err != nil {
			t.Fatalf("value %v: %v", value, err)
		}
		if args.Int("port", 0) != 80 {
			t.Fatalf("value %v: got %d", value, args.Int("port", 0))
		}
	}
	if _, err := Validate(s, map[string]any{"port": 80.5}); err == nil {
		t.Fatal("fractional value should not validate as integer")
	}
}

func TestValidateEnum(t *testing.T) {
	s := Schema{Fields: []Field{{Name: "scheme", Type: String, Enum: []string{"internet-facing", "internal"}}}}
	if _, err := Validate(s, map[string]any{"scheme": "internal"}); err != nil {
		t.Fatalf("valid enum rejected: %v", err)
	}
	_, err := Validate(s, map[string]any{"scheme": "public"})
	if err == nil || err.Kind != InvalidEnum {
		t.Fatalf("expected invalid enum, got %v", err)
	}
	if len(err.Allowed) != 2 {
		t.Fatalf("allowed values not reported: %#v", err)
	}
}

func TestValidateNestedRecordPath(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "target_group_arn", Type: String, Required: true},
		{Name: "targets", Type: RecordList, Required: true, MinItems: 1, Fields: []Field{
			{Name: "Id", Type: String, Required: true},
			{Name: "Port", Type: Integer},
		}},
	}}
	_, err := Validate(s, map[string]any{
		"target_group_arn": "arn:tg",
		"targets": []any{
			map[string]any{"Id": "i-1", "Port": 80},
			map[string]any{"Id": "i-2", "Port": "eighty"},
		},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Field != "targets[1].Port" {
		t.Fatalf("unexpected field path: %s", err.Field)
	}
}

func TestValidateRecordListMissingMember(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "targets", Type: RecordList, Fields: []Field{
			{Name: "Id", Type: String, Required: true},
		}},
	}}
	_, err := Validate(s, map[string]any{"targets": []any{map[string]any{"Port": 80}}})
	if err == nil || err.Kind != MissingField || err.Field != "targets[0].Id" {
		t.Fatalf("unexpected error: %#v", err)
	}
}

func TestValidateUnknownTopLevelRejected(t *testing.T) {
	_, err := Validate(vpcSchema(), map[string]any{
		"vpc_id":     "vpc-1",
		"cidr_block": "10.0.0.0/16",
		"bogus":      true,
	})
	if err == nil || err.Kind != UnknownField || err.Field != "bogus" {
		t.Fatalf("unexpected error: %#v", err)
	}
}

func TestValidateUnknownNestedKeysPassThrough(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "targets", Type: RecordList, Fields: []Field{
			{Name: "Id", Type: String, Required: true},
		}},
	}}
	args, err := Validate(s, map[string]any{
		"targets": []any{map[string]any{"Id": "i-1", "AvailabilityZone": "all"}},
	})
	if err != nil {
		t.Fatalf("nested unknown key rejected: %v", err)
	}
	records := args.Records("targets")
	if len(records) != 1 || records[0]["AvailabilityZone"] != "all" {
		t.Fatalf("nested key not carried through: %#v", records)
	}
}

func TestValidateStringMapAndAnyMap(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "tags", Type: StringMap},
		{Name: "options", Type: AnyMap},
	}}
	args, err := Validate(s, map[string]any{
		"tags":    map[string]any{"Name": "web"},
		"options": map[string]any{"DnsSupport": map[string]any{"Value": true}},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if args.StringMap("tags")["Name"] != "web" {
		t.Fatalf("tags not normalized: %#v", args)
	}
	if args.AnyMap("options") == nil {
		t.Fatalf("options dropped: %#v", args)
	}
	_, err = Validate(s, map[string]any{"tags": map[string]any{"Name": 5}})
	if err == nil || err.Field != "tags.Name" {
		t.Fatalf("expected tags.Name mismatch, got %#v", err)
	}
}

func TestValidateListLengthBounds(t *testing.T) {
	s := Schema{Fields: []Field{{Name: "subnets", Type: StringList, MinItems: 1, MaxItems: 2}}}
	if _, err := Validate(s, map[string]any{"subnets": []any{}}); err == nil {
		t.Fatal("empty list accepted despite min items")
	}
	if _, err := Validate(s, map[string]any{"subnets": []any{"a", "b", "c"}}); err == nil {
		t.Fatal("oversized list accepted despite max items")
	}
	if _, err := Validate(s, map[string]any{"subnets": []any{"a"}}); err != nil {
		t.Fatalf("valid list rejected: %v", err)
	}
}

func TestValidatePattern(t *testing.T) {
	s := Schema{Fields: []Field{{Name: "cidr_block", Type: String, Pattern: `^\d+\.\d+\.\d+\.\d+/\d+$`}}}
	if _, err := Validate(s, map[string]any{"cidr_block": "10.0.0.0/16"}); err != nil {
		t.Fatalf("valid cidr rejected: %v", err)
	}
	_, err := Validate(s, map[string]any{"cidr_block": "not-a-cidr"})
	if err == nil || err.Kind != InvalidValue {
		t.Fatalf("expected invalid value, got %#v", err)
	}
}

func TestValidateOptionalAbsentFields(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "state", Type: String},
		{Name: "force", Type: Boolean},
	}}
	args, err := Validate(s, map[string]any{})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if args.Has("state") || args.Bool("force") {
		t.Fatalf("absent fields should stay absent: %#v", args)
	}
	if args.StringOr("state", "running") != "running" {
		t.Fatal("StringOr fallback not applied")
	}
}

func TestJSONSchemaExport(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "name", Type: String, Required: true},
		{Name: "port", Type: Integer, Required: true},
		{Name: "scheme", Type: String, Enum: []string{"internet-facing", "internal"}},
		{Name: "subnets", Type: StringList, MinItems: 1},
		{Name: "tags", Type: StringMap},
		{Name: "targets", Type: RecordList, Fields: []Field{{Name: "Id", Type: String, Required: true}}},
	}}
	out := s.JSONSchema()
	if out["type"] != "object" {
		t.Fatalf("unexpected type: %v", out["type"])
	}
	properties, ok := out["properties"].(map[string]any)
	if !ok || len(properties) != 6 {
		t.Fatalf("unexpected properties: %#v", out["properties"])
	}
	required, ok := out["required"].([]string)
	if !ok || len(required) != 2 {
		t.Fatalf("unexpected required: %#v", out["required"])
	}
	if out["additionalProperties"] != false {
		t.Fatal("top-level unknowns should be marked rejected")
	}
	if _, err := json.Marshal(out); err != nil {
		t.Fatalf("schema not serializable: %v", err)
	}
	scheme := properties["scheme"].(map[string]any)
	if _, ok := scheme["enum"]; !ok {
		t.Fatal("enum not exported")
	}
}
