package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: snapshots
    type: SNS
    sns:
      topic_arn: " arn:aws:sns:us-east-1:123456789012:trends "
      region: us-east-1
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "snapshots" {
		t.Fatalf("expected only snapshots enabled, got %#v", enabled)
	}
	if enabled[0].Type != TypeSNS || enabled[0].SNS.TopicARN != "arn:aws:sns:us-east-1:123456789012:trends" {
		t.Fatalf("expected sanitized sns config, got %#v", enabled[0].SNS)
	}

	disabled, ok := reg.ByID("http1")
	if !ok || disabled.HTTP.Method != httpDefaultMethod || disabled.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("expected http defaults applied, got %#v", disabled.HTTP)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.json")
	raw := `{"publishers":[{"id":"ps","type":"gcp_pubsub","gcp_pubsub":{"project_id":"p","topic":"t"}}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 1 {
		t.Fatalf("expected 1 publisher, got %d", len(reg.All()))
	}
}

func TestLoadRegistryDuplicateID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: dup
    type: http
    http:
      url: https://a.example
  - id: dup
    type: http
    http:
      url: https://b.example
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate publisher error")
	}
}

func TestValidatePublisherConfig(t *testing.T) {
	cases := map[string]PublisherConfig{
		"missing http block": {ID: "h1", Type: TypeHTTP},
		"missing sqs region": {ID: "q1", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "https://sqs"}},
		"missing sns topic":  {ID: "s1", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "us-east-1"}},
		"missing pubsub":     {ID: "g1", Type: TypeGCPPubSub},
		"missing type":       {ID: "x"},
	}
	for name, cfg := range cases {
		if err := validatePublisherConfig(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
