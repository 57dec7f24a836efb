package persist

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// fakeS3 implements S3API over a map of full object keys.
type fakeS3 struct {
	objects map[string][]byte
	puts    []string
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body: io.NopCloser(strings.NewReader(string(data))),
	}, nil
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[*params.Key] = data
	f.puts = append(f.puts, *params.Key)
	return &s3.PutObjectOutput{}, nil
}

func TestS3StoreRoundTrip(t *testing.T) {
	client := &fakeS3{}
	store := NewS3Store(client, "bucket", "state/")

	if err := store.Save(context.Background(), "cart", []byte(`{"items":[]}`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if len(client.puts) != 1 || client.puts[0] != "state/cart" {
		t.Errorf("expected prefixed key state/cart, got %v", client.puts)
	}

	data, ok, err := store.Load(context.Background(), "cart")
	if err != nil || !ok {
		t.Fatalf("expected stored object, got ok=%v err=%v", ok, err)
	}
	if string(data) != `{"items":[]}` {
		t.Errorf("unexpected data %s", data)
	}
}

func TestS3StoreMissingKey(t *testing.T) {
	store := NewS3Store(&fakeS3{}, "bucket", "state/")

	data, ok, err := store.Load(context.Background(), "nope")
	if err != nil {
		t.Fatalf("a missing object is not an error, got %v", err)
	}
	if ok || data != nil {
		t.Errorf("expected (nil, false), got (%s, %v)", data, ok)
	}
}
