package publish

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, input)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func testConfig() Config {
	return Config{
		AccessKey: "k",
		SecretKey: "s",
		Bucket:    "renders",
		Region:    "us-east-1",
		Prefix:    "prism",
		ACL:       "public-read",
		CDNURL:    "https://cdn.example.com",
	}
}

func TestPublishImage(t *testing.T) {
	fake := &fakePutter{}
	p := &Publisher{config: testConfig(), client: fake}

	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})

	res, err := p.PublishImage(context.Background(), "glass.png", img, 16)
	if err != nil {
		t.Fatalf("PublishImage: %v", err)
	}

	if res.ImageURL != "https://cdn.example.com/prism/glass.png" {
		t.Errorf("ImageURL = %q", res.ImageURL)
	}
	if res.ThumbnailURL != "https://cdn.example.com/prism/glass_thumb.png" {
		t.Errorf("ThumbnailURL = %q", res.ThumbnailURL)
	}
	if len(fake.inputs) != 2 {
		t.Fatalf("got %d uploads, want 2", len(fake.inputs))
	}

	in := fake.inputs[0]
	if aws.StringValue(in.Bucket) != "renders" || aws.StringValue(in.Key) != "prism/glass.png" {
		t.Errorf("upload target = %s/%s", aws.StringValue(in.Bucket), aws.StringValue(in.Key))
	}
	if aws.StringValue(in.ContentType) != "image/png" || aws.StringValue(in.ACL) != "public-read" {
		t.Errorf("upload headers = %s, %s", aws.StringValue(in.ContentType), aws.StringValue(in.ACL))
	}
	if aws.Int64Value(in.ContentLength) != int64(len(fake.bodies[0])) {
		t.Errorf("ContentLength = %d, body is %d bytes", aws.Int64Value(in.ContentLength), len(fake.bodies[0]))
	}

	thumb, err := png.Decode(bytes.NewReader(fake.bodies[1]))
	if err != nil {
		t.Fatalf("thumbnail is not a PNG: %v", err)
	}
	if b := thumb.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("thumbnail = %dx%d, want 16x8", b.Dx(), b.Dy())
	}
}

func TestPublishImageWithoutThumbnail(t *testing.T) {
	fake := &fakePutter{}
	p := &Publisher{config: testConfig(), client: fake}

	res, err := p.PublishImage(context.Background(), "scene", image.NewRGBA(image.Rect(0, 0, 4, 4)), 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.ThumbnailURL != "" || len(fake.inputs) != 1 {
		t.Errorf("thumbnail uploaded without being requested: %+v", res)
	}
}

func TestUploadError(t *testing.T) {
	fake := &fakePutter{err: errors.New("access denied")}
	p := &Publisher{config: testConfig(), client: fake}

	if _, err := p.PublishImage(context.Background(), "scene", image.NewRGBA(image.Rect(0, 0, 4, 4)), 0); err == nil {
		t.Error("Expected upload error")
	}
}

func TestNewPublisherValidates(t *testing.T) {
	if _, err := NewPublisher(Config{}); err == nil {
		t.Error("Expected error for empty config")
	}
	p, err := NewPublisher(testConfig())
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}
	if p.client == nil {
		t.Error("client not set")
	}
}
