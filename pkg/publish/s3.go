package publish

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// UploadTimeout bounds a single object upload.
const UploadTimeout = 30 * time.Second

// objectPutter is the part of *s3.S3 a Publisher needs.
type objectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// Publisher uploads rendered images to a bucket.
type Publisher struct {
	config Config
	client objectPutter
}

// NewPublisher opens an S3 session for cfg.
func NewPublisher(cfg Config) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s3Config := &aws.Config{
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:      aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
		s3Config.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("create S3 session: %w", err)
	}
	return &Publisher{config: cfg, client: s3.New(sess)}, nil
}

// Result lists where a published render can be fetched.
type Result struct {
	ImageURL     string
	ThumbnailURL string // empty when no thumbnail was requested
}

// PublishImage uploads img as name.png and, when thumb is non-zero, a
// thumbnail no larger than thumb pixels as name_thumb.png.
func (p *Publisher) PublishImage(ctx context.Context, name string, img image.Image, thumb uint) (Result, error) {
	name = strings.TrimSuffix(name, path.Ext(name))

	var res Result
	url, err := p.uploadPNG(ctx, name+".png", img)
	if err != nil {
		return res, err
	}
	res.ImageURL = url

	if thumb > 0 {
		url, err = p.uploadPNG(ctx, name+"_thumb.png", Thumbnail(img, thumb))
		if err != nil {
			return res, err
		}
		res.ThumbnailURL = url
	}
	return res, nil
}

func (p *Publisher) uploadPNG(ctx context.Context, name string, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	key := p.config.Key(name)
	if err := p.Upload(ctx, key, buf.Bytes(), "image/png"); err != nil {
		return "", err
	}
	return p.config.URL(key), nil
}

// Upload stores data under key.
func (p *Publisher) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}
	if p.config.ACL != "" {
		input.ACL = aws.String(p.config.ACL)
	}

	if _, err := p.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("Uploaded %s to %s (%d bytes)", key, p.config.Bucket, size)
	return nil
}
