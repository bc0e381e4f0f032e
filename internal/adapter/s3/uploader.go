package s3

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/beetracked/fleet-ops/internal/domain/types"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
	"github.com/beetracked/fleet-ops/pkg/metrics"
)

const serviceName = "fleet-ops"

// putTimeout bounds each PutObject round trip. Photos arrive as base64
// JSON up to 10 MB, so the window is generous.
const putTimeout = 30 * time.Second

func putCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, putTimeout)
}

// Bucket folders for each photo kind.
const (
	prefixTablero       = "beezero/tablero/"
	prefixDanos         = "beezero/danos/"
	prefixEcoTurnos     = "Registros_BeeTracked/Ecodelivery/Turnos/"
	prefixEcoDeliveries = "Registros_BeeTracked/Ecodelivery/Deliveries/"
)

var dataURLRe = regexp.MustCompile(`^data:image/(\w+);base64,(.+)$`)

// Uploader stores shift and delivery photos in an S3 bucket and hands
// back public object URLs. A zero-config uploader reports Configured()
// false and every upload fails, which callers treat as "no photo".
type Uploader struct {
	client     *awss3.Client
	bucket     string
	region     string
	configured bool
	now        func() time.Time
}

type Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string

	// OnIAMRole skips the explicit-credentials requirement, for runtimes
	// where the instance role provides them.
	OnIAMRole bool
}

func New(ctx context.Context, cfg Config) (*Uploader, error) {
	const op = "s3.New"

	configured := cfg.Bucket != "" && (cfg.OnIAMRole || (cfg.AccessKeyID != "" && cfg.SecretAccessKey != ""))
	if !configured {
		return &Uploader{configured: false, now: time.Now}, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Uploader{
		client:     awss3.NewFromConfig(awsCfg),
		bucket:     cfg.Bucket,
		region:     cfg.Region,
		configured: true,
		now:        time.Now,
	}, nil
}

// Configured reports whether uploads can succeed.
func (u *Uploader) Configured() bool {
	return u.configured
}

// UploadTurnoPhoto stores a BeeZero shift photo.
// Key: beezero/{tipo}/{turnoID}_{momento}_{unix-millis}.{ext}
func (u *Uploader) UploadTurnoPhoto(ctx context.Context, dataURL, turnoID string, tipo types.PhotoKind, momento types.Momento) (string, error) {
	body, contentType, ext, err := ParseDataURL(dataURL)
	if err != nil {
		metrics.RecordPhotoUpload(serviceName, string(tipo), err)
		return "", err
	}

	prefix := prefixDanos
	if tipo == types.PhotoTablero {
		prefix = prefixTablero
	}
	key := fmt.Sprintf("%s%s_%s_%d.%s", prefix, turnoID, momento, u.now().UnixMilli(), ext)

	return u.put(ctx, key, body, contentType, string(tipo))
}

// UploadEcoTurnoPhoto stores an Ecodelivery shift photo.
// Key: .../Turnos/{username}_{YYYY-MM-DD}_{HH-mm-ss}_{momento}.{ext}
func (u *Uploader) UploadEcoTurnoPhoto(ctx context.Context, dataURL, username string, momento types.Momento) (string, error) {
	body, contentType, ext, err := ParseDataURL(dataURL)
	if err != nil {
		metrics.RecordPhotoUpload(serviceName, "eco_turno", err)
		return "", err
	}

	now := u.now()
	key := fmt.Sprintf("%s%s_%s_%s_%s.%s",
		prefixEcoTurnos,
		SanitizeUsername(username),
		now.Format("2006-01-02"),
		now.Format("15-04-05"),
		momento,
		ext,
	)

	return u.put(ctx, key, body, contentType, "eco_turno")
}

// UploadEcoDeliveryPhoto stores a delivery photo.
// Key: .../Deliveries/{username}_{YYYY-MM-DD}_{HH-mm-ss}.{ext}
func (u *Uploader) UploadEcoDeliveryPhoto(ctx context.Context, dataURL, username string) (string, error) {
	body, contentType, ext, err := ParseDataURL(dataURL)
	if err != nil {
		metrics.RecordPhotoUpload(serviceName, "eco_delivery", err)
		return "", err
	}

	now := u.now()
	key := fmt.Sprintf("%s%s_%s_%s.%s",
		prefixEcoDeliveries,
		SanitizeUsername(username),
		now.Format("2006-01-02"),
		now.Format("15-04-05"),
		ext,
	)

	return u.put(ctx, key, body, contentType, "eco_delivery")
}

func (u *Uploader) put(ctx context.Context, key string, body []byte, contentType, kind string) (string, error) {
	const op = "s3.put"

	if !u.configured {
		return "", types.ErrS3NotConfigured
	}

	ctx, cancel := putCtx(ctx)
	defer cancel()

	_, err := u.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	metrics.RecordPhotoUpload(serviceName, kind, err)
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionExternalServiceFailed)
		return "", wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	// public URL, assuming a public-read bucket policy
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}

// ParseDataURL decodes a base64 image data URL into its raw bytes,
// content type and file extension.
func ParseDataURL(dataURL string) (body []byte, contentType, ext string, err error) {
	if dataURL == "" {
		return nil, "", "", types.ErrInvalidImage
	}
	m := dataURLRe.FindStringSubmatch(dataURL)
	if m == nil {
		return nil, "", "", types.ErrUnsupportedFormat
	}

	format := m[1]
	body, err = base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return nil, "", "", types.ErrUnsupportedFormat
	}

	ext = format
	if format == "jpeg" || format == "jpg" {
		ext = "jpg"
	}
	return body, "image/" + format, ext, nil
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeUsername makes a username safe for object keys. Anything
// outside [a-zA-Z0-9] becomes an underscore, capped at 64 characters,
// with "biker" as the fallback for empty names.
func SanitizeUsername(username string) string {
	s := nonAlnum.ReplaceAllString(username, "_")
	if len(s) > 64 {
		s = s[:64]
	}
	if s == "" {
		return "biker"
	}
	return s
}
