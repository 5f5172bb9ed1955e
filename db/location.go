package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	ErrInvalidLocation  = errors.New("invalid location")
	ErrReadOnlyLocation = errors.New("location cannot be written")
)

type LocationKind int

const (
	LocalLocation LocationKind = iota
	HTTPLocation
	S3Location
)

// Location is where a script is read from or a transcript is written to.
// Local locations carry a filesystem path, HTTP locations the full URL and
// S3 locations a bucket and key.
type Location struct {
	Kind   LocationKind
	Path   string
	Bucket string
	Key    string
}

func (location Location) String() string {
	if location.Kind == S3Location {
		return "s3://" + location.Bucket + "/" + location.Key
	}
	return location.Path
}

// ParseLocation accepts a plain path, file://path, http(s)://... or
// s3://bucket/key. Schemes are matched case-insensitively.
func ParseLocation(raw string) (Location, error) {
	scheme, rest, found := strings.Cut(raw, "://")
	if !found {
		if raw == "" {
			return Location{}, fmt.Errorf("%w: empty path", ErrInvalidLocation)
		}
		return Location{Kind: LocalLocation, Path: raw}, nil
	}

	switch strings.ToLower(scheme) {
	case "file":
		if rest == "" {
			return Location{}, fmt.Errorf("%w: %s has no path", ErrInvalidLocation, raw)
		}
		return Location{Kind: LocalLocation, Path: rest}, nil
	case "http", "https":
		return Location{Kind: HTTPLocation, Path: raw}, nil
	case "s3":
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" {
			return Location{}, fmt.Errorf("%w: %s needs a bucket and a key", ErrInvalidLocation, raw)
		}
		return Location{Kind: S3Location, Bucket: bucket, Key: key}, nil
	default:
		return Location{}, fmt.Errorf("%w: unknown scheme %q", ErrInvalidLocation, scheme)
	}
}

// ObjectStore reaches s3:// locations. Unset fields fall back to the
// default AWS configuration chain; Endpoint selects an S3-compatible
// service addressed path-style.
type ObjectStore struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string

	client *s3.Client
}

func (store *ObjectStore) connect(ctx context.Context) (*s3.Client, error) {
	if store.client != nil {
		return store.client, nil
	}

	var loaders []func(*config.LoadOptions) error
	if store.Region != "" {
		loaders = append(loaders, config.WithRegion(store.Region))
	}
	if store.AccessKey != "" && store.SecretKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(store.AccessKey, store.SecretKey, "")))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	store.client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if store.Endpoint != "" {
			o.BaseEndpoint = aws.String(store.Endpoint)
			o.UsePathStyle = true
		}
	})
	return store.client, nil
}

// Open streams the object body.
func (store *ObjectStore) Open(ctx context.Context, bucket string, key string) (io.ReadCloser, error) {
	client, err := store.connect(ctx)
	if err != nil {
		return nil, err
	}

	object, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("reading s3://%s/%s: %w", bucket, key, err)
	}
	return object.Body, nil
}

// Create returns a writer whose content is stored as one object when the
// writer is closed.
func (store *ObjectStore) Create(ctx context.Context, bucket string, key string) (io.WriteCloser, error) {
	client, err := store.connect(ctx)
	if err != nil {
		return nil, err
	}

	return &deferredUpload{upload: func(body []byte) error {
		_, err := client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("text/plain; charset=utf-8"),
		})
		if err != nil {
			return fmt.Errorf("writing s3://%s/%s: %w", bucket, key, err)
		}
		return nil
	}}, nil
}

// deferredUpload collects everything written and hands it to upload once.
type deferredUpload struct {
	bytes.Buffer
	upload func(body []byte) error
	closed bool
}

func (w *deferredUpload) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.upload(w.Bytes())
}

// OpenScript opens the statement stream named by raw. A nil store uses
// the default AWS configuration for s3:// locations.
func OpenScript(ctx context.Context, raw string, store *ObjectStore) (io.ReadCloser, error) {
	location, err := ParseLocation(raw)
	if err != nil {
		return nil, err
	}

	switch location.Kind {
	case HTTPLocation:
		return fetch(ctx, location.Path)
	case S3Location:
		if store == nil {
			store = &ObjectStore{}
		}
		return store.Open(ctx, location.Bucket, location.Key)
	default:
		return os.Open(location.Path)
	}
}

// CreateTranscript opens the transcript destination named by raw. HTTP
// locations are read-only.
func CreateTranscript(ctx context.Context, raw string, store *ObjectStore) (io.WriteCloser, error) {
	location, err := ParseLocation(raw)
	if err != nil {
		return nil, err
	}

	switch location.Kind {
	case HTTPLocation:
		return nil, fmt.Errorf("%w: %s", ErrReadOnlyLocation, location)
	case S3Location:
		if store == nil {
			store = &ObjectStore{}
		}
		return store.Create(ctx, location.Bucket, location.Key)
	default:
		return os.Create(location.Path)
	}
}

func fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if response.StatusCode/100 != 2 {
		response.Body.Close()
		return nil, fmt.Errorf("fetching %s: %s", url, response.Status)
	}
	return response.Body, nil
}
