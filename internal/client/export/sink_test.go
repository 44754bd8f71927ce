package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	loc, err := FileSink{Dir: dir}.Put(context.Background(), "../escape/report.csv", []byte("a,b\n"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "report.csv"), loc)
	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestFileSink_Errors(t *testing.T) {
	_, err := FileSink{Dir: t.TempDir()}.Put(context.Background(), "", []byte("x"))
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FileSink{Dir: t.TempDir()}.Put(ctx, "a.csv", []byte("x"))
	require.ErrorIs(t, err, context.Canceled)
}

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Put(t *testing.T) {
	fp := &fakePutter{}
	s := &S3Sink{bucket: "exports", client: fp, now: func() time.Time { return time.Date(2024, 7, 4, 23, 0, 0, 0, time.UTC) }}

	loc, err := s.Put(context.Background(), "email_logs.csv", []byte("csv"))
	require.NoError(t, err)

	require.NotNil(t, fp.in)
	assert.Equal(t, "exports", aws.ToString(fp.in.Bucket))
	assert.Equal(t, "text/csv", aws.ToString(fp.in.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(fp.in.ContentLength))
	assert.Equal(t, "csv", string(fp.body))

	key := aws.ToString(fp.in.Key)
	assert.Regexp(t, regexp.MustCompile(`^exports/2024/07/04/[0-9a-f-]{36}-email_logs\.csv$`), key)
	assert.Equal(t, "s3://exports/"+key, loc)
}

func TestS3Sink_PutError(t *testing.T) {
	s := &S3Sink{bucket: "b", client: &fakePutter{err: errors.New("denied")}, now: time.Now}
	_, err := s.Put(context.Background(), "x.csv", []byte("x"))
	require.ErrorContains(t, err, "denied")
}

func TestNewS3Sink_WiresConfig(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-central-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "minioadmin", creds.AccessKeyID)
		return aws.Config{}, nil
	}

	var captured s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&captured)
		}
		return &s3.Client{}
	}

	s, err := NewS3Sink(context.Background(), S3Config{
		Bucket: "b", Region: "eu-central-1", Endpoint: "http://127.0.0.1:9000",
		AccessKey: "minioadmin", SecretKey: "minioadmin",
	})
	require.NoError(t, err)
	assert.NotNil(t, s)
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(captured.BaseEndpoint))
	assert.True(t, captured.UsePathStyle)
}

func TestNewS3Sink_Errors(t *testing.T) {
	_, err := NewS3Sink(context.Background(), S3Config{})
	require.Error(t, err)

	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}
	_, err = NewS3Sink(context.Background(), S3Config{Bucket: "b"})
	require.ErrorContains(t, err, "load aws config")
}
