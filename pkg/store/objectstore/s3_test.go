package objectstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	mock.Mock
	body string
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if params.Body != nil {
		b, _ := io.ReadAll(params.Body)
		m.body = string(b)
	}
	args := m.Called(ctx, aws.ToString(params.Bucket), aws.ToString(params.Key), aws.ToString(params.ContentType))
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func TestUploader_Upload(t *testing.T) {
	// Given
	api := &mockS3{}
	api.On("PutObject", mock.Anything, "reports", "daily/today.csv", ContentTypeCSV).
		Return(&s3.PutObjectOutput{}, nil).Once()
	uploader := NewUploaderWithClient(api, "reports")

	// When
	location, err := uploader.Upload(context.Background(), "daily/today.csv", strings.NewReader("cutoff,client\n"), "")

	// Then
	require.NoError(t, err)
	assert.Equal(t, "s3://reports/daily/today.csv", location)
	assert.Equal(t, "cutoff,client\n", api.body)
	api.AssertExpectations(t)
}

func TestUploader_Upload_Error(t *testing.T) {
	api := &mockS3{}
	api.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("access denied"))
	uploader := NewUploaderWithClient(api, "reports")

	_, err := uploader.Upload(context.Background(), "today.csv", strings.NewReader(""), ContentTypeCSV)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://reports/today.csv")
	assert.Contains(t, err.Error(), "access denied")
}

func TestUploader_Upload_RequiresKey(t *testing.T) {
	uploader := NewUploaderWithClient(&mockS3{}, "reports")

	_, err := uploader.Upload(context.Background(), "", strings.NewReader(""), "")

	assert.Error(t, err)
}

func TestNewUploader_RequiresBucket(t *testing.T) {
	_, err := NewUploader(context.Background(), Settings{Region: "us-east-1"})

	assert.EqualError(t, err, "export bucket is not configured")
}
