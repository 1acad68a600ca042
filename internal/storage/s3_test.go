package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdp-hub/tdp-report-services/internal/appconfig"
)

type MockPresigner struct {
	mock.Mock
}

func (m *MockPresigner) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*PresignedRequest, error) {
	args := m.Called(params)
	if req, ok := args.Get(0).(*PresignedRequest); ok {
		return req, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*PresignedRequest, error) {
	args := m.Called(params)
	if req, ok := args.Get(0).(*PresignedRequest); ok {
		return req, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestPresignUpload(t *testing.T) {
	presigner := new(MockPresigner)
	store := NewFileStoreWithPresigner(presigner, "tdp-datafiles", time.Minute)

	presigner.On("PresignPutObject", mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "tdp-datafiles" && aws.ToString(in.Key) == "data_files/3/a.txt"
	})).Return(&PresignedRequest{URL: "https://s3.example.com/put"}, nil)

	url, err := store.PresignUpload(context.Background(), "data_files/3/a.txt")

	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/put", url)
	presigner.AssertExpectations(t)
}

func TestPresignDownload_Error(t *testing.T) {
	presigner := new(MockPresigner)
	store := NewFileStoreWithPresigner(presigner, "tdp-datafiles", time.Minute)

	presigner.On("PresignGetObject", mock.Anything).Return(nil, errors.New("no credentials"))

	_, err := store.PresignDownload(context.Background(), "data_files/3/a.txt")

	assert.Error(t, err)
}

func TestNewFileStore_PresignsWithConfiguredCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "env-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "env-secret")

	store, err := NewFileStore(context.Background(), appconfig.AWSConfig{
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		S3: appconfig.S3Config{
			Bucket:     "tdp-datafiles",
			Endpoint:   "http://localhost:9000",
			PresignTTL: time.Minute,
		},
	})
	require.NoError(t, err)

	url, err := store.PresignDownload(context.Background(), "data_files/3/a.txt")

	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:9000/tdp-datafiles/data_files/3/a.txt")
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Credential=minio%2F")
	assert.NotContains(t, url, "env-key")
}
