package catalog

import (
	"bytes"
	"context"
	"io"
	"testing"

	"bookdrop/core/storage"
	"bookdrop/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func enabledConfig() storage.Config {
	return storage.Config{Enabled: true, Bucket: "bookdrop"}
}

func TestCoversDisabled(t *testing.T) {
	covers := NewCovers(nil, storage.Config{Enabled: false, Bucket: "bookdrop"}, zap.NewNop())

	assert.False(t, covers.Enabled())
	assert.NoError(t, covers.EnsureBucket(context.Background()))

	err := covers.Upload(context.Background(), 1, bytes.NewReader([]byte("jpeg")), 4, "image/jpeg")
	assert.ErrorIs(t, err, ErrStorageDisabled)

	_, _, err = covers.Fetch(context.Background(), 1)
	assert.ErrorIs(t, err, ErrStorageDisabled)

	err = covers.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestEnsureBucketCreatesWhenMissing(t *testing.T) {
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "bookdrop").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "bookdrop", mock.Anything).Return(nil)

	covers := NewCovers(client, enabledConfig(), zap.NewNop())
	assert.NoError(t, covers.EnsureBucket(context.Background()))
	client.AssertExpectations(t)
}

func TestEnsureBucketSkipsExisting(t *testing.T) {
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "bookdrop").Return(true, nil)

	covers := NewCovers(client, enabledConfig(), zap.NewNop())
	assert.NoError(t, covers.EnsureBucket(context.Background()))
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadStoresUnderCoverKey(t *testing.T) {
	client := &mocks.Client{}
	client.On("PutObject", mock.Anything, "bookdrop", "covers/7.jpg",
		mock.Anything, int64(4), mock.Anything).Return(minio.UploadInfo{}, nil)

	covers := NewCovers(client, enabledConfig(), zap.NewNop())
	err := covers.Upload(context.Background(), 7, bytes.NewReader([]byte("jpeg")), 4, "image/jpeg")
	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestFetchMissingCover(t *testing.T) {
	client := &mocks.Client{}
	client.On("StatObject", mock.Anything, "bookdrop", "covers/7.jpg", mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

	covers := NewCovers(client, enabledConfig(), zap.NewNop())
	_, _, err := covers.Fetch(context.Background(), 7)
	assert.ErrorIs(t, err, ErrCoverNotFound)
}

func TestFetchStreamsCover(t *testing.T) {
	client := &mocks.Client{}
	client.On("StatObject", mock.Anything, "bookdrop", "covers/7.jpg", mock.Anything).
		Return(minio.ObjectInfo{Size: 4, ContentType: "image/jpeg"}, nil)
	client.On("GetObject", mock.Anything, "bookdrop", "covers/7.jpg", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("jpeg"))), nil)

	covers := NewCovers(client, enabledConfig(), zap.NewNop())
	obj, info, err := covers.Fetch(context.Background(), 7)
	require.NoError(t, err)
	defer obj.Close()

	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)
	assert.Equal(t, int64(4), info.Size)
}

func TestDeleteCover(t *testing.T) {
	client := &mocks.Client{}
	client.On("RemoveObject", mock.Anything, "bookdrop", "covers/7.jpg", mock.Anything).Return(nil)

	covers := NewCovers(client, enabledConfig(), zap.NewNop())
	assert.NoError(t, covers.Delete(context.Background(), 7))
	client.AssertExpectations(t)
}
