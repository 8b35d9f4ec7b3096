package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/parts-be/test/helpers"
)

type fakeUploader struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = input
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &manager.UploadOutput{Location: "https://bucket.example/" + aws.ToString(input.Key)}, nil
}

func TestArchiveKey(t *testing.T) {
	at := time.Date(2025, 7, 4, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		prefix     string
		file       string
		wantPrefix string
		wantSuffix string
	}{
		{"plain", "imports", "parts.csv", "imports/2025/07/04/", "-parts.csv"},
		{"no_prefix", "", "parts.csv", "2025/07/04/", "-parts.csv"},
		{"path_traversal", "imports", "../../etc/passwd.csv", "imports/2025/07/04/", "-passwd.csv"},
		{"windows_path", "imports", `C:\Users\me\stock list.csv`, "imports/2025/07/04/", "-stock_list.csv"},
		{"empty_name", "imports", "", "imports/2025/07/04/", "-upload.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := archiveKey(tt.prefix, at, tt.file)
			assert.True(t, strings.HasPrefix(key, tt.wantPrefix), key)
			assert.True(t, strings.HasSuffix(key, tt.wantSuffix), key)
			assert.NotContains(t, key, "..")
		})
	}
}

func TestS3Archive_Archive(t *testing.T) {
	up := &fakeUploader{}
	archive := newS3Archive(up, "parts-uploads", "/imports/", helpers.TestLogger())
	archive.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	key, err := archive.Archive(context.Background(), "parts.csv", []byte("name,price\nA,1\n"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "imports/2025/01/02/"), key)
	assert.Equal(t, "parts-uploads", aws.ToString(up.input.Bucket))
	assert.Equal(t, key, aws.ToString(up.input.Key))
	assert.Equal(t, "text/csv", aws.ToString(up.input.ContentType))
	assert.Equal(t, "parts.csv", up.input.Metadata["original-name"])
	assert.Equal(t, "name,price\nA,1\n", string(up.body))
}

func TestS3Archive_Archive_Error(t *testing.T) {
	archive := newS3Archive(&fakeUploader{err: errors.New("access denied")}, "b", "", helpers.TestLogger())

	_, err := archive.Archive(context.Background(), "parts.csv", []byte("x"))
	assert.ErrorContains(t, err, "access denied")
}

func TestLocalArchive_Archive(t *testing.T) {
	dir := t.TempDir()
	archive := NewLocalArchive(dir, helpers.TestLogger())

	key, err := archive.Archive(context.Background(), "parts.csv", []byte("name\nA\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "name\nA\n", string(data))
}

func TestLocalArchive_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalArchive(t.TempDir(), helpers.TestLogger()).Archive(ctx, "parts.csv", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
