package s3

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	s3_provider "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	body string
	err  error
	got  *s3_provider.GetObjectInput
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3_provider.GetObjectInput, _ ...func(*s3_provider.Options)) (*s3_provider.GetObjectOutput, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3_provider.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestDownload(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "nested", "questions.xlsx")
	g := &fakeGetter{body: "workbook bytes"}

	require.NoError(t, Download(context.Background(), g, "quiz", "catalog/questions.xlsx", dst))

	assert.Equal(t, "quiz", *g.got.Bucket)
	assert.Equal(t, "catalog/questions.xlsx", *g.got.Key)
	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "workbook bytes", string(b))

	entries, err := os.ReadDir(filepath.Dir(dst))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestDownload_Failures(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "questions.xlsx")

	err := Download(context.Background(), &fakeGetter{}, " ", "k", dst)
	assert.Error(t, err)

	boom := errors.New("NoSuchKey")
	err = Download(context.Background(), &fakeGetter{err: boom}, "quiz", "k", dst)
	assert.ErrorIs(t, err, boom)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}
