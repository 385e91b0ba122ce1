package s3fs

import (
	"errors"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name, bucket, file string
	}{
		{"/s3/keys/lazer/admin.json", "keys", "lazer/admin.json"},
		{"/s3/keys", "keys", ""},
		{"keys/admin.json", "keys", "admin.json"},
	}
	for _, tt := range tests {
		b, f := splitName(tt.name)
		assert.Equal(t, tt.bucket, b, tt.name)
		assert.Equal(t, tt.file, f, tt.name)
	}
}

func TestBrokenFS(t *testing.T) {
	fs := &s3FS{err: errors.New("aws credentials not found")}
	_, err := fs.Open("/s3/keys/admin.json")
	assert.EqualError(t, err, "aws credentials not found")
	_, err = fs.Stat("/s3/keys/admin.json")
	assert.EqualError(t, err, "aws credentials not found")
}

func TestNotExist(t *testing.T) {
	assert.Equal(t, os.ErrNotExist, notExist(awserr.New("NoSuchKey", "gone", nil)))
	assert.Equal(t, os.ErrNotExist, notExist(awserr.New("NotFound", "gone", nil)))
	other := awserr.New("AccessDenied", "no", nil)
	assert.Equal(t, other, notExist(other))
}
