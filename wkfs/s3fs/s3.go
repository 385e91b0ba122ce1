package s3fs

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"go4.org/wkfs"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Prefix marks paths served from S3.
const Prefix = "/s3/"

var (
	once sync.Once
	fsys = &s3FS{err: errors.New("aws credentials not found")}
)

// Register the /s3/ filesystem as a well-known filesystem.
// Registering again replaces the S3 client used by the filesystem.
func Register(region, accessKey, secretKey string) {
	once.Do(func() {
		wkfs.RegisterFS(Prefix, fsys)
	})
	ac := &aws.Config{}
	// If region is unset the SDK will attempt to read the region from the environment.
	if region != "" {
		ac.Region = aws.String(region)
	}
	// Attempt to get credentials from the lazer-admin config.
	// Otherwise check for standard credentials. If neither are present register the fs as broken.
	if accessKey != "" && secretKey != "" {
		ac.Credentials = credentials.NewStaticCredentials(accessKey, secretKey, "")
	} else {
		sess, err := session.NewSession()
		if err != nil {
			fsys.set(nil, err)
			return
		}
		if _, err := sess.Config.Credentials.Get(); err != nil {
			fsys.set(nil, errors.New("aws credentials not found"))
			return
		}
	}
	sess, err := session.NewSession(ac)
	if err != nil {
		fsys.set(nil, err)
		return
	}
	sc := s3.New(sess)
	if aws.StringValue(sc.Config.Region) == "" {
		fsys.set(nil, errors.New("aws region configuration not found"))
		return
	}
	fsys.set(sc, nil)
}

type s3FS struct {
	mu  sync.RWMutex
	sc  *s3.S3
	err error
}

func (fs *s3FS) set(sc *s3.S3, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.sc = sc
	fs.err = err
}

func (fs *s3FS) parseName(name string) (sc *s3.S3, bucket, fileName string, err error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if fs.err != nil {
		return nil, "", "", fs.err
	}
	bucket, fileName = splitName(name)
	return fs.sc, bucket, fileName, nil
}

func splitName(name string) (bucket, fileName string) {
	name = strings.TrimPrefix(name, Prefix)
	i := strings.Index(name, "/")
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i+1:]
}

// Open opens the named file for reading.
func (fs *s3FS) Open(name string) (wkfs.File, error) {
	sc, bucket, fileName, err := fs.parseName(name)
	if err != nil {
		return nil, err
	}
	obj, err := sc.GetObject(&s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &fileName,
	})
	if err != nil {
		return nil, notExist(err)
	}
	defer obj.Body.Close()
	slurp, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, err
	}
	return &file{
		name:   name,
		Reader: bytes.NewReader(slurp),
	}, nil
}

func (fs *s3FS) Stat(name string) (os.FileInfo, error) { return fs.Lstat(name) }
func (fs *s3FS) Lstat(name string) (os.FileInfo, error) {
	sc, bucket, fileName, err := fs.parseName(name)
	if err != nil {
		return nil, err
	}
	obj, err := sc.HeadObject(&s3.HeadObjectInput{
		Bucket: &bucket,
		Key:    &fileName,
	})
	if err != nil {
		return nil, notExist(err)
	}
	return &statInfo{
		name:    path.Base(fileName),
		size:    aws.Int64Value(obj.ContentLength),
		modtime: aws.TimeValue(obj.LastModified),
	}, nil
}

func notExist(err error) error {
	if awsErr, ok := err.(awserr.Error); ok {
		switch awsErr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return os.ErrNotExist
		}
	}
	return err
}

func (fs *s3FS) MkdirAll(path string, perm os.FileMode) error { return nil }

func (fs *s3FS) OpenFile(name string, flag int, perm os.FileMode) (wkfs.FileWriter, error) {
	return nil, errors.New("not implemented")
}

func (fs *s3FS) Remove(path string) error {
	return errors.New("not implemented")
}

type statInfo struct {
	name    string
	size    int64
	isDir   bool
	modtime time.Time
}

func (si *statInfo) IsDir() bool        { return si.isDir }
func (si *statInfo) ModTime() time.Time { return si.modtime }
func (si *statInfo) Mode() os.FileMode  { return 0400 }
func (si *statInfo) Name() string       { return path.Base(si.name) }
func (si *statInfo) Size() int64        { return si.size }
func (si *statInfo) Sys() interface{}   { return nil }

type file struct {
	name string
	*bytes.Reader
}

func (*file) Close() error   { return nil }
func (f *file) Name() string { return path.Base(f.name) }
func (f *file) Stat() (os.FileInfo, error) {
	return &statInfo{name: f.name, size: f.Size()}, nil
}
