package vaultfs

import (
	"bytes"
	"errors"
	"os"
	"path"
	"sync"
	"time"

	"go4.org/wkfs"

	"github.com/pyth-network/lazer-admin/helpers/vault"
)

var (
	once sync.Once
	fsys = &vaultFS{err: errors.New("no vault configuration found")}
)

// Register the /vault/ filesystem as a well-known filesystem.
// Registering again replaces the vault client used by the filesystem.
func Register(address, token string) {
	once.Do(func() {
		wkfs.RegisterFS(vault.Prefix, fsys)
	})
	if address == "" {
		fsys.set(nil, errors.New("no vault configuration found"))
		return
	}
	client, err := vault.NewClient(address, token)
	fsys.set(client, err)
}

type vaultFS struct {
	mu     sync.RWMutex
	err    error
	client *vault.Client
}

func (fs *vaultFS) set(client *vault.Client, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.client = client
	fs.err = err
}

func (fs *vaultFS) read(name string) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if fs.err != nil {
		return "", fs.err
	}
	return fs.client.Read(name)
}

// Open opens the named file for reading.
func (fs *vaultFS) Open(name string) (wkfs.File, error) {
	secret, err := fs.read(name)
	if err != nil {
		return nil, err
	}
	return &file{
		name:   name,
		Reader: bytes.NewReader([]byte(secret)),
	}, nil
}

func (fs *vaultFS) Stat(name string) (os.FileInfo, error) { return fs.Lstat(name) }
func (fs *vaultFS) Lstat(name string) (os.FileInfo, error) {
	secret, err := fs.read(name)
	if err != nil {
		return nil, err
	}
	return &statInfo{
		name: path.Base(name),
		size: int64(len(secret)),
	}, nil
}

func (fs *vaultFS) MkdirAll(path string, perm os.FileMode) error { return nil }

func (fs *vaultFS) OpenFile(name string, flag int, perm os.FileMode) (wkfs.FileWriter, error) {
	return nil, errors.New("not implemented")
}

func (fs *vaultFS) Remove(path string) error {
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
