package kv

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	redis "github.com/redis/go-redis/v9"
)

// checkStore runs the behavior every backend must have.
func checkStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "doc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.Put(ctx, "doc", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put(ctx, "doc", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}
	got, err := s.Get(ctx, "doc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if want := `{"a":2}`; string(got) != want {
		t.Errorf("Get() = %s, want %s", got, want)
	}
	if err := s.Put(ctx, "", []byte("x")); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Put(empty key) error = %v, want ErrInvalidKey", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestMemory(t *testing.T) {
	checkStore(t, NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	value := []byte("abc")
	m.Put(ctx, "k", value)
	value[0] = 'z'
	got, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value changed with the caller's slice: %s", got)
	}
}

func TestFS(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS() error = %v", err)
	}
	checkStore(t, s)

	if _, err := os.Stat(filepath.Join(dir, "doc.json")); err != nil {
		t.Errorf("value file not written: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("got %d files in store directory, want 1 (temporary files must be removed)", len(entries))
	}
}

func TestFSRejectsEscapingKeys(t *testing.T) {
	s, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"../doc", "a/b", `a\b`, ".."} {
		if err := s.Put(context.Background(), key, []byte("x")); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Put(%q) error = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	checkStore(t, s)
}

func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")
	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "doc", []byte("persisted")); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, err := s.Get(ctx, "doc")
	if err != nil || string(got) != "persisted" {
		t.Errorf("Get() after reopen = %q, %v", got, err)
	}
}

func TestPostgresRequiresURL(t *testing.T) {
	if _, err := OpenPostgres(context.Background(), ""); err == nil {
		t.Error("OpenPostgres(\"\") succeeded, want an error")
	}
}

// fakeRedis implements redisClient on a map.
type fakeRedis struct {
	mu     sync.Mutex
	values map[string]string
	ttl    time.Duration
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = string(value.([]byte))
	f.ttl = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Close() error { return nil }

func TestRedis(t *testing.T) {
	fake := &fakeRedis{values: map[string]string{}, ttl: -1}
	checkStore(t, &Redis{client: fake})
	if fake.ttl != 0 {
		t.Errorf("Set() expiration = %v, want 0 (no expiration)", fake.ttl)
	}
}

// fakeS3 implements s3API on a map.
type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	v, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(v))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	v, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = v
	return &s3.PutObjectOutput{}, nil
}

func TestS3(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	checkStore(t, &S3{client: fake, bucket: "ledger", prefix: "gpl/"})
	if _, ok := fake.objects["ledger/gpl/doc.json"]; !ok {
		t.Errorf("object not stored under its prefixed key, got %v", fake.objects)
	}
}

func TestOpenS3RequiresBucket(t *testing.T) {
	if _, err := OpenS3(context.Background(), S3Config{}); err == nil {
		t.Error("OpenS3() without bucket succeeded, want an error")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		cfg     Config
		want    Driver
		wantErr bool
	}{
		{cfg: Config{Driver: DriverMemory}, want: DriverMemory},
		{cfg: Config{Driver: DriverFS, Path: t.TempDir()}, want: DriverFS},
		{cfg: Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "x.db")}, want: DriverSQLite},
		{cfg: Config{Driver: "mongo"}, wantErr: true},
	}
	for _, tc := range tests {
		s, err := Open(ctx, tc.cfg)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownDriver) {
				t.Errorf("Open(%q) error = %v, want ErrUnknownDriver", tc.cfg.Driver, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Open(%q) error = %v", tc.cfg.Driver, err)
			continue
		}
		if s.Driver() != tc.want {
			t.Errorf("Open(%q).Driver() = %q, want %q", tc.cfg.Driver, s.Driver(), tc.want)
		}
		s.Close()
	}
}

func TestParseDriver(t *testing.T) {
	for _, s := range []string{"fs", "Memory", " sqlite ", "postgres", "REDIS", "s3"} {
		if _, err := ParseDriver(s); err != nil {
			t.Errorf("ParseDriver(%q) error = %v", s, err)
		}
	}
	if _, err := ParseDriver("mysql"); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("ParseDriver(mysql) error = %v, want ErrUnknownDriver", err)
	}
}
