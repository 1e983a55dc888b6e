package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeObjectStore keeps objects in memory and pages listings two at a time.
type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectStore) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjectStore) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if in.ContinuationToken != nil {
		for start < len(keys) && keys[start] <= *in.ContinuationToken {
			start++
		}
	}
	end := start + 2
	if end > len(keys) {
		end = len(keys)
	}

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	modified := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(k),
			Size:         aws.Int64(int64(len(f.objects[k]))),
			LastModified: aws.Time(modified),
		})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end-1])
	}
	return out, nil
}

func TestBackupCreateAndGet(t *testing.T) {
	store, _ := seedBusiness(t)
	objects := newFakeObjectStore()
	svc := NewBackupService(NewDashboardService(store), objects, "smartbiz", "backups/")
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.Key, "backups/"))
	assert.True(t, strings.HasSuffix(created.Key, ".json"))
	assert.Positive(t, created.Size)

	snap, err := svc.Get(ctx, created.Key)
	require.NoError(t, err)
	assert.Len(t, snap.Inventory, 2)
	assert.Len(t, snap.Customers, 3)
	assert.Len(t, snap.Sales, 6)
	assert.InDelta(t, 1250.25, snap.PendingPaymentsTotal, 1e-9)
}

func TestBackupListPagesNewestFirst(t *testing.T) {
	objects := newFakeObjectStore()
	for _, k := range []string{"backups/2024-01-01_000000.json", "backups/2024-03-01_000000.json", "backups/2024-02-01_000000.json", "other/x.json"} {
		objects.objects[k] = []byte("{}")
	}
	svc := NewBackupService(nil, objects, "smartbiz", "backups/")

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "backups/2024-03-01_000000.json", list[0].Key)
	assert.Equal(t, "backups/2024-01-01_000000.json", list[2].Key)
	assert.Equal(t, "2024-01-01T00:00:00Z", list[0].LastModified)
}

func TestBackupListEmptyIsNotNil(t *testing.T) {
	svc := NewBackupService(nil, newFakeObjectStore(), "smartbiz", "backups/")
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestBackupGetRejectsForeignKeys(t *testing.T) {
	svc := NewBackupService(nil, newFakeObjectStore(), "smartbiz", "backups/")

	_, err := svc.Get(context.Background(), "other/x.json")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Get(context.Background(), "backups/../other/x.json")
	assert.ErrorAs(t, err, &verr)
}

func TestBackupDisabled(t *testing.T) {
	svc := NewBackupService(nil, nil, "", "backups/")
	ctx := context.Background()

	_, err := svc.Create(ctx)
	assert.ErrorIs(t, err, ErrBackupDisabled)
	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, ErrBackupDisabled)
	_, err = svc.Get(ctx, "backups/x.json")
	assert.ErrorIs(t, err, ErrBackupDisabled)
}
