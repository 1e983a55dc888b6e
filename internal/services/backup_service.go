package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"smartbiz-backend/internal/config"
	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/timeutil"
)

var ErrBackupDisabled = errors.New("backups are not configured")

// ObjectStore is the subset of the S3 API used for snapshots. *s3.Client
// satisfies it.
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// NewS3Client builds a client for any S3-compatible store (AWS, R2, MinIO).
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Backup.AccessKey,
			cfg.Backup.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Backup.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure backup client: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Backup.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// BackupSnapshot is the JSON document written for every backup.
type BackupSnapshot struct {
	TakenAt              string                  `json:"takenAt"`
	Inventory            []*models.InventoryItem `json:"inventory"`
	Customers            []*models.Customer      `json:"customers"`
	Sales                []*models.SalesRecord   `json:"sales"`
	PendingPaymentsTotal float64                 `json:"pendingPaymentsTotal"`
}

type BackupService struct {
	Dashboard *DashboardService
	Store     ObjectStore
	Bucket    string
	Prefix    string
}

// NewBackupService returns a service whose calls fail with ErrBackupDisabled
// when store is nil.
func NewBackupService(dashboard *DashboardService, store ObjectStore, bucket, prefix string) *BackupService {
	return &BackupService{Dashboard: dashboard, Store: store, Bucket: bucket, Prefix: prefix}
}

func (s *BackupService) enabled() bool {
	return s != nil && s.Store != nil && s.Bucket != ""
}

// Create reads every table and uploads the result as one JSON object.
func (s *BackupService) Create(ctx context.Context) (*models.BackupObject, error) {
	if !s.enabled() {
		return nil, ErrBackupDisabled
	}

	snap, err := s.Dashboard.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	body, err := json.Marshal(BackupSnapshot{
		TakenAt:              now.Format(time.RFC3339),
		Inventory:            snap.Inventory,
		Customers:            snap.Customers,
		Sales:                snap.Sales,
		PendingPaymentsTotal: snap.PendingPayments,
	})
	if err != nil {
		return nil, err
	}

	key := s.Prefix + now.Format(timeutil.FileLayout) + ".json"
	_, err = s.Store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	log.Printf("[Backup] Uploaded %s (%d bytes, %d products, %d customers, %d sales)",
		key, len(body), len(snap.Inventory), len(snap.Customers), len(snap.Sales))
	return &models.BackupObject{Key: key, Size: int64(len(body)), LastModified: now.Format(time.RFC3339)}, nil
}

// List returns stored snapshots, newest first.
func (s *BackupService) List(ctx context.Context) ([]models.BackupObject, error) {
	if !s.enabled() {
		return nil, ErrBackupDisabled
	}

	var backups []models.BackupObject
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.Bucket),
		Prefix: aws.String(s.Prefix),
	}
	for {
		out, err := s.Store.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", err)
		}
		for _, obj := range out.Contents {
			b := models.BackupObject{Key: aws.ToString(obj.Key), Size: aws.ToInt64(obj.Size)}
			if obj.LastModified != nil {
				b.LastModified = obj.LastModified.Format(time.RFC3339)
			}
			backups = append(backups, b)
		}
		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}

	// Keys embed the timestamp, so key order is time order.
	slices.SortFunc(backups, func(a, b models.BackupObject) int {
		return strings.Compare(b.Key, a.Key)
	})
	if backups == nil {
		backups = []models.BackupObject{}
	}
	return backups, nil
}

// Get downloads one snapshot. Keys outside the backup prefix are rejected.
func (s *BackupService) Get(ctx context.Context, key string) (*BackupSnapshot, error) {
	if !s.enabled() {
		return nil, ErrBackupDisabled
	}
	if !strings.HasPrefix(key, s.Prefix) || strings.Contains(key, "..") {
		return nil, invalid("key", "is not a snapshot key")
	}

	out, err := s.Store.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, err
	}
	var snap BackupSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("snapshot %s is corrupt: %w", key, err)
	}
	return &snap, nil
}

// RunSchedule takes a snapshot every interval until ctx is done.
func (s *BackupService) RunSchedule(ctx context.Context, interval time.Duration) {
	if !s.enabled() || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			if _, err := s.Create(runCtx); err != nil {
				log.Printf("[Backup] Scheduled snapshot failed: %v", err)
			}
			cancel()
		}
	}
}
