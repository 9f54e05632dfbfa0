package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/fastygo/kanban/domain"
	"github.com/fastygo/kanban/repository"
)

// ObjectAPI is the subset of the S3 client the repository needs.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type boardRepository struct {
	client ObjectAPI
	bucket string
	key    string
}

// NewBoardRepository stores the snapshot as <namespace>.json in bucket.
func NewBoardRepository(client ObjectAPI, bucket, namespace string) repository.BoardRepository {
	return &boardRepository{
		client: client,
		bucket: bucket,
		key:    namespace + ".json",
	}
}

func (r *boardRepository) Load(ctx context.Context) (*domain.Board, error) {
	resp, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("get %s: %w", r.key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.key, err)
	}
	return repository.UnmarshalBoard(data)
}

func (r *boardRepository) Save(ctx context.Context, board *domain.Board) error {
	payload, err := repository.MarshalBoard(board)
	if err != nil {
		return err
	}
	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", r.key, err)
	}
	return nil
}

func (r *boardRepository) Ping(ctx context.Context) error {
	_, err := r.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(r.bucket)})
	return err
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}
