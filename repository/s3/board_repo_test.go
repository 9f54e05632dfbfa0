package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/kanban/domain"
)

type fakeObjects struct {
	objects map[string][]byte
	putErr  error
	headErr error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}}
}

func (f *fakeObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "missing"}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.headErr
}

func TestBoardRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	objects := newFakeObjects()
	repo := NewBoardRepository(objects, "kanban", "board")

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	board := domain.Board{Columns: []domain.Column{
		{ID: "c1", Title: "in progress", Cards: []domain.Card{{ID: "k1", Title: "new card (1)"}}},
	}}
	require.NoError(t, repo.Save(ctx, &board))
	require.Contains(t, objects.objects, "kanban/board.json")

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, board, *loaded)
}

func TestBoardRepository_Errors(t *testing.T) {
	ctx := context.Background()
	objects := newFakeObjects()
	repo := NewBoardRepository(objects, "kanban", "board")

	objects.objects["kanban/board.json"] = []byte(`{"columns":null}`)
	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, domain.ErrCorruptSnapshot)

	objects.putErr = errors.New("connection refused")
	err = repo.Save(ctx, &domain.Board{Columns: []domain.Column{}})
	require.ErrorIs(t, err, objects.putErr)

	objects.headErr = errors.New("timeout")
	require.Error(t, repo.Ping(ctx))
}
