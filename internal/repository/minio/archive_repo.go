package minio

import (
	"bytes"
	"context"

	"github.com/DRSN-tech/credit-simulator/internal/cfg"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

const jsonContentType = "application/json"

// ArchiveRepo хранит JSON-события симуляций в MinIO.
type ArchiveRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewArchiveRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ArchiveRepo {
	return &ArchiveRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload сохраняет payload под указанным ключом и возвращает ключ объекта.
func (a *ArchiveRepo) Upload(ctx context.Context, key string, payload []byte) (string, error) {
	reader := bytes.NewReader(payload)

	info, err := a.mc.PutObject(ctx, a.cfg.BucketName, key, reader, int64(len(payload)), minio.PutObjectOptions{
		ContentType: jsonContentType,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}
