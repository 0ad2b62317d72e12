package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"compass-backend/internal/dto"
	"compass-backend/internal/identity"
)

type SystemService interface {
	Status(ctx context.Context) dto.SystemStatusDto
}

type systemService struct {
	commitID string
	db       Pinger
	idp      identity.Client
	logger   *zap.Logger
}

func NewSystemService(commitID string, db Pinger, idp identity.Client, logger *zap.Logger) SystemService {
	return &systemService{commitID: commitID, db: db, idp: idp, logger: logger}
}

const probeTimeout = 3 * time.Second

// Status probes the store and the identity provider; it never fails itself.
func (s *systemService) Status(ctx context.Context) dto.SystemStatusDto {
	return dto.SystemStatusDto{
		CommitID:            s.commitID,
		BackendIsReachable:  true,
		DatabaseIsReachable: s.probe(ctx, "database", s.db.Ping),
		Auth0IsReachable:    s.probe(ctx, "identity", s.idp.Ping),
	}
}

func (s *systemService) probe(ctx context.Context, name string, ping func(context.Context) error) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := ping(ctx); err != nil {
		s.logger.Warn("dependency unreachable", zap.String("dependency", name), zap.Error(err))
		return false
	}
	return true
}
