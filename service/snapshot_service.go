package service

import (
	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/internal/snapshot"
)

// SnapshotServiceImpl implements domain.SnapshotService over internal/snapshot.
type SnapshotServiceImpl struct{}

func NewSnapshotService() *SnapshotServiceImpl {
	return &SnapshotServiceImpl{}
}

func (s *SnapshotServiceImpl) Save(path string, snap *domain.Snapshot) error {
	return snapshot.Save(path, snap)
}

func (s *SnapshotServiceImpl) Load(path string) (*domain.Snapshot, error) {
	return snapshot.Load(path)
}
