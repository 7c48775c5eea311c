package memory

import (
	"go.uber.org/fx"

	"github.com/polkiloo/checkin/internal/domain/repository"
)

// Module wires in-memory report storage.
var Module = fx.Provide(
	New,
	func(s *Storage) repository.ReportRepository { return s },
)
