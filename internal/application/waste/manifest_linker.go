package waste

import (
	"context"

	"github.com/wasteworks/backend/internal/domain/waste"
)

// ManifestLinker is an optional capability: deployments that run a
// regulatory manifest module can link confirmed receptions to their
// manifests. When no linker is installed the workflow simply skips the
// step; linking failures are logged and never fail the confirmation.
type ManifestLinker interface {
	// LinkReception associates a confirmed reception with its manifest
	LinkReception(ctx context.Context, reception *waste.Reception) error
}
