// Package cms defines the boundary to the content management system and a
// REST client implementing it. The creators only depend on the AssetCreator
// interface; everything behind it is the CMS collaborator's concern.
package cms

import "context"

// AssetCreator creates a remote asset by copying a pre-configured template
// and renaming it under the given parent. It returns the new asset's remote
// identifier. Implementations must be safe for concurrent use and safe to
// call again with the same arguments; deduplication lives in the state
// store, not here.
type AssetCreator interface {
	CreateAssetCopy(ctx context.Context, templateID, parentID, name string) (string, error)
}
