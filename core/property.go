package core

import "context"

// PropertyStore keeps small json encoded values by name. Get leaves value
// untouched when the name is unknown.
type PropertyStore interface {
	Get(ctx context.Context, name string, value any) error
	Set(ctx context.Context, name string, value any) error
}
