package store

import "context"

// Namespace identifies one of the three logical record spaces. Keys are only
// unique within a namespace.
type Namespace string

const (
	// NamespaceDaily holds one challan snapshot per "{name}__{dd-mm-yyyy}" key.
	NamespaceDaily Namespace = "Daily Agents"
	// NamespaceMonthly holds one monthly summary per "M.R {name} {mm-yy}" key.
	NamespaceMonthly Namespace = "Monthly Agents"
	// NamespaceRoster holds one company roster per "mm-yyyy" key.
	NamespaceRoster Namespace = "All Agents"
)

// KV is the storage substrate: a plain string key-value store with no
// transactions. Read-modify-write sequences (the monthly and roster upserts)
// happen at the value level, one record per key.
type KV interface {
	// Get returns the value stored under key, with found=false when absent.
	Get(ctx context.Context, ns Namespace, key string) (value string, found bool, err error)

	// Put overwrites the value under key unconditionally (last write wins).
	Put(ctx context.Context, ns Namespace, key, value string) error

	// Keys returns every key present in the namespace, in no particular order.
	Keys(ctx context.Context, ns Namespace) ([]string, error)
}
