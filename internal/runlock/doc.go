// Package runlock keeps two sorter processes from organizing the same root at
// once. Locks are advisory flock files kept in the state directory, never in
// the tree being organized.
package runlock
