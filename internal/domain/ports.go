package domain

import "time"

// ConfigLoader reads the till configuration from a project directory.
type ConfigLoader interface {
	Load(projectPath string) (POSConfig, error)
}

// IDGenerator issues unique invoice ids that sort by creation order.
type IDGenerator interface {
	NextID() string
}

// Clock supplies timestamps for invoices and voids.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Authorizer checks a credential against an access gate.
type Authorizer interface {
	Check(credential string) error
}

// RevisionSource reports the commit a config directory is checked out at.
type RevisionSource interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}

// SummaryArchive stores end-of-run ledger summaries.
type SummaryArchive interface {
	Save(projectPath string, entry SummaryEntry) error
	Load(projectPath string) ([]SummaryEntry, error)
}
