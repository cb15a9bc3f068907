package sql

// Migrations brings the schema of db up to date.
type Migrations func(Executor) error
