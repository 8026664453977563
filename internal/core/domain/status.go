package domain

// Status is the lifecycle state shared by campaigns, ad sets and ads.
// Deleted is terminal: no entity ever transitions out of it. Rows are
// never physically removed; deletion is a switch to Deleted.
type Status string

const (
	StatusActive  Status = "Active"
	StatusPaused  Status = "Paused"
	StatusDeleted Status = "Deleted"
)

// Switchable reports whether s may be requested through a status switch
// command. Deleted is reachable only through the delete commands.
func (s Status) Switchable() bool {
	return s == StatusActive || s == StatusPaused
}
