package editor

// Ghost is the single pending text entry of an edit session. It is one of
// GhostEmpty, GhostQuestionNumber, GhostGroupName or GhostTag.
type Ghost interface {
	ghost()
	// Value is the text typed so far.
	Value() string
}

// GhostEmpty means no edit is pending.
type GhostEmpty struct{}

// GhostQuestionNumber is a new question number being typed.
type GhostQuestionNumber struct {
	Text string
}

// GhostGroupName is a new group name for Question, or a rename of
// RenameTarget when it is set.
type GhostGroupName struct {
	Question     uint32
	Text         string
	RenameTarget *string
}

// GhostTag is a new tag being typed into Group of Question.
type GhostTag struct {
	Question uint32
	Text     string
	Group    string
}

func (GhostEmpty) ghost()          {}
func (GhostQuestionNumber) ghost() {}
func (GhostGroupName) ghost()      {}
func (GhostTag) ghost()            {}

func (GhostEmpty) Value() string            { return "" }
func (g GhostQuestionNumber) Value() string { return g.Text }
func (g GhostGroupName) Value() string      { return g.Text }
func (g GhostTag) Value() string            { return g.Text }

// IsRename reports whether the ghost renames an existing group.
func (g GhostGroupName) IsRename() bool {
	return g.RenameTarget != nil
}

// withText returns g holding text. GhostEmpty ignores text.
func withText(g Ghost, text string) Ghost {
	switch g := g.(type) {
	case GhostQuestionNumber:
		g.Text = text
		return g
	case GhostGroupName:
		g.Text = text
		return g
	case GhostTag:
		g.Text = text
		return g
	default:
		return GhostEmpty{}
	}
}

// Reason explains the outcome of a commit.
type Reason string

const (
	ReasonApplied      Reason = "applied"
	ReasonEmpty        Reason = "no pending edit"
	ReasonBlank        Reason = "blank input"
	ReasonParseFailure Reason = "not a question number"
	ReasonDuplicate    Reason = "group already exists"
	ReasonStaleTarget  Reason = "target no longer exists"
)

// CommitResult reports what a commit did.
type CommitResult struct {
	Applied bool
	Reason  Reason
	// Ghost is the pending edit that was committed or discarded.
	Ghost Ghost
}
