// internal/track/team.go
//
// The fixed set of teams a feature moves through. The order below is the
// display and iteration order everywhere; it is never re-sorted at runtime.

package track

// Team is one of the seven functional groups on the board.
type Team int

const (
	TeamProduct Team = iota
	TeamDesign
	TeamBackend1
	TeamBackend2
	TeamFrontend
	TeamQA
	TeamRelease
)

var teamOrder = []Team{
	TeamProduct,
	TeamDesign,
	TeamBackend1,
	TeamBackend2,
	TeamFrontend,
	TeamQA,
	TeamRelease,
}

// Teams returns the canonical team order. Callers must not mutate the
// returned slice.
func Teams() []Team {
	return teamOrder
}

// TeamCount is the number of teams on the board.
const TeamCount = 7

// Short returns the abbreviated column header for the team.
func (t Team) Short() string {
	switch t {
	case TeamProduct:
		return "Prd"
	case TeamDesign:
		return "Dsn"
	case TeamBackend1:
		return "BE1"
	case TeamBackend2:
		return "BE2"
	case TeamFrontend:
		return "FE"
	case TeamQA:
		return "QA"
	case TeamRelease:
		return "Rel"
	default:
		return "?"
	}
}

// String returns the canonical identifier for the team.
func (t Team) String() string {
	switch t {
	case TeamProduct:
		return "PRODUCT"
	case TeamDesign:
		return "DESIGN"
	case TeamBackend1:
		return "BACKEND_1"
	case TeamBackend2:
		return "BACKEND_2"
	case TeamFrontend:
		return "FRONTEND"
	case TeamQA:
		return "QA"
	case TeamRelease:
		return "RELEASE"
	default:
		return "UNKNOWN"
	}
}

// Label returns the display name used in headers and menus.
func (t Team) Label() string {
	switch t {
	case TeamProduct:
		return "Product"
	case TeamDesign:
		return "Design"
	case TeamBackend1:
		return "Backend 1"
	case TeamBackend2:
		return "Backend 2"
	case TeamFrontend:
		return "Frontend"
	case TeamQA:
		return "QA"
	case TeamRelease:
		return "Release"
	default:
		return t.String()
	}
}
