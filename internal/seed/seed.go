// internal/seed/seed.go
//
// Demo data for a fresh session. The board is volatile, so without a seed a
// new session opens empty; the fixtures below give the dashboard something
// to show and the analysis something to chew on. Disable via
// board.seed_demo_data in the config.

package seed

import (
	"github.com/kingrea/proflow/internal/track"
)

// Statuses distributes team statuses for a feature that is `progress` of
// the way through the pipeline (0..1). Teams early in the order come out
// COMPLETED, the current stage IN_PROGRESS, the next WAITING, the rest NONE.
func Statuses(progress float64) map[track.Team]track.Status {
	statuses := make(map[track.Team]track.Status, track.TeamCount)
	for i, team := range track.Teams() {
		stage := float64(i) / float64(track.TeamCount)
		switch {
		case stage < progress-0.2:
			statuses[team] = track.StatusCompleted
		case stage < progress:
			statuses[team] = track.StatusInProgress
		case stage < progress+0.1:
			statuses[team] = track.StatusWaiting
		default:
			statuses[team] = track.StatusNone
		}
	}
	return statuses
}

type fixture struct {
	name        string
	project     string
	priority    string
	description string
	progress    float64
}

var fixtures = []fixture{
	// Account Security
	{"Two-factor auth (SMS)", "Account Security", "A1", "Send a verification code by SMS for safer sign-in", 0.8},
	{"Active session log", "Account Security", "A2", "Show devices currently attached to the account", 0.5},
	{"Password hashing upgrade", "Account Security", "B1", "Move credential storage to Argon2", 0.3},

	// User Experience
	{"Dark mode", "User Experience", "B1", "Dark styling across the whole product", 0.9},
	{"Loading skeletons", "User Experience", "C1", "Skeleton screens on heavy pages", 1.0},
	{"Voice search", "User Experience", "B2", "Search the catalog by voice", 0.2},
	{"Footer redesign", "User Experience", "C2", "Better quick links at the bottom of the site", 0.7},

	// Data Platform
	{"PostgreSQL 16 migration", "Data Platform", "A1", "Upgrade the primary database engine", 0.4},
	{"Redis caching layer", "Data Platform", "A3", "Cut repeated query load with a cache tier", 0.6},
	{"Transaction archive", "Data Platform", "B3", "Move historical data to cold storage", 0.1},

	// Seller Panel
	{"Sales chart dashboard", "Seller Panel", "A2", "Monthly sales figures as charts", 0.6},
	{"Buyer chat", "Seller Panel", "B1", "In-product messaging for buyer questions", 0.3},
	{"Smart inventory", "Seller Panel", "A3", "Predict stock-outs from the sales trend", 0.2},

	// Mobile App
	{"Firebase push notifications", "Mobile App", "A1", "Real-time alerts for promotions", 0.9},
	{"Apple Pay checkout", "Mobile App", "B2", "Easier purchasing for iOS users", 0.1},
	{"Barcode scanner", "Mobile App", "C1", "Find products with the phone camera", 0.5},

	// Payments
	{"In-app wallet", "Payments", "A1", "Top up and purchase without a bank gateway", 0.7},
	{"Automatic settlement", "Payments", "A2", "Daily payout of seller earnings", 0.4},
	{"Card validation", "Payments", "B1", "Check card prefixes and checksum", 1.0},

	// Smart Support
	{"AI answer bot", "Smart Support", "B1", "Automatic replies to frequent questions", 0.4},
	{"New ticketing system", "Smart Support", "C1", "Auto-categorize tickets by priority", 0.2},
	{"Post-call survey", "Smart Support", "C2", "Measure customer satisfaction (CSAT)", 0.8},

	// Marketing & SEO
	{"Automated blog content", "Marketing & SEO", "B2", "AI-assisted articles for the news blog", 0.3},
	{"Dynamic discount codes", "Marketing & SEO", "A3", "Coupons generated from purchase behavior", 0.5},
	{"Meta tag optimization", "Marketing & SEO", "C1", "Improve page indexing", 0.9},

	// Logistics
	{"Live courier tracking", "Logistics", "A1", "Courier position on a map for the customer", 0.6},
	{"Returns workflow", "Logistics", "B2", "Flow for goods coming back to the warehouse", 0.2},
	{"Automatic label printing", "Logistics", "C1", "Warehouse software to thermal printers", 1.0},

	// Management Reports
	{"Real-time P&L report", "Management Reports", "A1", "Margin after tax, continuously", 0.4},
	{"Demand forecasting", "Management Reports", "B1", "Last year's data driving purchasing", 0.1},
	{"Team performance panel", "Management Reports", "C1", "Closed tasks per sprint", 0.3},
}

// Features returns the demo records, pipeline statuses included. Each call
// builds fresh values; nothing here is shared state.
func Features() []*track.Feature {
	out := make([]*track.Feature, 0, len(fixtures))
	for _, fx := range fixtures {
		f := track.NewFeature(fx.name, fx.project, fx.description, fx.priority)
		f.TeamStatuses = Statuses(fx.progress)
		out = append(out, f)
	}
	return out
}
