package donorapi

import "time"

const (
	providerName       = "donorapi"
	defaultBaseURL     = "http://localhost:8080/api"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512

	userIDPlaceholder = "{userId}"

	dashboardPath = "/home/" + userIDPlaceholder
	statsPath     = "/home/" + userIDPlaceholder + "/stats"
)

// Fallback chains per list read. Each path is tried in order with the same unwrapping rules.
var (
	appointmentsChain = endpointChain{
		name:   "appointments",
		entity: "appointments",
		paths:  []string{"/appointments/user/" + userIDPlaceholder + "/upcoming", "/appointments/user/" + userIDPlaceholder},
	}
	emergenciesChain = endpointChain{
		name:   "emergencies",
		entity: "emergencies",
		paths:  []string{"/emergencies/active", "/emergencies"},
	}
	featuredChain = endpointChain{
		name:   "featured_campaigns",
		entity: "campaigns",
		paths:  []string{"/campaigns/featured", "/campaigns/upcoming"},
	}
	campaignsChain = endpointChain{
		name:   "campaigns",
		entity: "campaigns",
		paths:  []string{"/campaigns"},
	}
)
