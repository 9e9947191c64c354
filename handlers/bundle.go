package handlers

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Query    *QueryHandler
	Provider *ProviderHandler
	Service  *ServiceHandler
	Health   *HealthHandler
}
