package kyb

func cleanEntity() Entity {
	return Entity{
		EntityID:           "entity-123",
		BusinessName:       "Acme Corporation",
		Jurisdiction:       "US",
		EntityAgeDays:      730,
		RegistrationStatus: "active",
	}
}
